package normalize

import (
	"strings"

	"crawler_server/core/domain"
	"crawler_server/pkg/textutil"
)

// =============================================================================
// Type Inferrer
// =============================================================================

// reporterMarker in a title is treated as ground truth: sponsored-journalist
// listings get mistagged as visit-type food campaigns upstream at a high rate,
// and this is the cheapest reliable correction.
const reporterMarker = "기자단"

// InferType derives the fulfillment type from the standardized category and
// region. Precedence, first applicable rule wins:
//
//  1. 기자단 in the title            → reporter (overrides adapter hints too)
//  2. delivery-forcing category      → delivery (outranks the hint: hints were
//     a source of the very misclassifications normalization exists to fix)
//  3. adapter hint, if present       → as-is
//  4. shipping/nationwide/WFH region → delivery
//  5. 생활 (ambiguous)               → delivery without a concrete region,
//     visit with one
//  6. visit-archetypal category      → visit
//  7. otherwise                      → unknown
func InferType(title string, cat domain.Category, region domain.Region, hint domain.CampaignType) domain.CampaignType {
	lowered := strings.ToLower(textutil.Clean(title))

	if strings.Contains(lowered, reporterMarker) {
		return domain.TypeReporter
	}

	if cat.IsDeliveryCategory() {
		return domain.TypeDelivery
	}

	if hint != domain.TypeUnknown {
		return hint
	}

	if region.IsSentinel() {
		return domain.TypeDelivery
	}

	if cat == domain.CategoryLifestyle {
		// 생활 spans gyms visited in person and household goods shipped; the
		// presence of a concrete region is the deciding signal.
		if region == "" || region.IsSentinel() {
			return domain.TypeDelivery
		}
		return domain.TypeVisit
	}

	if cat.IsVisitCategory() {
		return domain.TypeVisit
	}

	return domain.TypeUnknown
}
