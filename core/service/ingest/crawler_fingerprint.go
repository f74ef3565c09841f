package ingest

import (
	"crypto/md5"
	"encoding/hex"
	"regexp"

	"crawler_server/core/domain"
)

// =============================================================================
// Fingerprinting
// =============================================================================

// sourceIDPatterns extracts the source-local campaign ID from a listing URL.
// Each source keeps its numeric (or slug) ID in a different URL shape.
var sourceIDPatterns = map[domain.SourceID]*regexp.Regexp{
	domain.SourceReviewNote:      regexp.MustCompile(`/campaigns?/(\d+)`),
	domain.SourceDinnerQueen:     regexp.MustCompile(`/taste/(\d+)`),
	domain.SourceGangnam:         regexp.MustCompile(`[?&]id=(\d+)`),
	domain.SourceReviewPlace:     regexp.MustCompile(`[?&]id=(\d+)`),
	domain.SourceSeoulOuba:       regexp.MustCompile(`[?&]number=(\d+)`),
	domain.SourceModooExperience: regexp.MustCompile(`[?&]cp_id=([^&#]+)`),
	domain.SourcePavlovu:         regexp.MustCompile(`[?&]p_id=([^&#]+)`),
}

// urlHashLen keeps fallback IDs short enough to read in logs while still
// collision-safe for a dataset of this size.
const urlHashLen = 16

// Fingerprint derives the stable identity of a campaign from its source and
// URL. When the source's URL pattern does not match (redesigned pages, odd
// share links), the ID falls back to a truncated hash of the full URL so the
// same URL always maps to the same identity.
func Fingerprint(source domain.SourceID, url string) domain.Fingerprint {
	if re, ok := sourceIDPatterns[source]; ok {
		if m := re.FindStringSubmatch(url); m != nil {
			return domain.Fingerprint{Source: source, SourceID: m[1]}
		}
	}

	sum := md5.Sum([]byte(url))
	return domain.Fingerprint{
		Source:   source,
		SourceID: hex.EncodeToString(sum[:])[:urlHashLen],
	}
}
