package domain

import (
	"fmt"
	"time"
)

// SourceID identifies the review-campaign site a listing came from.
type SourceID string

const (
	SourceReviewNote      SourceID = "reviewnote"
	SourceDinnerQueen     SourceID = "dinnerqueen"
	SourceGangnam         SourceID = "gangnam"
	SourceReviewPlace     SourceID = "reviewplace"
	SourceSeoulOuba       SourceID = "seoulouba"
	SourceModooExperience SourceID = "modooexperience"
	SourcePavlovu         SourceID = "pavlovu"
)

// Category is the closed standard category taxonomy.
// Values are stored as-is (Korean labels), matching the campaigns table.
type Category string

const (
	// === Visit-archetypal categories ===
	CategoryFood    Category = "맛집" // restaurants, cafes, desserts
	CategoryBeauty  Category = "뷰티" // hair, nail, skin care
	CategoryTravel  Category = "여행" // lodging, leisure
	CategoryCulture Category = "문화" // studios, exhibitions, workshops

	// === Ambiguous (visit or delivery, region decides) ===
	CategoryLifestyle Category = "생활" // fitness, services, household goods

	// === Inherently mail-order categories ===
	CategoryShipping     Category = "배송"  // generic shipped products
	CategoryDigital      Category = "디지털" // appliances, electronics
	CategoryPackagedFood Category = "식품"  // processed food, supplements, meal kits
	CategoryFashion      Category = "패션"
	CategoryBooks        Category = "도서"
	CategoryKids         Category = "유아동"
	CategoryPets         Category = "반려동물"
	CategoryWFH          Category = "재택" // work-from-home campaigns
)

// deliveryCategories are definitionally non-visit: a campaign in one of these
// is fulfilled by shipping regardless of what the adapter claimed.
var deliveryCategories = map[Category]bool{
	CategoryDigital:      true,
	CategoryPackagedFood: true,
	CategoryBooks:        true,
	CategoryKids:         true,
	CategoryFashion:      true,
	CategoryPets:         true,
	CategoryShipping:     true,
	CategoryWFH:          true,
}

// IsDeliveryCategory reports whether cat forces the delivery type.
func (c Category) IsDeliveryCategory() bool {
	return deliveryCategories[c]
}

// visitCategories are the visit-archetypal buckets.
var visitCategories = map[Category]bool{
	CategoryFood:    true,
	CategoryBeauty:  true,
	CategoryTravel:  true,
	CategoryCulture: true,
}

// IsVisitCategory reports whether cat implies an in-person visit.
func (c Category) IsVisitCategory() bool {
	return visitCategories[c]
}

// Region is a canonical top-level region label or a sentinel.
// The empty string means "no region", which is distinct from RegionNationwide.
type Region string

const (
	RegionShipping   Region = "배송" // fulfilled by shipping, no place to visit
	RegionNationwide Region = "전국"
	RegionWFH        Region = "재택"
)

// IsSentinel reports whether the region is one of the non-geographic sentinels.
func (r Region) IsSentinel() bool {
	return r == RegionShipping || r == RegionNationwide || r == RegionWFH
}

// CampaignType is the fulfillment type of a campaign.
// The empty string means the type could not be inferred.
type CampaignType string

const (
	TypeVisit    CampaignType = "visit"
	TypeDelivery CampaignType = "delivery"
	TypeReporter CampaignType = "reporter"
	TypeUnknown  CampaignType = ""
)

// Campaign is one raw listing as produced by a source adapter, before
// normalization. Adapters are stateless fetchers; a Campaign lives only for
// the duration of one ingestion cycle.
type Campaign struct {
	Title  string   `json:"title"`
	URL    string   `json:"url"`
	Source SourceID `json:"site_name"`

	// Raw taxonomy data from the site. Both may be empty; neither is trusted
	// directly; they are inputs to the normalization rules only.
	RawCategory string `json:"category,omitempty"`
	Location    string `json:"location,omitempty"` // raw region text, may itself be "배송"

	// TypeHint is set by adapters whose own taxonomy is unambiguous
	// (e.g. a site that splits its listing pages into visit/delivery).
	TypeHint CampaignType `json:"type,omitempty"`

	ImageURL string `json:"image_url,omitempty"`
	Channel  string `json:"channel,omitempty"`  // posting channel: 블로그, 인스타, ...
	Deadline string `json:"deadline,omitempty"` // display string, e.g. "D-5"

	ReviewDeadlineDays *int `json:"review_deadline_days,omitempty"`
	RecruitCount       *int `json:"recruit_count,omitempty"`
	ApplicantCount     *int `json:"applicant_count,omitempty"`
}

// Fingerprint is the stable identity key of a campaign: the source plus the
// source-local id extracted from its URL. It is the sole dedup and upsert key.
type Fingerprint struct {
	Source   SourceID
	SourceID string
}

// String renders the fingerprint as "source:source_id", the form used for
// redis set members and log lines.
func (f Fingerprint) String() string {
	return fmt.Sprintf("%s:%s", f.Source, f.SourceID)
}

// StandardizedCampaign is a Campaign enriched with the three derived fields.
// Category, Region and Type are always recomputed from current rules at
// ingestion time, never trusted from the adapter.
type StandardizedCampaign struct {
	Campaign

	SourceLocalID string       `json:"source_id"`
	Category      Category     `json:"std_category"`
	Region        Region       `json:"std_region"`
	Type          CampaignType `json:"std_type"`

	// SelectionRate is recruit/applicant as a percentage, capped at 100.
	// Nil when either count is missing.
	SelectionRate *float64 `json:"selection_rate,omitempty"`

	IsActive  bool      `json:"is_active"`
	CrawledAt time.Time `json:"crawled_at"`
}

// Key returns the upsert key of the standardized record.
func (s *StandardizedCampaign) Key() Fingerprint {
	return Fingerprint{Source: s.Source, SourceID: s.SourceLocalID}
}

// CampaignFilter narrows List queries on the store.
type CampaignFilter struct {
	Source     SourceID
	Category   Category
	Region     Region
	Type       CampaignType
	ActiveOnly bool
	Page       PageRequest
}
