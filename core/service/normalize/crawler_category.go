// Package normalize reconciles raw, site-specific taxonomy data into the
// standard category/region/type model. All classifiers here are pure and
// total: every input, including empty strings, maps to a value.
package normalize

import (
	"strings"

	"crawler_server/core/domain"
	"crawler_server/pkg/textutil"
)

// =============================================================================
// Category Rule Table
// =============================================================================

// categoryInput carries the pre-normalized inputs one rule evaluation needs.
type categoryInput struct {
	source SourceIDish
	rawCat string // trimmed raw category
	title  string // lower-cased title
}

// SourceIDish keeps the rule signatures readable.
type SourceIDish = domain.SourceID

// categoryRule is one (predicate, result) pair. Rules run in declaration
// order and the first match wins; there is no scoring.
type categoryRule struct {
	name  string
	match func(in categoryInput) bool
	want  domain.Category
}

func titleHas(keywords []string) func(categoryInput) bool {
	return func(in categoryInput) bool {
		return textutil.ContainsAny(in.title, keywords...)
	}
}

func rawCatHas(keywords ...string) func(categoryInput) bool {
	return func(in categoryInput) bool {
		if in.rawCat == "" {
			return false
		}
		return textutil.ContainsAny(in.rawCat, keywords...)
	}
}

func rawCatIs(exact string) func(categoryInput) bool {
	return func(in categoryInput) bool { return in.rawCat == exact }
}

// categoryRules is the full cascade, most-specific-and-highest-precedence
// first. The ordering comments state the constraint that pins each rule's
// position; moving a rule breaks the stated case.
var categoryRules = []categoryRule{
	// Hard product-type overrides. Raw categories mislabel apparel as food
	// often enough that these run before everything, raw category included.
	{name: "fashion-override", match: titleHas(fashionKeywords), want: domain.CategoryFashion},

	// Named restaurant chains.
	{name: "food-chain", match: titleHas(foodChainNames), want: domain.CategoryFood},

	// Beauty before any generic service bucket: 두피/탈모 listings arrive
	// tagged 식품.
	{name: "beauty", match: titleHas(beautyKeywords), want: domain.CategoryBeauty},

	// 연구소/클리닉 etc. are walk-in services, not food.
	{name: "service-clinic", match: titleHas(serviceKeywords), want: domain.CategoryLifestyle},

	// Pets before generic terms; includes slang name endings.
	{name: "pet", match: titleHas(petKeywords), want: domain.CategoryPets},

	// Flower shops route to lifestyle, except restaurants whose name contains
	// a flower-like substring and a food word.
	{name: "flower", match: func(in categoryInput) bool {
		return textutil.ContainsAny(in.title, flowerKeywords...) &&
			!textutil.ContainsAny(in.title, foodKeywords...)
	}, want: domain.CategoryLifestyle},

	// Furniture before culture: craft-workshop wording overlaps.
	{name: "furniture", match: titleHas(furnitureKeywords), want: domain.CategoryLifestyle},

	{name: "experience-learning", match: titleHas(experienceKeywords), want: domain.CategoryLifestyle},

	// Karaoke before the culture pass.
	{name: "entertainment", match: titleHas(entertainmentKeywords), want: domain.CategoryCulture},

	{name: "laundry", match: titleHas(cleaningKeywords), want: domain.CategoryLifestyle},

	// Raw categories specific enough to trust directly.
	{name: "raw-digital", match: rawCatHas("디지털", "가전"), want: domain.CategoryDigital},
	{name: "raw-food-product", match: rawCatHas("식품", "밀키트"), want: domain.CategoryPackagedFood},
	{name: "raw-books", match: rawCatHas("도서", "책"), want: domain.CategoryBooks},
	{name: "raw-kids", match: rawCatHas("유아", "육아"), want: domain.CategoryKids},
	{name: "raw-pets", match: rawCatHas("반려", "애견", "강아지", "고양이"), want: domain.CategoryPets},
	{name: "raw-fashion", match: rawCatHas("패션", "의류"), want: domain.CategoryFashion},
	{name: "raw-wfh", match: rawCatHas("재택"), want: domain.CategoryWFH},

	// Second, broad title pass.
	{name: "fashion-store", match: titleHas(fashionStoreKeywords), want: domain.CategoryFashion},
	{name: "food", match: titleHas(foodKeywords), want: domain.CategoryFood},
	{name: "travel", match: titleHas(travelKeywords), want: domain.CategoryTravel},

	// Culture, with the 마라공방 exception: 공방 in a title that also carries
	// 마라 denotes a restaurant, not a craft studio.
	{name: "culture", match: func(in categoryInput) bool {
		for _, k := range cultureKeywords {
			if !strings.Contains(in.title, k) {
				continue
			}
			if k == "공방" && strings.Contains(in.title, "마라") {
				continue
			}
			return true
		}
		return false
	}, want: domain.CategoryCulture},

	// Digital before lifestyle so 청소기 doesn't land in the cleaning bucket.
	{name: "digital", match: titleHas(digitalKeywords), want: domain.CategoryDigital},
	{name: "health-food", match: titleHas(healthFoodKeywords), want: domain.CategoryPackagedFood},
	{name: "books", match: titleHas(bookKeywords), want: domain.CategoryBooks},
	{name: "kids", match: titleHas(kidsKeywords), want: domain.CategoryKids},
	{name: "pet-title", match: titleHas(petTitleKeywords), want: domain.CategoryPets},
	{name: "wfh", match: titleHas([]string{"재택"}), want: domain.CategoryWFH},
	{name: "furniture-late", match: titleHas(furnitureKeywords), want: domain.CategoryLifestyle},
	{name: "kitchenware", match: titleHas(kitchenwareKeywords), want: domain.CategoryLifestyle},
	{name: "lifestyle", match: titleHas(lifeKeywords), want: domain.CategoryLifestyle},

	// 기자단 alone carries no category signal; routing it to 생활 avoids
	// piling ambiguous sponsored-article listings onto 맛집.
	{name: "reporter-marker", match: titleHas([]string{"기자단"}), want: domain.CategoryLifestyle},

	// seoulouba tags walk-in stores as 제품; for that source alone the tag is
	// a visited-location signal, not a mail-order one. Must precede the
	// generic 제품 rule or it can never fire.
	{name: "seoulouba-product", match: func(in categoryInput) bool {
		return in.source == domain.SourceSeoulOuba && in.rawCat == "제품"
	}, want: domain.CategoryLifestyle},

	// Legacy broad raw-category buckets.
	{name: "raw-shipping", match: rawCatHas("제품", "배송"), want: domain.CategoryShipping},
	{name: "raw-food", match: rawCatHas("맛집"), want: domain.CategoryFood},
	{name: "raw-beauty", match: rawCatHas("뷰티", "미용"), want: domain.CategoryBeauty},
	{name: "raw-travel", match: rawCatHas("여행", "숙박"), want: domain.CategoryTravel},
	{name: "raw-culture", match: rawCatHas("문화", "전시", "연극"), want: domain.CategoryCulture},
	{name: "raw-lifestyle", match: rawCatHas("여가", "생활"), want: domain.CategoryLifestyle},

	// Generic shipping markers in the title.
	{name: "shipping-title", match: titleHas(shippingTitleKeywords), want: domain.CategoryShipping},

	// Terminal defaults for the leftover exact raw tags.
	{name: "raw-etc", match: rawCatIs("기타"), want: domain.CategoryLifestyle},
	{name: "raw-delivery-type", match: rawCatIs("배송형"), want: domain.CategoryShipping},
	{name: "raw-reporter", match: rawCatIs("기자단"), want: domain.CategoryLifestyle},
}

// Category maps (source, raw category, title) to one standard category.
// It never fails; the terminal default is 맛집, the statistical majority of
// unclassified visit-type listings.
func Category(source domain.SourceID, rawCategory, title string) domain.Category {
	in := categoryInput{
		source: source,
		rawCat: strings.TrimSpace(rawCategory),
		title:  strings.ToLower(textutil.Clean(title)),
	}

	for _, rule := range categoryRules {
		if rule.match(in) {
			return rule.want
		}
	}
	return domain.CategoryFood
}
