package normalize

import (
	"testing"

	"crawler_server/core/domain"
)

func TestCategory(t *testing.T) {
	tests := []struct {
		name   string
		source domain.SourceID
		rawCat string
		title  string
		want   domain.Category
	}{
		{
			name:   "fashion keyword beats food keyword and raw category",
			source: domain.SourceReviewNote,
			rawCat: "맛집",
			title:  "피자브랜드 스니커즈 신발 증정",
			want:   domain.CategoryFashion,
		},
		{
			name:   "food chain name wins outright",
			source: domain.SourceSeoulOuba,
			rawCat: "",
			title:  "본죽 강남점 체험단",
			want:   domain.CategoryFood,
		},
		{
			name:   "beauty beats raw food category",
			source: domain.SourceReviewNote,
			rawCat: "식품",
			title:  "두피 탈모 케어 전문점",
			want:   domain.CategoryBeauty,
		},
		{
			name:   "mara-gongbang stays food despite 공방",
			source: domain.SourceGangnam,
			rawCat: "맛집",
			title:  "마라공방 강남역점",
			want:   domain.CategoryFood,
		},
		{
			name:   "plain 공방 is culture",
			source: domain.SourceGangnam,
			rawCat: "",
			title:  "가죽공방 원데이클래스",
			want:   domain.CategoryCulture,
		},
		{
			name:   "flower shop with food word stays out of lifestyle",
			source: domain.SourceGangnam,
			rawCat: "",
			title:  "플로라 카페 압구정",
			want:   domain.CategoryFood,
		},
		{
			name:   "flower shop without food word is lifestyle",
			source: domain.SourceGangnam,
			rawCat: "",
			title:  "플로리스트 클래스 모집",
			want:   domain.CategoryLifestyle,
		},
		{
			name:   "vacuum cleaner is digital, not cleaning service",
			source: domain.SourceReviewNote,
			rawCat: "",
			title:  "삼성전자 비스포크 제트 청소기",
			want:   domain.CategoryDigital,
		},
		{
			name:   "water purifier is digital",
			source: domain.SourceReviewNote,
			rawCat: "맛집",
			title:  "무타공 정수기 2세대",
			want:   domain.CategoryDigital,
		},
		{
			name:   "supplement title is packaged food",
			source: domain.SourceReviewNote,
			rawCat: "",
			title:  "프로바이오틱스 유산균 30포",
			want:   domain.CategoryPackagedFood,
		},
		{
			name:   "raw digital category trusted",
			source: domain.SourcePavlovu,
			rawCat: "디지털",
			title:  "신제품 체험",
			want:   domain.CategoryDigital,
		},
		{
			name:   "karaoke routes to culture before lifestyle",
			source: domain.SourceSeoulOuba,
			rawCat: "",
			title:  "코인노래방 1시간 이용권",
			want:   domain.CategoryCulture,
		},
		{
			name:   "furniture beats culture workshop overlap",
			source: domain.SourceSeoulOuba,
			rawCat: "",
			title:  "원목 가구 공방 쇼룸 방문",
			want:   domain.CategoryLifestyle,
		},
		{
			name:   "dry cleaning is lifestyle",
			source: domain.SourceSeoulOuba,
			rawCat: "",
			title:  "우리동네 세탁 전문점",
			want:   domain.CategoryLifestyle,
		},
		{
			name:   "reporter marker alone routes to lifestyle",
			source: domain.SourceSeoulOuba,
			rawCat: "",
			title:  "[기자단] 어떤 브랜드",
			want:   domain.CategoryLifestyle,
		},
		{
			name:   "seoulouba raw product tag is lifestyle, not shipping",
			source: domain.SourceSeoulOuba,
			rawCat: "제품",
			title:  "오르트클라우드",
			want:   domain.CategoryLifestyle,
		},
		{
			name:   "other sources raw product tag is shipping",
			source: domain.SourceReviewNote,
			rawCat: "제품",
			title:  "오르트클라우드",
			want:   domain.CategoryShipping,
		},
		{
			name:   "raw etc falls to lifestyle",
			source: domain.SourceGangnam,
			rawCat: "기타",
			title:  "알수없는 업체명",
			want:   domain.CategoryLifestyle,
		},
		{
			name:   "raw delivery-type falls to shipping",
			source: domain.SourceGangnam,
			rawCat: "배송형",
			title:  "알수없는 업체명",
			want:   domain.CategoryShipping,
		},
		{
			name:   "default is food",
			source: domain.SourceSeoulOuba,
			rawCat: "",
			title:  "성수동 어느 가게",
			want:   domain.CategoryFood,
		},
		{
			name:   "empty title and category still total",
			source: domain.SourceReviewNote,
			rawCat: "",
			title:  "",
			want:   domain.CategoryFood,
		},
		{
			name:   "restaurant keyword set",
			source: domain.SourceGangnam,
			rawCat: "맛집",
			title:  "[서울 강남] 맛있는 삼겹살집",
			want:   domain.CategoryFood,
		},
		{
			name:   "instant noodles are packaged food",
			source: domain.SourceReviewNote,
			rawCat: "",
			title:  "비빔면 5팩 증정",
			want:   domain.CategoryPackagedFood,
		},
		{
			name:   "fermented paste is packaged food",
			source: domain.SourceReviewNote,
			rawCat: "",
			title:  "재래식 된장 1kg",
			want:   domain.CategoryPackagedFood,
		},
		{
			name:   "canned goods are packaged food",
			source: domain.SourceSeoulOuba,
			rawCat: "",
			title:  "골뱅이 캔 세트",
			want:   domain.CategoryPackagedFood,
		},
		{
			name:   "jeon platter is packaged food",
			source: domain.SourceGangnam,
			rawCat: "",
			title:  "모둠전 1kg",
			want:   domain.CategoryPackagedFood,
		},
		{
			name:   "pension is travel",
			source: domain.SourceSeoulOuba,
			rawCat: "",
			title:  "가평 풀빌라 펜션 숙박권",
			want:   domain.CategoryTravel,
		},
		{
			name:   "pilates is lifestyle",
			source: domain.SourceSeoulOuba,
			rawCat: "",
			title:  "원더바레 미사역점 필라테스",
			want:   domain.CategoryLifestyle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Category(tt.source, tt.rawCat, tt.title)
			if got != tt.want {
				t.Errorf("Category(%s, %q, %q) = %q, want %q",
					tt.source, tt.rawCat, tt.title, got, tt.want)
			}
		})
	}
}

// TestCategoryDeterminism pins the pure-function property: repeated calls with
// the same inputs always agree.
func TestCategoryDeterminism(t *testing.T) {
	first := Category(domain.SourceReviewNote, "맛집", "마라공방 강남역점")
	for i := 0; i < 50; i++ {
		if got := Category(domain.SourceReviewNote, "맛집", "마라공방 강남역점"); got != first {
			t.Fatalf("call %d returned %q, first call returned %q", i, got, first)
		}
	}
}
