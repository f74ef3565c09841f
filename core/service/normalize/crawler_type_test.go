package normalize

import (
	"testing"

	"crawler_server/core/domain"
)

func TestInferType(t *testing.T) {
	tests := []struct {
		name   string
		title  string
		cat    domain.Category
		region domain.Region
		hint   domain.CampaignType
		want   domain.CampaignType
	}{
		{
			name:   "reporter marker overrides everything",
			title:  "[기자단] 강남 맛집 방문",
			cat:    domain.CategoryFood,
			region: "서울",
			hint:   domain.TypeVisit,
			want:   domain.TypeReporter,
		},
		{
			name:   "delivery category outranks visit hint",
			title:  "무선 이어폰 체험",
			cat:    domain.CategoryDigital,
			region: "서울",
			hint:   domain.TypeVisit,
			want:   domain.TypeDelivery,
		},
		{
			name:   "shipping category is delivery",
			title:  "신제품 발송",
			cat:    domain.CategoryShipping,
			region: "",
			hint:   domain.TypeUnknown,
			want:   domain.TypeDelivery,
		},
		{
			name:   "hint honored when category is neutral",
			title:  "헤어살롱 방문 체험",
			cat:    domain.CategoryBeauty,
			region: "서울",
			hint:   domain.TypeReporter,
			want:   domain.TypeReporter,
		},
		{
			name:   "sentinel region forces delivery",
			title:  "전국 택배 모집",
			cat:    domain.CategoryBeauty,
			region: domain.RegionNationwide,
			hint:   domain.TypeUnknown,
			want:   domain.TypeDelivery,
		},
		{
			name:   "lifestyle with concrete region is visit",
			title:  "필라테스 1개월",
			cat:    domain.CategoryLifestyle,
			region: "경기",
			hint:   domain.TypeUnknown,
			want:   domain.TypeVisit,
		},
		{
			name:   "lifestyle without region is delivery",
			title:  "주방세제 세트",
			cat:    domain.CategoryLifestyle,
			region: "",
			hint:   domain.TypeUnknown,
			want:   domain.TypeDelivery,
		},
		{
			name:   "visit category without hint is visit",
			title:  "삼겹살 전문점",
			cat:    domain.CategoryFood,
			region: "부산",
			hint:   domain.TypeUnknown,
			want:   domain.TypeVisit,
		},
		{
			name:   "travel is visit",
			title:  "가평 펜션 숙박권",
			cat:    domain.CategoryTravel,
			region: "경기",
			hint:   domain.TypeUnknown,
			want:   domain.TypeVisit,
		},
		{
			name:   "beauty without region still implies visit",
			title:  "",
			cat:    domain.CategoryBeauty,
			region: "",
			hint:   domain.TypeUnknown,
			want:   domain.TypeVisit,
		},
		{
			name:   "category outside the taxonomy is unknown",
			title:  "",
			cat:    domain.Category("기타"),
			region: "",
			hint:   domain.TypeUnknown,
			want:   domain.TypeUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InferType(tt.title, tt.cat, tt.region, tt.hint)
			if got != tt.want {
				t.Errorf("InferType(%q, %s, %q, %q) = %q, want %q",
					tt.title, tt.cat, tt.region, tt.hint, got, tt.want)
			}
		})
	}
}
