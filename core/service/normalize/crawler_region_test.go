package normalize

import (
	"testing"

	"crawler_server/core/domain"
)

func TestRegion(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want domain.Region
	}{
		{name: "empty means no region", raw: "", want: ""},
		{name: "whitespace only means no region", raw: "   \t ", want: ""},

		// Sentinels.
		{name: "shipping sentinel", raw: "배송", want: domain.RegionShipping},
		{name: "shipping with noise", raw: "배송 (전국)", want: domain.RegionShipping},
		{name: "nationwide sentinel", raw: "전국", want: domain.RegionNationwide},
		{name: "work from home sentinel", raw: "재택", want: domain.RegionWFH},

		// Province variants collapse.
		{name: "bare province", raw: "서울", want: "서울"},
		{name: "province with 시 suffix", raw: "서울시", want: "서울"},
		{name: "full official name", raw: "서울특별시", want: "서울"},
		{name: "province then district", raw: "서울 강남구", want: "서울"},
		{name: "district then province", raw: "강남구 서울", want: "서울"},
		{name: "gyeonggi full name", raw: "경기도 수원시", want: "경기"},
		{name: "metropolitan full name", raw: "부산광역시 해운대구", want: "부산"},
		{name: "sejong special city", raw: "세종특별자치시", want: "세종"},
		{name: "gangwon renamed province", raw: "강원특별자치도 춘천시", want: "강원"},
		{name: "jeonbuk renamed province", raw: "전북특별자치도", want: "전북"},
		{name: "chungcheong long form", raw: "충청남도 천안시", want: "충남"},

		// Bare city resolves to its province.
		{name: "bare city", raw: "수원", want: "경기"},
		{name: "city with 시 suffix", raw: "수원시", want: "경기"},
		{name: "city with district", raw: "수원시 팔달구", want: "경기"},
		{name: "gangwon city", raw: "춘천", want: "강원"},
		{name: "chungnam city", raw: "천안시", want: "충남"},
		{name: "jeonbuk city", raw: "전주", want: "전북"},
		{name: "gyeongbuk city", raw: "포항시", want: "경북"},
		{name: "gyeongnam city", raw: "창원", want: "경남"},
		{name: "jeju city", raw: "서귀포시", want: "제주"},
		{name: "county suffix stripped", raw: "가평군", want: "경기"},

		// Unknown places keep a stable first token.
		{name: "unknown place keeps first token", raw: "판교테크노밸리 어딘가", want: "판교테크노밸리"},
		{name: "unknown district loses suffix", raw: "몰라구", want: "몰라"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Region(tt.raw); got != tt.want {
				t.Errorf("Region(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

// TestRegionVariantsCollapse verifies every spelling of one place lands on the
// same canonical value, so downstream dedup and filtering see one region.
func TestRegionVariantsCollapse(t *testing.T) {
	variants := []string{"서울", "서울시", "서울특별시", "서울 강남구", "강남구 서울특별시"}
	for _, v := range variants {
		if got := Region(v); got != "서울" {
			t.Errorf("Region(%q) = %q, want 서울", v, got)
		}
	}
}
