package normalize

import (
	"strings"

	"crawler_server/core/domain"
	"crawler_server/pkg/textutil"
)

// =============================================================================
// Region Classifier
// =============================================================================

// provinceVariants collapses every known spelling of a top-level region onto
// its canonical label. Longer variants are resolved first via exact token
// match, so 서울특별시 and 서울시 both land on 서울.
var provinceVariants = map[string]domain.Region{
	"서울": "서울", "서울시": "서울", "서울특별시": "서울",
	"경기": "경기", "경기도": "경기",
	"인천": "인천", "인천시": "인천", "인천광역시": "인천",
	"부산": "부산", "부산시": "부산", "부산광역시": "부산",
	"대구": "대구", "대구시": "대구", "대구광역시": "대구",
	"광주": "광주", "광주시": "광주", "광주광역시": "광주",
	"대전": "대전", "대전시": "대전", "대전광역시": "대전",
	"울산": "울산", "울산시": "울산", "울산광역시": "울산",
	"세종": "세종", "세종시": "세종", "세종특별자치시": "세종",
	"강원": "강원", "강원도": "강원", "강원특별자치도": "강원",
	"충북": "충북", "충청북도": "충북",
	"충남": "충남", "충청남도": "충남",
	"전북": "전북", "전라북도": "전북", "전북특별자치도": "전북",
	"전남": "전남", "전라남도": "전남",
	"경북": "경북", "경상북도": "경북",
	"경남": "경남", "경상남도": "경남",
	"제주": "제주", "제주도": "제주", "제주특별자치도": "제주",
}

// cityToProvince maps well-known cities/districts that appear as the first
// token of a location onto their parent province. Raw locations come in
// "<city> <province>" or bare-city form depending on the source.
var cityToProvince = map[string]domain.Region{
	// 경기
	"수원": "경기", "성남": "경기", "고양": "경기", "용인": "경기", "부천": "경기",
	"안산": "경기", "안양": "경기", "평택": "경기", "의정부": "경기", "오산": "경기",
	"화성": "경기", "시흥": "경기", "김포": "경기", "광명": "경기", "하남": "경기",
	"구리": "경기", "파주": "경기", "이천": "경기", "안성": "경기", "포천": "경기",
	"양주": "경기", "동두천": "경기", "과천": "경기", "가평": "경기", "연천": "경기",
	"양평": "경기",
	// 강원
	"춘천": "강원", "원주": "강원", "강릉": "강원", "속초": "강원",
	// 충청
	"천안": "충남", "아산": "충남", "당진": "충남",
	"청주": "충북", "충주": "충북",
	// 전라
	"여수": "전남", "순천": "전남", "목포": "전남",
	"전주": "전북", "군산": "전북", "익산": "전북", "남원": "전북",
	// 경상
	"진주": "경남", "창원": "경남", "양산": "경남", "김해": "경남",
	"포항": "경북", "구미": "경북", "경주": "경북",
	// 제주
	"서귀포": "제주",
}

// stripCitySuffix removes the administrative suffix from a bare city token
// (수원시 → 수원, 가평군 → 가평, 강남구 → 강남).
func stripCitySuffix(token string) string {
	for _, suffix := range []string{"특별시", "광역시", "시", "군", "구"} {
		if trimmed, ok := strings.CutSuffix(token, suffix); ok && trimmed != "" {
			return trimmed
		}
	}
	return token
}

// Region maps an arbitrarily formatted raw location string to a canonical
// top-level region, passing through the shipping/nationwide/work-from-home
// sentinels. Empty input means "no region", distinct from 전국.
func Region(rawRegion string) domain.Region {
	cleaned := textutil.Clean(rawRegion)
	if cleaned == "" {
		return ""
	}

	// Sentinels pass through unchanged; a location like "배송 (전국)" still
	// counts as shipping.
	switch {
	case strings.Contains(cleaned, string(domain.RegionShipping)):
		return domain.RegionShipping
	case strings.Contains(cleaned, string(domain.RegionNationwide)):
		return domain.RegionNationwide
	case strings.Contains(cleaned, string(domain.RegionWFH)):
		return domain.RegionWFH
	}

	// Raw locations are "<province>", "<province> <city>", "<city> <province>"
	// or a bare city. Any token that resolves to a canonical province wins.
	tokens := strings.Fields(cleaned)
	for _, tok := range tokens {
		if region, ok := provinceVariants[tok]; ok {
			return region
		}
	}
	for _, tok := range tokens {
		base := stripCitySuffix(tok)
		if region, ok := provinceVariants[base]; ok {
			return region
		}
		if region, ok := cityToProvince[base]; ok {
			return region
		}
	}

	// Unknown place: keep the cleaned first token so all raw variants of one
	// unlisted place still collapse identically.
	return domain.Region(stripCitySuffix(tokens[0]))
}
