package normalize

// Keyword tables for the category rule cascade. These are read-only domain
// data, constructed once; the rule order in crawler_category.go is what
// resolves the ambiguities between them.

// 패션/의류/잡화: checked before everything else because upstream raw
// categories are unreliable for these terms ("옷" alone is excluded: it also
// appears inside food terms like 계란옷).
var fashionKeywords = []string{
	"슬리퍼", "신발", "의류", "패션", "양말", "티셔츠", "바지", "치마", "자켓", "코트",
}

// 특정 음식점 체인명: a chain name in the title is the highest-confidence
// food signal available.
var foodChainNames = []string{
	"텍사스파파", "스노우폭스", "본죽", "본도시락", "김가네", "한솥", "이삭토스트",
}

// 뷰티: must win over generic service buckets even when the raw category
// claims 식품 (두피/탈모 supplements are tagged as food upstream).
var beautyKeywords = []string{
	"헤어", "네일", "속눈썹", "에스테틱", "왁싱", "피부", "미용실", "뷰티", "펌",
	"염색", "피부관리", "메이크업", "눈썹", "모발", "미용", "두피", "탈모", "살롱",
	"태닝", "손톱",
}

// 서비스/클리닉: 생활
var serviceKeywords = []string{"연구소", "클리닉", "센터", "학원", "교습소"}

// 반려동물: includes colloquial name endings (냥/멍) and breed names.
var petKeywords = []string{
	"펫", "독", "도그", "dog", "냥", "멍", "강아지", "고양이", "반려", "애견",
	"펫샵", "펫호텔", "동물병원", "사료", "달마시안", "푸들", "말티즈", "포메", "비숑",
}

// 꽃집/플라워: 생활. A restaurant whose name merely contains a flower-shop
// substring is rescued by the food-word exception in the rule itself.
var flowerKeywords = []string{"플라워", "플로리스트", "꽃집", "꽃배달", "화원", "플로라"}

// 가구: checked before 문화 because craft-workshop language overlaps.
var furnitureKeywords = []string{
	"가구", "소파", "침대", "매트리스", "식탁", "의자", "책상", "인테리어", "조명", "이불",
}

// 곤충/체험학습: 생활
var experienceKeywords = []string{"곤충", "체험학습", "자연학습"}

// 노래방/엔터테인먼트: 문화, before the generic culture pass.
var entertainmentKeywords = []string{"노래방", "코인노래", "노래타운", "코노"}

// 세탁/크리닝: 생활
var cleaningKeywords = []string{"세탁", "크리닝", "드라이"}

// 패션/의류 매장
var fashionStoreKeywords = []string{
	"핫스노우", "편집샵", "빈티지샵", "옷가게", "의류매장", "쇼룸",
}

// 맛집: intentionally long, specific tokens; short ones like a bare 탕 or 회
// would match inside unrelated words.
var foodKeywords = []string{
	"크레페", "디저트", "베이커리", "케이크", "카페", "커피", "식당", "맛집", "고기",
	"삼겹", "치킨", "피자", "햄버거", "초밥", "횟집", "회집", "라멘", "국밥", "찌개",
	"설렁탕", "감자탕", "곰탕", "삼계탕", "육개장", "순대국", "면옥", "정식", "한식",
	"중식", "일식", "양식", "분식", "샤브", "순대", "족발", "보쌈", "스노우폭스",
	"곱창", "막창", "소갈비", "돼지", "소고기", "스시", "우동", "돈까스", "덮밥",
	"김밥", "떡볶이", "빵집", "제과", "베이커", "브런치", "파스타", "스테이크",
	"바베큐", "bbq", "뷔페", "buffet",
}

// 여행/숙박/레저
var travelKeywords = []string{
	"펜션", "호텔", "풀빌라", "숙박", "캠핑", "글램핑", "여행", "리조트", "스테이",
	"카라반", "민박", "게스트하우스",
	"테마파크", "놀이공원", "워터파크", "눈썰매", "스키", "스노우", "짚라인", "루지",
	"레일바이크", "번지", "래프팅",
	"아쿠아리움", "동물원", "식물원", "수목원", "자연휴양림", "온천", "찜질방", "사우나",
}

// 문화/스튜디오: 공방 carries an exception: 마라공방-style restaurant names.
var cultureKeywords = []string{
	"공방", "전시", "연극", "뮤지컬", "영화", "책방", "스냅", "사진", "촬영", "웨딩",
	"스튜디오", "프롤로그", "문화", "팝업스토어", "팝업",
}

// 디지털/가전: checked before the lifestyle pass so 청소기 lands here, not in
// the generic cleaning-service bucket.
var digitalKeywords = []string{
	"디지털", "가전", "노트북", "폰", "이어폰", "정수기", "음식물", "처리기", "청소기",
	"비데", "제습기", "에어컨", "전자", "wi-fi", "wifi", "와이파이", "공유기", "라우터",
	"액세스포인트", "ap", "블루투스", "스피커", "모니터", "tv", "태블릿",
}

// 건강식품/영양제/가공식품: 식품
var healthFoodKeywords = []string{
	// 건강식품/영양제
	"밀키트", "식품", "간식", "음료", "영양제", "비타민", "멜라토닌", "유산균",
	"건강식품", "건강즙", "홍삼", "프로바이오틱스", "밀크씨슬", "씨슬",
	"흑염소", "녹용", "오메가", "루테인", "콜라겐", "글루타치온", "마그네슘",
	"아연", "철분", "칼슘", "락토", "젖산균", "효소", "발효",
	"즙", "액기스", "엑기스", "추출물", "분말", "환", "캔디", "캡슐",
	"liposomal", "c2000", "리포좀", "리포솜", "호두오일", "아마씨", "치아씨드",
	"단백질", "프로틴", "아미노산", "bcaa", "크레아틴", "보충제",
	"알부민", "albumin", "글루코사민", "msm", "관절", "뼈건강",
	// 가공식품/밀키트
	"너비아니", "유부", "만두", "떡", "젤리", "과자", "쿠키", "초콜릿",
	"라면", "면", "소스", "장", "김치", "젓갈", "반찬", "조미료",
	"냉동", "레토르트", "즉석", "통조림", "캔", "파우치",
	"완자", "동그랑땡", "전", "부침", "튀김", "새우", "오징어", "계란옷",
	"양반", "동원", "cj", "오뚜기", "풀무원", "비비고",
}

var bookKeywords = []string{"책", "도서"}

var kidsKeywords = []string{"유아", "육아", "기저귀", "장난감"}

var petTitleKeywords = []string{
	"반려", "강아지", "고양이", "사료", "동물병원", "애견", "펫샵", "펫호텔",
}

// 주방용품
var kitchenwareKeywords = []string{"텀블러", "보틀", "컵", "주방", "식기", "냄비", "후라이팬"}

// 생활/여가: broad fitness/service/automotive/leisure bucket, last of the
// title passes.
var lifeKeywords = []string{
	"운동", "pt", "필라테스", "요가", "헬스", "클래스", "청소", "이사", "생활",
	"바레", "유도", "태권도", "주짓수", "댄스", "무용", "짐", "체육관", "골프",
	"누수", "마사지", "네일", "왁싱", "세차", "워시", "타로", "점술", "사주",
	"운세", "연구소", "클리닉", "센터", "체형관리", "스트레칭", "교정", "자세",
}

// 택배/배송/제품 generic shipping markers in titles.
var shippingTitleKeywords = []string{"택배", "배송", "제품"}
