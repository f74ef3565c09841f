package source

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"crawler_server/core/domain"
	"crawler_server/core/port/out"
	"crawler_server/pkg/logger"
	"crawler_server/pkg/textutil"

	"golang.org/x/net/html"
)

// punycode domain of 강남맛집.net
const gangnamBaseURL = "https://xn--939au0g4vj8sq.net"

// gangnamCategory fixes the type and raw category for one listing page; the
// site splits its catalog by numeric category id.
type gangnamCategory struct {
	id       int
	typeHint domain.CampaignType
	rawCat   string
}

// gangnamCategories in crawl order. 배달 is treated as shipped food, 포장 as
// a visited restaurant.
var gangnamCategories = []gangnamCategory{
	// 방문형
	{2005, domain.TypeVisit, "맛집"},
	{2010, domain.TypeVisit, "뷰티"},
	{2015, domain.TypeVisit, "여행"},
	{2020, domain.TypeVisit, "문화"},
	{2025, domain.TypeDelivery, "식품"},
	{2030, domain.TypeVisit, "맛집"},
	{2035, domain.TypeVisit, "기타"},
	// 배송형
	{3005, domain.TypeDelivery, "뷰티"},
	{3010, domain.TypeDelivery, "패션"},
	{3015, domain.TypeDelivery, "식품"},
	{3020, domain.TypeDelivery, "생활"},
	{3030, domain.TypeDelivery, "기타"},
	// 기자단
	{40, domain.TypeReporter, "기자단"},
}

var (
	bracketPattern  = regexp.MustCompile(`\[([^\]]+)\]`)
	daysLeftPattern = regexp.MustCompile(`(\d+)일\s*남음`)
)

// gangnamChannelWords maps bracket text fragments to channel labels.
var gangnamChannelWords = []struct{ word, label string }{
	{"블로그", "블로그"},
	{"인스타", "인스타"},
	{"릴스", "릴스"},
	{"유튜브", "유튜브"},
	{"쇼츠", "쇼츠"},
	{"틱톡", "틱톡"},
	{"클립", "클립"},
	{"clip", "클립"},
}

// GangnamSource crawls the 강남맛집 listing pages, one per category id.
type GangnamSource struct {
	client *siteClient
	log    *logger.Logger
}

// NewGangnamSource creates the gangnam adapter.
func NewGangnamSource(client *http.Client) out.Source {
	return &GangnamSource{
		client: newSiteClient(string(domain.SourceGangnam), client),
		log:    logger.WithField("source", string(domain.SourceGangnam)),
	}
}

func (s *GangnamSource) ID() domain.SourceID { return domain.SourceGangnam }

// Fetch walks every category page. A failed category is logged and skipped;
// the source only errors when no page could be fetched at all.
func (s *GangnamSource) Fetch(ctx context.Context) ([]*domain.Campaign, error) {
	var campaigns []*domain.Campaign
	fetched := 0

	for _, cat := range gangnamCategories {
		page, err := s.fetchCategory(ctx, cat)
		if err != nil {
			s.log.WithFields(map[string]any{"category_id": cat.id}).WithError(err).
				Warn("category fetch failed")
			continue
		}
		fetched++
		campaigns = append(campaigns, page...)
	}

	if fetched == 0 {
		return nil, fmt.Errorf("gangnam: all %d category pages failed", len(gangnamCategories))
	}
	return campaigns, nil
}

func (s *GangnamSource) fetchCategory(ctx context.Context, cat gangnamCategory) ([]*domain.Campaign, error) {
	body, err := s.client.get(ctx, fmt.Sprintf("%s/cp/?ca=%d", gangnamBaseURL, cat.id))
	if err != nil {
		return nil, err
	}

	doc, err := html.Parse(strings.NewReader(string(body)))
	if err != nil {
		return nil, fmt.Errorf("parse category %d: %w", cat.id, err)
	}

	var campaigns []*domain.Campaign
	for _, card := range findAllByClass(doc, "li", "list_item") {
		if c := s.parseCard(card, cat); c != nil {
			campaigns = append(campaigns, c)
		}
	}
	s.log.WithFields(map[string]any{"category_id": cat.id, "cards": len(campaigns)}).
		Debug("category parsed")
	return campaigns, nil
}

func (s *GangnamSource) parseCard(card *html.Node, cat gangnamCategory) *domain.Campaign {
	imgArea := findByClass(card, "div", "imgArea")
	if imgArea == nil {
		return nil
	}
	link := findFirst(imgArea, func(n *html.Node) bool {
		return isElement(n, "a") && attr(n, "href") != ""
	})
	if link == nil {
		return nil
	}
	url := absoluteURL(gangnamBaseURL, attr(link, "href"))

	var imageURL string
	if img := findByClass(imgArea, "img", "thumb_img"); img != nil {
		imageURL = absoluteURL(gangnamBaseURL, attr(img, "src"))
	}

	titleEl := findByClass(card, "dt", "tit")
	if titleEl == nil {
		return nil
	}
	rawTitle := textutil.Clean(text(titleEl))
	if rawTitle == "" {
		return nil
	}

	// 마감일: "6일 남음" -> "D-6"
	var deadline string
	if dday := findByClass(card, "span", "dday"); dday != nil {
		if day := findByClass(dday, "em", "day_c"); day != nil {
			deadline = textutil.Clean(text(day))
		}
	}
	if deadline != "" {
		lower := strings.ToLower(deadline)
		if strings.Contains(lower, "마감완료") || strings.Contains(lower, "종료") ||
			strings.Contains(lower, "closed") {
			return nil
		}
		if m := daysLeftPattern.FindStringSubmatch(deadline); m != nil {
			deadline = "D-" + m[1]
		}
	}

	channel, possibleLocation := parseBrackets(rawTitle, card)

	c := &domain.Campaign{
		Title:       rawTitle,
		URL:         url,
		Source:      domain.SourceGangnam,
		RawCategory: cat.rawCat,
		TypeHint:    cat.typeHint,
		ImageURL:    imageURL,
		Channel:     channel,
		Deadline:    deadline,
	}

	switch cat.typeHint {
	case domain.TypeVisit:
		c.Location = possibleLocation
		c.Title = stripBrackets(rawTitle)
	case domain.TypeDelivery:
		c.Location = "배송"
		c.Title = stripBrackets(rawTitle)
	}
	return c
}

// parseBrackets reads [채널] and [지역] markers from the title. Brackets that
// name a known channel collect into a "/" joined channel string; the first
// unrecognized bracket is assumed to be the location.
func parseBrackets(title string, card *html.Node) (channel, location string) {
	var channels []string
	for _, m := range bracketPattern.FindAllStringSubmatch(title, -1) {
		inner := m[1]
		lower := strings.ToLower(inner)
		matched := false
		for _, cw := range gangnamChannelWords {
			if strings.Contains(lower, cw.word) {
				matched = true
				if !contains(channels, cw.label) {
					channels = append(channels, cw.label)
				}
			}
		}
		if !matched && location == "" {
			location = inner
		}
	}

	if len(channels) > 0 {
		return strings.Join(channels, "/"), location
	}

	// HTML 태그 백업 확인
	if blog := findByClass(card, "em", "blog"); blog != nil {
		if strings.Contains(strings.ToLower(text(blog)), "blog") {
			return "블로그", location
		}
	}
	return "", location
}

func stripBrackets(title string) string {
	return textutil.Clean(bracketPattern.ReplaceAllString(title, ""))
}

func absoluteURL(base, ref string) string {
	switch {
	case ref == "":
		return ""
	case strings.HasPrefix(ref, "//"):
		return "https:" + ref
	case strings.HasPrefix(ref, "/"):
		return base + ref
	default:
		return ref
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
