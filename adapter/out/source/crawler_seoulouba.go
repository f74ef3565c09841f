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

const (
	seoulOubaBaseURL  = "https://www.seoulouba.co.kr"
	seoulOubaListPath = "/campaign/?qq=popular"
)

// 마감 지남: "D+3" 등
var expiredDDayPattern = regexp.MustCompile(`(?i)D\s*\+\s*\d+`)

// SeoulOubaSource crawls the 서울오빠 popular-campaigns listing.
type SeoulOubaSource struct {
	client *siteClient
	log    *logger.Logger
}

// NewSeoulOubaSource creates the seoulouba adapter.
func NewSeoulOubaSource(client *http.Client) out.Source {
	return &SeoulOubaSource{
		client: newSiteClient(string(domain.SourceSeoulOuba), client),
		log:    logger.WithField("source", string(domain.SourceSeoulOuba)),
	}
}

func (s *SeoulOubaSource) ID() domain.SourceID { return domain.SourceSeoulOuba }

func (s *SeoulOubaSource) Fetch(ctx context.Context) ([]*domain.Campaign, error) {
	body, err := s.client.get(ctx, seoulOubaBaseURL+seoulOubaListPath)
	if err != nil {
		return nil, fmt.Errorf("fetch seoulouba: %w", err)
	}

	doc, err := html.Parse(strings.NewReader(string(body)))
	if err != nil {
		return nil, fmt.Errorf("parse seoulouba: %w", err)
	}

	cards := findAllByClass(doc, "", "campaign_content")
	var campaigns []*domain.Campaign
	for _, card := range cards {
		if c := s.parseCard(card); c != nil {
			campaigns = append(campaigns, c)
		}
	}
	s.log.WithFields(map[string]any{"cards": len(cards), "kept": len(campaigns)}).
		Debug("listing parsed")
	return campaigns, nil
}

func (s *SeoulOubaSource) parseCard(card *html.Node) *domain.Campaign {
	link := findFirst(card, func(n *html.Node) bool { return isElement(n, "a") })
	if link == nil {
		return nil
	}
	url := attr(link, "href")
	if !strings.HasPrefix(url, "http") {
		url = seoulOubaBaseURL + url
	}

	titleEl := findByClass(card, "", "s_campaign_title")
	if titleEl == nil {
		return nil
	}
	title := textutil.Clean(text(titleEl))

	var imageURL string
	if tum := findByClass(card, "", "tum_img"); tum != nil {
		if img := findFirst(tum, func(n *html.Node) bool { return isElement(n, "img") }); img != nil {
			imageURL = absoluteURL(seoulOubaBaseURL, attr(img, "src"))
		}
	}

	var deadline string
	if dday := findByClass(card, "", "d_day"); dday != nil {
		deadline = textutil.Clean(text(dday))
	}
	if deadline != "" {
		lower := strings.ToLower(deadline)
		if strings.Contains(lower, "마감") || strings.Contains(lower, "종료") ||
			strings.Contains(lower, "closed") || expiredDDayPattern.MatchString(deadline) {
			return nil
		}
	}

	// 타입/카테고리 태그
	var rawCategory string
	if tag := findByClass(card, "", "icon_tag"); tag != nil {
		if span := findFirst(tag, func(n *html.Node) bool { return isElement(n, "span") }); span != nil {
			rawCategory = textutil.Clean(text(span))
		}
	}

	// 지역: [가평], [서울 강남] 같은 제목 패턴
	var location string
	if m := bracketPattern.FindStringSubmatch(title); m != nil {
		location = m[1]
		title = stripBrackets(title)
	}

	var channel string
	if iconBox := findByClass(card, "", "ltop_icon"); iconBox != nil {
		if img := findFirst(iconBox, func(n *html.Node) bool { return isElement(n, "img") }); img != nil {
			alt := attr(img, "alt")
			switch {
			case strings.Contains(alt, "블로그"):
				channel = "블로그"
			case strings.Contains(alt, "인스타"):
				channel = "인스타"
			case strings.Contains(alt, "유튜브"):
				channel = "유튜브"
			default:
				channel = alt
			}
		}
	}

	if title == "" {
		return nil
	}
	return &domain.Campaign{
		Title:       title,
		URL:         url,
		Source:      domain.SourceSeoulOuba,
		RawCategory: rawCategory,
		Location:    location,
		ImageURL:    imageURL,
		Channel:     channel,
		Deadline:    deadline,
	}
}
