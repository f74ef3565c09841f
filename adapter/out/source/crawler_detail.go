package source

import (
	"context"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"crawler_server/core/domain"
	"crawler_server/core/port/out"
	"crawler_server/pkg/httputil"
	"crawler_server/pkg/logger"
	"crawler_server/pkg/textutil"

	"github.com/goccy/go-json"
	"golang.org/x/net/html"
)

// reviewPeriodPatterns match free-text review windows like "리뷰 기간: 7일".
var reviewPeriodPatterns = []*regexp.Regexp{
	regexp.MustCompile(`리뷰\s*기간[:\s]*(\d+)\s*일`),
	regexp.MustCompile(`리뷰\s*작성\s*기간[:\s]*(\d+)\s*일`),
	regexp.MustCompile(`리뷰\s*마감[:\s]*(\d+)\s*일`),
	regexp.MustCompile(`(\d+)\s*일\s*이내\s*리뷰`),
}

// "12.13 ~ 01.02" 형식 (gangnam, reviewplace)
var monthDayRangePattern = regexp.MustCompile(`(\d{2})\.(\d{2})\s*~\s*(\d{2})\.(\d{2})`)

// PageEnricher implements out.DetailEnricher by scraping each source's
// campaign detail page for the review-submission window.
type PageEnricher struct {
	client *siteClient
	log    *logger.Logger
	now    func() time.Time
}

// NewPageEnricher creates the detail-page enricher.
func NewPageEnricher(client *http.Client) out.DetailEnricher {
	if client == nil {
		client = httputil.DetailClient()
	}
	return &PageEnricher{
		client: newSiteClient("detail", client),
		log:    logger.WithField("component", "detail_enricher"),
		now:    time.Now,
	}
}

// Supports lists the page layouts the enricher can read.
func (e *PageEnricher) Supports(source domain.SourceID) bool {
	switch source {
	case domain.SourceReviewNote, domain.SourceGangnam, domain.SourceReviewPlace:
		return true
	}
	return false
}

func (e *PageEnricher) ReviewPeriod(ctx context.Context, url string, source domain.SourceID) (*int, error) {
	body, err := e.client.get(ctx, url)
	if err != nil {
		return nil, err
	}

	doc, err := html.Parse(strings.NewReader(string(body)))
	if err != nil {
		return nil, err
	}

	switch source {
	case domain.SourceReviewNote:
		return e.reviewNoteDays(body, doc), nil
	case domain.SourceGangnam:
		return e.labeledRangeDays(doc, "dt", "", "dd", ""), nil
	case domain.SourceReviewPlace:
		return e.labeledRangeDays(doc, "span", "tlabel", "span", "fm_num"), nil
	}
	return nil, nil
}

// reviewNoteDays reads the embedded page JSON first and falls back to
// pattern-matching the visible text.
func (e *PageEnricher) reviewNoteDays(body []byte, doc *html.Node) *int {
	if raw, err := extractNextData(body); err == nil {
		var payload struct {
			Props struct {
				PageProps struct {
					Campaign struct {
						ReviewDays         json.Number `json:"reviewDays"`
						ReviewDeadlineDays json.Number `json:"reviewDeadlineDays"`
					} `json:"campaign"`
				} `json:"pageProps"`
			} `json:"props"`
		}
		if err := json.Unmarshal(raw, &payload); err == nil {
			c := payload.Props.PageProps.Campaign
			for _, num := range []json.Number{c.ReviewDays, c.ReviewDeadlineDays} {
				if v, err := num.Int64(); err == nil && v > 0 {
					days := int(v)
					return &days
				}
			}
		}
	}

	pageText := text(doc)
	for _, pattern := range reviewPeriodPatterns {
		if m := pattern.FindStringSubmatch(pageText); m != nil {
			if days, err := strconv.Atoi(m[1]); err == nil && days > 0 {
				return &days
			}
		}
	}
	return nil
}

// labeledRangeDays finds a "리뷰 ... 기간" label element and parses the date
// range in its value sibling, e.g. <dt>리뷰 등록기간</dt><dd>12.13 ~ 01.02</dd>.
func (e *PageEnricher) labeledRangeDays(doc *html.Node, labelTag, labelClass, valueTag, valueClass string) *int {
	labels := findAll(doc, func(n *html.Node) bool {
		if !isElement(n, labelTag) {
			return false
		}
		if labelClass != "" && !hasClass(n, labelClass) {
			return false
		}
		t := text(n)
		return strings.Contains(t, "리뷰") && strings.Contains(t, "기간")
	})

	for _, label := range labels {
		value := nextSiblingElement(label)
		for value != nil && (!isElement(value, valueTag) ||
			(valueClass != "" && !hasClass(value, valueClass))) {
			value = nextSiblingElement(value)
		}
		if value == nil {
			continue
		}
		if days := e.rangeDays(textutil.Clean(text(value))); days != nil {
			return days
		}
	}
	return nil
}

// rangeDays turns "12.13 ~ 01.02" into a day count, assuming the range wraps
// the year when the end month precedes the start month.
func (e *PageEnricher) rangeDays(period string) *int {
	m := monthDayRangePattern.FindStringSubmatch(period)
	if m == nil {
		return nil
	}
	m1, _ := strconv.Atoi(m[1])
	d1, _ := strconv.Atoi(m[2])
	m2, _ := strconv.Atoi(m[3])
	d2, _ := strconv.Atoi(m[4])

	year := e.now().Year()
	start := time.Date(year, time.Month(m1), d1, 0, 0, 0, 0, time.UTC)
	endYear := year
	if m2 < m1 {
		endYear++
	}
	end := time.Date(endYear, time.Month(m2), d2, 0, 0, 0, 0, time.UTC)

	days := int(end.Sub(start).Hours() / 24)
	if days <= 0 {
		return nil
	}
	return &days
}
