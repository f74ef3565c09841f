package source

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"crawler_server/core/domain"
	"crawler_server/core/port/out"
	"crawler_server/pkg/logger"
	"crawler_server/pkg/textutil"

	"github.com/goccy/go-json"
	"golang.org/x/net/html"
)

const (
	reviewNoteBaseURL  = "https://www.reviewnote.co.kr"
	reviewNoteFirebase = "https://firebasestorage.googleapis.com/v0/b/reviewnote-e92d9.appspot.com/o/"
	nextDataScriptID   = "__NEXT_DATA__"
)

// reviewNoteChannels maps the site's channel codes to display labels.
var reviewNoteChannels = map[string]string{
	"BLOG":      "블로그",
	"INSTAGRAM": "인스타",
	"REELS":     "릴스",
	"YOUTUBE":   "유튜브",
	"SHORTS":    "쇼츠",
	"TIKTOK":    "틱톡",
	"CLIP":      "클립",
}

// reviewNoteLists are the homepage campaign lists, in presentation order.
// The same campaign can appear in several; first occurrence wins here and
// the merge engine handles cross-source duplicates.
var reviewNoteLists = []string{"premiums", "populars", "nearEnds", "recents"}

// ReviewNoteSource crawls reviewnote's server-rendered homepage. The page
// embeds all campaign data as JSON in a __NEXT_DATA__ script tag, so there is
// no card scraping involved.
type ReviewNoteSource struct {
	client *siteClient
	log    *logger.Logger
	now    func() time.Time
}

// NewReviewNoteSource creates the reviewnote adapter.
func NewReviewNoteSource(client *http.Client) out.Source {
	return &ReviewNoteSource{
		client: newSiteClient(string(domain.SourceReviewNote), client),
		log:    logger.WithField("source", string(domain.SourceReviewNote)),
		now:    time.Now,
	}
}

func (s *ReviewNoteSource) ID() domain.SourceID { return domain.SourceReviewNote }

func (s *ReviewNoteSource) Fetch(ctx context.Context) ([]*domain.Campaign, error) {
	body, err := s.client.get(ctx, reviewNoteBaseURL+"/")
	if err != nil {
		return nil, fmt.Errorf("fetch reviewnote: %w", err)
	}

	raw, err := extractNextData(body)
	if err != nil {
		return nil, fmt.Errorf("reviewnote page data: %w", err)
	}

	var payload struct {
		Props struct {
			PageProps map[string]json.RawMessage `json:"pageProps"`
		} `json:"props"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("decode reviewnote page data: %w", err)
	}

	return s.parseLists(payload.Props.PageProps), nil
}

type reviewNoteItem struct {
	ID       json.Number `json:"id"`
	Title    string      `json:"title"`
	Category struct {
		Title string `json:"title"`
	} `json:"category"`
	City string `json:"city"`
	Sido struct {
		Name string `json:"name"`
	} `json:"sido"`
	ApplyEndAt     string      `json:"applyEndAt"`
	ReviewEndAt    string      `json:"reviewEndAt"`
	ImageKey       string      `json:"imageKey"`
	Channel        string      `json:"channel"`
	InfNum         json.Number `json:"infNum"`
	ApplicantCount json.Number `json:"applicantCount"`
}

func (s *ReviewNoteSource) parseLists(pageProps map[string]json.RawMessage) []*domain.Campaign {
	now := s.now().UTC()
	seen := make(map[string]bool)
	var campaigns []*domain.Campaign

	for _, listName := range reviewNoteLists {
		raw, ok := pageProps[listName]
		if !ok {
			continue
		}
		var items []reviewNoteItem
		if err := json.Unmarshal(raw, &items); err != nil {
			s.log.WithField("list", listName).WithError(err).Warn("list decode failed")
			continue
		}
		s.log.WithFields(map[string]any{"list": listName, "items": len(items)}).Debug("list parsed")

		for i := range items {
			item := &items[i]
			id := item.ID.String()
			if id == "" || seen[id] {
				continue
			}
			seen[id] = true

			c := s.parseItem(item, id, now)
			if c != nil {
				campaigns = append(campaigns, c)
			}
		}
	}
	return campaigns
}

func (s *ReviewNoteSource) parseItem(item *reviewNoteItem, id string, now time.Time) *domain.Campaign {
	applyEnd, hasApplyEnd := parseISODate(item.ApplyEndAt)
	if hasApplyEnd && applyEnd.Before(dateOnly(now)) {
		// 신청 마감됨 - 스킵
		return nil
	}

	c := &domain.Campaign{
		Title:    textutil.Clean(item.Title),
		URL:      reviewNoteBaseURL + "/campaigns/" + id,
		Source:   domain.SourceReviewNote,
		Location: strings.TrimSpace(item.City + " " + item.Sido.Name),
	}
	c.RawCategory = item.Category.Title

	// 제품 카테고리거나 지역에 배송이 포함되면 배송으로 통일
	if c.RawCategory == "제품" || strings.Contains(c.Location, "배송") {
		c.Location = "배송"
	}

	if hasApplyEnd {
		c.Deadline = formatDDay(applyEnd, now)
	}

	if item.ImageKey != "" {
		c.ImageURL = reviewNoteFirebase + strings.ReplaceAll(item.ImageKey, "/", "%2F") + "?alt=media"
	}

	c.Channel = reviewNoteChannels[strings.ToUpper(item.Channel)]
	if c.Channel == "" {
		if item.Channel != "" {
			c.Channel = item.Channel
		} else {
			c.Channel = "블로그"
		}
	}

	// 리뷰 종료일 - 신청 마감일 = 대략적인 리뷰 기간
	if reviewEnd, ok := parseISODate(item.ReviewEndAt); ok && hasApplyEnd {
		if diff := int(reviewEnd.Sub(applyEnd).Hours() / 24); diff > 0 {
			c.ReviewDeadlineDays = &diff
		}
	}

	c.TypeHint = reviewNoteTypeHint(c.RawCategory, c.Title, c.Location)

	if n, err := item.InfNum.Int64(); err == nil {
		v := int(n)
		c.RecruitCount = &v
	}
	if n, err := item.ApplicantCount.Int64(); err == nil {
		v := int(n)
		c.ApplicantCount = &v
	}

	return c
}

// reviewNoteTypeHint mirrors the site's own taxonomy split between visited
// and shipped campaigns. It is a hint only; classification may override it.
func reviewNoteTypeHint(category, title, location string) domain.CampaignType {
	var hint domain.CampaignType
	switch {
	case strings.Contains(category, "기자단") || strings.Contains(title, "기자단"):
		hint = domain.TypeReporter
	case category == "맛집" || category == "뷰티" || category == "여행" ||
		category == "숙박" || category == "문화":
		hint = domain.TypeVisit
	case category == "제품" || category == "디지털" || category == "생활" ||
		category == "식품" || category == "도서" || category == "유아동" ||
		category == "패션" || category == "반려동물" || category == "재택":
		hint = domain.TypeDelivery
	}
	if location == "배송" && hint != domain.TypeReporter {
		hint = domain.TypeDelivery
	}
	return hint
}

// =============================================================================
// Shared Parsing Helpers
// =============================================================================

// extractNextData pulls the raw JSON out of the page's __NEXT_DATA__ script.
func extractNextData(page []byte) ([]byte, error) {
	doc, err := html.Parse(strings.NewReader(string(page)))
	if err != nil {
		return nil, err
	}
	script := findFirst(doc, func(n *html.Node) bool {
		return isElement(n, "script") && attr(n, "id") == nextDataScriptID
	})
	if script == nil || script.FirstChild == nil {
		return nil, fmt.Errorf("script %s not found", nextDataScriptID)
	}
	return []byte(script.FirstChild.Data), nil
}

func parseISODate(iso string) (time.Time, bool) {
	if iso == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return time.Time{}, false
	}
	return dateOnly(t.UTC()), true
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// formatDDay renders a deadline relative to now: "D-5", "D-0" on the day,
// "D+2" once passed.
func formatDDay(deadline, now time.Time) string {
	days := int(deadline.Sub(dateOnly(now)).Hours() / 24)
	if days < 0 {
		return "D+" + strconv.Itoa(-days)
	}
	return "D-" + strconv.Itoa(days)
}
