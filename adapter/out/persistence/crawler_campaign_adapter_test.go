package persistence

import (
	"testing"
	"time"

	"crawler_server/core/domain"
)

func TestDeadlineDate(t *testing.T) {
	crawled := time.Date(2025, 11, 3, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		display string
		want    time.Time
		wantNil bool
	}{
		{name: "empty stays null", display: "", wantNil: true},
		{name: "d-day offset", display: "D-5", want: time.Date(2025, 11, 8, 0, 0, 0, 0, time.UTC)},
		{name: "zero offset", display: "D-0", want: time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC)},
		{name: "closing today", display: "오늘마감", want: time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC)},
		{name: "free text stays null", display: "상시모집", wantNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := deadlineDate(tt.display, crawled)
			if tt.wantNil {
				if got.Valid {
					t.Errorf("deadlineDate(%q) = %v, want NULL", tt.display, got.Time)
				}
				return
			}
			if !got.Valid {
				t.Fatalf("deadlineDate(%q) = NULL, want %v", tt.display, tt.want)
			}
			if !got.Time.Equal(tt.want) {
				t.Errorf("deadlineDate(%q) = %v, want %v", tt.display, got.Time, tt.want)
			}
		})
	}
}

func TestCampaignRowToDomain(t *testing.T) {
	crawled := time.Date(2025, 11, 3, 4, 0, 0, 0, time.UTC)
	row := &campaignRow{
		Source:      "seoulouba",
		SourceID:    "55102",
		Title:       "강남 삼겹살 맛집",
		URL:         "https://www.seoulouba.co.kr/campaign/?number=55102",
		StdCategory: "맛집",
		StdRegion:   "서울",
		StdType:     "visit",
		IsActive:    true,
		CrawledAt:   crawled,
	}
	row.RawCategory.String, row.RawCategory.Valid = "맛집", true
	row.RecruitCount.Int64, row.RecruitCount.Valid = 3, true
	row.SelectionRate.Float64, row.SelectionRate.Valid = 12.5, true

	std := row.toDomain()

	if std.Key() != (domain.Fingerprint{Source: domain.SourceSeoulOuba, SourceID: "55102"}) {
		t.Errorf("Key() = %v", std.Key())
	}
	if std.Category != domain.CategoryFood || std.Region != "서울" || std.Type != domain.TypeVisit {
		t.Errorf("classified fields = %q/%q/%q", std.Category, std.Region, std.Type)
	}
	if std.RecruitCount == nil || *std.RecruitCount != 3 {
		t.Errorf("RecruitCount = %v, want 3", std.RecruitCount)
	}
	if std.ApplicantCount != nil {
		t.Errorf("ApplicantCount = %v, want nil", std.ApplicantCount)
	}
	if std.SelectionRate == nil || *std.SelectionRate != 12.5 {
		t.Errorf("SelectionRate = %v, want 12.5", std.SelectionRate)
	}
}
