package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"crawler_server/core/domain"
	"crawler_server/core/port/out"

	"github.com/jmoiron/sqlx"
)

// CampaignRepository implements out.CampaignRepository
type CampaignRepository struct {
	db *sqlx.DB
}

// NewCampaignRepository creates a new CampaignRepository
func NewCampaignRepository(db *sqlx.DB) out.CampaignRepository {
	return &CampaignRepository{db: db}
}

// campaignColumns is the insert column list; keep in sync with campaignRow.
const campaignColumns = `source, source_id, title, url, raw_category, location,
	image_url, channel, deadline, deadline_date, review_deadline_days,
	recruit_count, applicant_count, std_category, std_region, std_type,
	selection_rate, is_active, crawled_at`

const campaignColumnCount = 19

// =============================================================================
// Ingestion
// =============================================================================

func (r *CampaignRepository) ExistingKeys(ctx context.Context) (map[domain.Fingerprint]struct{}, error) {
	query := `SELECT source, source_id FROM campaigns`

	var rows []struct {
		Source   string `db:"source"`
		SourceID string `db:"source_id"`
	}
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("existing keys: %w", err)
	}

	keys := make(map[domain.Fingerprint]struct{}, len(rows))
	for _, row := range rows {
		keys[domain.Fingerprint{Source: domain.SourceID(row.Source), SourceID: row.SourceID}] = struct{}{}
	}
	return keys, nil
}

func (r *CampaignRepository) Upsert(ctx context.Context, campaigns []*domain.StandardizedCampaign) error {
	if len(campaigns) == 0 {
		return nil
	}

	placeholders := make([]string, 0, len(campaigns))
	args := make([]interface{}, 0, len(campaigns)*campaignColumnCount)
	for i, c := range campaigns {
		base := i * campaignColumnCount
		nums := make([]string, campaignColumnCount)
		for j := range nums {
			nums[j] = "$" + strconv.Itoa(base+j+1)
		}
		placeholders = append(placeholders, "("+strings.Join(nums, ", ")+")")
		args = append(args,
			c.Source, c.SourceLocalID, c.Title, c.URL,
			nullString(c.RawCategory), nullString(c.Location),
			nullString(c.ImageURL), nullString(c.Channel),
			nullString(c.Deadline), deadlineDate(c.Deadline, c.CrawledAt),
			c.ReviewDeadlineDays, c.RecruitCount, c.ApplicantCount,
			c.Category, c.Region, string(c.Type),
			c.SelectionRate, c.IsActive, c.CrawledAt,
		)
	}

	query := fmt.Sprintf(`
		INSERT INTO campaigns (%s)
		VALUES %s
		ON CONFLICT (source, source_id) DO UPDATE SET
			title = EXCLUDED.title,
			url = EXCLUDED.url,
			raw_category = EXCLUDED.raw_category,
			location = EXCLUDED.location,
			image_url = EXCLUDED.image_url,
			channel = EXCLUDED.channel,
			deadline = EXCLUDED.deadline,
			deadline_date = EXCLUDED.deadline_date,
			review_deadline_days = COALESCE(EXCLUDED.review_deadline_days, campaigns.review_deadline_days),
			recruit_count = EXCLUDED.recruit_count,
			applicant_count = EXCLUDED.applicant_count,
			std_category = EXCLUDED.std_category,
			std_region = EXCLUDED.std_region,
			std_type = EXCLUDED.std_type,
			selection_rate = EXCLUDED.selection_rate,
			is_active = EXCLUDED.is_active,
			crawled_at = EXCLUDED.crawled_at,
			updated_at = NOW()`,
		campaignColumns, strings.Join(placeholders, ", "))

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert campaigns: %w", err)
	}
	return nil
}

func (r *CampaignRepository) MarkExpired(ctx context.Context, today time.Time) (int, error) {
	query := `
		UPDATE campaigns
		SET is_active = false, updated_at = NOW()
		WHERE is_active = true
		  AND deadline_date IS NOT NULL
		  AND deadline_date < $1`

	res, err := r.db.ExecContext(ctx, query, today.Format("2006-01-02"))
	if err != nil {
		return 0, fmt.Errorf("mark expired: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("mark expired rows: %w", err)
	}
	return int(n), nil
}

// =============================================================================
// Read Side
// =============================================================================

func (r *CampaignRepository) List(ctx context.Context, filter *domain.CampaignFilter) ([]*domain.StandardizedCampaign, int, error) {
	conditions := []string{"TRUE"}
	var args []interface{}
	argIdx := 1

	if filter.Source != "" {
		conditions = append(conditions, fmt.Sprintf("source = $%d", argIdx))
		args = append(args, filter.Source)
		argIdx++
	}
	if filter.Category != "" {
		conditions = append(conditions, fmt.Sprintf("std_category = $%d", argIdx))
		args = append(args, filter.Category)
		argIdx++
	}
	if filter.Region != "" {
		conditions = append(conditions, fmt.Sprintf("std_region = $%d", argIdx))
		args = append(args, filter.Region)
		argIdx++
	}
	if filter.Type != "" {
		conditions = append(conditions, fmt.Sprintf("std_type = $%d", argIdx))
		args = append(args, string(filter.Type))
		argIdx++
	}
	if filter.ActiveOnly {
		conditions = append(conditions, "is_active = true")
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM campaigns WHERE %s", whereClause)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count campaigns: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s, created_at, updated_at
		FROM campaigns
		WHERE %s
		ORDER BY crawled_at DESC, source, source_id
		LIMIT $%d OFFSET $%d`,
		campaignColumns, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Page.Limit(), filter.Page.Offset())

	var rows []campaignRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list campaigns: %w", err)
	}

	campaigns := make([]*domain.StandardizedCampaign, len(rows))
	for i, row := range rows {
		campaigns[i] = row.toDomain()
	}
	return campaigns, total, nil
}

func (r *CampaignRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM campaigns"); err != nil {
		return 0, fmt.Errorf("count campaigns: %w", err)
	}
	return total, nil
}

func (r *CampaignRepository) CountBySource(ctx context.Context) (map[domain.SourceID]int, error) {
	var rows []struct {
		Source string `db:"source"`
		Count  int    `db:"count"`
	}
	query := `SELECT source, COUNT(*) AS count FROM campaigns GROUP BY source`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("count by source: %w", err)
	}

	counts := make(map[domain.SourceID]int, len(rows))
	for _, row := range rows {
		counts[domain.SourceID(row.Source)] = row.Count
	}
	return counts, nil
}

func (r *CampaignRepository) CountByCategory(ctx context.Context) (map[domain.Category]int, error) {
	var rows []struct {
		Category string `db:"std_category"`
		Count    int    `db:"count"`
	}
	query := `SELECT std_category, COUNT(*) AS count FROM campaigns GROUP BY std_category`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("count by category: %w", err)
	}

	counts := make(map[domain.Category]int, len(rows))
	for _, row := range rows {
		counts[domain.Category(row.Category)] = row.Count
	}
	return counts, nil
}

// =============================================================================
// Row Mapping
// =============================================================================

type campaignRow struct {
	Source             string          `db:"source"`
	SourceID           string          `db:"source_id"`
	Title              string          `db:"title"`
	URL                string          `db:"url"`
	RawCategory        sql.NullString  `db:"raw_category"`
	Location           sql.NullString  `db:"location"`
	ImageURL           sql.NullString  `db:"image_url"`
	Channel            sql.NullString  `db:"channel"`
	Deadline           sql.NullString  `db:"deadline"`
	DeadlineDate       sql.NullTime    `db:"deadline_date"`
	ReviewDeadlineDays sql.NullInt64   `db:"review_deadline_days"`
	RecruitCount       sql.NullInt64   `db:"recruit_count"`
	ApplicantCount     sql.NullInt64   `db:"applicant_count"`
	StdCategory        string          `db:"std_category"`
	StdRegion          string          `db:"std_region"`
	StdType            string          `db:"std_type"`
	SelectionRate      sql.NullFloat64 `db:"selection_rate"`
	IsActive           bool            `db:"is_active"`
	CrawledAt          time.Time       `db:"crawled_at"`
	CreatedAt          time.Time       `db:"created_at"`
	UpdatedAt          time.Time       `db:"updated_at"`
}

func (r *campaignRow) toDomain() *domain.StandardizedCampaign {
	std := &domain.StandardizedCampaign{
		Campaign: domain.Campaign{
			Title:       r.Title,
			URL:         r.URL,
			Source:      domain.SourceID(r.Source),
			RawCategory: r.RawCategory.String,
			Location:    r.Location.String,
			ImageURL:    r.ImageURL.String,
			Channel:     r.Channel.String,
			Deadline:    r.Deadline.String,
		},
		SourceLocalID: r.SourceID,
		Category:      domain.Category(r.StdCategory),
		Region:        domain.Region(r.StdRegion),
		Type:          domain.CampaignType(r.StdType),
		IsActive:      r.IsActive,
		CrawledAt:     r.CrawledAt,
	}
	if r.ReviewDeadlineDays.Valid {
		v := int(r.ReviewDeadlineDays.Int64)
		std.ReviewDeadlineDays = &v
	}
	if r.RecruitCount.Valid {
		v := int(r.RecruitCount.Int64)
		std.RecruitCount = &v
	}
	if r.ApplicantCount.Valid {
		v := int(r.ApplicantCount.Int64)
		std.ApplicantCount = &v
	}
	if r.SelectionRate.Valid {
		v := r.SelectionRate.Float64
		std.SelectionRate = &v
	}
	return std
}

// =============================================================================
// Helpers
// =============================================================================

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

var ddayPattern = regexp.MustCompile(`D-(\d+)`)

// deadlineDate resolves a display deadline ("D-5", "오늘마감") against the
// crawl time so expiry can be a plain date comparison. Unparseable deadlines
// stay NULL and are never auto-expired.
func deadlineDate(display string, crawledAt time.Time) sql.NullTime {
	display = strings.TrimSpace(display)
	if display == "" {
		return sql.NullTime{}
	}
	if strings.Contains(display, "오늘") {
		return sql.NullTime{Time: crawledAt.Truncate(24 * time.Hour), Valid: true}
	}
	m := ddayPattern.FindStringSubmatch(display)
	if m == nil {
		return sql.NullTime{}
	}
	days, err := strconv.Atoi(m[1])
	if err != nil {
		return sql.NullTime{}
	}
	day := crawledAt.Truncate(24*time.Hour).AddDate(0, 0, days)
	return sql.NullTime{Time: day, Valid: true}
}
