package analysis

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Weboses/analyse.arsenio/internal/report"
)

type PGRepo struct {
	DB *sql.DB
}

const analysisColumns = `id, lead_id, website_url, status, summary, report_html, detected_technologies, screenshot_url, raw_mobile, raw_desktop, raw_seo, error_code, error_message, email_sent, email_sent_at, created_at, updated_at, completed_at`

func (r *PGRepo) Create(ctx context.Context, analysis Analysis) error {
	const query = `
INSERT INTO analysis_results (id, lead_id, website_url, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, now(), now())`
	_, err := r.DB.ExecContext(ctx, query,
		analysis.ID,
		analysis.LeadID,
		analysis.WebsiteURL,
		analysis.Status,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, analysisID string) (Analysis, error) {
	query := `
SELECT ` + analysisColumns + `
FROM analysis_results
WHERE id = $1
LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, analysisID))
}

func (r *PGRepo) GetLatestByLead(ctx context.Context, leadID string) (Analysis, error) {
	query := `
SELECT ` + analysisColumns + `
FROM analysis_results
WHERE lead_id = $1
ORDER BY created_at DESC
LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, leadID))
}

func (r *PGRepo) UpdateStatus(ctx context.Context, analysisID, status string) error {
	const query = `
UPDATE analysis_results
SET status = $2, updated_at = now()
WHERE id = $1`
	return r.execOne(ctx, query, analysisID, status)
}

func (r *PGRepo) UpdateResult(ctx context.Context, analysisID string, result ResultUpdate) error {
	summaryPayload, err := json.Marshal(result.Summary)
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}
	techPayload, err := json.Marshal(result.Technologies)
	if err != nil {
		return fmt.Errorf("marshal technologies: %w", err)
	}
	const query = `
UPDATE analysis_results
SET summary = $2, report_html = $3, detected_technologies = $4, screenshot_url = $5,
    raw_mobile = $6, raw_desktop = $7, raw_seo = $8, completed_at = $9, updated_at = now()
WHERE id = $1`
	return r.execOne(ctx, query, analysisID,
		summaryPayload,
		result.ReportHTML,
		techPayload,
		result.ScreenshotURL,
		nullableJSON(result.RawMobile),
		nullableJSON(result.RawDesktop),
		nullableJSON(result.RawSEO),
		result.CompletedAt,
	)
}

func (r *PGRepo) MarkEmailSent(ctx context.Context, analysisID string, sentAt time.Time) error {
	const query = `
UPDATE analysis_results
SET email_sent = TRUE, email_sent_at = $2, updated_at = now()
WHERE id = $1`
	return r.execOne(ctx, query, analysisID, sentAt)
}

func (r *PGRepo) MarkFailed(ctx context.Context, analysisID, code, message string, completedAt time.Time) error {
	const query = `
UPDATE analysis_results
SET status = $2, error_code = $3, error_message = $4, completed_at = $5, updated_at = now()
WHERE id = $1`
	return r.execOne(ctx, query, analysisID, StatusFailed, code, message, completedAt)
}

func (r *PGRepo) execOne(ctx context.Context, query string, args ...any) error {
	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// nullableJSON maps an absent payload to NULL instead of the invalid empty
// JSONB value.
func nullableJSON(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	return []byte(raw)
}

func (r *PGRepo) scanOne(row *sql.Row) (Analysis, error) {
	var analysis Analysis
	var summaryRaw, techRaw []byte
	var reportHTML, screenshotURL sql.NullString
	var rawMobile, rawDesktop, rawSEO []byte
	var emailSentAt, completedAt sql.NullTime
	err := row.Scan(
		&analysis.ID,
		&analysis.LeadID,
		&analysis.WebsiteURL,
		&analysis.Status,
		&summaryRaw,
		&reportHTML,
		&techRaw,
		&screenshotURL,
		&rawMobile,
		&rawDesktop,
		&rawSEO,
		&analysis.ErrorCode,
		&analysis.ErrorMessage,
		&analysis.EmailSent,
		&emailSentAt,
		&analysis.CreatedAt,
		&analysis.UpdatedAt,
		&completedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Analysis{}, ErrNotFound
		}
		return Analysis{}, err
	}
	if len(summaryRaw) > 0 {
		var summary report.Summary
		if err := json.Unmarshal(summaryRaw, &summary); err == nil {
			analysis.Summary = &summary
		}
	}
	if len(techRaw) > 0 {
		_ = json.Unmarshal(techRaw, &analysis.Technologies)
	}
	if reportHTML.Valid {
		analysis.ReportHTML = reportHTML.String
	}
	if screenshotURL.Valid {
		analysis.ScreenshotURL = screenshotURL.String
	}
	analysis.RawMobile = json.RawMessage(rawMobile)
	analysis.RawDesktop = json.RawMessage(rawDesktop)
	analysis.RawSEO = json.RawMessage(rawSEO)
	if emailSentAt.Valid {
		t := emailSentAt.Time
		analysis.EmailSentAt = &t
	}
	if completedAt.Valid {
		t := completedAt.Time
		analysis.CompletedAt = &t
	}
	return analysis, nil
}
