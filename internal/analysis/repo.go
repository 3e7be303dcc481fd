package analysis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Weboses/analyse.arsenio/internal/report"
)

// ResultUpdate is the full projection written when a pipeline run finishes:
// the condensed summary and report next to the raw measurement payloads.
type ResultUpdate struct {
	Summary       report.Summary
	ReportHTML    string
	Technologies  []string
	ScreenshotURL string
	RawMobile     json.RawMessage
	RawDesktop    json.RawMessage
	RawSEO        json.RawMessage
	CompletedAt   time.Time
}

// Repo persists analyses.
type Repo interface {
	Create(ctx context.Context, analysis Analysis) error
	GetByID(ctx context.Context, analysisID string) (Analysis, error)
	GetLatestByLead(ctx context.Context, leadID string) (Analysis, error)
	UpdateStatus(ctx context.Context, analysisID, status string) error
	UpdateResult(ctx context.Context, analysisID string, result ResultUpdate) error
	MarkEmailSent(ctx context.Context, analysisID string, sentAt time.Time) error
	MarkFailed(ctx context.Context, analysisID, code, message string, completedAt time.Time) error
}
