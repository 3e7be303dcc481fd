package analysis

import (
	"encoding/json"
	"time"

	"github.com/Weboses/analyse.arsenio/internal/report"
)

// Analysis represents one website analysis job. The raw payloads are kept
// out of API responses; they exist for later re-rendering and debugging.
type Analysis struct {
	ID            string          `json:"id"`
	LeadID        string          `json:"leadId"`
	WebsiteURL    string          `json:"websiteUrl"`
	Status        string          `json:"status"`
	Summary       *report.Summary `json:"summary,omitempty"`
	ReportHTML    string          `json:"-"`
	Technologies  []string        `json:"technologies,omitempty"`
	ScreenshotURL string          `json:"screenshotUrl,omitempty"`
	RawMobile     json.RawMessage `json:"-"`
	RawDesktop    json.RawMessage `json:"-"`
	RawSEO        json.RawMessage `json:"-"`
	ErrorCode     string          `json:"errorCode,omitempty"`
	ErrorMessage  string          `json:"errorMessage,omitempty"`
	EmailSent     bool            `json:"emailSent"`
	EmailSentAt   *time.Time      `json:"emailSentAt,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
	CompletedAt   *time.Time      `json:"completedAt,omitempty"`
}
