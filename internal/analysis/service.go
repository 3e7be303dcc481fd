package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Weboses/analyse.arsenio/internal/leads"
	"github.com/Weboses/analyse.arsenio/internal/llm"
	"github.com/Weboses/analyse.arsenio/internal/mail"
	"github.com/Weboses/analyse.arsenio/internal/pagespeed"
	"github.com/Weboses/analyse.arsenio/internal/report"
	"github.com/Weboses/analyse.arsenio/internal/scrape"
	"github.com/Weboses/analyse.arsenio/internal/seo"
	"github.com/Weboses/analyse.arsenio/internal/shared/metrics"
	"github.com/Weboses/analyse.arsenio/internal/shared/telemetry"
	"github.com/Weboses/analyse.arsenio/internal/shared/util"
	"github.com/Weboses/analyse.arsenio/internal/tasks"
)

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Service contains business logic for website analyses.
type Service struct {
	Repo      Repo
	Leads     leads.Repo
	PageSpeed *pagespeed.Client
	Scraper   *scrape.Scraper
	Links     *scrape.LinkChecker
	SEO       *seo.DataForSEO
	LLM       llm.Client
	Mailer    mail.Mailer
	Runner    tasks.Runner
	Metrics   *metrics.Metrics

	// AutoProcess starts the pipeline right after Start instead of waiting
	// for the process call.
	AutoProcess bool

	// Sleep is swappable for tests; nil means real backoff delays.
	Sleep func(time.Duration)
}

// StartInput is the lead-capture form payload.
type StartInput struct {
	Email      string `json:"email"`
	Name       string `json:"name"`
	WebsiteURL string `json:"websiteUrl"`
}

// Start validates the form, upserts the lead and creates a queued analysis.
// Resubmitting with a known email reuses the lead.
func (s *Service) Start(ctx context.Context, input StartInput) (Analysis, leads.Lead, error) {
	if strings.TrimSpace(input.Email) == "" || strings.TrimSpace(input.WebsiteURL) == "" {
		return Analysis{}, leads.Lead{}, &ValidationError{Message: MsgMissingFields}
	}
	email := strings.TrimSpace(strings.ToLower(input.Email))
	if !emailRe.MatchString(email) {
		return Analysis{}, leads.Lead{}, &ValidationError{Message: MsgInvalidEmail}
	}
	siteURL, err := util.NormalizeURL(input.WebsiteURL)
	if err != nil {
		return Analysis{}, leads.Lead{}, &ValidationError{Message: MsgInvalidURL}
	}

	lead, err := s.Leads.Upsert(ctx, leads.Lead{
		ID:         uuid.NewString(),
		Email:      email,
		Name:       strings.TrimSpace(input.Name),
		WebsiteURL: siteURL,
	})
	if err != nil {
		return Analysis{}, leads.Lead{}, fmt.Errorf("upsert lead: %w", err)
	}

	analysis := Analysis{
		ID:         uuid.NewString(),
		LeadID:     lead.ID,
		WebsiteURL: siteURL,
		Status:     StatusQueued,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, analysis); err != nil {
		return Analysis{}, leads.Lead{}, fmt.Errorf("create analysis: %w", err)
	}

	if s.AutoProcess {
		if _, err := s.submit(ctx, analysis.ID); err != nil {
			return Analysis{}, leads.Lead{}, err
		}
	}
	return analysis, lead, nil
}

// Process drives the pipeline for a queued (or failed, for a re-run)
// analysis and waits for it to finish. A completed analysis is returned
// as-is; calling while a run is under way returns ErrInFlight so the
// pipeline never runs twice for the same analysis.
func (s *Service) Process(ctx context.Context, analysisID string) (Analysis, error) {
	if analysisID == "" {
		return Analysis{}, &ValidationError{Message: MsgMissingFields}
	}
	analysis, err := s.Repo.GetByID(ctx, analysisID)
	if err != nil {
		return Analysis{}, err
	}
	switch analysis.Status {
	case StatusQueued, StatusFailed:
	case StatusCompleted:
		return analysis, nil
	default:
		return analysis, ErrInFlight
	}

	handle, err := s.submit(ctx, analysis.ID)
	if err != nil {
		return Analysis{}, err
	}
	select {
	case <-handle.Done():
	case <-ctx.Done():
		// The caller is gone; the pipeline keeps running on its detached
		// context and the result stays pollable.
		return analysis, ctx.Err()
	}

	final, err := s.Repo.GetByID(ctx, analysis.ID)
	if err != nil {
		return Analysis{}, err
	}
	return final, handle.Err()
}

// Get returns an analysis by ID.
func (s *Service) Get(ctx context.Context, analysisID string) (Analysis, error) {
	if analysisID == "" {
		return Analysis{}, &ValidationError{Message: MsgMissingFields}
	}
	return s.Repo.GetByID(ctx, analysisID)
}

func (s *Service) submit(ctx context.Context, analysisID string) (*tasks.Handle, error) {
	requestID := requestIDFromContext(ctx)
	handle, err := s.Runner.Submit(ctx, "analysis.pipeline", func(taskCtx context.Context) error {
		return s.run(WithRequestID(taskCtx, requestID), analysisID)
	})
	if err != nil {
		return nil, fmt.Errorf("submit pipeline: %w", err)
	}
	return handle, nil
}

// run executes the full pipeline for one analysis. Failures of optional
// services (search volume, LLM, email) degrade; a failed page fetch or
// PageSpeed run fails the analysis.
func (s *Service) run(ctx context.Context, analysisID string) (err error) {
	startedAt := time.Now().UTC()
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic: %v", rec)
			s.failAnalysis(ctx, analysisID, err, startedAt)
		}
	}()

	analysis, err := s.Repo.GetByID(ctx, analysisID)
	if err != nil {
		s.failAnalysis(ctx, analysisID, fmt.Errorf("analysis lookup: %w", err), startedAt)
		return err
	}
	lead, err := s.Leads.GetByID(ctx, analysis.LeadID)
	if err != nil {
		s.failAnalysis(ctx, analysisID, fmt.Errorf("lead lookup: %w", err), startedAt)
		return err
	}
	if s.Metrics != nil {
		s.Metrics.AnalysesStarted.Inc()
	}

	// Performance and page fetch run concurrently; both hit the same site
	// and neither depends on the other.
	if err := s.setStatus(ctx, &analysis, StatusAnalyzingPerformance); err != nil {
		return err
	}
	type psOutcome struct {
		result *pagespeed.Result
		err    error
	}
	psCh := make(chan psOutcome, 1)
	go func() {
		result, err := s.stepPageSpeed(ctx, analysis.WebsiteURL)
		psCh <- psOutcome{result: result, err: err}
	}()
	scrapeResult, scrapeErr := s.stepScrape(ctx, analysis.WebsiteURL)
	ps := <-psCh
	if ps.err != nil {
		s.failAnalysis(ctx, analysisID, fmt.Errorf("pagespeed: %w", ps.err), startedAt)
		return ps.err
	}
	if scrapeErr != nil {
		s.failAnalysis(ctx, analysisID, fmt.Errorf("fetch site: %w", scrapeErr), startedAt)
		return scrapeErr
	}
	psResult := ps.result

	// Keyword extraction plus optional DataForSEO enrichment.
	if err := s.setStatus(ctx, &analysis, StatusAnalyzingSEO); err != nil {
		return err
	}
	keywords, insights := s.stepSEO(ctx, scrapeResult)

	// Outgoing links and crawlability.
	if err := s.setStatus(ctx, &analysis, StatusCheckingLinks); err != nil {
		return err
	}
	s.stepLinks(ctx, scrapeResult)

	// Report.
	if err := s.setStatus(ctx, &analysis, StatusGeneratingReport); err != nil {
		return err
	}
	input := report.Input{
		SiteURL:   analysis.WebsiteURL,
		LeadName:  lead.Name,
		PageSpeed: psResult,
		Scrape:    scrapeResult,
		Keywords:  keywords,
		SEOData:   insights,
	}
	summary := report.BuildSummary(input)
	reportHTML := s.stepReport(ctx, analysisID, input, summary)

	// Persist.
	if err := s.setStatus(ctx, &analysis, StatusSavingResults); err != nil {
		return err
	}
	var rawSEO json.RawMessage
	if insights != nil {
		rawSEO = marshalRaw(insights)
	}
	update := ResultUpdate{
		Summary:       summary,
		ReportHTML:    reportHTML,
		Technologies:  summary.Technical.Technologies,
		ScreenshotURL: summary.ScreenshotURL,
		RawMobile:     marshalRaw(psResult.Mobile),
		RawDesktop:    marshalRaw(psResult.Desktop),
		RawSEO:        rawSEO,
		CompletedAt:   time.Now().UTC(),
	}
	if err := s.Repo.UpdateResult(ctx, analysisID, update); err != nil {
		s.failAnalysis(ctx, analysisID, fmt.Errorf("save results: %w", err), startedAt)
		return err
	}

	// Email. A send failure is logged but does not fail the analysis; the
	// report is saved and the lead can be contacted manually.
	if err := s.setStatus(ctx, &analysis, StatusSendingEmail); err != nil {
		return err
	}
	s.stepEmail(ctx, analysisID, lead, analysis.WebsiteURL, reportHTML)

	if err := s.setStatus(ctx, &analysis, StatusCompleted); err != nil {
		return err
	}
	if s.Metrics != nil {
		s.Metrics.AnalysesCompleted.Inc()
	}
	telemetry.Info("analysis.completed", map[string]any{
		"request_id":  requestIDFromContext(ctx),
		"analysis_id": analysisID,
		"lead_id":     lead.ID,
		"grade":       summary.OverallGrade,
		"duration_ms": float64(time.Since(startedAt).Microseconds()) / 1000.0,
	})
	return nil
}

func (s *Service) stepPageSpeed(ctx context.Context, siteURL string) (*pagespeed.Result, error) {
	defer s.observeStep("pagespeed", time.Now())
	result, err := s.PageSpeed.Analyze(ctx, siteURL)
	s.countExternal("pagespeed", err)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *Service) stepScrape(ctx context.Context, siteURL string) (*scrape.Result, error) {
	defer s.observeStep("scrape", time.Now())
	page, err := s.Scraper.FetchPage(ctx, siteURL)
	s.countExternal("site", err)
	if err != nil {
		return nil, err
	}
	result := scrape.Extract(page)
	return &result, nil
}

// stepSEO extracts keywords from the scraped page and, when DataForSEO is
// configured, enriches them with off-page insights. Enrichment failures
// degrade to the on-page keywords.
func (s *Service) stepSEO(ctx context.Context, result *scrape.Result) ([]seo.Keyword, *seo.Insights) {
	defer s.observeStep("seo", time.Now())
	headings := append(append([]string{}, result.H1...), result.H2...)
	keywords := seo.ExtractKeywords(result.Title, result.Description, headings, result.VisibleText)
	if !s.SEO.Configured() {
		return keywords, nil
	}
	insights, err := s.SEO.Analyze(ctx, keywords, util.Hostname(result.FinalURL))
	s.countExternal("dataforseo", err)
	if err != nil {
		telemetry.Warn("seo.enrich_failed", map[string]any{
			"request_id": requestIDFromContext(ctx),
			"error":      sanitizeError(err),
		})
	}
	if len(insights.Keywords) > 0 {
		keywords = insights.Keywords
	}
	return keywords, &insights
}

func (s *Service) stepLinks(ctx context.Context, result *scrape.Result) {
	defer s.observeStep("links", time.Now())
	result.Robots = s.Scraper.CheckRobots(ctx, result.FinalURL)
	links := append(append([]string{}, result.InternalLinks...), result.ExternalLinks...)
	result.LinkChecks = s.Links.Check(ctx, links)
}

// stepReport builds the report body. The model path is best-effort; any
// error falls back to deterministic content so the pipeline always produces
// a report.
func (s *Service) stepReport(ctx context.Context, analysisID string, input report.Input, summary report.Summary) string {
	defer s.observeStep("report", time.Now())

	content := report.FallbackContent(input, summary)
	if s.LLM != nil {
		client := newRetryingLLM(s.LLM, analysisID, requestIDFromContext(ctx), s.Sleep)
		raw, err := client.GenerateReportContent(ctx, report.BuildPrompt(input, summary))
		s.countExternal("llm", err)
		if err == nil {
			parsed, parseErr := report.ParseContent(raw)
			if parseErr == nil {
				content = parsed
			} else {
				telemetry.Warn("report.llm_output_invalid", map[string]any{
					"request_id":  requestIDFromContext(ctx),
					"analysis_id": analysisID,
					"error":       sanitizeError(parseErr),
				})
			}
		} else if !errors.Is(err, llm.ErrNotConfigured) {
			telemetry.Warn("report.llm_failed", map[string]any{
				"request_id":  requestIDFromContext(ctx),
				"analysis_id": analysisID,
				"error":       sanitizeError(err),
			})
		}
	}
	return report.RenderHTML(content, summary, input)
}

func (s *Service) stepEmail(ctx context.Context, analysisID string, lead leads.Lead, siteURL, reportHTML string) {
	defer s.observeStep("email", time.Now())
	if s.Mailer == nil {
		return
	}
	err := s.Mailer.Send(ctx, mail.Message{
		ToAddress: lead.Email,
		ToName:    lead.Name,
		Subject:   fmt.Sprintf("Ihre Website-Analyse für %s", util.Hostname(siteURL)),
		HTML:      mail.WrapInTemplate(reportHTML, siteURL),
	})
	if err != nil {
		if s.Metrics != nil {
			s.Metrics.EmailsSent.WithLabelValues("failure").Inc()
		}
		telemetry.Warn("email.send_failed", map[string]any{
			"request_id":  requestIDFromContext(ctx),
			"analysis_id": analysisID,
			"lead_id":     lead.ID,
			"error":       sanitizeError(err),
		})
		return
	}
	if s.Metrics != nil {
		s.Metrics.EmailsSent.WithLabelValues("success").Inc()
	}
	if err := s.Repo.MarkEmailSent(ctx, analysisID, time.Now().UTC()); err != nil {
		telemetry.Error("email.mark_sent_failed", map[string]any{
			"analysis_id": analysisID,
			"error":       sanitizeError(err),
		})
	}
}

func (s *Service) setStatus(ctx context.Context, analysis *Analysis, status string) error {
	if err := s.Repo.UpdateStatus(ctx, analysis.ID, status); err != nil {
		s.failAnalysis(ctx, analysis.ID, fmt.Errorf("set status %s: %w", status, err), time.Now().UTC())
		return err
	}
	telemetry.Info("analysis.status", map[string]any{
		"request_id":        requestIDFromContext(ctx),
		"analysis_id":       analysis.ID,
		"lead_id":           analysis.LeadID,
		"status":            status,
		"status_transition": analysis.Status + "->" + status,
	})
	analysis.Status = status
	return nil
}

func (s *Service) failAnalysis(ctx context.Context, analysisID string, err error, startedAt time.Time) {
	code := classifyFailure(err)
	msg := sanitizeError(err)
	completedAt := time.Now().UTC()
	if updateErr := s.Repo.MarkFailed(context.Background(), analysisID, code, msg, completedAt); updateErr != nil {
		telemetry.Error("analysis.fail_update_failed", map[string]any{
			"analysis_id": analysisID,
			"error":       updateErr.Error(),
			"original":    msg,
		})
	}
	if s.Metrics != nil {
		s.Metrics.AnalysesFailed.WithLabelValues(code).Inc()
	}
	telemetry.Info("analysis.status", map[string]any{
		"request_id":  requestIDFromContext(ctx),
		"analysis_id": analysisID,
		"status":      StatusFailed,
		"code":        code,
		"error":       msg,
		"duration_ms": float64(completedAt.Sub(startedAt).Microseconds()) / 1000.0,
	})
}

func (s *Service) observeStep(step string, started time.Time) {
	if s.Metrics == nil {
		return
	}
	s.Metrics.StepDuration.WithLabelValues(step).Observe(time.Since(started).Seconds())
}

func (s *Service) countExternal(service string, err error) {
	if s.Metrics == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	s.Metrics.ExternalCalls.WithLabelValues(service, outcome).Inc()
}

func classifyFailure(err error) string {
	if err == nil {
		return ErrorCodeInternal
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "validation"):
		return ErrorCodeValidation
	case strings.Contains(msg, "pagespeed"):
		return ErrorCodePageSpeed
	case strings.Contains(msg, "fetch site") || strings.Contains(msg, "fetch "):
		return ErrorCodeFetch
	case errors.Is(err, context.DeadlineExceeded) && strings.Contains(msg, "llm"):
		return ErrorCodeLLMTimeout
	case strings.Contains(msg, "llm output"):
		return ErrorCodeLLMOutputInvalid
	case strings.Contains(msg, "lookup") || strings.Contains(msg, "set status") ||
		strings.Contains(msg, "save results") || strings.Contains(msg, "create analysis"):
		return ErrorCodeStorage
	default:
		return ErrorCodeInternal
	}
}

func marshalRaw(v any) json.RawMessage {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return raw
}

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	msg := strings.ReplaceAll(err.Error(), "\n", " ")
	msg = strings.ReplaceAll(msg, "\r", " ")
	msg = strings.TrimSpace(msg)
	const maxLen = 500
	if len(msg) > maxLen {
		msg = msg[:maxLen]
	}
	return msg
}
