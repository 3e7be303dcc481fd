package analysis

// Pipeline statuses, in processing order.
const (
	StatusQueued               = "queued"
	StatusAnalyzingPerformance = "analyzing_performance"
	StatusAnalyzingSEO         = "analyzing_seo"
	StatusCheckingLinks        = "checking_links"
	StatusGeneratingReport     = "generating_report"
	StatusSavingResults        = "saving_results"
	StatusSendingEmail         = "sending_email"
	StatusCompleted            = "completed"
	StatusFailed               = "failed"
)

// TotalSteps is the number of steps the progress bar counts up to; completed
// reports step == TotalSteps.
const TotalSteps = 7

// Step pairs a numeric progress step with the German message shown while
// polling. Failed analyses report step -1.
type Step struct {
	Step    int    `json:"step"`
	Message string `json:"message"`
}

var statusSteps = map[string]Step{
	StatusQueued:               {0, "In Warteschlange..."},
	StatusAnalyzingPerformance: {1, "Performance wird analysiert..."},
	StatusAnalyzingSEO:         {2, "SEO wird analysiert..."},
	StatusCheckingLinks:        {3, "Links werden geprüft..."},
	StatusGeneratingReport:     {4, "Bericht wird erstellt..."},
	StatusSavingResults:        {5, "Ergebnisse werden gespeichert..."},
	StatusSendingEmail:         {6, "E-Mail wird versendet..."},
	StatusCompleted:            {7, "Fertig! E-Mail wurde gesendet."},
	StatusFailed:               {-1, "Analyse fehlgeschlagen"},
}

// StepFor projects a status onto its polling step. Unknown statuses map to
// the queued step so the frontend progress bar never goes backwards on a
// status it does not know.
func StepFor(status string) Step {
	if step, ok := statusSteps[status]; ok {
		return step
	}
	return statusSteps[StatusQueued]
}
