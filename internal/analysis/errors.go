package analysis

import "errors"

var (
	ErrNotFound = errors.New("analysis not found")

	// ErrInFlight is returned when process is called while the pipeline is
	// already running for that analysis.
	ErrInFlight = errors.New("analysis already running")
)

const (
	ErrorCodeValidation       = "VALIDATION_ERROR"
	ErrorCodeFetch            = "FETCH_ERROR"
	ErrorCodePageSpeed        = "PAGESPEED_ERROR"
	ErrorCodeLLMTimeout       = "LLM_TIMEOUT"
	ErrorCodeLLMOutputInvalid = "LLM_OUTPUT_INVALID"
	ErrorCodeStorage          = "STORAGE_ERROR"
	ErrorCodeInternal         = "INTERNAL_ERROR"
)

// ValidationError carries the German message shown to the person filling
// the form. Error() keeps the "validation:" prefix the failure classifier
// keys on.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return "validation: " + e.Message
}

// User-facing validation and lookup messages.
const (
	MsgInvalidEmail   = "Bitte geben Sie eine gültige E-Mail-Adresse an."
	MsgInvalidURL     = "Bitte geben Sie eine gültige Website-Adresse an."
	MsgMissingFields  = "Alle Felder sind erforderlich."
	MsgInvalidBody    = "Die Anfrage konnte nicht gelesen werden."
	MsgNotFound       = "Analyse nicht gefunden."
	MsgAlreadyRunning = "Diese Analyse läuft bereits."
	MsgStartFailed    = "Die Analyse konnte nicht gestartet werden."
	MsgProcessFailed  = "Die Analyse konnte nicht abgeschlossen werden."
	MsgStatusFailed   = "Der Status konnte nicht geladen werden."
)
