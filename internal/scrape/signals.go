package scrape

// Result aggregates everything extracted from a single page visit.
type Result struct {
	URL         string   `json:"url"`
	FinalURL    string   `json:"finalUrl"`
	HTTPS       bool     `json:"https"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	H1          []string `json:"h1"`
	H2          []string `json:"h2"`
	ImageCount  int      `json:"imageCount"`
	MissingAlt  int      `json:"missingAlt"`

	InternalLinks []string `json:"internalLinks"`
	ExternalLinks []string `json:"externalLinks"`

	CMS           string          `json:"cms"`
	Colors        []string        `json:"colors"`
	Fonts         []string        `json:"fonts"`
	DarkMode      bool            `json:"darkMode"`
	Technical     Technical       `json:"technical"`
	Contact       Contact         `json:"contact"`
	Accessibility Accessibility   `json:"accessibility"`
	MixedContent  int             `json:"mixedContent"`
	Booking       Booking         `json:"booking"`
	Legal         Legal           `json:"legal"`
	Readability   Readability     `json:"readability"`
	Security      SecurityHeaders `json:"security"`
	Robots        Robots          `json:"robots"`
	LinkChecks    []LinkCheck     `json:"linkChecks"`

	VisibleText string `json:"-"`
}

// Technical captures head-level markup signals and embedded tracking tools.
type Technical struct {
	HasViewport         bool     `json:"hasViewport"`
	HasFavicon          bool     `json:"hasFavicon"`
	HasStructuredData   bool     `json:"hasStructuredData"`
	StructuredDataTypes []string `json:"structuredDataTypes,omitempty"`
	HasGoogleAnalytics  bool     `json:"hasGoogleAnalytics"`
	HasTagManager       bool     `json:"hasTagManager"`
	HasFacebookPixel    bool     `json:"hasFacebookPixel"`
	HasHotjar           bool     `json:"hasHotjar"`
}

// Contact lists the ways a visitor can reach the business.
type Contact struct {
	Emails         []string `json:"emails"`
	Phones         []string `json:"phones"`
	SocialLinks    []string `json:"socialLinks"`
	HasContactForm bool     `json:"hasContactForm"`
}

// Accessibility holds markup-level accessibility checks; they complement the
// Lighthouse accessibility score rather than replace it.
type Accessibility struct {
	HasSkipLink      bool `json:"hasSkipLink"`
	HasLandmarks     bool `json:"hasLandmarks"`
	UnlabeledInputs  int  `json:"unlabeledInputs"`
	PositiveTabindex int  `json:"positiveTabindex"`
}

// Booking reports whether the site offers online booking and through what.
type Booking struct {
	HasBooking bool   `json:"hasBooking"`
	Platform   string `json:"platform,omitempty"`
}

// Legal reports presence of the legal pages German-speaking sites must carry.
type Legal struct {
	Impressum   bool `json:"impressum"`
	Datenschutz bool `json:"datenschutz"`
	AGB         bool `json:"agb"`
}

// Readability scores how easy the page copy reads.
type Readability struct {
	Score          int     `json:"score"`
	Level          string  `json:"level"`
	AvgSentenceLen float64 `json:"avgSentenceLength"`
	AvgWordLen     float64 `json:"avgWordLength"`
	SentenceCount  int     `json:"sentenceCount"`
	WordCount      int     `json:"wordCount"`
}

// SecurityHeaders scores the response headers of the main document.
type SecurityHeaders struct {
	Score   int             `json:"score"`
	Present map[string]bool `json:"present"`
	Missing []string        `json:"missing"`
}

// Robots reports crawlability basics.
type Robots struct {
	HasRobotsTxt bool `json:"hasRobotsTxt"`
	HasSitemap   bool `json:"hasSitemap"`
}

// LinkCheck is the outcome of probing a single outgoing link.
type LinkCheck struct {
	URL        string `json:"url"`
	Status     string `json:"status"`
	StatusCode int    `json:"statusCode,omitempty"`
}

// Link check status values.
const (
	LinkOK       = "ok"
	LinkBroken   = "broken"
	LinkRedirect = "redirect"
	LinkTimeout  = "timeout"
)
