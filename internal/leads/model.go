package leads

import "time"

// Lead is a prospect who submitted the analysis form.
type Lead struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	WebsiteURL string    `json:"websiteUrl"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
