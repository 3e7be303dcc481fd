package leads

import "context"

var ErrNotFound = errNotFound{}

type errNotFound struct{}

func (errNotFound) Error() string { return "lead not found" }

// Repo persists leads. Upsert is keyed on email so resubmitting the form
// updates the existing lead instead of duplicating it.
type Repo interface {
	Upsert(ctx context.Context, lead Lead) (Lead, error)
	GetByID(ctx context.Context, leadID string) (Lead, error)
	GetByEmail(ctx context.Context, email string) (Lead, error)
}
