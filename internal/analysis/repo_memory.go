package analysis

import (
	"context"
	"sync"
	"time"
)

type MemoryRepo struct {
	mu       sync.RWMutex
	analyses map[string]Analysis
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{analyses: make(map[string]Analysis)}
}

func (r *MemoryRepo) Create(ctx context.Context, analysis Analysis) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	analysis.CreatedAt = now
	analysis.UpdatedAt = now
	r.analyses[analysis.ID] = analysis
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, analysisID string) (Analysis, error) {
	if err := ctx.Err(); err != nil {
		return Analysis{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	analysis, ok := r.analyses[analysisID]
	if !ok {
		return Analysis{}, ErrNotFound
	}
	return analysis, nil
}

func (r *MemoryRepo) GetLatestByLead(ctx context.Context, leadID string) (Analysis, error) {
	if err := ctx.Err(); err != nil {
		return Analysis{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var latest *Analysis
	for _, analysis := range r.analyses {
		if analysis.LeadID != leadID {
			continue
		}
		if latest == nil || analysis.CreatedAt.After(latest.CreatedAt) {
			copied := analysis
			latest = &copied
		}
	}
	if latest == nil {
		return Analysis{}, ErrNotFound
	}
	return *latest, nil
}

func (r *MemoryRepo) UpdateStatus(ctx context.Context, analysisID, status string) error {
	return r.update(ctx, analysisID, func(a *Analysis) {
		a.Status = status
	})
}

func (r *MemoryRepo) UpdateResult(ctx context.Context, analysisID string, result ResultUpdate) error {
	return r.update(ctx, analysisID, func(a *Analysis) {
		copied := result.Summary
		a.Summary = &copied
		a.ReportHTML = result.ReportHTML
		a.Technologies = result.Technologies
		a.ScreenshotURL = result.ScreenshotURL
		a.RawMobile = result.RawMobile
		a.RawDesktop = result.RawDesktop
		a.RawSEO = result.RawSEO
		completedAt := result.CompletedAt
		a.CompletedAt = &completedAt
	})
}

func (r *MemoryRepo) MarkEmailSent(ctx context.Context, analysisID string, sentAt time.Time) error {
	return r.update(ctx, analysisID, func(a *Analysis) {
		a.EmailSent = true
		a.EmailSentAt = &sentAt
	})
}

func (r *MemoryRepo) MarkFailed(ctx context.Context, analysisID, code, message string, completedAt time.Time) error {
	return r.update(ctx, analysisID, func(a *Analysis) {
		a.Status = StatusFailed
		a.ErrorCode = code
		a.ErrorMessage = message
		a.CompletedAt = &completedAt
	})
}

func (r *MemoryRepo) update(ctx context.Context, analysisID string, apply func(*Analysis)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	analysis, ok := r.analyses[analysisID]
	if !ok {
		return ErrNotFound
	}
	apply(&analysis)
	analysis.UpdatedAt = time.Now().UTC()
	r.analyses[analysisID] = analysis
	return nil
}
