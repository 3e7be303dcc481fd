package leads

import (
	"context"
	"strings"
	"sync"
	"time"
)

type MemoryRepo struct {
	mu    sync.RWMutex
	byID  map[string]Lead
	byKey map[string]string // lowercased email -> id
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		byID:  make(map[string]Lead),
		byKey: make(map[string]string),
	}
}

func (r *MemoryRepo) Upsert(ctx context.Context, lead Lead) (Lead, error) {
	if err := ctx.Err(); err != nil {
		return Lead{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	key := strings.ToLower(lead.Email)
	now := time.Now().UTC()
	if existingID, ok := r.byKey[key]; ok {
		existing := r.byID[existingID]
		existing.Name = lead.Name
		existing.WebsiteURL = lead.WebsiteURL
		existing.UpdatedAt = now
		r.byID[existingID] = existing
		return existing, nil
	}
	lead.CreatedAt = now
	lead.UpdatedAt = now
	r.byID[lead.ID] = lead
	r.byKey[key] = lead.ID
	return lead, nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, leadID string) (Lead, error) {
	if err := ctx.Err(); err != nil {
		return Lead{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	lead, ok := r.byID[leadID]
	if !ok {
		return Lead{}, ErrNotFound
	}
	return lead, nil
}

func (r *MemoryRepo) GetByEmail(ctx context.Context, email string) (Lead, error) {
	if err := ctx.Err(); err != nil {
		return Lead{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byKey[strings.ToLower(email)]
	if !ok {
		return Lead{}, ErrNotFound
	}
	return r.byID[id], nil
}
