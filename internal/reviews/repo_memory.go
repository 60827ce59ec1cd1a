package reviews

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory Repository for development and tests.
type MemoryRepo struct {
	mu      sync.RWMutex
	records map[string]Review
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{records: make(map[string]Review)}
}

func (r *MemoryRepo) Create(_ context.Context, review *Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *review
	if stored.ATSScore != nil {
		score := *stored.ATSScore
		stored.ATSScore = &score
	}
	r.records[stored.ID] = stored
	return nil
}

func (r *MemoryRepo) GetOwned(_ context.Context, userID, id string) (*Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored, ok := r.records[id]
	if !ok || stored.UserID != userID {
		return nil, ErrNotFound
	}
	out := stored
	if out.ATSScore != nil {
		score := *out.ATSScore
		out.ATSScore = &score
	}
	return &out, nil
}

func (r *MemoryRepo) ListByUser(_ context.Context, userID string) ([]Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Review
	for _, stored := range r.records {
		if stored.UserID != userID {
			continue
		}
		item := stored
		if item.ATSScore != nil {
			score := *item.ATSScore
			item.ATSScore = &score
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

var _ Repository = (*MemoryRepo)(nil)
