package licenses

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]License
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]License)}
}

// Create stores a license record.
func (r *MemoryRepo) Create(ctx context.Context, lic License) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[lic.ID] = lic
	return nil
}

// GetByID returns a license record by ID.
func (r *MemoryRepo) GetByID(ctx context.Context, id string) (License, error) {
	if err := ctx.Err(); err != nil {
		return License{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	lic, ok := r.data[id]
	if !ok {
		return License{}, ErrNotFound
	}
	return lic, nil
}

// List returns records newest-first, optionally filtered by a substring
// match on SpecificActivity. Conditions are omitted to mirror the SQL
// implementation.
func (r *MemoryRepo) List(ctx context.Context, activity string) ([]License, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]License, 0, len(r.data))
	for _, lic := range r.data {
		if activity != "" {
			if lic.SpecificActivity == nil || !strings.Contains(*lic.SpecificActivity, activity) {
				continue
			}
		}
		lic.Conditions = nil
		out = append(out, lic)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

var _ Repo = (*MemoryRepo)(nil)
