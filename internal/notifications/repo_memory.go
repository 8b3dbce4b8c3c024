package notifications

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is a map-backed Repo for local development and tests.
type MemoryRepo struct {
	mu   sync.RWMutex
	rows map[string]Notification
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{rows: make(map[string]Notification)}
}

func (r *MemoryRepo) Create(_ context.Context, n Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[n.DocumentID]; ok {
		return ErrDuplicate
	}
	r.rows[n.DocumentID] = n
	return nil
}

func (r *MemoryRepo) ListPending(_ context.Context) ([]Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Notification
	for _, n := range r.rows {
		if n.Status == StatusPending {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NotifyDate.Before(out[j].NotifyDate) })
	return out, nil
}

func (r *MemoryRepo) MarkSent(_ context.Context, documentID string, sentAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.rows[documentID]
	if !ok || n.Status != StatusPending {
		return nil
	}
	n.Status = StatusSent
	t := sentAt
	n.SentAt = &t
	r.rows[documentID] = n
	return nil
}

// Get is a test helper for inspecting stored state.
func (r *MemoryRepo) Get(documentID string) (Notification, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n, ok := r.rows[documentID]
	return n, ok
}
