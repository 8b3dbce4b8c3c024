package notifications

import (
	"context"
	"time"
)

// Repo persists notifications. ListPending returns only rows whose status
// is pending; the scheduler applies the date cutoff itself so that the
// clock stays injectable in tests.
type Repo interface {
	Create(ctx context.Context, n Notification) error
	ListPending(ctx context.Context) ([]Notification, error)
	MarkSent(ctx context.Context, documentID string, sentAt time.Time) error
}
