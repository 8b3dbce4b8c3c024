package notifications

import (
	"context"
	"fmt"
	"strings"
	"time"

	"license-backend/internal/shared/telemetry"
)

// Service validates and records reminders. Dispatch is the scheduler's job.
type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service { return &Service{Repo: repo} }

// Create schedules a reminder for a document. The notify date is normalized
// to midnight UTC so the scheduler's date-only comparison holds regardless
// of the timezone the caller parsed it in.
func (s *Service) Create(ctx context.Context, documentID, title string, notifyDate time.Time) error {
	documentID = strings.TrimSpace(documentID)
	title = strings.TrimSpace(title)
	if documentID == "" {
		return fmt.Errorf("%w: documentId is required", ErrValidation)
	}
	if title == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if notifyDate.IsZero() {
		return fmt.Errorf("%w: notifyDate is required", ErrValidation)
	}

	n := Notification{
		DocumentID: documentID,
		Title:      title,
		NotifyDate: dateOnly(notifyDate),
		Status:     StatusPending,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, n); err != nil {
		return err
	}
	telemetry.Info("notification.scheduled", map[string]any{
		"documentId": documentID,
		"notifyDate": n.NotifyDate.Format("2006-01-02"),
	})
	return nil
}

// ListPending exposes the pending queue for inspection.
func (s *Service) ListPending(ctx context.Context) ([]Notification, error) {
	return s.Repo.ListPending(ctx)
}
