package notifications

import "time"

// Status is the delivery state of a notification. The only transition is
// pending -> sent; a sent notification is never re-dispatched.
type Status string

const (
	StatusPending Status = "pending"
	StatusSent    Status = "sent"
)

// Notification is a scheduled one-time expiry reminder for a document.
// DocumentID is a weak reference: the row outlives (and is independent of)
// the document's own lifecycle. Title is a snapshot taken at creation time.
type Notification struct {
	DocumentID string
	Title      string
	NotifyDate time.Time
	Status     Status
	CreatedAt  time.Time
	SentAt     *time.Time
}

// Due reports whether the notification should fire on the given day.
// The comparison is date-only: a NotifyDate equal to today is due.
func (n Notification) Due(today time.Time) bool {
	return !dateOnly(n.NotifyDate).After(dateOnly(today))
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
