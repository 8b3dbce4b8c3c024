package notifications

import (
	"context"
	"database/sql"
	"time"
)

type PGRepo struct {
	DB *sql.DB
}

func NewPGRepo(db *sql.DB) *PGRepo { return &PGRepo{DB: db} }

func (r *PGRepo) Create(ctx context.Context, n Notification) error {
	res, err := r.DB.ExecContext(ctx, `
INSERT INTO notifications (document_id, title, notify_date, status, created_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (document_id) DO NOTHING`,
		n.DocumentID, n.Title, n.NotifyDate, string(n.Status), n.CreatedAt)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrDuplicate
	}
	return nil
}

func (r *PGRepo) ListPending(ctx context.Context) ([]Notification, error) {
	rows, err := r.DB.QueryContext(ctx, `
SELECT document_id, title, notify_date, status, created_at, sent_at
FROM notifications
WHERE status = 'pending'
ORDER BY notify_date ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Notification
	for rows.Next() {
		var n Notification
		var status string
		if err := rows.Scan(&n.DocumentID, &n.Title, &n.NotifyDate, &status, &n.CreatedAt, &n.SentAt); err != nil {
			return nil, err
		}
		n.Status = Status(status)
		out = append(out, n)
	}
	return out, rows.Err()
}

// MarkSent flips a pending notification to sent. The status guard in the
// WHERE clause makes the call idempotent: a second invocation affects zero
// rows and is not an error.
func (r *PGRepo) MarkSent(ctx context.Context, documentID string, sentAt time.Time) error {
	_, err := r.DB.ExecContext(ctx, `
UPDATE notifications
SET status = 'sent', sent_at = $2
WHERE document_id = $1 AND status = 'pending'`,
		documentID, sentAt)
	return err
}
