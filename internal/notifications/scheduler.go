package notifications

import (
	"context"
	"time"

	"license-backend/internal/shared/metrics"
	"license-backend/internal/shared/telemetry"
)

// Scheduler polls for due notifications and dispatches them. A single
// goroutine owns the loop: the next tick only starts after the previous
// Tick returns, so dispatch runs never overlap.
type Scheduler struct {
	Repo     Repo
	Mailer   Mailer
	To       string
	Interval time.Duration

	// Now is injectable for tests; nil means time.Now.
	Now func() time.Time
}

func NewScheduler(repo Repo, mailer Mailer, to string, interval time.Duration) *Scheduler {
	return &Scheduler{Repo: repo, Mailer: mailer, To: to, Interval: interval}
}

// Run ticks at the configured interval until the context is cancelled.
// Tick errors are logged, never fatal; pending work is retried next tick.
func (s *Scheduler) Run(ctx context.Context) {
	interval := s.Interval
	if interval <= 0 {
		interval = time.Minute
	}
	telemetry.Info("notifier.started", map[string]any{"interval": interval.String()})

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			telemetry.Info("notifier.stopped", nil)
			return
		case <-ticker.C:
			if err := s.Tick(ctx); err != nil {
				telemetry.Error("notifier.tick_failed", map[string]any{"error": err.Error()})
			}
		}
	}
}

// Tick dispatches every pending notification whose date is today or earlier.
// Each item is handled independently: a failed send or a failed status
// update leaves that notification pending and moves on to the next one.
func (s *Scheduler) Tick(ctx context.Context) error {
	pending, err := s.Repo.ListPending(ctx)
	if err != nil {
		return err
	}

	today := s.now()
	for _, n := range pending {
		if n.Status != StatusPending || !n.Due(today) {
			continue
		}
		s.dispatch(ctx, n)
	}
	return nil
}

func (s *Scheduler) dispatch(ctx context.Context, n Notification) {
	start := metrics.NowMillis()
	subject, body := ReminderMessage(n)
	if err := s.Mailer.Send(ctx, s.To, subject, body); err != nil {
		metrics.IncNotificationsFailed()
		telemetry.Error("notifier.send_failed", map[string]any{
			"documentId": n.DocumentID,
			"error":      err.Error(),
		})
		return
	}
	metrics.ObserveDispatchDurationMs(metrics.NowMillis() - start)

	if err := s.Repo.MarkSent(ctx, n.DocumentID, s.now().UTC()); err != nil {
		// The email went out but the row is still pending; the next tick
		// will resend. Losing a reminder is worse than repeating one.
		telemetry.Error("notifier.mark_sent_failed", map[string]any{
			"documentId": n.DocumentID,
			"error":      err.Error(),
		})
		return
	}
	metrics.IncNotificationsSent()
	telemetry.Info("notifier.sent", map[string]any{"documentId": n.DocumentID})
}

func (s *Scheduler) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
