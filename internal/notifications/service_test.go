package notifications

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestServiceCreateValidation(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name       string
		documentID string
		title      string
		date       time.Time
	}{
		{"missing document id", "", "Licenca", date},
		{"blank document id", "   ", "Licenca", date},
		{"missing title", "doc-1", "", date},
		{"zero date", "doc-1", "Licenca", time.Time{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.Create(context.Background(), tc.documentID, tc.title, tc.date)
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestServiceCreateNormalizesDateAndStores(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)

	// A timestamp mid-day in a non-UTC offset still lands on the same UTC date.
	date := time.Date(2026, 3, 10, 15, 30, 0, 0, time.FixedZone("BRT", -3*3600))
	if err := svc.Create(context.Background(), "doc-1", "Licenca", date); err != nil {
		t.Fatalf("Create: %v", err)
	}

	n, ok := repo.Get("doc-1")
	if !ok {
		t.Fatal("notification not stored")
	}
	if n.Status != StatusPending {
		t.Fatalf("expected pending, got %s", n.Status)
	}
	want := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	if !n.NotifyDate.Equal(want) {
		t.Fatalf("expected %s, got %s", want, n.NotifyDate)
	}
}

func TestServiceCreateDuplicate(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	if err := svc.Create(context.Background(), "doc-1", "Licenca", date); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	if err := svc.Create(context.Background(), "doc-1", "Licenca", date); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}
