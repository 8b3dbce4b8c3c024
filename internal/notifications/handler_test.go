package notifications

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func newTestRouter(repo Repo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(NewService(repo))
	h.RegisterRoutes(r.Group("/api/v1"))
	return r
}

func TestHandlerCreateSchedulesReminder(t *testing.T) {
	repo := NewMemoryRepo()
	r := newTestRouter(repo)

	body := `{"documentId":"doc-1","title":"Licenca de operacao","notifyDate":"2026-03-10"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/notifications", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", w.Code, w.Body.String())
	}

	var resp notificationResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "pending" || resp.NotifyDate != "2026-03-10" {
		t.Fatalf("unexpected response: %+v", resp)
	}

	if _, ok := repo.Get("doc-1"); !ok {
		t.Fatal("notification not persisted")
	}
}

func TestHandlerCreateRejectsBadDate(t *testing.T) {
	r := newTestRouter(NewMemoryRepo())

	body := `{"documentId":"doc-1","title":"Licenca","notifyDate":"10/03/2026"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/notifications", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "validation_error") {
		t.Fatalf("expected validation_error code, got %s", w.Body.String())
	}
}

func TestHandlerCreateDuplicateConflicts(t *testing.T) {
	repo := NewMemoryRepo()
	r := newTestRouter(repo)

	body := `{"documentId":"doc-1","title":"Licenca","notifyDate":"2026-03-10"}`
	for i, want := range []int{http.StatusCreated, http.StatusConflict} {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/notifications", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != want {
			t.Fatalf("request %d: expected %d, got %d", i, want, w.Code)
		}
	}
}

func TestHandlerListPending(t *testing.T) {
	repo := NewMemoryRepo()
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	if err := repo.Create(context.Background(), Notification{
		DocumentID: "doc-1",
		Title:      "Licenca",
		NotifyDate: date,
		Status:     StatusPending,
		CreatedAt:  time.Now().UTC(),
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	r := newTestRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/notifications/pending", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp []notificationResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp) != 1 || resp[0].DocumentID != "doc-1" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}
