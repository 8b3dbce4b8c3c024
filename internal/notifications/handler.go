package notifications

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"license-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler { return &Handler{Svc: svc} }

// RegisterRoutes attaches notification routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/notifications", h.create)
	rg.GET("/notifications/pending", h.listPending)
}

type createRequest struct {
	DocumentID string `json:"documentId"`
	Title      string `json:"title"`
	NotifyDate string `json:"notifyDate"`
}

type notificationResponse struct {
	DocumentID string  `json:"documentId"`
	Title      string  `json:"title"`
	NotifyDate string  `json:"notifyDate"`
	Status     string  `json:"status"`
	SentAt     *string `json:"sentAt,omitempty"`
}

func (h *Handler) create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid JSON body", nil)
		return
	}

	notifyDate, err := time.Parse("2006-01-02", req.NotifyDate)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "notifyDate must be YYYY-MM-DD", nil)
		return
	}

	if err := h.Svc.Create(c.Request.Context(), req.DocumentID, req.Title, notifyDate); err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, ErrDuplicate):
			respond.Error(c, http.StatusConflict, "conflict", "a reminder for this document already exists", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "storage_error", "failed to schedule reminder", nil)
		}
		return
	}
	c.Set("documentId", req.DocumentID)

	respond.JSON(c, http.StatusCreated, notificationResponse{
		DocumentID: req.DocumentID,
		Title:      req.Title,
		NotifyDate: notifyDate.Format("2006-01-02"),
		Status:     string(StatusPending),
	})
}

func (h *Handler) listPending(c *gin.Context) {
	pending, err := h.Svc.ListPending(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list pending reminders", nil)
		return
	}

	resp := make([]notificationResponse, 0, len(pending))
	for _, n := range pending {
		item := notificationResponse{
			DocumentID: n.DocumentID,
			Title:      n.Title,
			NotifyDate: n.NotifyDate.Format("2006-01-02"),
			Status:     string(n.Status),
		}
		if n.SentAt != nil {
			s := n.SentAt.UTC().Format(time.RFC3339)
			item.SentAt = &s
		}
		resp = append(resp, item)
	}

	respond.JSON(c, http.StatusOK, resp)
}
