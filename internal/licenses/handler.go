package licenses

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"license-backend/internal/extract"
	"license-backend/internal/shared/server/respond"
)

const maxUploadSize = 10 << 20 // 10MB

// NotificationCreator registers an expiry reminder for a document. The
// notifications package provides the implementation; the indirection keeps
// the dependency one-way.
type NotificationCreator interface {
	Create(ctx context.Context, documentID, title string, notifyDate time.Time) error
}

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc      *Service
	Notifier NotificationCreator
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, notifier NotificationCreator) *Handler {
	return &Handler{Svc: svc, Notifier: notifier}
}

// RegisterRoutes attaches license routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/licenses", h.upload)
	rg.GET("/licenses/:id", h.get)
	rg.GET("/licenses", h.list)
}

func (h *Handler) upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	title := strings.TrimSpace(c.PostForm("title"))
	notifyRaw := strings.TrimSpace(c.PostForm("notifyDate"))
	var notifyDate time.Time
	if notifyRaw != "" {
		notifyDate, err = time.Parse("2006-01-02", notifyRaw)
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "notifyDate must be YYYY-MM-DD", nil)
			return
		}
		if title == "" {
			title = fileHeader.Filename
		}
	}

	lic, err := h.Svc.Upload(c.Request.Context(), fileHeader.Filename, file)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput), errors.Is(err, extract.ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, extract.ErrExtraction):
			respond.Error(c, http.StatusUnprocessableEntity, "extraction_error", "could not extract document text", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "storage_error", "failed to save document", nil)
		}
		return
	}
	c.Set("documentId", lic.ID)

	if notifyRaw != "" && h.Notifier != nil {
		if err := h.Notifier.Create(c.Request.Context(), lic.ID, title, notifyDate); err != nil {
			// The document itself is saved; surface the reminder failure.
			respond.Error(c, http.StatusInternalServerError, "notification_error", "document saved but reminder could not be registered", gin.H{"documentId": lic.ID})
			return
		}
	}

	respond.JSON(c, http.StatusCreated, toResponse(lic))
}

func (h *Handler) get(c *gin.Context) {
	id := c.Param("id")

	lic, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "license not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch license", nil)
		}
		return
	}
	c.Set("documentId", lic.ID)

	respond.JSON(c, http.StatusOK, toResponse(lic))
}

func (h *Handler) list(c *gin.Context) {
	activity := strings.TrimSpace(c.Query("activity"))

	lics, err := h.Svc.List(c.Request.Context(), activity)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list licenses", nil)
		return
	}

	resp := make([]LicenseResponse, 0, len(lics))
	for _, lic := range lics {
		resp = append(resp, toResponse(lic))
	}

	respond.JSON(c, http.StatusOK, resp)
}
