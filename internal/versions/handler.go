package versions

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"resume-builder-backend/internal/shared/server/middleware"
	"resume-builder-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches version routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/versions/resume/:resumeId", h.create)
	rg.GET("/versions/resume/:resumeId", h.list)
	rg.GET("/versions/:id", h.get)
	rg.PUT("/versions/:id/restore", h.restore)
	rg.DELETE("/versions/:id", h.remove)
}

func (h *Handler) create(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	resumeID := c.Param("resumeId")
	c.Set("resumeId", resumeID)

	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	v, err := h.Svc.Create(c.Request.Context(), userID, CreateInput{
		ResumeID: resumeID,
		Title:    req.Title,
		Changes:  req.Changes,
		Snapshot: req.Snapshot,
	})
	if err != nil {
		h.writeError(c, err, "failed to create version")
		return
	}

	c.Set("versionId", v.ID)
	respond.JSON(c, http.StatusCreated, toResponse(v))
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	resumeID := c.Param("resumeId")
	c.Set("resumeId", resumeID)

	limit := queryInt(c, "limit", 20)
	offset := queryInt(c, "offset", 0)

	items, total, err := h.Svc.List(c.Request.Context(), userID, resumeID, limit, offset)
	if err != nil {
		h.writeError(c, err, "failed to list versions")
		return
	}

	summaries := make([]versionSummary, 0, len(items))
	for _, v := range items {
		summaries = append(summaries, toSummary(v))
	}
	respond.JSON(c, http.StatusOK, listResponse{
		Items:      summaries,
		TotalCount: total,
		Limit:      limit,
		Offset:     offset,
	})
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	versionID := c.Param("id")
	c.Set("versionId", versionID)

	v, err := h.Svc.Get(c.Request.Context(), userID, versionID)
	if err != nil {
		h.writeError(c, err, "failed to fetch version")
		return
	}
	respond.JSON(c, http.StatusOK, toResponse(v))
}

func (h *Handler) restore(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	versionID := c.Param("id")
	c.Set("versionId", versionID)

	backup, resume, err := h.Svc.Restore(c.Request.Context(), userID, versionID)
	if err != nil {
		h.writeError(c, err, "failed to restore version")
		return
	}

	c.Set("resumeId", resume.ID)
	respond.JSON(c, http.StatusOK, gin.H{
		"backup": toSummary(backup),
		"resume": gin.H{
			"resumeId":     resume.ID,
			"title":        resume.Title,
			"content":      resume.Content,
			"tags":         resume.Tags,
			"lastModified": resume.LastModified.Format(timeFormat),
		},
	})
}

func (h *Handler) remove(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	versionID := c.Param("id")
	c.Set("versionId", versionID)

	if err := h.Svc.Delete(c.Request.Context(), userID, versionID); err != nil {
		h.writeError(c, err, "failed to delete version")
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"deleted": true})
}

const timeFormat = time.RFC3339Nano

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "version or resume not found", nil)
	case errors.Is(err, ErrForbidden):
		respond.Error(c, http.StatusForbidden, "forbidden", "resume does not belong to caller", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, ErrConflict):
		respond.Error(c, http.StatusConflict, "conflict", "version number assignment conflicted, retry", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}

func queryInt(c *gin.Context, key string, def int) int {
	raw := c.Query(key)
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return val
}
