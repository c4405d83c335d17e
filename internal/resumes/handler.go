package resumes

import (
	"errors"
	"net/http"
	"strconv"

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

// RegisterRoutes attaches resume routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resumes", h.create)
	rg.GET("/resumes", h.list)
	rg.GET("/resumes/:id", h.get)
	rg.PUT("/resumes/:id", h.update)
	rg.DELETE("/resumes/:id", h.remove)
	rg.POST("/resumes/:id/duplicate", h.duplicate)
}

func (h *Handler) create(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	resume, err := h.Svc.Create(c.Request.Context(), userID, req.Title, req.Content, req.Tags)
	if err != nil {
		h.writeError(c, err, "failed to create resume")
		return
	}

	c.Set("resumeId", resume.ID)
	respond.JSON(c, http.StatusCreated, toResponse(resume))
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	filter := ListFilter{
		Search: c.Query("search"),
		Tag:    c.Query("tag"),
		Limit:  queryInt(c, "limit", 20),
		Offset: queryInt(c, "offset", 0),
	}

	resumes, total, err := h.Svc.List(c.Request.Context(), userID, filter)
	if err != nil {
		h.writeError(c, err, "failed to list resumes")
		return
	}

	items := make([]resumeResponse, 0, len(resumes))
	for _, r := range resumes {
		items = append(items, toResponse(r))
	}
	respond.JSON(c, http.StatusOK, listResponse{
		Items:      items,
		TotalCount: total,
		Limit:      filter.Limit,
		Offset:     filter.Offset,
	})
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	resumeID := c.Param("id")
	c.Set("resumeId", resumeID)

	resume, err := h.Svc.Get(c.Request.Context(), userID, resumeID)
	if err != nil {
		h.writeError(c, err, "failed to fetch resume")
		return
	}
	respond.JSON(c, http.StatusOK, toResponse(resume))
}

func (h *Handler) update(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	resumeID := c.Param("id")
	c.Set("resumeId", resumeID)

	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	resume, err := h.Svc.Update(c.Request.Context(), userID, resumeID, UpdateInput{
		Title:          req.Title,
		Content:        req.Content,
		Tags:           req.Tags,
		CreateVersion:  req.CreateVersion,
		VersionTitle:   req.VersionTitle,
		VersionChanges: req.VersionChanges,
	})
	if err != nil {
		h.writeError(c, err, "failed to update resume")
		return
	}
	respond.JSON(c, http.StatusOK, toResponse(resume))
}

func (h *Handler) remove(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	resumeID := c.Param("id")
	c.Set("resumeId", resumeID)

	if err := h.Svc.Delete(c.Request.Context(), userID, resumeID); err != nil {
		h.writeError(c, err, "failed to delete resume")
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) duplicate(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	resumeID := c.Param("id")
	c.Set("resumeId", resumeID)

	resume, err := h.Svc.Duplicate(c.Request.Context(), userID, resumeID)
	if err != nil {
		h.writeError(c, err, "failed to duplicate resume")
		return
	}
	respond.JSON(c, http.StatusCreated, toResponse(resume))
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
	case errors.Is(err, ErrForbidden):
		respond.Error(c, http.StatusForbidden, "forbidden", "resume does not belong to caller", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
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
