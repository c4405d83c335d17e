package assist

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-builder-backend/internal/llm"
	"resume-builder-backend/internal/resumes"
	"resume-builder-backend/internal/shared/server/middleware"
	"resume-builder-backend/internal/shared/server/respond"
)

// Handler wires the AI assist endpoints. Endpoints that work on a stored
// resume fetch it through the resumes service so ownership is enforced
// the same way as everywhere else.
type Handler struct {
	Svc     *Service
	Resumes *resumes.Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, resumeSvc *resumes.Service) *Handler {
	return &Handler{Svc: svc, Resumes: resumeSvc}
}

// RegisterRoutes attaches assist routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/ai/enhance-bullet", h.enhanceBullet)
	rg.POST("/ai/summary", h.summary)
	rg.POST("/ai/cover-letter", h.coverLetter)
	rg.POST("/ai/ats-score", h.atsScore)
}

type enhanceBulletRequest struct {
	Bullet string `json:"bullet"`
	Role   string `json:"role"`
}

func (h *Handler) enhanceBullet(c *gin.Context) {
	var req enhanceBulletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	result, err := h.Svc.EnhanceBullet(c.Request.Context(), req.Bullet, req.Role)
	if err != nil {
		h.writeError(c, err, "failed to enhance bullet")
		return
	}
	respond.JSON(c, http.StatusOK, result)
}

type summaryRequest struct {
	ResumeID   string `json:"resumeId"`
	TargetRole string `json:"targetRole"`
}

func (h *Handler) summary(c *gin.Context) {
	var req summaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	c.Set("resumeId", req.ResumeID)

	resume, err := h.fetchResume(c, req.ResumeID)
	if err != nil {
		return
	}

	summary, err := h.Svc.Summary(c.Request.Context(), resume.Content, req.TargetRole)
	if err != nil {
		h.writeError(c, err, "failed to generate summary")
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"summary": summary})
}

type coverLetterRequest struct {
	ResumeID       string `json:"resumeId"`
	JobDescription string `json:"jobDescription"`
	Company        string `json:"company"`
}

func (h *Handler) coverLetter(c *gin.Context) {
	var req coverLetterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	c.Set("resumeId", req.ResumeID)

	resume, err := h.fetchResume(c, req.ResumeID)
	if err != nil {
		return
	}

	letter, err := h.Svc.CoverLetter(c.Request.Context(), resume.Content, req.JobDescription, req.Company)
	if err != nil {
		h.writeError(c, err, "failed to generate cover letter")
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"coverLetter": letter})
}

type atsScoreRequest struct {
	ResumeID       string `json:"resumeId"`
	JobDescription string `json:"jobDescription"`
}

func (h *Handler) atsScore(c *gin.Context) {
	var req atsScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	c.Set("resumeId", req.ResumeID)

	resume, err := h.fetchResume(c, req.ResumeID)
	if err != nil {
		return
	}

	result, err := h.Svc.ATSScore(c.Request.Context(), resume.Content, req.JobDescription)
	if err != nil {
		h.writeError(c, err, "failed to score resume")
		return
	}
	respond.JSON(c, http.StatusOK, result)
}

// fetchResume loads the caller's resume and writes the error response
// itself on failure.
func (h *Handler) fetchResume(c *gin.Context, resumeID string) (resumes.Resume, error) {
	userID := middleware.UserIDFromContext(c)
	resume, err := h.Resumes.Get(c.Request.Context(), userID, resumeID)
	if err != nil {
		switch {
		case errors.Is(err, resumes.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
		case errors.Is(err, resumes.ErrForbidden):
			respond.Error(c, http.StatusForbidden, "forbidden", "resume does not belong to caller", nil)
		case errors.Is(err, resumes.ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch resume", nil)
		}
		return resumes.Resume{}, err
	}
	return resume, nil
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, llm.ErrNotConfigured):
		respond.Error(c, http.StatusServiceUnavailable, "service_unavailable", "AI assistance is not configured", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
