package imports

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-builder-backend/internal/shared/server/middleware"
	"resume-builder-backend/internal/shared/server/respond"
)

const maxUploadSize = 10 << 20 // 10MB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches import routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resumes/import", h.importFile)
	rg.GET("/resumes/import/history", h.history)
}

func (h *Handler) importFile(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
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

	resume, imported, err := h.Svc.Import(c.Request.Context(), userID, fileHeader.Filename, file)
	if err != nil {
		switch {
		case errors.Is(err, ErrUnsupportedType):
			respond.Error(c, http.StatusUnsupportedMediaType, "unsupported_type", "only PDF and DOCX files can be imported", nil)
		case errors.Is(err, ErrEmptyDocument):
			respond.Error(c, http.StatusUnprocessableEntity, "empty_document", "no text could be extracted from the file", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to import resume", nil)
		}
		return
	}

	c.Set("resumeId", resume.ID)
	respond.JSON(c, http.StatusCreated, gin.H{
		"resumeId": resume.ID,
		"title":    resume.Title,
		"file": gin.H{
			"fileId":    imported.ID,
			"fileName":  imported.FileName,
			"mimeType":  imported.MimeType,
			"sizeBytes": imported.SizeBytes,
		},
	})
}

func (h *Handler) history(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	files, err := h.Svc.List(c.Request.Context(), userID, 20, 0)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list imports", nil)
		return
	}

	resp := make([]gin.H, 0, len(files))
	for _, file := range files {
		resp = append(resp, gin.H{
			"fileId":     file.ID,
			"resumeId":   file.ResumeID,
			"fileName":   file.FileName,
			"mimeType":   file.MimeType,
			"sizeBytes":  file.SizeBytes,
			"importedAt": file.CreatedAt,
		})
	}
	respond.JSON(c, http.StatusOK, resp)
}
