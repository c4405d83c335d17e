package resumes

import (
	"time"

	"resume-builder-backend/resume/model"
)

type createRequest struct {
	Title   string        `json:"title"`
	Content model.Content `json:"content"`
	Tags    []string      `json:"tags"`
}

type updateRequest struct {
	Title   *string        `json:"title"`
	Content *model.Content `json:"content"`
	Tags    *[]string      `json:"tags"`

	CreateVersion  bool   `json:"createVersion"`
	VersionTitle   string `json:"versionTitle"`
	VersionChanges string `json:"versionChanges"`
}

type resumeResponse struct {
	ResumeID     string        `json:"resumeId"`
	Title        string        `json:"title"`
	Content      model.Content `json:"content"`
	Tags         []string      `json:"tags"`
	LastModified time.Time     `json:"lastModified"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

type listResponse struct {
	Items      []resumeResponse `json:"items"`
	TotalCount int              `json:"totalCount"`
	Limit      int              `json:"limit"`
	Offset     int              `json:"offset"`
}

func toResponse(r Resume) resumeResponse {
	tags := r.Tags
	if tags == nil {
		tags = []string{}
	}
	return resumeResponse{
		ResumeID:     r.ID,
		Title:        r.Title,
		Content:      r.Content,
		Tags:         tags,
		LastModified: r.LastModified,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}
