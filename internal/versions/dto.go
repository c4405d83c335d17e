package versions

import "time"

type createRequest struct {
	Title    string    `json:"title"`
	Changes  string    `json:"changes"`
	Snapshot *Snapshot `json:"snapshot"`
}

// versionSummary is the list shape: everything except the snapshot.
type versionSummary struct {
	VersionID     string    `json:"versionId"`
	ResumeID      string    `json:"resumeId"`
	VersionNumber int       `json:"versionNumber"`
	Title         string    `json:"title"`
	Changes       string    `json:"changes"`
	CreatedBy     string    `json:"createdBy"`
	CreatedAt     time.Time `json:"createdAt"`
}

type versionResponse struct {
	versionSummary
	Snapshot Snapshot `json:"snapshot"`
}

type listResponse struct {
	Items      []versionSummary `json:"items"`
	TotalCount int              `json:"totalCount"`
	Limit      int              `json:"limit"`
	Offset     int              `json:"offset"`
}

func toSummary(v Version) versionSummary {
	return versionSummary{
		VersionID:     v.ID,
		ResumeID:      v.ResumeID,
		VersionNumber: v.VersionNumber,
		Title:         v.Title,
		Changes:       v.Changes,
		CreatedBy:     v.CreatedBy,
		CreatedAt:     v.CreatedAt,
	}
}

func toResponse(v Version) versionResponse {
	return versionResponse{
		versionSummary: toSummary(v),
		Snapshot:       v.Snapshot,
	}
}
