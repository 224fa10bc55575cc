// Package api exposes job submission and inspection over HTTP.
package api

import (
	"time"

	"scribe/internal/queue"
)

// JobView is the wire representation of a queue job.
type JobView struct {
	ID              int64    `json:"id"`
	UUID            string   `json:"uuid"`
	SourcePath      string   `json:"source_path"`
	Title           string   `json:"title"`
	Status          string   `json:"status"`
	Language        string   `json:"language,omitempty"`
	OutputFiles     []string `json:"output_files,omitempty"`
	ProgressStage   string   `json:"progress_stage,omitempty"`
	ProgressPercent float64  `json:"progress_percent"`
	ProgressMessage string   `json:"progress_message,omitempty"`
	ErrorMessage    string   `json:"error_message,omitempty"`
	CreatedAt       string   `json:"created_at"`
	UpdatedAt       string   `json:"updated_at"`
	StartedAt       string   `json:"started_at,omitempty"`
	FinishedAt      string   `json:"finished_at,omitempty"`
}

// JobListResponse wraps a job listing.
type JobListResponse struct {
	Jobs []JobView `json:"jobs"`
}

// JobResponse wraps a single job.
type JobResponse struct {
	Job JobView `json:"job"`
}

// SubmitRequest is the payload for enqueuing a new job.
type SubmitRequest struct {
	Path string `json:"path"`
}

// HealthResponse reports queue counts per lifecycle state.
type HealthResponse struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	Processing int `json:"processing"`
	Completed  int `json:"completed"`
	Failed     int `json:"failed"`
}

// FromJob converts a stored job into its wire representation.
func FromJob(job *queue.Job) JobView {
	view := JobView{
		ID:              job.ID,
		UUID:            job.UUID,
		SourcePath:      job.SourcePath,
		Title:           job.Title,
		Status:          string(job.Status),
		Language:        job.Language,
		OutputFiles:     job.OutputFiles,
		ProgressStage:   job.ProgressStage,
		ProgressPercent: job.ProgressPercent,
		ProgressMessage: job.ProgressMessage,
		ErrorMessage:    job.ErrorMessage,
		CreatedAt:       formatTime(job.CreatedAt),
		UpdatedAt:       formatTime(job.UpdatedAt),
		StartedAt:       formatTime(job.StartedAt),
		FinishedAt:      formatTime(job.FinishedAt),
	}
	return view
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
