package model

import "time"

// RunStatus represents the current state of a pipeline run.
type RunStatus string

const (
	RunStatusQueued   RunStatus = "queued"
	RunStatusRunning  RunStatus = "running"
	RunStatusComplete RunStatus = "complete"
	RunStatusFailed   RunStatus = "failed"
)

// Run records one execution of a pipeline stage over a contact batch.
type Run struct {
	ID        string     `json:"id"`
	Stage     string     `json:"stage"`
	Input     string     `json:"input"`
	Status    RunStatus  `json:"status"`
	Result    *RunResult `json:"result,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// RunResult summarizes the outcome of a completed run.
type RunResult struct {
	ContactsIn  int    `json:"contacts_in"`
	ContactsOut int    `json:"contacts_out"`
	Flagged     int    `json:"flagged"`
	Output      string `json:"output,omitempty"`
	Error       string `json:"error,omitempty"`
}
