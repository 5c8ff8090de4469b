// Package history records the outcome of every site build in SQLite.
package history

import "time"

// Status summarizes how a build went.
type Status string

const (
	StatusOK      Status = "ok"
	StatusPartial Status = "partial" // some sections failed to render
	StatusFailed  Status = "failed"
)

// Build is one recorded build.
type Build struct {
	ID          string        `json:"id"`
	StartedAt   time.Time     `json:"started_at"`
	Duration    time.Duration `json:"duration"`
	OutputDir   string        `json:"output_dir"`
	ContentFile string        `json:"content_file"`
	Sections    int           `json:"sections"`
	Assets      int           `json:"assets"`
	Errors      []string      `json:"errors"`
	Status      Status        `json:"status"`
}

// StatusFor derives a build status from its error state.
func StatusFor(fatal error, sectionErrors int) Status {
	switch {
	case fatal != nil:
		return StatusFailed
	case sectionErrors > 0:
		return StatusPartial
	default:
		return StatusOK
	}
}
