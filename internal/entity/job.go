package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/hrryniu/invoice-ingest/constants"
)

// JobSnapshot is a read-only view of an ingestion job handed to callers.
// The job manager owns the live record; snapshots never mutate after a job
// reaches a terminal status.
type JobSnapshot struct {
	ID           uuid.UUID           `json:"id"`
	Status       constants.JobStatus `json:"status"`
	Result       *ExtractionResult   `json:"result,omitempty"`
	ErrorMessage string              `json:"error,omitempty"`
	SubmittedAt  time.Time           `json:"submitted_at"`
	StartedAt    *time.Time          `json:"started_at,omitempty"`
	CompletedAt  *time.Time          `json:"completed_at,omitempty"`
}
