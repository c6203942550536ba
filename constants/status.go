package constants

// JobStatus is the canonical status for ingestion jobs.
type JobStatus string

// Stable values (these exact strings appear in API responses).
const (
	JobStatusPending    JobStatus = "PENDING"    // accepted, waiting for a worker
	JobStatusProcessing JobStatus = "PROCESSING" // a worker owns the job
	JobStatusCompleted  JobStatus = "COMPLETED"  // terminal success, result attached
	JobStatusFailed     JobStatus = "FAILED"     // terminal failure, error attached
)

// IsTerminal reports whether no further transitions are possible.
func (s JobStatus) IsTerminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed
}
