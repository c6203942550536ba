package common

import (
	"errors"
	"fmt"
)

// Error taxonomy of the ingestion core. Callers branch on these sentinels
// with errors.Is; everything else is an internal error.
var (
	// ErrUnsupportedMediaType is a caller error: the declared media type is
	// not one the pipeline handles. Rejected before anything is queued.
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	// ErrExtraction means OCR or rasterization failed hard.
	ErrExtraction = errors.New("extraction failed")
	// ErrTimeout is caller-facing only; the underlying job keeps running.
	ErrTimeout = errors.New("timed out waiting for job")
	// ErrJobNotFound covers stale or swept job ids.
	ErrJobNotFound = errors.New("job not found")
	// ErrJobFailed surfaces a terminal pipeline failure to a waiting caller.
	ErrJobFailed = errors.New("job failed")
	// ErrQueueFull rejects a submission when the queue has no free slot.
	ErrQueueFull = errors.New("processing queue is full")
	// ErrInvalidInput covers malformed submissions.
	ErrInvalidInput = errors.New("invalid input")
)

// WrapError annotates err with message, preserving the chain for errors.Is.
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
