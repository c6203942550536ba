package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hrryniu/invoice-ingest/constants"
	"github.com/hrryniu/invoice-ingest/internal/common"
	"github.com/hrryniu/invoice-ingest/internal/entity"
)

// Pipeline is what the manager runs per job; *pipeline.Processor satisfies
// it and tests substitute stubs.
type Pipeline interface {
	Process(ctx context.Context, doc *entity.Document) (*entity.ExtractionResult, error)
}

// job is the live, manager-owned record. Status transitions are monotonic
// (Pending -> Processing -> Completed|Failed) and happen only under the
// manager's lock; done is closed exactly once, on the terminal transition.
type job struct {
	id          uuid.UUID
	doc         *entity.Document
	status      constants.JobStatus
	result      *entity.ExtractionResult
	errMessage  string
	submittedAt time.Time
	startedAt   *time.Time
	completedAt *time.Time
	done        chan struct{}
}

func (j *job) snapshot() entity.JobSnapshot {
	return entity.JobSnapshot{
		ID:           j.id,
		Status:       j.status,
		Result:       j.result,
		ErrorMessage: j.errMessage,
		SubmittedAt:  j.submittedAt,
		StartedAt:    j.startedAt,
		CompletedAt:  j.completedAt,
	}
}

// Manager owns the job collection and the worker pool draining it. It is the
// single owner of all job mutations; callers only ever see the id and
// read-only snapshots.
type Manager struct {
	proc      Pipeline
	logger    *slog.Logger
	workers   int
	timeout   time.Duration
	retention time.Duration

	ch   chan uuid.UUID
	wg   sync.WaitGroup
	once sync.Once

	// subMu guards closed and the channel send so Shutdown can never close
	// the queue under an in-flight Submit. Workers only need mu, so a full
	// queue still drains while a submitter blocks here.
	subMu  sync.Mutex
	closed bool

	mu   sync.Mutex
	jobs map[uuid.UUID]*job
}

type Option func(*Manager)

// WithWorkers bounds the processing pool. OCR is CPU/IO heavy, so the
// default stays at 1; per-worker FIFO order holds for any size.
func WithWorkers(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.workers = n
		}
	}
}
func WithQueueSize(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.ch = make(chan uuid.UUID, n)
		}
	}
}
func WithProcessTimeout(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.timeout = d
		}
	}
}

// WithRetention sets how long terminal jobs survive before Sweep removes
// them.
func WithRetention(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.retention = d
		}
	}
}

func NewManager(proc Pipeline, logger *slog.Logger, opts ...Option) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	m := &Manager{
		proc:      proc,
		logger:    logger,
		workers:   1,
		timeout:   3 * time.Minute,
		retention: time.Hour,
		ch:        make(chan uuid.UUID, 256),
		jobs:      make(map[uuid.UUID]*job),
	}
	for _, o := range opts {
		o(m)
	}
	m.start()
	return m
}

func (m *Manager) start() {
	m.once.Do(func() {
		for i := 0; i < m.workers; i++ {
			m.wg.Add(1)
			go func(workerID int) {
				defer m.wg.Done()
				m.logger.Info("worker started", "worker_id", workerID)

				for id := range m.ch {
					m.runJob(workerID, id)
				}

				m.logger.Info("worker stopped", "worker_id", workerID)
			}(i + 1)
		}
	})
}

// Submit validates the document, creates a Pending job and enqueues it.
// Always returns immediately: with the job id, or with ErrQueueFull when no
// queue slot is free. A full queue never blocks the submitter (or a
// concurrent Shutdown).
func (m *Manager) Submit(_ context.Context, doc *entity.Document) (uuid.UUID, error) {
	if _, ok := constants.ParseMediaType(string(doc.MediaType)); !ok {
		return uuid.Nil, fmt.Errorf("%w: %q", common.ErrUnsupportedMediaType, doc.MediaType)
	}

	j := &job{
		id:          uuid.New(),
		doc:         doc,
		status:      constants.JobStatusPending,
		submittedAt: time.Now().UTC(),
		done:        make(chan struct{}),
	}

	m.mu.Lock()
	m.jobs[j.id] = j
	m.mu.Unlock()

	m.subMu.Lock()
	defer m.subMu.Unlock()
	if m.closed {
		m.mu.Lock()
		delete(m.jobs, j.id)
		m.mu.Unlock()
		return uuid.Nil, fmt.Errorf("%w: queue is shutting down", common.ErrInvalidInput)
	}

	select {
	case m.ch <- j.id:
		m.logger.Info("queued document for processing", "job_id", j.id, "media_type", doc.MediaType)
	default:
		m.mu.Lock()
		delete(m.jobs, j.id)
		m.mu.Unlock()
		m.logger.Warn("queue full, rejecting submission", "job_id", j.id)
		return uuid.Nil, common.ErrQueueFull
	}
	return j.id, nil
}

// ProcessInline bypasses the queue entirely for synchronous callers. No job
// record is created.
func (m *Manager) ProcessInline(ctx context.Context, doc *entity.Document) (*entity.ExtractionResult, error) {
	if _, ok := constants.ParseMediaType(string(doc.MediaType)); !ok {
		return nil, fmt.Errorf("%w: %q", common.ErrUnsupportedMediaType, doc.MediaType)
	}
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()
	return m.proc.Process(ctx, doc)
}

// runJob claims one queued job, runs the pipeline and records the terminal
// state. Pipeline errors become Failed jobs; nothing escapes to kill the
// worker loop.
func (m *Manager) runJob(workerID int, id uuid.UUID) {
	m.mu.Lock()
	j, ok := m.jobs[id]
	if !ok || j.status != constants.JobStatusPending {
		// swept while queued, or already claimed
		m.mu.Unlock()
		return
	}
	now := time.Now().UTC()
	j.status = constants.JobStatusProcessing
	j.startedAt = &now
	doc := j.doc
	m.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	res, err := m.proc.Process(ctx, doc)
	cancel()

	m.mu.Lock()
	defer m.mu.Unlock()
	done := time.Now().UTC()
	j.completedAt = &done
	j.doc = nil // drop the byte buffer, it is not retained past extraction
	if err != nil {
		j.status = constants.JobStatusFailed
		j.errMessage = err.Error()
		m.logger.Error("processing failed", "worker_id", workerID, "job_id", id, "error", err)
	} else {
		j.status = constants.JobStatusCompleted
		j.result = res
		m.logger.Info("processed document", "worker_id", workerID, "job_id", id, "confidence", res.Confidence)
	}
	close(j.done)
}

// Status returns a read-only snapshot of a job.
func (m *Manager) Status(id uuid.UUID) (entity.JobSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[id]
	if !ok {
		return entity.JobSnapshot{}, common.ErrJobNotFound
	}
	return j.snapshot(), nil
}

// WaitFor blocks until the job reaches a terminal status or the timeout
// elapses. On timeout the job is NOT cancelled: it keeps processing and
// stays visible to later polls.
func (m *Manager) WaitFor(ctx context.Context, id uuid.UUID, timeout time.Duration) (*entity.ExtractionResult, error) {
	m.mu.Lock()
	j, ok := m.jobs[id]
	m.mu.Unlock()
	if !ok {
		return nil, common.ErrJobNotFound
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-j.done:
	case <-timer.C:
		return nil, fmt.Errorf("%w after %s", common.ErrTimeout, timeout)
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if j.status == constants.JobStatusFailed {
		return nil, fmt.Errorf("%w: %s", common.ErrJobFailed, j.errMessage)
	}
	return j.result, nil
}

// Sweep deletes terminal jobs whose completion is older than maxAge and
// returns how many were removed. Safe to call concurrently with submission
// and processing.
func (m *Manager) Sweep(maxAge time.Duration) int {
	cutoff := time.Now().UTC().Add(-maxAge)

	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for id, j := range m.jobs {
		if j.status.IsTerminal() && j.completedAt != nil && j.completedAt.Before(cutoff) {
			delete(m.jobs, id)
			removed++
		}
	}
	if removed > 0 {
		m.logger.Info("swept expired jobs", "removed", removed, "max_age", maxAge)
	}
	return removed
}

// StartSweeper runs Sweep on a periodic tick until ctx is cancelled.
func (m *Manager) StartSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Hour
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.Sweep(m.retention)
			}
		}
	}()
}

// Shutdown stops accepting submissions and drains the queue.
func (m *Manager) Shutdown(ctx context.Context) {
	m.subMu.Lock()
	if m.closed {
		m.subMu.Unlock()
		return
	}
	m.closed = true
	close(m.ch)
	m.subMu.Unlock()

	done := make(chan struct{})
	go func() { defer close(done); m.wg.Wait() }()

	select {
	case <-ctx.Done():
		m.logger.Warn("shutdown interrupted by context")
	case <-done:
		m.logger.Info("queue drained, shutdown complete")
	}
}
