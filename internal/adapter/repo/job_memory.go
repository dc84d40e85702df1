package repo

import (
	"context"
	"sync"

	"adcraft/internal/domain"
)

// JobRepositoryMemory implements domain.JobRepository with a process-local
// map. Entries live as long as the process; nothing is evicted.
type JobRepositoryMemory struct {
	mu   sync.RWMutex
	jobs map[string]*domain.Job
}

// NewMemoryJobRepository creates an empty in-memory job store.
func NewMemoryJobRepository() *JobRepositoryMemory {
	return &JobRepositoryMemory{jobs: make(map[string]*domain.Job)}
}

// Create stores a copy of job.
func (r *JobRepositoryMemory) Create(ctx context.Context, job *domain.Job) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.jobs[job.ID]; ok {
		return domain.ErrDuplicateJob
	}
	r.jobs[job.ID] = job.Clone()
	return nil
}

// Get returns a copy of the stored job.
func (r *JobRepositoryMemory) Get(ctx context.Context, jobID string) (*domain.Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	job, ok := r.jobs[jobID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return job.Clone(), nil
}

// Update replaces a processing job. Terminal jobs are never overwritten.
func (r *JobRepositoryMemory) Update(ctx context.Context, job *domain.Job) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.jobs[job.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if current.Status.Terminal() {
		return domain.ErrJobFinalized
	}
	r.jobs[job.ID] = job.Clone()
	return nil
}

// Len reports the number of stored jobs.
func (r *JobRepositoryMemory) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.jobs)
}

var _ domain.JobRepository = (*JobRepositoryMemory)(nil)
