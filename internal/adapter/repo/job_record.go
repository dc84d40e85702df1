package repo

import (
	"encoding/json"
	"fmt"
	"time"

	"adcraft/internal/domain"
)

// jobRecord is the serialized form of a job in document stores.
type jobRecord struct {
	ID        string           `json:"id"`
	Status    domain.JobStatus `json:"status"`
	Request   domain.AdRequest `json:"request"`
	Result    *domain.AdResult `json:"result,omitempty"`
	Error     string           `json:"error,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

func encodeJob(job *domain.Job) ([]byte, error) {
	data, err := json.Marshal(jobRecord{
		ID:        job.ID,
		Status:    job.Status,
		Request:   job.Request,
		Result:    job.Result,
		Error:     job.Error,
		CreatedAt: job.CreatedAt,
		UpdatedAt: job.UpdatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("encode job %s: %w", job.ID, err)
	}
	return data, nil
}

func decodeJob(data []byte) (*domain.Job, error) {
	var rec jobRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode job: %w", err)
	}
	return &domain.Job{
		ID:        rec.ID,
		Status:    rec.Status,
		Request:   rec.Request,
		Result:    rec.Result,
		Error:     rec.Error,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}, nil
}
