package repo

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"adcraft/internal/domain"
)

const (
	redisJobKeyPrefix = "adcraft:job:"
	redisMaxTxRetries = 5
)

// JobRepositoryRedis implements domain.JobRepository with one JSON document
// per job key.
type JobRepositoryRedis struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedisJobRepository creates a Redis-backed job store. A zero ttl keeps
// jobs forever.
func NewRedisJobRepository(client redis.UniversalClient, ttl time.Duration) *JobRepositoryRedis {
	if ttl < 0 {
		ttl = 0
	}
	return &JobRepositoryRedis{client: client, ttl: ttl}
}

func redisJobKey(id string) string {
	return redisJobKeyPrefix + id
}

// Create stores the job unless the key already exists.
func (r *JobRepositoryRedis) Create(ctx context.Context, job *domain.Job) error {
	data, err := encodeJob(job)
	if err != nil {
		return err
	}
	ok, err := r.client.SetNX(ctx, redisJobKey(job.ID), data, r.ttl).Result()
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrDuplicateJob
	}
	return nil
}

// Get loads the job document.
func (r *JobRepositoryRedis) Get(ctx context.Context, jobID string) (*domain.Job, error) {
	data, err := r.client.Get(ctx, redisJobKey(jobID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return decodeJob(data)
}

// Update rewrites a processing job inside an optimistic transaction so two
// writers cannot both finalize it.
func (r *JobRepositoryRedis) Update(ctx context.Context, job *domain.Job) error {
	data, err := encodeJob(job)
	if err != nil {
		return err
	}
	key := redisJobKey(job.ID)
	txf := func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return domain.ErrNotFound
			}
			return err
		}
		current, err := decodeJob(raw)
		if err != nil {
			return err
		}
		if current.Status.Terminal() {
			return domain.ErrJobFinalized
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, redis.KeepTTL)
			return nil
		})
		return err
	}
	for i := 0; i < redisMaxTxRetries; i++ {
		err = r.client.Watch(ctx, txf, key)
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
	}
	return err
}

var _ domain.JobRepository = (*JobRepositoryRedis)(nil)
