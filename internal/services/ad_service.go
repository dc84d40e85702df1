package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"adcraft/internal/adcopy"
	"adcraft/internal/domain"
	"adcraft/internal/providers/image"
	"adcraft/internal/providers/prompt"
)

const (
	completionErrorPrefix = "Error communicating with completion API: "
	timeoutErrorMessage   = "generation timed out"

	// terminalWriteTimeout bounds the final job write, which outlives the
	// request context.
	terminalWriteTimeout = 10 * time.Second
)

// AdServiceOptions wires the dependencies of AdService.
type AdServiceOptions struct {
	Jobs      domain.JobRepository
	Completer prompt.Completer
	Images    image.URLBuilder
	Logger    zerolog.Logger
	// JobTimeout fails jobs still processing after this long. Zero disables it.
	JobTimeout time.Duration
	Now        func() time.Time
	NewID      func() string
}

// AdService runs the submission pipeline and answers status queries.
type AdService struct {
	jobs       domain.JobRepository
	completer  prompt.Completer
	images     image.URLBuilder
	log        zerolog.Logger
	jobTimeout time.Duration
	now        func() time.Time
	newID      func() string
}

func NewAdService(opts AdServiceOptions) *AdService {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	newID := opts.NewID
	if newID == nil {
		newID = uuid.NewString
	}
	images := opts.Images
	if images == nil {
		images = image.NewPollinationsURLBuilder("")
	}
	return &AdService{
		jobs:       opts.Jobs,
		completer:  opts.Completer,
		images:     images,
		log:        opts.Logger,
		jobTimeout: opts.JobTimeout,
		now:        now,
		newID:      newID,
	}
}

// Submit creates a job and runs the completion synchronously; the call blocks
// until the model answers or fails. Completion and decode failures are
// recorded on the job. The returned error is non-nil only when the job store
// fails.
func (s *AdService) Submit(ctx context.Context, req domain.AdRequest) (*domain.Job, error) {
	job := domain.NewJob(s.newID(), req, s.now())
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}
	log := s.log.With().Str("job_id", job.ID).Str("provider", s.completer.Name()).Logger()

	text := prompt.BuildAdPrompt(req)
	started := s.now()
	raw, err := s.completer.Complete(ctx, prompt.CompletionRequest{Prompt: text, Ad: req})
	if err == nil {
		var ad adcopy.Copy
		ad, err = adcopy.Decode(raw)
		if err == nil {
			return s.finish(ctx, log, job, ad, s.now().Sub(started))
		}
		log.Debug().Str("raw", raw).Msg("model reply rejected")
	}
	log.Error().Err(err).Msg("completion failed")
	job.MarkFailed(completionErrorPrefix+err.Error(), s.now())
	if err := s.saveTerminal(ctx, job); err != nil {
		return nil, fmt.Errorf("update job: %w", err)
	}
	return job, nil
}

func (s *AdService) finish(ctx context.Context, log zerolog.Logger, job *domain.Job, ad adcopy.Copy, took time.Duration) (*domain.Job, error) {
	log.Debug().
		Str("ad_headline", ad.Headline).
		Str("ad_description", ad.Description).
		Str("relevant_hashtags", ad.Hashtags).
		Str("ad_image_prompt", ad.ImagePrompt).
		Dur("took", took).
		Msg("model reply decoded")

	if !ad.Complete() {
		// Left processing; Status fails it once JobTimeout elapses.
		log.Warn().Msg("model reply missing required fields, job stays processing")
		return job, nil
	}
	job.MarkReady(domain.AdResult{
		AdHeadline:       ad.Headline,
		AdDescription:    ad.Description,
		RelevantHashtags: ad.Hashtags,
		ImageURL:         s.images.URL(ad.ImagePrompt),
	}, s.now())
	if err := s.saveTerminal(ctx, job); err != nil {
		return nil, fmt.Errorf("update job: %w", err)
	}
	log.Info().Msg("ad ready")
	return job, nil
}

// saveTerminal records a finished job even when the submitter has gone away.
func (s *AdService) saveTerminal(ctx context.Context, job *domain.Job) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), terminalWriteTimeout)
	defer cancel()
	return s.jobs.Update(ctx, job)
}

// Status returns the job, failing it first when it has been processing for
// longer than the job timeout.
func (s *AdService) Status(ctx context.Context, jobID string) (*domain.Job, error) {
	job, err := s.jobs.Get(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.Status != domain.JobStatusProcessing || s.jobTimeout <= 0 {
		return job, nil
	}
	now := s.now()
	if now.Sub(job.CreatedAt) < s.jobTimeout {
		return job, nil
	}
	job.MarkFailed(timeoutErrorMessage, now)
	if err := s.jobs.Update(ctx, job); err != nil {
		if errors.Is(err, domain.ErrJobFinalized) {
			// Another request finished it first.
			return s.jobs.Get(ctx, jobID)
		}
		return nil, err
	}
	s.log.Warn().Str("job_id", jobID).Dur("timeout", s.jobTimeout).Msg("job expired")
	return job, nil
}

// Exists reports whether a job with the id has been submitted.
func (s *AdService) Exists(ctx context.Context, jobID string) (bool, error) {
	if jobID == "" {
		return false, nil
	}
	_, err := s.jobs.Get(ctx, jobID)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
