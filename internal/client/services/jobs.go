package services

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/vidbatch/internal/client/client"
	"github.com/dmitrijs2005/vidbatch/internal/client/jobs"
	"github.com/dmitrijs2005/vidbatch/internal/client/models"
	jobrepo "github.com/dmitrijs2005/vidbatch/internal/client/repositories/jobs"
	"github.com/dmitrijs2005/vidbatch/internal/logging"
)

type JobService interface {
	DefaultConfig(ctx context.Context) (models.ProcessingConfig, error)
	SubmitBatch(ctx context.Context, req models.BatchRequest) (models.TrackedJob, error)
	SubmitSingle(ctx context.Context, req models.SingleRequest) (models.TrackedJob, error)
	Status(ctx context.Context, id string) (models.Job, error)
	// Watch polls the job until it finishes and returns its terminal
	// snapshot. Every snapshot is passed to onUpdate.
	Watch(ctx context.Context, id string, onUpdate jobs.UpdateFunc) (models.Job, error)
	Tracked(ctx context.Context, activeOnly bool) ([]models.TrackedJob, error)
	Remote(ctx context.Context) ([]models.Job, error)
	Forget(ctx context.Context, id string) error
}

type jobService struct {
	client client.Client
	poller *jobs.Poller
	repo   jobrepo.Repository
	log    logging.Logger
	now    func() time.Time
}

// NewJobService builds a JobService. repo may be nil, which disables the
// local job history.
func NewJobService(c client.Client, poller *jobs.Poller, repo jobrepo.Repository, log logging.Logger) JobService {
	if log == nil {
		log = logging.Nop()
	}
	return &jobService{client: c, poller: poller, repo: repo, log: log, now: time.Now}
}

func (s *jobService) DefaultConfig(ctx context.Context) (models.ProcessingConfig, error) {
	cfg, err := s.client.DefaultProcessingConfig(ctx)
	if err != nil {
		if client.IsAuthError(err) || ctx.Err() != nil {
			return models.ProcessingConfig{}, err
		}
		s.log.Warn(ctx, "using built-in processing defaults", "error", err)
		return models.DefaultProcessingConfig(), nil
	}
	return cfg, nil
}

func (s *jobService) SubmitBatch(ctx context.Context, req models.BatchRequest) (models.TrackedJob, error) {
	if err := req.Validate(); err != nil {
		return models.TrackedJob{}, err
	}
	created, err := s.client.StartBatch(ctx, req)
	if err != nil {
		return models.TrackedJob{}, err
	}

	now := s.now()
	t := models.TrackedJob{
		Job:       models.Job{ID: created.ID, Status: models.JobPending, Message: created.Message},
		Kind:      models.JobKindBatch,
		TotalJobs: created.TotalJobs,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.save(ctx, t)
	return t, nil
}

func (s *jobService) SubmitSingle(ctx context.Context, req models.SingleRequest) (models.TrackedJob, error) {
	if err := req.Validate(); err != nil {
		return models.TrackedJob{}, err
	}
	job, err := s.client.StartSingle(ctx, req)
	if err != nil {
		return models.TrackedJob{}, err
	}
	if job.Status == "" {
		job.Status = models.JobPending
	}

	now := s.now()
	t := models.TrackedJob{Job: job, Kind: models.JobKindSingle, TotalJobs: 1, CreatedAt: now, UpdatedAt: now}
	s.save(ctx, t)
	return t, nil
}

func (s *jobService) Status(ctx context.Context, id string) (models.Job, error) {
	job, err := s.client.JobStatus(ctx, id)
	if err != nil {
		return models.Job{}, err
	}
	s.record(ctx, job)
	return job, nil
}

func (s *jobService) Watch(ctx context.Context, id string, onUpdate jobs.UpdateFunc) (models.Job, error) {
	h, err := s.poller.Start(ctx, id, func(job models.Job) {
		s.record(ctx, job)
		if onUpdate != nil {
			onUpdate(job)
		}
	})
	if err != nil {
		return models.Job{}, err
	}
	defer h.Stop()

	job, err := h.Wait(context.Background())
	if err != nil && ctx.Err() != nil {
		return models.Job{}, ctx.Err()
	}
	return job, err
}

func (s *jobService) Tracked(ctx context.Context, activeOnly bool) ([]models.TrackedJob, error) {
	if s.repo == nil {
		return nil, nil
	}
	if activeOnly {
		return s.repo.ListActive(ctx)
	}
	return s.repo.List(ctx)
}

func (s *jobService) Remote(ctx context.Context) ([]models.Job, error) {
	return s.client.ListJobs(ctx)
}

// Forget stops tracking the job on the backend and drops it from the local
// history. A job the backend no longer knows is not an error.
func (s *jobService) Forget(ctx context.Context, id string) error {
	if h, ok := s.poller.Active(id); ok {
		h.Stop()
	}
	if err := s.client.DeleteJob(ctx, id); err != nil && !errors.Is(err, client.ErrNotFound) {
		return err
	}
	if s.repo == nil {
		return nil
	}
	return s.repo.Delete(ctx, id)
}

// record stores a fresh snapshot of a job this client already tracks.
func (s *jobService) record(ctx context.Context, job models.Job) {
	if s.repo == nil {
		return
	}
	t, err := s.repo.Get(ctx, job.ID)
	if errors.Is(err, jobrepo.ErrNotFound) {
		return
	}
	if err != nil {
		s.log.Warn(ctx, "job history read failed", "job_id", job.ID, "error", err)
		return
	}
	t.Job = job
	t.UpdatedAt = s.now()
	s.save(ctx, t)
}

func (s *jobService) save(ctx context.Context, t models.TrackedJob) {
	if s.repo == nil {
		return
	}
	if err := s.repo.Upsert(ctx, t); err != nil {
		s.log.Warn(ctx, "job history write failed", "job_id", t.ID, "error", err)
	}
}
