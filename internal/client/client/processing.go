package client

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/vidbatch/internal/client/models"
)

var errEmptyJobID = errors.New("job id is required")

func (c *HTTPClient) DefaultProcessingConfig(ctx context.Context) (models.ProcessingConfig, error) {
	var cfg models.ProcessingConfig
	if err := c.do(ctx, http.MethodGet, "/processing/default-config", nil, nil, &cfg); err != nil {
		return models.ProcessingConfig{}, err
	}
	return cfg, nil
}

func (c *HTTPClient) StartBatch(ctx context.Context, req models.BatchRequest) (models.BatchJob, error) {
	var job models.BatchJob
	if err := c.do(ctx, http.MethodPost, "/processing/process-batch", nil, req, &job); err != nil {
		return models.BatchJob{}, err
	}
	if job.ID == "" {
		return models.BatchJob{}, malformed("process-batch response without job_id")
	}
	return job, nil
}

func (c *HTTPClient) StartSingle(ctx context.Context, req models.SingleRequest) (models.Job, error) {
	var job models.Job
	if err := c.do(ctx, http.MethodPost, "/processing/process-single", nil, req, &job); err != nil {
		return models.Job{}, err
	}
	if job.ID == "" {
		return models.Job{}, malformed("process-single response without job_id")
	}
	return job, nil
}

// JobStatus fetches one snapshot. A snapshot with an unknown status is
// reported as ErrMalformedResponse.
func (c *HTTPClient) JobStatus(ctx context.Context, jobID string) (models.Job, error) {
	if jobID == "" {
		return models.Job{}, errEmptyJobID
	}
	var job models.Job
	if err := c.do(ctx, http.MethodGet, "/processing/status/"+url.PathEscape(jobID), nil, nil, &job); err != nil {
		return models.Job{}, err
	}
	if !job.Status.Valid() {
		return models.Job{}, malformed("job %s: unknown status %q", jobID, job.Status)
	}
	if job.ID == "" {
		job.ID = jobID
	}
	return job, nil
}

func (c *HTTPClient) ListJobs(ctx context.Context) ([]models.Job, error) {
	var jobs []models.Job
	if err := c.do(ctx, http.MethodGet, "/processing/jobs", nil, nil, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

func (c *HTTPClient) DeleteJob(ctx context.Context, jobID string) error {
	if jobID == "" {
		return errEmptyJobID
	}
	return c.do(ctx, http.MethodDelete, "/processing/jobs/"+url.PathEscape(jobID), nil, nil, nil)
}
