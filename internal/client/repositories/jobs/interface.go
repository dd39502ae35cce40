package jobs

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/vidbatch/internal/client/models"
)

var ErrNotFound = errors.New("job not tracked")

type Repository interface {
	// Upsert stores the job. CreatedAt and Kind of an existing row are kept.
	Upsert(ctx context.Context, job models.TrackedJob) error

	Get(ctx context.Context, id string) (models.TrackedJob, error)

	// List returns every tracked job, newest first.
	List(ctx context.Context) ([]models.TrackedJob, error)

	// ListActive returns the jobs whose last known status is not terminal.
	ListActive(ctx context.Context) ([]models.TrackedJob, error)

	Delete(ctx context.Context, id string) error
}
