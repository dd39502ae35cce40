package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/vidbatch/internal/client/bulk"
	"github.com/dmitrijs2005/vidbatch/internal/client/client"
	"github.com/dmitrijs2005/vidbatch/internal/client/models"
	"github.com/dmitrijs2005/vidbatch/internal/client/outputs"
	"github.com/dmitrijs2005/vidbatch/internal/logging"
)

var (
	ErrNoOutputStore = errors.New("no output store configured")
	ErrNoAssets      = errors.New("nothing to download")
)

const (
	DefaultProjectLimit = 20
	MaxProjectLimit     = 100
)

type ProjectService interface {
	List(ctx context.Context, limit int, includeDeleted bool) ([]models.Project, error)
	Get(ctx context.Context, id string) (models.Project, error)
	Delete(ctx context.Context, id string, hard bool) error
	DeleteMany(ctx context.Context, ids []string, hard bool) (models.BulkResult, error)
	URLs(ctx context.Context, id string) (models.ProjectURLs, error)
	// Download saves the preview video, thumbnail and archive of a project.
	Download(ctx context.Context, id, dir string) (models.BulkResult, error)
	// DownloadOutputs saves the output files of a finished job.
	DownloadOutputs(ctx context.Context, jobID, dir string) (models.BulkResult, error)
}

type projectService struct {
	client     client.Client
	reconciler *bulk.Reconciler
	signed     outputs.Fetcher
	store      outputs.Fetcher
	log        logging.Logger
}

// NewProjectService builds a ProjectService. signed downloads project asset
// URLs; store reads job outputs and may be nil.
func NewProjectService(c client.Client, rec *bulk.Reconciler, signed, store outputs.Fetcher, log logging.Logger) ProjectService {
	if log == nil {
		log = logging.Nop()
	}
	if signed == nil {
		signed = outputs.HTTPFetcher{}
	}
	return &projectService{client: c, reconciler: rec, signed: signed, store: store, log: log}
}

func (s *projectService) List(ctx context.Context, limit int, includeDeleted bool) ([]models.Project, error) {
	switch {
	case limit <= 0:
		limit = DefaultProjectLimit
	case limit > MaxProjectLimit:
		limit = MaxProjectLimit
	}
	return s.client.ListProjects(ctx, limit, includeDeleted)
}

func (s *projectService) Get(ctx context.Context, id string) (models.Project, error) {
	return s.client.GetProject(ctx, id)
}

func (s *projectService) Delete(ctx context.Context, id string, hard bool) error {
	return s.client.DeleteProject(ctx, id, hard)
}

func (s *projectService) DeleteMany(ctx context.Context, ids []string, hard bool) (models.BulkResult, error) {
	return s.reconciler.Each(ctx, ids, func(ctx context.Context, id string) error {
		return s.client.DeleteProject(ctx, id, hard)
	})
}

func (s *projectService) URLs(ctx context.Context, id string) (models.ProjectURLs, error) {
	return s.client.ProjectURLs(ctx, id)
}

func (s *projectService) Download(ctx context.Context, id, dir string) (models.BulkResult, error) {
	urls, err := s.client.ProjectURLs(ctx, id)
	if err != nil {
		return models.BulkResult{}, err
	}
	var refs []string
	for _, u := range []string{urls.PreviewVideoURL, urls.PreviewThumbnailURL, urls.ZipURL} {
		if u != "" {
			refs = append(refs, u)
		}
	}
	if len(refs) == 0 {
		return models.BulkResult{}, fmt.Errorf("%w: project %s has no assets", ErrNoAssets, id)
	}
	return outputs.Download(ctx, s.signed, refs, dir, s.log)
}

func (s *projectService) DownloadOutputs(ctx context.Context, jobID, dir string) (models.BulkResult, error) {
	if s.store == nil {
		return models.BulkResult{}, ErrNoOutputStore
	}
	job, err := s.client.JobStatus(ctx, jobID)
	if err != nil {
		return models.BulkResult{}, err
	}
	if len(job.OutputFiles) == 0 {
		return models.BulkResult{}, fmt.Errorf("%w: job %s is %s with no output files", ErrNoAssets, jobID, job.Status)
	}
	return outputs.Download(ctx, s.store, job.OutputFiles, dir, s.log)
}
