package client

import (
	"context"
	"io"

	"github.com/dmitrijs2005/vidbatch/internal/client/models"
)

// Client is the transport-agnostic contract of the video-processor backend.
type Client interface {
	Ping(ctx context.Context) (models.AuthStatus, error)
	Me(ctx context.Context) (models.User, error)

	ListFiles(ctx context.Context, category models.Category, subfolder string) ([]models.FileItem, error)
	UploadFile(ctx context.Context, category models.Category, subfolder, filename string, body io.Reader, size int64, tr Transfer) (models.UploadResponse, error)
	DeleteFile(ctx context.Context, filepath string) error
	BulkDeleteFiles(ctx context.Context, filepaths []string) (BulkOutcome, error)
	MoveFile(ctx context.Context, sourcePath, destinationFolder string) (string, error)
	BulkMoveFiles(ctx context.Context, filepaths []string, destinationFolder string) (BulkOutcome, error)
	RenameFile(ctx context.Context, filepath, newName string) error

	ListFolders(ctx context.Context, category models.Category) ([]models.Folder, error)
	CreateFolder(ctx context.Context, category models.Category, name string) (string, error)
	DeleteFolder(ctx context.Context, category models.Category, name string) (int, error)

	DefaultProcessingConfig(ctx context.Context) (models.ProcessingConfig, error)
	StartBatch(ctx context.Context, req models.BatchRequest) (models.BatchJob, error)
	StartSingle(ctx context.Context, req models.SingleRequest) (models.Job, error)
	JobStatus(ctx context.Context, jobID string) (models.Job, error)
	ListJobs(ctx context.Context) ([]models.Job, error)
	DeleteJob(ctx context.Context, jobID string) error

	ListProjects(ctx context.Context, limit int, includeDeleted bool) ([]models.Project, error)
	GetProject(ctx context.Context, id string) (models.Project, error)
	DeleteProject(ctx context.Context, id string, hard bool) error
	ProjectURLs(ctx context.Context, id string) (models.ProjectURLs, error)
}

// BulkOutcome is the backend's own accounting of a bulk file operation.
// Its counts are not trusted; see the bulk package.
type BulkOutcome struct {
	Succeeded   int
	Failed      int
	FailedItems []string
}

// Transfer observes the request body of an upload as the transport reads it.
// Done fires once, after the last body byte has been consumed.
type Transfer struct {
	Progress func(sent, total int64)
	Done     func()
}
