package services

import (
	"context"
	"database/sql"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/vidbatch/internal/client/client"
	"github.com/dmitrijs2005/vidbatch/internal/client/localdb"
	"github.com/dmitrijs2005/vidbatch/internal/client/models"
)

// fakeClient implements client.Client; unset hooks panic through the nil
// embedded interface, which flags unexpected calls.
type fakeClient struct {
	client.Client

	mu    sync.Mutex
	calls []string

	listFiles    func(category models.Category, subfolder string) ([]models.FileItem, error)
	uploadFile   func(filename string, body io.Reader, size int64, tr client.Transfer) (models.UploadResponse, error)
	deleteFile   func(path string) error
	bulkDelete   func(paths []string) (client.BulkOutcome, error)
	moveFile     func(path, dest string) (string, error)
	bulkMove     func(paths []string, dest string) (client.BulkOutcome, error)
	renameFile   func(path, name string) error
	deleteFolder func(category models.Category, name string) (int, error)
	createFolder func(category models.Category, name string) (string, error)
	defaultCfg   func() (models.ProcessingConfig, error)
	startBatch   func(req models.BatchRequest) (models.BatchJob, error)
	startSingle  func(req models.SingleRequest) (models.Job, error)
	jobStatus    func(id string) (models.Job, error)
	deleteJob    func(id string) error
	listProjects func(limit int, includeDeleted bool) ([]models.Project, error)
	deleteProj   func(id string, hard bool) error
	projectURLs  func(id string) (models.ProjectURLs, error)
	me           func() (models.User, error)
}

func (f *fakeClient) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeClient) count(call string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == call {
			n++
		}
	}
	return n
}

func (f *fakeClient) ListFiles(ctx context.Context, category models.Category, subfolder string) ([]models.FileItem, error) {
	f.record("ListFiles")
	return f.listFiles(category, subfolder)
}

func (f *fakeClient) UploadFile(ctx context.Context, category models.Category, subfolder, filename string, body io.Reader, size int64, tr client.Transfer) (models.UploadResponse, error) {
	f.record("UploadFile")
	return f.uploadFile(filename, body, size, tr)
}

func (f *fakeClient) DeleteFile(ctx context.Context, path string) error {
	f.record("DeleteFile")
	return f.deleteFile(path)
}

func (f *fakeClient) BulkDeleteFiles(ctx context.Context, paths []string) (client.BulkOutcome, error) {
	f.record("BulkDeleteFiles")
	return f.bulkDelete(paths)
}

func (f *fakeClient) MoveFile(ctx context.Context, path, dest string) (string, error) {
	f.record("MoveFile")
	return f.moveFile(path, dest)
}

func (f *fakeClient) BulkMoveFiles(ctx context.Context, paths []string, dest string) (client.BulkOutcome, error) {
	f.record("BulkMoveFiles")
	return f.bulkMove(paths, dest)
}

func (f *fakeClient) RenameFile(ctx context.Context, path, name string) error {
	f.record("RenameFile")
	return f.renameFile(path, name)
}

func (f *fakeClient) CreateFolder(ctx context.Context, category models.Category, name string) (string, error) {
	f.record("CreateFolder")
	return f.createFolder(category, name)
}

func (f *fakeClient) DeleteFolder(ctx context.Context, category models.Category, name string) (int, error) {
	f.record("DeleteFolder")
	return f.deleteFolder(category, name)
}

func (f *fakeClient) DefaultProcessingConfig(ctx context.Context) (models.ProcessingConfig, error) {
	f.record("DefaultProcessingConfig")
	return f.defaultCfg()
}

func (f *fakeClient) StartBatch(ctx context.Context, req models.BatchRequest) (models.BatchJob, error) {
	f.record("StartBatch")
	return f.startBatch(req)
}

func (f *fakeClient) StartSingle(ctx context.Context, req models.SingleRequest) (models.Job, error) {
	f.record("StartSingle")
	return f.startSingle(req)
}

func (f *fakeClient) JobStatus(ctx context.Context, id string) (models.Job, error) {
	f.record("JobStatus")
	return f.jobStatus(id)
}

func (f *fakeClient) DeleteJob(ctx context.Context, id string) error {
	f.record("DeleteJob")
	return f.deleteJob(id)
}

func (f *fakeClient) ListProjects(ctx context.Context, limit int, includeDeleted bool) ([]models.Project, error) {
	f.record("ListProjects")
	return f.listProjects(limit, includeDeleted)
}

func (f *fakeClient) DeleteProject(ctx context.Context, id string, hard bool) error {
	f.record("DeleteProject")
	return f.deleteProj(id, hard)
}

func (f *fakeClient) ProjectURLs(ctx context.Context, id string) (models.ProjectURLs, error) {
	f.record("ProjectURLs")
	return f.projectURLs(id)
}

func (f *fakeClient) Me(ctx context.Context) (models.User, error) {
	f.record("Me")
	return f.me()
}

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := localdb.Open(context.Background(), localdb.InMemory)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}
