package cli

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/dmitrijs2005/vidbatch/internal/client/config"
	"github.com/dmitrijs2005/vidbatch/internal/client/jobs"
	"github.com/dmitrijs2005/vidbatch/internal/client/models"
	"github.com/dmitrijs2005/vidbatch/internal/client/services"
	"github.com/dmitrijs2005/vidbatch/internal/client/upload"
	"github.com/dmitrijs2005/vidbatch/internal/logging"
)

// Each fake embeds its interface; calling an unset hook panics on the nil
// embedded value, which flags unexpected calls.

type fakeFiles struct {
	services.FileService

	list      func(category models.Category, subfolder string, refresh bool) (services.Listing, error)
	upload    func(paths []string, dst upload.Destination, onProgress upload.FileFunc) ([]models.UploadResult, error)
	del       func(path string) error
	rename    func(category models.Category, subfolder, path, name string) error
	move      func(category models.Category, subfolder, path, dest string) (string, error)
	deleteSel func(sel *models.Selection, category models.Category, subfolder string) (models.BulkResult, error)
	moveSel   func(sel *models.Selection, category models.Category, subfolder, dest string) (models.BulkResult, error)
}

func (f *fakeFiles) List(_ context.Context, c models.Category, sub string, refresh bool) (services.Listing, error) {
	return f.list(c, sub, refresh)
}
func (f *fakeFiles) Upload(_ context.Context, paths []string, dst upload.Destination, fn upload.FileFunc) ([]models.UploadResult, error) {
	return f.upload(paths, dst, fn)
}
func (f *fakeFiles) Delete(_ context.Context, path string) error { return f.del(path) }
func (f *fakeFiles) Rename(_ context.Context, c models.Category, sub, path, name string) error {
	return f.rename(c, sub, path, name)
}
func (f *fakeFiles) Move(_ context.Context, c models.Category, sub, path, dest string) (string, error) {
	return f.move(c, sub, path, dest)
}
func (f *fakeFiles) DeleteSelection(_ context.Context, sel *models.Selection, c models.Category, sub string) (models.BulkResult, error) {
	defer sel.Clear()
	return f.deleteSel(sel, c, sub)
}
func (f *fakeFiles) MoveSelection(_ context.Context, sel *models.Selection, c models.Category, sub, dest string) (models.BulkResult, error) {
	defer sel.Clear()
	return f.moveSel(sel, c, sub, dest)
}

type fakeFolders struct {
	services.FolderService

	list       func(category models.Category) ([]models.Folder, error)
	create     func(category models.Category, name string) (string, error)
	del        func(category models.Category, name string) (int, error)
	deleteMany func(category models.Category, names []string) (models.BulkResult, error)
}

func (f *fakeFolders) List(_ context.Context, c models.Category) ([]models.Folder, error) {
	return f.list(c)
}
func (f *fakeFolders) Create(_ context.Context, c models.Category, name string) (string, error) {
	return f.create(c, name)
}
func (f *fakeFolders) Delete(_ context.Context, c models.Category, name string) (int, error) {
	return f.del(c, name)
}
func (f *fakeFolders) DeleteMany(_ context.Context, c models.Category, names []string) (models.BulkResult, error) {
	return f.deleteMany(c, names)
}

type fakeJobs struct {
	services.JobService

	defaultCfg   func() (models.ProcessingConfig, error)
	submitBatch  func(req models.BatchRequest) (models.TrackedJob, error)
	submitSingle func(req models.SingleRequest) (models.TrackedJob, error)
	status       func(id string) (models.Job, error)
	watch        func(id string, onUpdate jobs.UpdateFunc) (models.Job, error)
	tracked      func(activeOnly bool) ([]models.TrackedJob, error)
	remote       func() ([]models.Job, error)
	forget       func(id string) error
}

func (f *fakeJobs) DefaultConfig(context.Context) (models.ProcessingConfig, error) {
	return f.defaultCfg()
}
func (f *fakeJobs) SubmitBatch(_ context.Context, req models.BatchRequest) (models.TrackedJob, error) {
	return f.submitBatch(req)
}
func (f *fakeJobs) SubmitSingle(_ context.Context, req models.SingleRequest) (models.TrackedJob, error) {
	return f.submitSingle(req)
}
func (f *fakeJobs) Status(_ context.Context, id string) (models.Job, error) { return f.status(id) }
func (f *fakeJobs) Watch(_ context.Context, id string, fn jobs.UpdateFunc) (models.Job, error) {
	return f.watch(id, fn)
}
func (f *fakeJobs) Tracked(_ context.Context, activeOnly bool) ([]models.TrackedJob, error) {
	return f.tracked(activeOnly)
}
func (f *fakeJobs) Remote(context.Context) ([]models.Job, error) { return f.remote() }
func (f *fakeJobs) Forget(_ context.Context, id string) error  { return f.forget(id) }

type fakeProjects struct {
	services.ProjectService

	list      func(limit int, deleted bool) ([]models.Project, error)
	get       func(id string) (models.Project, error)
	del       func(id string, hard bool) error
	delMany   func(ids []string, hard bool) (models.BulkResult, error)
	urls      func(id string) (models.ProjectURLs, error)
	download  func(id, dir string) (models.BulkResult, error)
	downloadJ func(jobID, dir string) (models.BulkResult, error)
}

func (f *fakeProjects) List(_ context.Context, limit int, deleted bool) ([]models.Project, error) {
	return f.list(limit, deleted)
}
func (f *fakeProjects) Get(_ context.Context, id string) (models.Project, error) { return f.get(id) }
func (f *fakeProjects) Delete(_ context.Context, id string, hard bool) error  { return f.del(id, hard) }
func (f *fakeProjects) DeleteMany(_ context.Context, ids []string, hard bool) (models.BulkResult, error) {
	return f.delMany(ids, hard)
}
func (f *fakeProjects) URLs(_ context.Context, id string) (models.ProjectURLs, error) {
	return f.urls(id)
}
func (f *fakeProjects) Download(_ context.Context, id, dir string) (models.BulkResult, error) {
	return f.download(id, dir)
}
func (f *fakeProjects) DownloadOutputs(_ context.Context, jobID, dir string) (models.BulkResult, error) {
	return f.downloadJ(jobID, dir)
}

type fakeAuth struct {
	services.AuthService

	whoami func() (models.User, error)
	ping   func() (models.AuthStatus, error)
	status services.TokenStatus
	tokens []string
}

func (f *fakeAuth) WhoAmI(context.Context) (models.User, error)     { return f.whoami() }
func (f *fakeAuth) Ping(context.Context) (models.AuthStatus, error) { return f.ping() }
func (f *fakeAuth) TokenStatus() services.TokenStatus               { return f.status }
func (f *fakeAuth) Login(token string) services.TokenStatus {
	f.tokens = append(f.tokens, token)
	f.status = services.TokenStatus{State: services.TokenOpaque}
	return f.status
}

type testApp struct {
	*App
	out    *bytes.Buffer
	errOut *bytes.Buffer

	files    *fakeFiles
	folders  *fakeFolders
	jobs     *fakeJobs
	projects *fakeProjects
	auth     *fakeAuth
}

func newTestApp(t *testing.T, input string) *testApp {
	t.Helper()

	cfg := &config.Config{}
	cfg.LoadDefaults()

	ta := &testApp{
		out:      &bytes.Buffer{},
		errOut:   &bytes.Buffer{},
		files:    &fakeFiles{},
		folders:  &fakeFolders{},
		jobs:     &fakeJobs{},
		projects: &fakeProjects{},
		auth:     &fakeAuth{},
	}
	ta.App = &App{
		config:    cfg,
		log:       logging.Nop(),
		files:     ta.files,
		folders:   ta.folders,
		jobs:      ta.jobs,
		projects:  ta.projects,
		auth:      ta.auth,
		selection: models.ExplicitSelection(),
		reader:    bufio.NewReader(strings.NewReader(input)),
		out:       ta.out,
		errOut:    ta.errOut,
	}
	return ta
}

func (ta *testApp) run(args ...string) int {
	return ta.Run(context.Background(), args)
}
