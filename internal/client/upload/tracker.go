package upload

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/vidbatch/internal/client/client"
	"github.com/dmitrijs2005/vidbatch/internal/client/models"
	"github.com/dmitrijs2005/vidbatch/internal/logging"
)

// Uploader is the slice of client.Client the tracker needs.
type Uploader interface {
	UploadFile(ctx context.Context, category models.Category, subfolder, filename string, body io.Reader, size int64, tr client.Transfer) (models.UploadResponse, error)
}

// Destination selects the upload endpoint and target folder.
type Destination struct {
	Category  models.Category
	Subfolder string
}

// FileFunc receives progress for the file at index i of a batch.
type FileFunc func(i int, f File, percent int)

type Tracker struct {
	up     Uploader
	policy Policy
	log    logging.Logger
}

func NewTracker(up Uploader, policy Policy, log logging.Logger) (*Tracker, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logging.Nop()
	}
	return &Tracker{up: up, policy: policy, log: log}, nil
}

// Upload sends one file. The outcome is always carried by the result; it
// never touches the local filesystem beyond reading f.
func (t *Tracker) Upload(ctx context.Context, f File, dst Destination, onProgress Func) models.UploadResult {
	src := source(f)
	progress := NewProgress(t.policy, onProgress)
	progress.Start()

	rc, err := f.Open()
	if err != nil {
		progress.Failed()
		return models.UploadFailed(src, fmt.Sprintf("open %s: %v", f.Name(), err))
	}
	defer rc.Close()

	resp, err := t.up.UploadFile(ctx, dst.Category, dst.Subfolder, f.Name(), rc, f.Size(), client.Transfer{
		Progress: progress.Transferred,
		Done:     progress.TransferComplete,
	})
	if err != nil {
		progress.Failed()
		t.log.Warn(ctx, "upload failed", "file", src, "category", string(dst.Category), "error", err)
		return models.UploadFailed(src, describe(err))
	}

	progress.Succeeded()
	t.log.Info(ctx, "uploaded", "file", src, "filepath", resp.Filepath, "size", resp.Size)
	return models.UploadSucceeded(src, resp)
}

// UploadAll uploads files one after another and stops at the first failure.
// The failing file's result is the last entry.
func (t *Tracker) UploadAll(ctx context.Context, files []File, dst Destination, onProgress FileFunc) []models.UploadResult {
	results := make([]models.UploadResult, 0, len(files))
	for i, f := range files {
		if err := ctx.Err(); err != nil {
			results = append(results, models.UploadFailed(source(f), describe(err)))
			break
		}

		var fn Func
		if onProgress != nil {
			idx, file := i, f
			fn = func(pct int) { onProgress(idx, file, pct) }
		}

		res := t.Upload(ctx, f, dst, fn)
		results = append(results, res)
		if !res.Success {
			break
		}
	}
	return results
}

// describe keeps transport and server failures distinguishable in the text.
func describe(err error) string {
	var apiErr *client.APIError
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "upload cancelled: " + err.Error()
	case errors.As(err, &apiErr):
		return "server rejected upload: " + apiErr.Error()
	case errors.Is(err, client.ErrUnavailable):
		return "network error: " + err.Error()
	default:
		return err.Error()
	}
}
