package outputs

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/dmitrijs2005/vidbatch/internal/client/bulk"
	"github.com/dmitrijs2005/vidbatch/internal/client/models"
	"github.com/dmitrijs2005/vidbatch/internal/filex"
	"github.com/dmitrijs2005/vidbatch/internal/logging"
)

// Download fetches every ref into dir, one at a time, naming each file after
// the last element of its ref. A failed ref leaves no file behind.
func Download(ctx context.Context, f Fetcher, refs []string, dir string, log logging.Logger) (models.BulkResult, error) {
	if len(refs) == 0 {
		return models.BulkResult{}, bulk.ErrEmptySelection
	}
	if log == nil {
		log = logging.Nop()
	}
	dir, err := filex.EnsureDir(dir)
	if err != nil {
		return models.BulkResult{}, err
	}

	res := models.BulkResult{Attempted: len(refs)}
	for _, ref := range refs {
		dest, err := fetchOne(ctx, f, ref, dir)
		if err != nil {
			log.Warn(ctx, "download failed", "ref", ref, "error", err)
			res.Failed++
			res.FailedItems = append(res.FailedItems, ref)
			continue
		}
		log.Debug(ctx, "downloaded", "ref", ref, "path", dest)
		res.Succeeded++
	}
	return res, nil
}

func fetchOne(ctx context.Context, f Fetcher, ref, dir string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name := FileName(ref)
	if name == "" {
		return "", fmt.Errorf("%w: cannot name %q", ErrFetch, ref)
	}

	return filex.WriteAtomic(dir, name, func(w io.Writer) error {
		_, err := f.Fetch(ctx, ref, w)
		return err
	})
}

// FileName derives a local file name from a URL or object key, ignoring any
// query string.
func FileName(ref string) string {
	if i := strings.IndexAny(ref, "?#"); i >= 0 {
		ref = ref[:i]
	}
	name := path.Base(strings.TrimRight(ref, "/"))
	switch name {
	case ".", "/", "..":
		return ""
	}
	return name
}
