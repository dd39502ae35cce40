package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/vidbatch/internal/client/bulk"
	"github.com/dmitrijs2005/vidbatch/internal/client/client"
	"github.com/dmitrijs2005/vidbatch/internal/client/models"
	"github.com/dmitrijs2005/vidbatch/internal/client/repositories/files"
	"github.com/dmitrijs2005/vidbatch/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/vidbatch/internal/client/upload"
	"github.com/dmitrijs2005/vidbatch/internal/logging"
)

// Listing is a file listing together with where it came from.
type Listing struct {
	Items []models.FileItem
	// Cached is set when Items were read from the local cache.
	Cached bool
	// Stale is set when the backend could not be reached and Items are the
	// last cached copy.
	Stale    bool
	SyncedAt time.Time
}

type FileService interface {
	List(ctx context.Context, category models.Category, subfolder string, refresh bool) (Listing, error)
	Upload(ctx context.Context, paths []string, dst upload.Destination, onProgress upload.FileFunc) ([]models.UploadResult, error)
	Delete(ctx context.Context, path string) error
	Rename(ctx context.Context, category models.Category, subfolder, path, newName string) error
	Move(ctx context.Context, category models.Category, subfolder, path, dest string) (string, error)

	// DeleteSelection and MoveSelection clear sel once they return,
	// whatever the outcome.
	DeleteSelection(ctx context.Context, sel *models.Selection, category models.Category, subfolder string) (models.BulkResult, error)
	MoveSelection(ctx context.Context, sel *models.Selection, category models.Category, subfolder, dest string) (models.BulkResult, error)
}

type FileOptions struct {
	CacheTTL time.Duration
	// PreferBulk sends one bulk request instead of one request per file.
	PreferBulk bool
}

type fileService struct {
	client     client.Client
	cache      files.Repository
	synced     metadata.SyncTracker
	reconciler *bulk.Reconciler
	tracker    *upload.Tracker
	opts       FileOptions
	log        logging.Logger
	now        func() time.Time
}

// NewFileService builds a FileService. cache and synced may be nil, which
// disables caching.
func NewFileService(c client.Client, cache files.Repository, synced metadata.SyncTracker,
	rec *bulk.Reconciler, tracker *upload.Tracker, opts FileOptions, log logging.Logger) FileService {
	if log == nil {
		log = logging.Nop()
	}
	if cache == nil || synced == nil {
		cache, synced = nil, nil
	}
	return &fileService{
		client:     c,
		cache:      cache,
		synced:     synced,
		reconciler: rec,
		tracker:    tracker,
		opts:       opts,
		log:        log,
		now:        time.Now,
	}
}

func (s *fileService) List(ctx context.Context, category models.Category, subfolder string, refresh bool) (Listing, error) {
	key := files.Key{Category: category, Subfolder: subfolder}

	if !refresh && s.opts.CacheTTL > 0 {
		if l, ok := s.cached(ctx, key); ok && s.now().Sub(l.SyncedAt) < s.opts.CacheTTL {
			return l, nil
		}
	}

	items, err := s.client.ListFiles(ctx, category, subfolder)
	if err != nil {
		if !client.IsAuthError(err) && ctx.Err() == nil {
			if l, ok := s.cached(ctx, key); ok {
				s.log.Warn(ctx, "serving cached listing", "listing", key.String(), "error", err)
				l.Stale = true
				return l, nil
			}
		}
		return Listing{}, err
	}

	at := s.now()
	s.store(ctx, key, items, at)
	return Listing{Items: items, SyncedAt: at}, nil
}

func (s *fileService) cached(ctx context.Context, key files.Key) (Listing, bool) {
	if s.cache == nil {
		return Listing{}, false
	}
	at, ok, err := s.synced.SyncedAt(ctx, key.String())
	if err != nil || !ok {
		return Listing{}, false
	}
	items, err := s.cache.List(ctx, key)
	if err != nil {
		s.log.Warn(ctx, "cache read failed", "listing", key.String(), "error", err)
		return Listing{}, false
	}
	return Listing{Items: items, Cached: true, SyncedAt: at}, true
}

func (s *fileService) store(ctx context.Context, key files.Key, items []models.FileItem, at time.Time) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Replace(ctx, key, items); err != nil {
		s.log.Warn(ctx, "cache write failed", "listing", key.String(), "error", err)
		return
	}
	if err := s.synced.MarkSynced(ctx, key.String(), at); err != nil {
		s.log.Warn(ctx, "cache write failed", "listing", key.String(), "error", err)
	}
}

// invalidate forces the next List of key to go to the backend.
func (s *fileService) invalidate(ctx context.Context, key files.Key) {
	if s.cache == nil {
		return
	}
	if err := s.synced.ClearSynced(ctx, key.String()); err != nil {
		s.log.Warn(ctx, "cache invalidation failed", "listing", key.String(), "error", err)
	}
}

func (s *fileService) forgetPaths(ctx context.Context, paths []string) {
	if s.cache == nil || len(paths) == 0 {
		return
	}
	if err := s.cache.ForgetPaths(ctx, paths); err != nil {
		s.log.Warn(ctx, "cache invalidation failed", "error", err)
	}
}

func (s *fileService) Upload(ctx context.Context, paths []string, dst upload.Destination, onProgress upload.FileFunc) ([]models.UploadResult, error) {
	if len(paths) == 0 {
		return nil, bulk.ErrEmptySelection
	}
	if _, err := dst.Category.UploadSegment(); err != nil {
		return nil, err
	}
	local, err := upload.LocalFiles(paths)
	if err != nil {
		return nil, err
	}

	results := s.tracker.UploadAll(ctx, local, dst, onProgress)
	s.invalidate(ctx, files.Key{Category: dst.Category, Subfolder: dst.Subfolder})
	return results, nil
}

func (s *fileService) Delete(ctx context.Context, path string) error {
	if err := s.client.DeleteFile(ctx, path); err != nil {
		return err
	}
	s.forgetPaths(ctx, []string{path})
	return nil
}

func (s *fileService) Rename(ctx context.Context, category models.Category, subfolder, path, newName string) error {
	if newName == "" {
		return fmt.Errorf("%w: new name is empty", models.ErrInvalidRequest)
	}
	if err := s.client.RenameFile(ctx, path, newName); err != nil {
		return err
	}
	s.invalidate(ctx, files.Key{Category: category, Subfolder: subfolder})
	return nil
}

func (s *fileService) Move(ctx context.Context, category models.Category, subfolder, path, dest string) (string, error) {
	newPath, err := s.client.MoveFile(ctx, path, dest)
	if err != nil {
		return "", err
	}
	s.forgetPaths(ctx, []string{path})
	s.invalidate(ctx, files.Key{Category: category, Subfolder: dest})
	return newPath, nil
}

func (s *fileService) DeleteSelection(ctx context.Context, sel *models.Selection, category models.Category, subfolder string) (models.BulkResult, error) {
	defer sel.Clear()

	ids, err := s.resolve(ctx, *sel, category, subfolder)
	if err != nil {
		return models.BulkResult{}, err
	}

	var res models.BulkResult
	if s.opts.PreferBulk {
		res, err = s.reconciler.Batch(ctx, ids, s.client.BulkDeleteFiles)
	} else {
		res, err = s.reconciler.Each(ctx, ids, s.client.DeleteFile)
	}
	if err != nil {
		return res, err
	}
	s.settle(ctx, files.Key{Category: category, Subfolder: subfolder}, ids, res)
	return res, nil
}

func (s *fileService) MoveSelection(ctx context.Context, sel *models.Selection, category models.Category, subfolder, dest string) (models.BulkResult, error) {
	defer sel.Clear()

	if dest == subfolder {
		return models.BulkResult{}, fmt.Errorf("%w: destination is the current folder", models.ErrInvalidRequest)
	}
	ids, err := s.resolve(ctx, *sel, category, subfolder)
	if err != nil {
		return models.BulkResult{}, err
	}

	var res models.BulkResult
	if s.opts.PreferBulk {
		res, err = s.reconciler.Batch(ctx, ids, func(ctx context.Context, items []string) (client.BulkOutcome, error) {
			return s.client.BulkMoveFiles(ctx, items, dest)
		})
	} else {
		res, err = s.reconciler.Each(ctx, ids, func(ctx context.Context, path string) error {
			_, err := s.client.MoveFile(ctx, path, dest)
			return err
		})
	}
	if err != nil {
		return res, err
	}
	s.settle(ctx, files.Key{Category: category, Subfolder: subfolder}, ids, res)
	s.invalidate(ctx, files.Key{Category: category, Subfolder: dest})
	return res, nil
}

// resolve materializes sel. All is resolved against a fresh backend listing,
// never the cache.
func (s *fileService) resolve(ctx context.Context, sel models.Selection, category models.Category, subfolder string) ([]string, error) {
	ids, err := bulk.Resolve(ctx, sel, func(ctx context.Context) ([]string, error) {
		items, err := s.client.ListFiles(ctx, category, subfolder)
		if err != nil {
			return nil, err
		}
		return models.Paths(items), nil
	})
	if err != nil && !errors.Is(err, bulk.ErrEmptySelection) {
		return nil, fmt.Errorf("resolve selection: %w", err)
	}
	return ids, err
}

// settle drops cached rows for the items that were processed. When the
// backend did not name every failure, the whole listing is refetched next
// time instead.
func (s *fileService) settle(ctx context.Context, key files.Key, ids []string, res models.BulkResult) {
	if len(res.FailedItems) != res.Failed {
		s.invalidate(ctx, key)
		return
	}
	failed := make(map[string]struct{}, len(res.FailedItems))
	for _, f := range res.FailedItems {
		failed[f] = struct{}{}
	}
	var done []string
	for _, id := range ids {
		if _, ok := failed[id]; !ok {
			done = append(done, id)
		}
	}
	s.forgetPaths(ctx, done)
}
