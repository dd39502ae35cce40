package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/vidbatch/internal/client/bulk"
	"github.com/dmitrijs2005/vidbatch/internal/client/client"
	"github.com/dmitrijs2005/vidbatch/internal/client/models"
	"github.com/dmitrijs2005/vidbatch/internal/client/repositories/files"
	"github.com/dmitrijs2005/vidbatch/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/vidbatch/internal/logging"
)

type FolderService interface {
	List(ctx context.Context, category models.Category) ([]models.Folder, error)
	Create(ctx context.Context, category models.Category, name string) (string, error)
	// Delete removes the folder and the files in it, returning how many
	// files were deleted.
	Delete(ctx context.Context, category models.Category, name string) (int, error)
	DeleteMany(ctx context.Context, category models.Category, names []string) (models.BulkResult, error)
}

type folderService struct {
	client     client.Client
	cache      files.Repository
	synced     metadata.SyncTracker
	reconciler *bulk.Reconciler
	log        logging.Logger
}

func NewFolderService(c client.Client, cache files.Repository, synced metadata.SyncTracker, rec *bulk.Reconciler, log logging.Logger) FolderService {
	if log == nil {
		log = logging.Nop()
	}
	if cache == nil || synced == nil {
		cache, synced = nil, nil
	}
	return &folderService{client: c, cache: cache, synced: synced, reconciler: rec, log: log}
}

func (s *folderService) List(ctx context.Context, category models.Category) ([]models.Folder, error) {
	return s.client.ListFolders(ctx, category)
}

func (s *folderService) Create(ctx context.Context, category models.Category, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: bad folder name %q", models.ErrInvalidRequest, name)
	}
	return s.client.CreateFolder(ctx, category, name)
}

func (s *folderService) Delete(ctx context.Context, category models.Category, name string) (int, error) {
	n, err := s.client.DeleteFolder(ctx, category, name)
	if err != nil {
		return 0, err
	}
	s.forget(ctx, files.Key{Category: category, Subfolder: name})
	return n, nil
}

func (s *folderService) DeleteMany(ctx context.Context, category models.Category, names []string) (models.BulkResult, error) {
	return s.reconciler.Each(ctx, names, func(ctx context.Context, name string) error {
		_, err := s.Delete(ctx, category, name)
		return err
	})
}

func (s *folderService) forget(ctx context.Context, key files.Key) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Forget(ctx, key); err != nil {
		s.log.Warn(ctx, "cache invalidation failed", "listing", key.String(), "error", err)
	}
	if err := s.synced.ClearSynced(ctx, key.String()); err != nil {
		s.log.Warn(ctx, "cache invalidation failed", "listing", key.String(), "error", err)
	}
}
