package files

import (
	"context"

	"github.com/dmitrijs2005/vidbatch/internal/client/models"
)

// Key identifies one cached listing.
type Key struct {
	Category  models.Category
	Subfolder string
}

func (k Key) String() string {
	return string(k.Category) + ":" + k.Subfolder
}

type Repository interface {
	// Replace swaps the cached listing for key with items, keeping their order.
	Replace(ctx context.Context, key Key, items []models.FileItem) error

	// List returns the cached listing, empty when nothing is cached.
	List(ctx context.Context, key Key) ([]models.FileItem, error)

	// Forget drops the whole listing for key.
	Forget(ctx context.Context, key Key) error

	// ForgetPaths drops the rows of the given file paths from every listing.
	ForgetPaths(ctx context.Context, paths []string) error
}
