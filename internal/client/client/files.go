package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/vidbatch/internal/client/models"
)

type fileListResponse struct {
	Files []models.FileItem `json:"files"`
	Count int               `json:"count"`
}

type bulkFilesResponse struct {
	DeletedCount int      `json:"deleted_count"`
	MovedCount   int      `json:"moved_count"`
	FailedCount  int      `json:"failed_count"`
	FailedFiles  []string `json:"failed_files"`
}

func subfolderQuery(subfolder string) url.Values {
	if subfolder == "" {
		return nil
	}
	return url.Values{"subfolder": {subfolder}}
}

func (c *HTTPClient) ListFiles(ctx context.Context, category models.Category, subfolder string) ([]models.FileItem, error) {
	var resp fileListResponse
	if err := c.do(ctx, http.MethodGet, "/files/"+category.ListSegment(), subfolderQuery(subfolder), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Files, nil
}

func (c *HTTPClient) DeleteFile(ctx context.Context, filepath string) error {
	return c.do(ctx, http.MethodDelete, "/files/delete", nil, map[string]string{"filepath": filepath}, nil)
}

func (c *HTTPClient) BulkDeleteFiles(ctx context.Context, filepaths []string) (BulkOutcome, error) {
	var resp bulkFilesResponse
	body := map[string][]string{"filepaths": filepaths}
	if err := c.do(ctx, http.MethodPost, "/files/bulk-delete", nil, body, &resp); err != nil {
		return BulkOutcome{}, err
	}
	return BulkOutcome{Succeeded: resp.DeletedCount, Failed: resp.FailedCount, FailedItems: resp.FailedFiles}, nil
}

// MoveFile moves one file and returns its new path.
func (c *HTTPClient) MoveFile(ctx context.Context, sourcePath, destinationFolder string) (string, error) {
	var resp struct {
		Destination string `json:"destination"`
	}
	body := map[string]string{"source_path": sourcePath, "destination_folder": destinationFolder}
	if err := c.do(ctx, http.MethodPost, "/files/move", nil, body, &resp); err != nil {
		return "", err
	}
	return resp.Destination, nil
}

func (c *HTTPClient) BulkMoveFiles(ctx context.Context, filepaths []string, destinationFolder string) (BulkOutcome, error) {
	var resp bulkFilesResponse
	body := struct {
		Filepaths         []string `json:"filepaths"`
		DestinationFolder string   `json:"destination_folder"`
	}{filepaths, destinationFolder}
	if err := c.do(ctx, http.MethodPost, "/files/bulk-move", nil, body, &resp); err != nil {
		return BulkOutcome{}, err
	}
	return BulkOutcome{Succeeded: resp.MovedCount, Failed: resp.FailedCount, FailedItems: resp.FailedFiles}, nil
}

// RenameFile changes the display name only; the stored path is unchanged.
func (c *HTTPClient) RenameFile(ctx context.Context, filepath, newName string) error {
	body := map[string]string{"filepath": filepath, "new_name": newName}
	return c.do(ctx, http.MethodPatch, "/files/rename", nil, body, nil)
}
