package client

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/vidbatch/internal/client/models"
)

type folderRequest struct {
	ParentCategory string `json:"parent_category"`
	FolderName     string `json:"folder_name"`
}

func (c *HTTPClient) ListFolders(ctx context.Context, category models.Category) ([]models.Folder, error) {
	var resp struct {
		Folders []models.Folder `json:"folders"`
	}
	if err := c.do(ctx, http.MethodGet, "/folders/"+category.FolderParent(), nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Folders, nil
}

// CreateFolder returns the full path of the new folder.
func (c *HTTPClient) CreateFolder(ctx context.Context, category models.Category, name string) (string, error) {
	var resp struct {
		FolderPath string `json:"folder_path"`
	}
	req := folderRequest{ParentCategory: category.FolderParent(), FolderName: name}
	if err := c.do(ctx, http.MethodPost, "/folders/create", nil, req, &resp); err != nil {
		return "", err
	}
	return resp.FolderPath, nil
}

// DeleteFolder returns the number of files removed with the folder.
func (c *HTTPClient) DeleteFolder(ctx context.Context, category models.Category, name string) (int, error) {
	var resp struct {
		FilesDeleted int `json:"files_deleted"`
	}
	req := folderRequest{ParentCategory: category.FolderParent(), FolderName: name}
	if err := c.do(ctx, http.MethodDelete, "/folders/delete", nil, req, &resp); err != nil {
		return 0, err
	}
	return resp.FilesDeleted, nil
}
