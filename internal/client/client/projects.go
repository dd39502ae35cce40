package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/vidbatch/internal/client/models"
)

// ListProjects returns up to limit projects (the backend caps it at 100).
// A non-positive limit uses the backend default.
func (c *HTTPClient) ListProjects(ctx context.Context, limit int, includeDeleted bool) ([]models.Project, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if includeDeleted {
		q.Set("include_deleted", "true")
	}
	var projects []models.Project
	if err := c.do(ctx, http.MethodGet, "/projects/", q, nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

func (c *HTTPClient) GetProject(ctx context.Context, id string) (models.Project, error) {
	var p models.Project
	if err := c.do(ctx, http.MethodGet, "/projects/"+url.PathEscape(id), nil, nil, &p); err != nil {
		return models.Project{}, err
	}
	return p, nil
}

// DeleteProject archives the project, or removes it permanently when hard
// is set.
func (c *HTTPClient) DeleteProject(ctx context.Context, id string, hard bool) error {
	var q url.Values
	if hard {
		q = url.Values{"hard_delete": {"true"}}
	}
	return c.do(ctx, http.MethodDelete, "/projects/"+url.PathEscape(id), q, nil, nil)
}

func (c *HTTPClient) ProjectURLs(ctx context.Context, id string) (models.ProjectURLs, error) {
	var urls models.ProjectURLs
	if err := c.do(ctx, http.MethodGet, "/projects/"+url.PathEscape(id)+"/urls", nil, nil, &urls); err != nil {
		return models.ProjectURLs{}, err
	}
	return urls, nil
}
