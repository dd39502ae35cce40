package outputs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
)

var ErrFetch = errors.New("fetch failed")

// Fetcher copies the object named by ref into w.
type Fetcher interface {
	Fetch(ctx context.Context, ref string, w io.Writer) (int64, error)
}

// HTTPFetcher downloads signed URLs. No credentials are attached; the
// signature in the URL is the authorization.
type HTTPFetcher struct {
	Client *http.Client
}

func (f HTTPFetcher) httpClient() *http.Client {
	if f.Client == nil {
		return http.DefaultClient
	}
	return f.Client
}

func (f HTTPFetcher) Fetch(ctx context.Context, ref string, w io.Writer) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	resp, err := f.httpClient().Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return 0, ctxErr
		}
		return 0, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return 0, fmt.Errorf("%w: %s", ErrFetch, resp.Status)
	}

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, fmt.Errorf("%w: read body: %w", ErrFetch, err)
	}
	return n, nil
}
