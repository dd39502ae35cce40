package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/vidbatch/internal/client/bulk"
	"github.com/dmitrijs2005/vidbatch/internal/client/client"
	"github.com/dmitrijs2005/vidbatch/internal/client/jobs"
	"github.com/dmitrijs2005/vidbatch/internal/client/models"
	"github.com/dmitrijs2005/vidbatch/internal/client/outputs"
	"github.com/dmitrijs2005/vidbatch/internal/client/services"
)

// errReported marks a failure whose message has already been printed.
var errReported = errors.New("already reported")

// describe turns err into the one line shown to the user.
func describe(err error) string {
	var apiErr *client.APIError

	switch {
	case errors.Is(err, client.ErrTokenExpired):
		return "Token expired: run `login` or set " + tokenHint
	case client.IsAuthError(err):
		return "Not authenticated: run `login` or set " + tokenHint
	case errors.Is(err, bulk.ErrEmptySelection):
		return "Nothing selected: pass paths, use --all, or `select` them in the shell"
	case errors.Is(err, client.ErrUnavailable):
		return "Server unavailable: check -server and your network connection"
	case errors.Is(err, context.DeadlineExceeded):
		return "Request timed out: try again or raise -timeout"
	case errors.Is(err, context.Canceled):
		return "Cancelled"
	case errors.Is(err, jobs.ErrTooManyFailures):
		return "Gave up watching the job after repeated status failures; run `jobs status` later"
	case errors.Is(err, services.ErrNoOutputStore), errors.Is(err, outputs.ErrNoBucket):
		return "No output bucket configured: set s3.bucket in the config file"
	case errors.Is(err, services.ErrNoAssets):
		return "Nothing to download for this project yet"
	case errors.Is(err, models.ErrInvalidRequest):
		return "Invalid request: " + strings.TrimPrefix(err.Error(), models.ErrInvalidRequest.Error()+": ")
	case errors.Is(err, models.ErrUnknownCategory):
		return fmt.Sprintf("%s; use one of %s", capitalize(err.Error()), categoryList())
	case errors.Is(err, models.ErrNotUploadable):
		return "Uploads are accepted only for video, audio and csv"
	case errors.As(err, &apiErr) && errors.Is(err, client.ErrNotFound):
		return "Not found: " + apiErr.Message
	case errors.As(err, &apiErr) && errors.Is(err, client.ErrServer):
		return "Server error: " + apiErr.Message
	case errors.As(err, &apiErr):
		return capitalize(apiErr.Message)
	case errors.Is(err, client.ErrMalformedResponse):
		return "Unexpected response from the server; check that -server points at the API"
	default:
		return "Error: " + err.Error()
	}
}

const tokenHint = "VIDBATCH_TOKEN"

func (a *App) report(err error) {
	if err == nil || errors.Is(err, errReported) {
		return
	}
	fmt.Fprintln(a.errOut, describe(err))
}

// reportBulk prints the summary of a bulk operation and returns errReported
// when some items failed.
func (a *App) reportBulk(res models.BulkResult, verb, noun string) error {
	a.println(res.Summary(verb, noun))
	if res.OK() {
		return nil
	}
	for _, item := range res.FailedItems {
		a.printf("  failed: %s\n", item)
	}
	return errReported
}

func categoryList() string {
	names := make([]string, 0, len(models.Categories()))
	for _, c := range models.Categories() {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
