package cli

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrijs2005/vidbatch/internal/client/bulk"
	"github.com/dmitrijs2005/vidbatch/internal/client/client"
	"github.com/dmitrijs2005/vidbatch/internal/client/models"
	"github.com/dmitrijs2005/vidbatch/internal/client/outputs"
)

func TestDescribe(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"expired", fmt.Errorf("list: %w", client.ErrTokenExpired), "Token expired: run `login` or set VIDBATCH_TOKEN"},
		{"missing token", client.ErrNotAuthenticated, "Not authenticated: run `login` or set VIDBATCH_TOKEN"},
		{"forbidden", &client.APIError{StatusCode: 403, Message: "nope"}, "Not authenticated: run `login` or set VIDBATCH_TOKEN"},
		{"empty selection", bulk.ErrEmptySelection, "Nothing selected: pass paths, use --all, or `select` them in the shell"},
		{"unavailable", fmt.Errorf("%w: dial tcp: refused", client.ErrUnavailable), "Server unavailable: check -server and your network connection"},
		{"timeout", context.DeadlineExceeded, "Request timed out: try again or raise -timeout"},
		{"cancelled", context.Canceled, "Cancelled"},
		{"no bucket", outputs.ErrNoBucket, "No output bucket configured: set s3.bucket in the config file"},
		{"server", &client.APIError{StatusCode: 502, Message: "Bad gateway"}, "Server error: Bad gateway"},
		{"conflict", &client.APIError{StatusCode: 409, Message: "folder exists"}, "Folder exists"},
		{"malformed", fmt.Errorf("%w: not json", client.ErrMalformedResponse), "Unexpected response from the server; check that -server points at the API"},
		{"not uploadable", models.ErrNotUploadable, "Uploads are accepted only for video, audio and csv"},
		{"other", errors.New("disk full"), "Error: disk full"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, describe(tt.err))
		})
	}
}

func TestReport_SkipsAlreadyReported(t *testing.T) {
	ta := newTestApp(t, "")

	ta.report(nil)
	ta.report(fmt.Errorf("bulk: %w", errReported))
	assert.Empty(t, ta.errOut.String())

	ta.report(errors.New("x"))
	assert.Equal(t, "Error: x\n", ta.errOut.String())
}
