package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/dmitrijs2005/vidbatch/internal/client/models"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "user_1",
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	s, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func newTestClient(t *testing.T, h http.Handler, token string) (*HTTPClient, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := New(srv.URL+"/api/video-processor", NewTokenStore(token), WithRequestIDs(func() string { return "rid-1" }))
	require.NoError(t, err)
	return c, srv
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestNew_RejectsBadBaseURL(t *testing.T) {
	_, err := New("ftp://example.com", nil)
	require.Error(t, err)

	_, err = New("://nope", nil)
	require.Error(t, err)
}

func TestRequest_CarriesBearerAndRequestID(t *testing.T) {
	var gotAuth, gotRID, gotPath string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRID = r.Header.Get("X-Request-ID")
		gotPath = r.URL.Path
		writeJSON(w, 200, map[string]any{"id": "u1", "email": "a@b.c"})
	}), "opaque-token")

	u, err := c.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)
	assert.Equal(t, "Bearer opaque-token", gotAuth)
	assert.Equal(t, "rid-1", gotRID)
	assert.Equal(t, "/api/video-processor/auth/me", gotPath)
}

func TestRequest_NoTokenNeverDispatched(t *testing.T) {
	var hits atomic.Int32
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}), "")

	_, err := c.ListFiles(context.Background(), models.CategoryVideo, "")
	require.ErrorIs(t, err, ErrNotAuthenticated)
	assert.Zero(t, hits.Load())
}

func TestRequest_NilTokenSource(t *testing.T) {
	c, err := New("http://127.0.0.1:1", nil)
	require.NoError(t, err)

	_, err = c.Me(context.Background())
	require.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestRequest_ExpiredJWTNeverDispatched(t *testing.T) {
	var hits atomic.Int32
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}), signedToken(t, time.Now().Add(-time.Minute)))

	_, err := c.Me(context.Background())
	require.ErrorIs(t, err, ErrTokenExpired)
	require.ErrorIs(t, err, ErrNotAuthenticated)
	assert.True(t, IsAuthError(err))
	assert.Zero(t, hits.Load())
}

func TestRequest_ValidJWTIsSent(t *testing.T) {
	tok := signedToken(t, time.Now().Add(time.Hour))
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer "+tok, r.Header.Get("Authorization"))
		writeJSON(w, 200, map[string]any{"id": "u1"})
	}), tok)

	_, err := c.Me(context.Background())
	require.NoError(t, err)
}

type failingSource struct{}

func (failingSource) Token() (*oauth2.Token, error) { return nil, errors.New("idp down") }

func TestRequest_TokenSourceErrorIsNotAuthenticated(t *testing.T) {
	c, err := New("http://127.0.0.1:1", failingSource{})
	require.NoError(t, err)

	_, err = c.Me(context.Background())
	require.ErrorIs(t, err, ErrNotAuthenticated)
	assert.Contains(t, err.Error(), "idp down")
}

func TestErrorNormalization(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantMsg  string
		sentinel error
	}{
		{name: "detail string", status: 404, body: `{"detail":"File not found: videos/x.mp4"}`, wantMsg: "File not found: videos/x.mp4", sentinel: ErrNotFound},
		{name: "validation list", status: 422, body: `{"detail":[{"loc":["body","filepath"],"msg":"field required","type":"missing"}]}`, wantMsg: "field required"},
		{name: "message fallback", status: 500, body: `{"detail":"","message":"boom"}`, wantMsg: "boom", sentinel: ErrServer},
		{name: "internal error", status: 500, body: `{"detail":"Internal server error","message":"db down"}`, wantMsg: "Internal server error", sentinel: ErrServer},
		{name: "status text", status: 403, body: `<html>nope</html>`, wantMsg: "Forbidden", sentinel: ErrUnauthorized},
		{name: "unauthorized", status: 401, body: `{"detail":"Token expired"}`, wantMsg: "Token expired", sentinel: ErrUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}), "tok")

			err := c.DeleteFile(context.Background(), "videos/x.mp4")

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.wantMsg, apiErr.Message)
			assert.Equal(t, "rid-1", apiErr.RequestID)
			if tt.sentinel != nil {
				assert.ErrorIs(t, err, tt.sentinel)
			}
			assert.NotErrorIs(t, err, ErrUnavailable)
		})
	}
}

func TestErrorNormalization_PrefersServerRequestID(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Request-ID", "srv-9")
		w.WriteHeader(502)
	}), "tok")

	_, err := c.ListJobs(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "srv-9", apiErr.RequestID)
	assert.Equal(t, "Bad Gateway (HTTP 502)", apiErr.Error())
}

func TestMalformedResponse(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(200)
		_, _ = io.WriteString(w, `{"files": [`)
	}), "tok")

	_, err := c.ListFiles(context.Background(), models.CategoryAudio, "")
	require.ErrorIs(t, err, ErrMalformedResponse)
}

func TestTransportFailureIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c, err := New(base, NewTokenStore("tok"))
	require.NoError(t, err)

	_, err = c.ListJobs(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestContextCancellationIsReturnedAsIs(t *testing.T) {
	release := make(chan struct{})
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}), "tok")
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := c.ListJobs(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrUnavailable)
}

func TestPing_SendsTokenWhenAvailable(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/video-processor/auth/status", r.URL.Path)
		writeJSON(w, 200, map[string]any{
			"authenticated": r.Header.Get("Authorization") != "",
			"user":          map[string]any{"id": "u1", "email": "a@b.c"},
		})
	}), "tok")

	st, err := c.Ping(context.Background())
	require.NoError(t, err)
	assert.True(t, st.Authenticated)
	require.NotNil(t, st.User)
	assert.Equal(t, "u1", st.User.ID)
}

func TestPing_WorksWithoutToken(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		writeJSON(w, 200, map[string]any{"authenticated": false, "user": nil})
	}), "")

	st, err := c.Ping(context.Background())
	require.NoError(t, err)
	assert.False(t, st.Authenticated)
	assert.Nil(t, st.User)
}
