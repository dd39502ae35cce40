package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"sync"

	"github.com/dmitrijs2005/vidbatch/internal/client/models"
)

var ErrSizeMismatch = errors.New("upload body size mismatch")

// UploadFile streams body as the multipart "file" field of
// POST /files/upload/{category}. size must be the exact body length; it
// becomes part of Content-Length so the transport never buffers the file.
func (c *HTTPClient) UploadFile(ctx context.Context, category models.Category, subfolder, filename string, body io.Reader, size int64, tr Transfer) (models.UploadResponse, error) {
	segment, err := category.UploadSegment()
	if err != nil {
		return models.UploadResponse{}, err
	}
	if size < 0 {
		return models.UploadResponse{}, fmt.Errorf("%w: negative size %d", ErrSizeMismatch, size)
	}

	prefix, suffix, contentType, err := multipartFrame(filename)
	if err != nil {
		return models.UploadResponse{}, err
	}

	total := int64(len(prefix)) + size + int64(len(suffix))
	payload := io.MultiReader(
		bytes.NewReader(prefix),
		&exactReader{r: body, remaining: size},
		bytes.NewReader(suffix),
	)
	counted := newCountingReader(payload, total, tr)

	q := subfolderQuery(subfolder)
	if category == models.CategoryCSV {
		q = url.Values{"save_file": {"true"}}
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/files/upload/"+segment, q, io.NopCloser(counted), true)
	if err != nil {
		return models.UploadResponse{}, err
	}
	req.ContentLength = total
	req.Header.Set("Content-Type", contentType)

	var resp models.UploadResponse
	if err := c.send(req, &resp); err != nil {
		return models.UploadResponse{}, err
	}
	counted.finish()
	return resp, nil
}

// multipartFrame renders everything around the file bytes of a single-part
// multipart body.
func multipartFrame(filename string) (prefix, suffix []byte, contentType string, err error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if _, err := mw.CreateFormFile("file", filename); err != nil {
		return nil, nil, "", fmt.Errorf("multipart header: %w", err)
	}
	prefix = append([]byte(nil), buf.Bytes()...)
	buf.Reset()
	if err := mw.Close(); err != nil {
		return nil, nil, "", fmt.Errorf("multipart trailer: %w", err)
	}
	suffix = append([]byte(nil), buf.Bytes()...)
	return prefix, suffix, mw.FormDataContentType(), nil
}

// exactReader fails when the underlying reader yields more or fewer bytes
// than announced.
type exactReader struct {
	r         io.Reader
	remaining int64
}

func (e *exactReader) Read(p []byte) (int, error) {
	if e.remaining <= 0 {
		var probe [1]byte
		if n, _ := e.r.Read(probe[:]); n > 0 {
			return 0, ErrSizeMismatch
		}
		return 0, io.EOF
	}
	if int64(len(p)) > e.remaining {
		p = p[:e.remaining]
	}
	n, err := e.r.Read(p)
	e.remaining -= int64(n)
	if errors.Is(err, io.EOF) {
		if e.remaining > 0 {
			return n, fmt.Errorf("%w: %d bytes short", ErrSizeMismatch, e.remaining)
		}
		err = nil
	}
	return n, err
}

// countingReader reports consumed bytes to a Transfer. Done fires once when
// the last byte is read, or from finish if the transport skipped the EOF.
type countingReader struct {
	r     io.Reader
	total int64
	sent  int64
	tr    Transfer
	once  sync.Once
}

func newCountingReader(r io.Reader, total int64, tr Transfer) *countingReader {
	return &countingReader{r: r, total: total, tr: tr}
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	if n > 0 {
		c.sent += int64(n)
		if c.tr.Progress != nil {
			c.tr.Progress(c.sent, c.total)
		}
	}
	if c.sent >= c.total || errors.Is(err, io.EOF) {
		c.finish()
	}
	return n, err
}

func (c *countingReader) finish() {
	c.once.Do(func() {
		if c.tr.Done != nil {
			c.tr.Done()
		}
	})
}
