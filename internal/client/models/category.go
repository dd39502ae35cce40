// Package models defines the resources exchanged with the video-processor
// backend and the client-side aggregates built on top of them.
package models

import (
	"errors"
	"fmt"
	"strings"
)

// Category selects the storage area a file lives in and, with it, the
// backend endpoints used to list or upload it.
type Category string

const (
	CategoryVideo  Category = "video"
	CategoryAudio  Category = "audio"
	CategoryCSV    Category = "csv"
	CategoryOutput Category = "output"
)

var (
	ErrUnknownCategory = errors.New("unknown category")
	ErrNotUploadable   = errors.New("category does not accept uploads")
)

func Categories() []Category {
	return []Category{CategoryVideo, CategoryAudio, CategoryCSV, CategoryOutput}
}

// ParseCategory accepts both singular and plural spellings ("video", "videos").
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "video", "videos":
		return CategoryVideo, nil
	case "audio", "audios":
		return CategoryAudio, nil
	case "csv":
		return CategoryCSV, nil
	case "output", "outputs":
		return CategoryOutput, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
}

// ListSegment is the path segment of GET /files/{segment}.
func (c Category) ListSegment() string {
	switch c {
	case CategoryVideo:
		return "videos"
	case CategoryAudio:
		return "audios"
	default:
		return string(c)
	}
}

// UploadSegment is the path segment of POST /files/upload/{segment}.
func (c Category) UploadSegment() (string, error) {
	switch c {
	case CategoryVideo, CategoryAudio, CategoryCSV:
		return string(c), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrNotUploadable, c)
	}
}

// FolderParent is the parent_category value used by the folder endpoints.
func (c Category) FolderParent() string {
	return c.ListSegment()
}
