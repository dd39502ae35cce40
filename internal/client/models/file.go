package models

import "github.com/dmitrijs2005/vidbatch/internal/timex"

// FileItem describes one stored file as listed by the backend.
type FileItem struct {
	Filename string          `json:"filename"`
	Filepath string          `json:"filepath"`
	Size     int64           `json:"size"`
	Modified timex.Timestamp `json:"modified"`
	FileType string          `json:"file_type"`
	Metadata map[string]any  `json:"metadata,omitempty"`
}

// DisplayName returns the user-assigned name from metadata, falling back to
// the stored file name.
func (f FileItem) DisplayName() string {
	if f.Metadata != nil {
		if name, ok := f.Metadata["display_name"].(string); ok && name != "" {
			return name
		}
	}
	return f.Filename
}

type Folder struct {
	Name      string `json:"name"`
	Path      string `json:"path"`
	FileCount int    `json:"file_count"`
	TotalSize int64  `json:"total_size"`
}

// Paths returns the file paths of items in their listed order.
func Paths(items []FileItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Filepath
	}
	return out
}
