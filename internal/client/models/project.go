package models

import "github.com/dmitrijs2005/vidbatch/internal/timex"

// Project groups the outputs of one processing run.
type Project struct {
	ID                  string           `json:"id"`
	UserID              string           `json:"user_id"`
	Name                string           `json:"name"`
	Description         string           `json:"description,omitempty"`
	OutputFolder        string           `json:"output_folder,omitempty"`
	VideoCount          int              `json:"video_count"`
	TotalSizeBytes      int64            `json:"total_size_bytes"`
	PreviewVideoURL     string           `json:"preview_video_url,omitempty"`
	PreviewThumbnailURL string           `json:"preview_thumbnail_url,omitempty"`
	ZipURL              string           `json:"zip_url,omitempty"`
	CreatedAt           timex.Timestamp  `json:"created_at"`
	ExpiresAt           *timex.Timestamp `json:"expires_at,omitempty"`
	DeletedAt           *timex.Timestamp `json:"deleted_at,omitempty"`
}

func (p Project) IsDeleted() bool {
	return p.DeletedAt != nil && !p.DeletedAt.IsZero()
}

// ProjectURLs holds freshly signed asset URLs. Any of them may be empty.
type ProjectURLs struct {
	PreviewVideoURL     string `json:"preview_video_url"`
	PreviewThumbnailURL string `json:"preview_thumbnail_url"`
	ZipURL              string `json:"zip_url"`
}
