package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileItem_DisplayName(t *testing.T) {
	f := FileItem{Filename: "clip_01.mp4"}
	assert.Equal(t, "clip_01.mp4", f.DisplayName())

	f.Metadata = map[string]any{"display_name": "Intro"}
	assert.Equal(t, "Intro", f.DisplayName())

	f.Metadata = map[string]any{"display_name": 7}
	assert.Equal(t, "clip_01.mp4", f.DisplayName())
}

func TestFileItem_DecodeNaiveTimestamp(t *testing.T) {
	body := `{"filename":"a.mp4","filepath":"videos/a.mp4","size":12,"modified":"2025-01-27T12:00:00","file_type":"video","metadata":null}`

	var f FileItem
	require.NoError(t, json.Unmarshal([]byte(body), &f))
	assert.Equal(t, "videos/a.mp4", f.Filepath)
	assert.True(t, f.Modified.Equal(time.Date(2025, 1, 27, 12, 0, 0, 0, time.UTC)))
}

func TestPaths(t *testing.T) {
	items := []FileItem{{Filepath: "b"}, {Filepath: "a"}}
	assert.Equal(t, []string{"b", "a"}, Paths(items))
	assert.Empty(t, Paths(nil))
}
