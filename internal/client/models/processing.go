package models

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidRequest = errors.New("invalid request")

var (
	positions        = []string{"center", "top", "bottom"}
	durationPolicies = []string{"shortest", "audio", "video", "fixed"}
	fitModes         = []string{"cover", "contain", "zoom"}
	textPresets      = []string{"clean", "bold", "subtle", "yellow", "shadow"}
)

// ProcessingConfig controls how the backend composes each output video.
type ProcessingConfig struct {
	Position       string   `json:"position"`
	MarginPct      float64  `json:"margin_pct"`
	DurationPolicy string   `json:"duration_policy"`
	FixedSeconds   *float64 `json:"fixed_seconds,omitempty"`
	CanvasSize     [2]int   `json:"canvas_size"`
	FitMode        string   `json:"fit_mode"`
	MusicGainDB    int      `json:"music_gain_db"`
	MixAudio       bool     `json:"mix_audio"`
	Preset         string   `json:"preset,omitempty"`
	OutlinePx      int      `json:"outline_px"`
	FontSizeRatio  float64  `json:"fontsize_ratio"`
}

// DefaultProcessingConfig mirrors the backend defaults.
func DefaultProcessingConfig() ProcessingConfig {
	return ProcessingConfig{
		Position:       "center",
		MarginPct:      0.16,
		DurationPolicy: "shortest",
		CanvasSize:     [2]int{1080, 1920},
		FitMode:        "cover",
		MusicGainDB:    -8,
		OutlinePx:      2,
		FontSizeRatio:  0.036,
	}
}

func (c ProcessingConfig) Validate() error {
	if !oneOf(c.Position, positions) {
		return invalid("position must be one of: %s", strings.Join(positions, ", "))
	}
	if c.MarginPct < 0 || c.MarginPct > 0.5 {
		return invalid("margin_pct must be within [0, 0.5], got %v", c.MarginPct)
	}
	if !oneOf(c.DurationPolicy, durationPolicies) {
		return invalid("duration_policy must be one of: %s", strings.Join(durationPolicies, ", "))
	}
	if c.FixedSeconds != nil && *c.FixedSeconds < 0 {
		return invalid("fixed_seconds must not be negative")
	}
	if c.DurationPolicy == "fixed" && (c.FixedSeconds == nil || *c.FixedSeconds == 0) {
		return invalid("fixed_seconds is required when duration_policy is fixed")
	}
	if c.CanvasSize[0] <= 0 || c.CanvasSize[1] <= 0 {
		return invalid("canvas_size must be positive, got %dx%d", c.CanvasSize[0], c.CanvasSize[1])
	}
	if !oneOf(c.FitMode, fitModes) {
		return invalid("fit_mode must be one of: %s", strings.Join(fitModes, ", "))
	}
	if c.Preset != "" && !oneOf(c.Preset, textPresets) {
		return invalid("preset must be one of: %s", strings.Join(textPresets, ", "))
	}
	if c.OutlinePx < 0 {
		return invalid("outline_px must not be negative")
	}
	if c.FontSizeRatio < 0.01 || c.FontSizeRatio > 0.1 {
		return invalid("fontsize_ratio must be within [0.01, 0.1], got %v", c.FontSizeRatio)
	}
	return nil
}

// BatchRequest combines every video in VideoFolder with the audio tracks and
// text combinations into OutputFolder.
type BatchRequest struct {
	VideoFolder      string            `json:"video_folder"`
	AudioFolder      string            `json:"audio_folder,omitempty"`
	TextCombinations [][]string        `json:"text_combinations"`
	OutputFolder     string            `json:"output_folder"`
	UniqueMode       bool              `json:"unique_mode"`
	UniqueAmount     *int              `json:"unique_amount,omitempty"`
	Config           *ProcessingConfig `json:"config,omitempty"`
}

func (r BatchRequest) Validate() error {
	if strings.TrimSpace(r.VideoFolder) == "" {
		return invalid("video_folder is required")
	}
	if strings.TrimSpace(r.OutputFolder) == "" {
		return invalid("output_folder is required")
	}
	if r.UniqueAmount != nil && *r.UniqueAmount < 1 {
		return invalid("unique_amount must be at least 1")
	}
	if r.Config != nil {
		return r.Config.Validate()
	}
	return nil
}

// SingleRequest renders one video.
type SingleRequest struct {
	VideoPath    string            `json:"video_path"`
	AudioPath    string            `json:"audio_path,omitempty"`
	TextSegments []string          `json:"text_segments"`
	OutputPath   string            `json:"output_path"`
	Config       *ProcessingConfig `json:"config,omitempty"`
}

func (r SingleRequest) Validate() error {
	if strings.TrimSpace(r.VideoPath) == "" {
		return invalid("video_path is required")
	}
	if strings.TrimSpace(r.OutputPath) == "" {
		return invalid("output_path is required")
	}
	if r.Config != nil {
		return r.Config.Validate()
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}

func oneOf(v string, allowed []string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}
