// Package config loads the sketchify defaults file.
//
// The file is TOML. Every key is optional; omitted keys keep the values
// from Default.
//
//	[render]
//	frame_rate = 25
//	split_len = 10
//	object_skip_rate = 8
//	background_skip_rate = 20
//	end_hold_seconds = 3
//	end_frame = "color"
//
//	[output]
//	dir = "save_videos"
//	platform = "linux"
//	transcode = true
//	ffmpeg = "/usr/bin/ffmpeg"
//	stages_dir = "stages"
//
//	[hand]
//	sprite = "assets/hand.png"
//	mask = "assets/hand-mask.png"
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/BurntSushi/toml"

	img2sketch "github.com/wbrown/img2sketch"
)

// DefaultPath is the file the CLI reads when --config is not given.
const DefaultPath = "sketchify.toml"

// Default request values, matching what the app offers on first launch.
const (
	DefaultFrameRate          = 25
	DefaultObjectSkipRate     = 8
	DefaultBackgroundSkipRate = 20
	DefaultEndHoldSeconds     = 3
	DefaultOutputDir          = "save_videos"
)

// Render holds per-request rendering defaults.
type Render struct {
	FrameRate          int                     `toml:"frame_rate"`
	SplitLen           int                     `toml:"split_len"`
	ObjectSkipRate     int                     `toml:"object_skip_rate"`
	BackgroundSkipRate int                     `toml:"background_skip_rate"`
	EndHoldSeconds     int                     `toml:"end_hold_seconds"`
	EndFrame           img2sketch.EndFrameMode `toml:"end_frame"`
}

// Output controls where videos go and how they are encoded.
type Output struct {
	Dir       string `toml:"dir"`
	Platform  string `toml:"platform"`
	Transcode bool   `toml:"transcode"`
	FFmpeg    string `toml:"ffmpeg"`
	// StagesDir receives PNG snapshots of the preprocessing stages.
	StagesDir string `toml:"stages_dir"`
}

// Hand points at custom hand assets. Both paths empty selects the
// built-in hand.
type Hand struct {
	Sprite string `toml:"sprite"`
	Mask   string `toml:"mask"`
}

// File is the decoded defaults file.
type File struct {
	Render Render `toml:"render"`
	Output Output `toml:"output"`
	Hand   Hand   `toml:"hand"`
}

// Default returns the built-in defaults.
func Default() File {
	return File{
		Render: Render{
			FrameRate:          DefaultFrameRate,
			SplitLen:           img2sketch.DefaultSplitLen,
			ObjectSkipRate:     DefaultObjectSkipRate,
			BackgroundSkipRate: DefaultBackgroundSkipRate,
			EndHoldSeconds:     DefaultEndHoldSeconds,
			EndFrame:           img2sketch.EndFrameColor,
		},
		Output: Output{
			Dir:       DefaultOutputDir,
			Platform:  runtime.GOOS,
			Transcode: true,
		},
	}
}

// Load reads path over the defaults. A missing file is not an error when
// optional is set; the defaults are returned instead.
func Load(path string, optional bool) (File, error) {
	f := Default()
	if _, err := os.Stat(path); err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return f, nil
		}
		return f, fmt.Errorf("failed to stat config file: %w", err)
	}

	md, err := toml.DecodeFile(path, &f)
	if err != nil {
		return f, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return f, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	if err := f.Validate(); err != nil {
		return f, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Validate checks the rendering defaults and hand paths.
func (f File) Validate() error {
	r := f.Render
	for _, v := range []struct {
		key string
		n   int
	}{
		{"render.frame_rate", r.FrameRate},
		{"render.split_len", r.SplitLen},
		{"render.object_skip_rate", r.ObjectSkipRate},
		{"render.background_skip_rate", r.BackgroundSkipRate},
	} {
		if v.n <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %d", img2sketch.ErrInvalidConfig, v.key, v.n)
		}
	}
	if r.EndHoldSeconds < 0 {
		return fmt.Errorf("%w: render.end_hold_seconds must not be negative", img2sketch.ErrInvalidConfig)
	}
	if (f.Hand.Sprite == "") != (f.Hand.Mask == "") {
		return fmt.Errorf("%w: hand.sprite and hand.mask must be set together", img2sketch.ErrInvalidConfig)
	}
	return nil
}

// LoadHand returns the configured hand, or the built-in one.
func (h Hand) LoadHand() (*img2sketch.HandAsset, error) {
	if h.Sprite == "" && h.Mask == "" {
		return img2sketch.DefaultHand()
	}
	return img2sketch.LoadHand(h.Sprite, h.Mask)
}
