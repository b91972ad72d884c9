package pipeline

import (
	"fmt"
	"path/filepath"

	img2sketch "github.com/wbrown/img2sketch"
)

// Request describes one video to generate.
type Request struct {
	// ImagePath is the still image to sketch.
	ImagePath string `json:"image_path"`
	// AnnotationPath optionally names a LabelMe-style JSON file whose
	// polygons are drawn one object at a time before the background.
	AnnotationPath string `json:"annotation_path,omitempty"`

	SplitLen           int                     `json:"split_len"`
	FrameRate          int                     `json:"frame_rate"`
	ObjectSkipRate     int                     `json:"object_skip_rate"`
	BackgroundSkipRate int                     `json:"background_skip_rate"`
	EndHoldSeconds     int                     `json:"end_hold_seconds"`
	EndFrame           img2sketch.EndFrameMode `json:"end_frame"`

	// OutputDir receives the video. It is created when missing.
	OutputDir string `json:"output_dir"`
	// Platform selects the raw codec; see video.CodecFor.
	Platform string `json:"platform"`
}

// renderConfig builds the RenderConfig for a normalized frame size.
func (req Request) renderConfig(width, height int) img2sketch.RenderConfig {
	return img2sketch.RenderConfig{
		FrameRate:          req.FrameRate,
		Width:              width,
		Height:             height,
		SplitLen:           req.SplitLen,
		ObjectSkipRate:     req.ObjectSkipRate,
		BackgroundSkipRate: req.BackgroundSkipRate,
		EndHoldSeconds:     req.EndHoldSeconds,
		EndFrame:           req.EndFrame,
	}
}

// Result reports the outcome of a run. On success Message is the path of
// the finished video; on failure it starts with "Error: ".
type Result struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
}

func success(path string) Result {
	return Result{Status: true, Message: path}
}

func failure(err error) Result {
	return Result{Status: false, Message: "Error: " + err.Error()}
}

// SplitLensInfo is what a caller needs to offer split-length choices for
// an image.
type SplitLensInfo struct {
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	SplitLens []int  `json:"split_lens"`
	Default   int    `json:"default"`
	Display   string `json:"display"`
}

func newSplitLensInfo(imagePath string, width, height int) SplitLensInfo {
	divs := img2sketch.CommonDivisors(width, height)
	return SplitLensInfo{
		Width:     width,
		Height:    height,
		SplitLens: divs,
		Default:   img2sketch.PreferredSplitLen(divs),
		Display:   fmt.Sprintf("%s, video resolution: %d x %d", filepath.Base(imagePath), width, height),
	}
}
