package img2sketch

import (
	"errors"
	"fmt"
	"image"
	"strings"
)

// Fixed parameters of the drawing pipeline.
const (
	// BlackPixelThreshold is the ink-map value below which a pixel counts
	// as ink.
	BlackPixelThreshold = 10

	// BackgroundSplitLen is the cell size of the final background pass.
	BackgroundSplitLen = 20

	// ThresholdWindow and ThresholdOffset parameterize the adaptive
	// threshold that produces the ink map.
	ThresholdWindow = 15
	ThresholdOffset = 10

	// CLAHEClipLimit and CLAHETiles parameterize contrast equalization.
	CLAHEClipLimit = 2.0
)

// CLAHETiles is the tile grid used for contrast equalization.
var CLAHETiles = image.Pt(3, 3)

var (
	// ErrInvalidConfig is returned for non-positive rates, sizes or
	// durations.
	ErrInvalidConfig = errors.New("invalid render config")

	// ErrSizeMismatch is returned when two buffers that must line up
	// pixel for pixel do not.
	ErrSizeMismatch = errors.New("size mismatch")
)

// EndFrameMode selects what the held final frame shows.
type EndFrameMode int

const (
	// EndFrameColor holds the full-color image.
	EndFrameColor EndFrameMode = iota
	// EndFrameThreshold holds the black and white ink map.
	EndFrameThreshold
)

func (m EndFrameMode) String() string {
	switch m {
	case EndFrameColor:
		return "color"
	case EndFrameThreshold:
		return "threshold"
	}
	return fmt.Sprintf("EndFrameMode(%d)", int(m))
}

// ParseEndFrameMode accepts "color" or "threshold" ("gray" and
// "grayscale" are aliases of the latter).
func ParseEndFrameMode(s string) (EndFrameMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "color", "colour":
		return EndFrameColor, nil
	case "threshold", "gray", "grayscale":
		return EndFrameThreshold, nil
	}
	return 0, fmt.Errorf("unknown end frame mode %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (m EndFrameMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *EndFrameMode) UnmarshalText(text []byte) error {
	parsed, err := ParseEndFrameMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// RenderConfig holds the per-request rendering parameters. It is built
// once and passed by value.
//
// Width and Height are expected to come from NormalizeResolution and
// SplitLen to be one of their CommonDivisors; neither is re-checked here.
type RenderConfig struct {
	FrameRate          int
	Width              int
	Height             int
	SplitLen           int
	ObjectSkipRate     int
	BackgroundSkipRate int
	EndHoldSeconds     int
	EndFrame           EndFrameMode
}

// Validate rejects non-positive sizes and rates and a negative hold.
func (c RenderConfig) Validate() error {
	checks := []struct {
		name string
		v    int
	}{
		{"frame rate", c.FrameRate},
		{"width", c.Width},
		{"height", c.Height},
		{"split length", c.SplitLen},
		{"object skip rate", c.ObjectSkipRate},
		{"background skip rate", c.BackgroundSkipRate},
	}
	for _, chk := range checks {
		if chk.v <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidConfig, chk.name, chk.v)
		}
	}
	if c.EndHoldSeconds < 0 {
		return fmt.Errorf("%w: end hold must not be negative, got %d", ErrInvalidConfig, c.EndHoldSeconds)
	}
	return nil
}

// EndHoldFrames is the number of copies of the end frame closing the video.
func (c RenderConfig) EndHoldFrames() int {
	return c.FrameRate * c.EndHoldSeconds
}
