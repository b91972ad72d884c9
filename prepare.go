package img2sketch

import (
	"fmt"

	"github.com/wbrown/img2sketch/imageutil"
)

// PreparedImage holds the buffers derived once from the source image, all
// at the normalized frame size. It is read-only after Prepare returns.
type PreparedImage struct {
	// Color is the resized source image.
	Color *imageutil.RGBAImage
	// Gray is the BT.601 luma of Color.
	Gray *imageutil.GrayImage
	// Equalized is Gray after CLAHE.
	Equalized *imageutil.GrayImage
	// Ink is the adaptive threshold of Equalized: 0 where there is ink,
	// 255 elsewhere.
	Ink *imageutil.GrayImage
}

// Prepare resizes img to the configured frame size and derives the
// grayscale, equalized and ink buffers.
func Prepare(img *imageutil.RGBAImage, cfg RenderConfig) (*PreparedImage, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: frame size %dx%d", ErrInvalidConfig, cfg.Width, cfg.Height)
	}
	if img.Width() == 0 || img.Height() == 0 {
		return nil, fmt.Errorf("%w: empty source image", ErrInvalidConfig)
	}

	color := imageutil.Resize(img, cfg.Width, cfg.Height, imageutil.InterpolationLinear)
	gray := imageutil.ToGrayscale(color)
	equalized := imageutil.NewCLAHE(CLAHEClipLimit, CLAHETiles).Apply(gray)
	ink := imageutil.AdaptiveThresholdGaussian(equalized, ThresholdWindow, ThresholdOffset)

	return &PreparedImage{
		Color:     color,
		Gray:      gray,
		Equalized: equalized,
		Ink:       ink,
	}, nil
}

// Width returns the frame width.
func (p *PreparedImage) Width() int { return p.Color.Width() }

// Height returns the frame height.
func (p *PreparedImage) Height() int { return p.Color.Height() }

// InkPixels counts the pixels classified as ink.
func (p *PreparedImage) InkPixels() int {
	return p.Ink.Count(func(v uint8) bool { return v < BlackPixelThreshold })
}

// EndFrame returns a fresh copy of the frame held at the end of the video.
func (p *PreparedImage) EndFrame(mode EndFrameMode) *imageutil.RGBAImage {
	if mode == EndFrameThreshold {
		return imageutil.GrayscaleToRGBA(p.Ink)
	}
	return p.Color.Clone()
}
