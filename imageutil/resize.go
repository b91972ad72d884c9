package imageutil

import (
	"image"

	"golang.org/x/image/draw"
)

// Interpolation specifies the interpolation method for resizing.
type Interpolation int

const (
	// InterpolationLinear uses bilinear interpolation, the equivalent of
	// OpenCV's INTER_LINEAR (cv2.resize default).
	InterpolationLinear Interpolation = iota

	// InterpolationArea uses Catmull-Rom, the closest x/image scaler to
	// OpenCV's INTER_AREA for downscaling.
	InterpolationArea

	// InterpolationNearest uses nearest-neighbor sampling. Binary masks
	// stay binary under it.
	InterpolationNearest
)

func (interp Interpolation) scaler() draw.Scaler {
	switch interp {
	case InterpolationArea:
		return draw.CatmullRom
	case InterpolationNearest:
		return draw.NearestNeighbor
	default:
		return draw.BiLinear
	}
}

// Resize resizes an RGBA image to width x height. The source is returned
// as a clone when it already has the requested size.
func Resize(img *RGBAImage, width, height int, interp Interpolation) *RGBAImage {
	if img.Width() == width && img.Height() == height {
		return img.Clone()
	}
	dst := NewRGBAImage(width, height)
	interp.scaler().Scale(dst.RGBA, image.Rect(0, 0, width, height),
		img.RGBA, img.Bounds(), draw.Src, nil)
	return dst
}

// ResizeGray resizes a grayscale image to width x height.
func ResizeGray(img *GrayImage, width, height int, interp Interpolation) *GrayImage {
	if img.Width() == width && img.Height() == height {
		return img.Clone()
	}
	dst := NewGrayImage(width, height)
	interp.scaler().Scale(dst.Gray, image.Rect(0, 0, width, height),
		img.Gray, img.Bounds(), draw.Src, nil)
	return dst
}
