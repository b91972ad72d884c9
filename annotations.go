package img2sketch

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"math"
	"os"

	"github.com/wbrown/img2sketch/imageutil"
)

// ErrMalformedAnnotations is returned for annotation files that decode but
// cannot describe a region.
var ErrMalformedAnnotations = errors.New("malformed annotations")

// MaxAnnotationSide bounds the image size an annotation file may declare.
// Masks are rasterized at that size before scaling to the frame.
const MaxAnnotationSide = 2 * 7680

// maxAnnotationCoord bounds vertex coordinates so they convert to int
// without loss.
const maxAnnotationCoord = 1 << 30

// Shape is one annotated polygon in source image coordinates.
type Shape struct {
	Label  string       `json:"label,omitempty"`
	Points [][2]float64 `json:"points"`
}

// Annotations is a LabelMe-style object annotation file.
type Annotations struct {
	ImageWidth  int     `json:"imageWidth,omitempty"`
	ImageHeight int     `json:"imageHeight,omitempty"`
	Shapes      []Shape `json:"shapes"`
}

// LoadAnnotations reads and validates an annotation file.
func LoadAnnotations(path string) (*Annotations, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read annotations: %w", err)
	}
	return ParseAnnotations(data)
}

// ParseAnnotations decodes and validates annotation JSON.
func ParseAnnotations(data []byte) (*Annotations, error) {
	var a Annotations
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("failed to decode annotations: %w", err)
	}
	for i, s := range a.Shapes {
		if len(s.Points) < 3 {
			return nil, fmt.Errorf("%w: shape %d has %d points", ErrMalformedAnnotations, i, len(s.Points))
		}
	}
	if a.ImageWidth < 0 || a.ImageHeight < 0 {
		return nil, fmt.Errorf("%w: negative image size %dx%d", ErrMalformedAnnotations, a.ImageWidth, a.ImageHeight)
	}
	if a.ImageWidth > MaxAnnotationSide || a.ImageHeight > MaxAnnotationSide {
		return nil, fmt.Errorf("%w: image size %dx%d exceeds %d", ErrMalformedAnnotations, a.ImageWidth, a.ImageHeight, MaxAnnotationSide)
	}
	for i, s := range a.Shapes {
		for _, p := range s.Points {
			if math.Abs(p[0]) > maxAnnotationCoord || math.Abs(p[1]) > maxAnnotationCoord {
				return nil, fmt.Errorf("%w: shape %d has point (%g, %g) out of range", ErrMalformedAnnotations, i, p[0], p[1])
			}
		}
	}
	return &a, nil
}

// Masks rasterizes every shape at the annotated image size and scales the
// result to dstW x dstH with nearest-neighbor sampling. srcW and srcH are
// used when the file does not record its image size. Points outside the
// image are clipped; fractional coordinates truncate toward zero.
func (a *Annotations) Masks(srcW, srcH, dstW, dstH int) ([]*imageutil.GrayImage, error) {
	w, h := srcW, srcH
	if a.ImageWidth > 0 && a.ImageHeight > 0 {
		w, h = a.ImageWidth, a.ImageHeight
	}
	if w <= 0 || h <= 0 || w > MaxAnnotationSide || h > MaxAnnotationSide {
		return nil, fmt.Errorf("%w: cannot rasterize at %dx%d", ErrMalformedAnnotations, w, h)
	}
	if dstW <= 0 || dstH <= 0 {
		return nil, fmt.Errorf("%w: frame size %dx%d", ErrInvalidConfig, dstW, dstH)
	}

	masks := make([]*imageutil.GrayImage, 0, len(a.Shapes))
	for _, s := range a.Shapes {
		pts := make([]image.Point, len(s.Points))
		for i, p := range s.Points {
			pts[i] = image.Pt(int(p[0]), int(p[1]))
		}
		mask := imageutil.NewGrayImage(w, h)
		imageutil.FillPolygon(mask, pts, 255)
		masks = append(masks, imageutil.ResizeGray(mask, dstW, dstH, imageutil.InterpolationNearest))
	}
	return masks, nil
}
