package img2sketch

import (
	"errors"
	"fmt"
	"image"
	"math"
	"sync"

	"github.com/wbrown/img2sketch/imageutil"
)

// ErrEmptyMask is returned when a hand mask has no pixels switched on.
var ErrEmptyMask = errors.New("hand mask is empty")

// HandAsset is the cursor drawn over the canvas at the cell being inked.
// The sprite's top-left corner is the pencil tip.
type HandAsset struct {
	// Sprite is black wherever Mask is off, so it can be added onto a
	// canvas whose covered pixels were zeroed by Inverse.
	Sprite *imageutil.RGBAImage
	// Mask is 255 over the hand and 0 elsewhere.
	Mask *imageutil.GrayImage
	// Inverse is 255 - Mask.
	Inverse *imageutil.GrayImage
}

// PrepareHand crops sprite and mask to the bounding box of the mask's on
// pixels and blacks out the sprite's background. Mask values of 128 and
// above count as on.
func PrepareHand(sprite *imageutil.RGBAImage, mask *imageutil.GrayImage) (*HandAsset, error) {
	if sprite.Width() != mask.Width() || sprite.Height() != mask.Height() {
		return nil, fmt.Errorf("%w: hand sprite %dx%d, mask %dx%d", ErrSizeMismatch,
			sprite.Width(), sprite.Height(), mask.Width(), mask.Height())
	}

	binary := imageutil.Binarize(mask, 128)
	box, ok := binary.BoundsOf(255)
	if !ok {
		return nil, ErrEmptyMask
	}

	cropped := sprite.Crop(box)
	croppedMask := binary.Crop(box)
	for y := 0; y < cropped.Height(); y++ {
		for x := 0; x < cropped.Width(); x++ {
			if croppedMask.GetGray(x, y) == 0 {
				cropped.SetRGB(x, y, imageutil.RGB{})
			}
		}
	}

	return &HandAsset{
		Sprite:  cropped,
		Mask:    croppedMask,
		Inverse: imageutil.Invert(croppedMask),
	}, nil
}

// LoadHand reads a hand sprite and its mask from disk and prepares them.
func LoadHand(spritePath, maskPath string) (*HandAsset, error) {
	sprite, err := imageutil.LoadImage(spritePath)
	if err != nil {
		return nil, fmt.Errorf("hand sprite: %w", err)
	}
	mask, err := imageutil.LoadGrayImage(maskPath)
	if err != nil {
		return nil, fmt.Errorf("hand mask: %w", err)
	}
	return PrepareHand(sprite, mask)
}

// Width returns the sprite width.
func (h *HandAsset) Width() int { return h.Sprite.Width() }

// Height returns the sprite height.
func (h *HandAsset) Height() int { return h.Sprite.Height() }

// Overlay draws the hand onto dst with its top-left corner at (x, y),
// clipped at the right and bottom edges of dst:
//
//	dst = dst * Inverse/255 + Sprite
func (h *HandAsset) Overlay(dst *imageutil.RGBAImage, x, y int) {
	w := min(h.Width(), dst.Width()-x)
	ht := min(h.Height(), dst.Height()-y)
	if w <= 0 || ht <= 0 || x < 0 || y < 0 {
		return
	}

	for hy := 0; hy < ht; hy++ {
		row := dst.Pix[(y+hy)*dst.Stride+x*4:]
		inv := h.Inverse.Pix[hy*h.Inverse.Stride:]
		spr := h.Sprite.Pix[hy*h.Sprite.Stride:]
		for hx := 0; hx < w; hx++ {
			k := uint32(inv[hx])
			for c := 0; c < 3; c++ {
				v := uint32(row[hx*4+c])*k/255 + uint32(spr[hx*4+c])
				row[hx*4+c] = uint8(min(v, 255))
			}
		}
	}
}

var defaultHand struct {
	once  sync.Once
	asset *HandAsset
	err   error
}

// DefaultHand returns the built-in pencil-in-hand cursor. It is drawn once
// per process and shared; callers must not modify it.
func DefaultHand() (*HandAsset, error) {
	defaultHand.once.Do(func() {
		sprite, mask := drawDefaultHand()
		defaultHand.asset, defaultHand.err = PrepareHand(sprite, mask)
	})
	return defaultHand.asset, defaultHand.err
}

// drawDefaultHand paints the built-in cursor on a white sheet: a pencil
// running from its tip at the top-left down to a fist and cuff at the
// bottom-right.
func drawDefaultHand() (*imageutil.RGBAImage, *imageutil.GrayImage) {
	const width, height = 240, 300
	sprite := imageutil.CreateSolidImage(width, height, imageutil.White)
	mask := imageutil.NewGrayImage(width, height)

	var (
		graphite = imageutil.RGB{R: 55, G: 55, B: 60}
		wood     = imageutil.RGB{R: 222, G: 184, B: 135}
		paint    = imageutil.RGB{R: 242, G: 194, B: 48}
		skin     = imageutil.RGB{R: 238, G: 196, B: 166}
		knuckle  = imageutil.RGB{R: 222, G: 172, B: 142}
		cuff     = imageutil.RGB{R: 60, G: 90, B: 160}
	)

	shapes := []struct {
		pts []image.Point
		c   imageutil.RGB
	}{
		{ellipse(205, 275, 48, 40, 0.6), cuff},
		{ellipse(170, 200, 58, 78, -0.7), skin},
		{[]image.Point{{44, 32}, {160, 146}, {146, 160}, {32, 44}}, paint},
		{[]image.Point{{20, 20}, {44, 32}, {32, 44}}, wood},
		{[]image.Point{{20, 20}, {28, 24}, {24, 28}}, graphite},
		{ellipse(118, 112, 22, 15, 0.8), skin},
		{ellipse(104, 132, 20, 14, 0.8), knuckle},
		{ellipse(132, 96, 18, 12, 0.8), knuckle},
	}
	for _, s := range shapes {
		imageutil.FillPolygonRGBA(sprite, s.pts, s.c)
		imageutil.FillPolygon(mask, s.pts, 255)
	}
	return sprite, mask
}

// ellipse approximates an ellipse centered at (cx, cy) with radii rx, ry,
// rotated by theta radians.
func ellipse(cx, cy, rx, ry, theta float64) []image.Point {
	const segments = 32
	sin, cos := math.Sincos(theta)
	pts := make([]image.Point, segments)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / segments
		ex, ey := rx*math.Cos(a), ry*math.Sin(a)
		pts[i] = image.Point{
			X: int(math.Round(cx + ex*cos - ey*sin)),
			Y: int(math.Round(cy + ex*sin + ey*cos)),
		}
	}
	return pts
}
