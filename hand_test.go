package img2sketch

import (
	"errors"
	"image"
	"testing"

	"github.com/wbrown/img2sketch/imageutil"
)

func TestPrepareHandCropsToMask(t *testing.T) {
	sprite := imageutil.CreateSolidImage(20, 20, testBlue)
	sprite.SetRGB(6, 6, testRed)
	mask := imageutil.NewGrayImage(20, 20)
	for y := 5; y < 12; y++ {
		for x := 4; x < 9; x++ {
			mask.SetGrayValue(x, y, 200)
		}
	}
	mask.SetGrayValue(4, 5, 100) // below the binarization threshold

	hand, err := PrepareHand(sprite, mask)
	if err != nil {
		t.Fatalf("PrepareHand: %v", err)
	}
	if hand.Width() != 5 || hand.Height() != 7 {
		t.Fatalf("hand is %dx%d, want 5x7", hand.Width(), hand.Height())
	}
	if got := hand.Sprite.GetRGB(2, 1); got != testRed {
		t.Errorf("sprite (2,1) = %v, want %v", got, testRed)
	}
	if got := hand.Sprite.GetRGB(0, 0); got != (imageutil.RGB{}) {
		t.Errorf("sprite outside mask = %v, want black", got)
	}
	if hand.Mask.GetGray(0, 0) != 0 || hand.Inverse.GetGray(0, 0) != 255 {
		t.Errorf("mask/inverse at (0,0) = %d/%d, want 0/255", hand.Mask.GetGray(0, 0), hand.Inverse.GetGray(0, 0))
	}
	if hand.Mask.GetGray(1, 1) != 255 || hand.Inverse.GetGray(1, 1) != 0 {
		t.Errorf("mask/inverse at (1,1) = %d/%d, want 255/0", hand.Mask.GetGray(1, 1), hand.Inverse.GetGray(1, 1))
	}
}

func TestPrepareHandErrors(t *testing.T) {
	sprite := imageutil.CreateSolidImage(10, 10, testBlue)
	if _, err := PrepareHand(sprite, imageutil.NewGrayImage(10, 10)); !errors.Is(err, ErrEmptyMask) {
		t.Errorf("empty mask: err = %v, want ErrEmptyMask", err)
	}
	if _, err := PrepareHand(sprite, imageutil.NewFilledGrayImage(10, 9, 255)); !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("size mismatch: err = %v, want ErrSizeMismatch", err)
	}
}

func TestHandOverlay(t *testing.T) {
	// Left half of the hand is opaque blue, right half transparent.
	sprite := imageutil.CreateSolidImage(4, 2, testBlue)
	mask := imageutil.NewGrayImage(4, 2)
	for y := 0; y < 2; y++ {
		mask.SetGrayValue(0, y, 255)
		mask.SetGrayValue(1, y, 255)
	}
	mask.SetGrayValue(3, 0, 255) // keeps the crop at full width
	hand, err := PrepareHand(sprite, mask)
	if err != nil {
		t.Fatalf("PrepareHand: %v", err)
	}

	dst := imageutil.CreateSolidImage(6, 6, testRed)
	hand.Overlay(dst, 2, 3)

	tests := []struct {
		x, y int
		want imageutil.RGB
	}{
		{2, 3, testBlue},
		{3, 4, testBlue},
		{4, 3, testRed}, // transparent part of the sprite
		{5, 3, testBlue},
		{1, 3, testRed}, // left of the hand
		{2, 5, testRed}, // below the hand
	}
	for _, tt := range tests {
		if got := dst.GetRGB(tt.x, tt.y); got != tt.want {
			t.Errorf("pixel (%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestHandOverlayClipsAtEdges(t *testing.T) {
	hand := testHand(t)
	dst := imageutil.CreateSolidImage(10, 10, imageutil.White)
	hand.Overlay(dst, 8, 8)
	if got := dst.GetRGB(9, 9); got != testBlue {
		t.Errorf("corner = %v, want %v", got, testBlue)
	}
	if got := dst.GetRGB(7, 7); got != imageutil.White {
		t.Errorf("outside hand = %v, want white", got)
	}

	before := dst.Clone()
	hand.Overlay(dst, 10, 3)
	hand.Overlay(dst, 3, 12)
	if !dst.Equal(before) {
		t.Error("overlay outside the frame modified pixels")
	}
}

func TestHandOverlaySaturates(t *testing.T) {
	sprite := imageutil.CreateSolidImage(2, 2, imageutil.RGB{R: 200, G: 200, B: 200})
	hand, err := PrepareHand(sprite, imageutil.NewFilledGrayImage(2, 2, 255))
	if err != nil {
		t.Fatalf("PrepareHand: %v", err)
	}
	// A partial inverse keeps some of the canvas; the sum clips at 255.
	hand.Inverse.Fill(128)
	dst := imageutil.CreateSolidImage(2, 2, imageutil.White)
	hand.Overlay(dst, 0, 0)
	if got := dst.GetRGB(0, 0); got != imageutil.White {
		t.Errorf("pixel = %v, want saturated white", got)
	}
}

func TestDefaultHand(t *testing.T) {
	a, err := DefaultHand()
	if err != nil {
		t.Fatalf("DefaultHand: %v", err)
	}
	b, _ := DefaultHand()
	if a != b {
		t.Error("DefaultHand is not memoized")
	}
	if a.Width() < 100 || a.Height() < 100 {
		t.Errorf("default hand is only %dx%d", a.Width(), a.Height())
	}
	// The pencil tip sits at the top-left corner of the crop.
	r, ok := a.Mask.BoundsOf(255)
	if !ok || r.Min != (image.Point{}) {
		t.Errorf("mask bounds = %v, want origin at (0,0)", r)
	}
	for y := 0; y < a.Height(); y++ {
		for x := 0; x < a.Width(); x++ {
			if a.Mask.GetGray(x, y) == 0 && a.Sprite.GetRGB(x, y) != (imageutil.RGB{}) {
				t.Fatalf("sprite not blacked out at (%d,%d)", x, y)
			}
		}
	}
}
