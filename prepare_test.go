package img2sketch

import (
	"errors"
	"image"
	"path/filepath"
	"testing"

	"github.com/wbrown/img2sketch/imageutil"
)

func TestPrepareFindsInk(t *testing.T) {
	src := imageutil.CreateLineDrawing(200, 100, 2, image.Rect(20, 20, 120, 80))
	p, err := Prepare(src, RenderConfig{Width: 160, Height: 120})
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if p.Width() != 160 || p.Height() != 120 {
		t.Fatalf("prepared %dx%d, want 160x120", p.Width(), p.Height())
	}
	for _, img := range []*imageutil.GrayImage{p.Gray, p.Equalized, p.Ink} {
		if img.Width() != 160 || img.Height() != 120 {
			t.Errorf("buffer is %dx%d, want 160x120", img.Width(), img.Height())
		}
	}
	if p.InkPixels() == 0 {
		t.Fatal("no ink found in a line drawing")
	}
	for _, v := range p.Ink.Pix {
		if v != 0 && v != 255 {
			t.Fatalf("ink value %d is not binary", v)
		}
	}
	// The blank corner far from any stroke is not ink.
	if p.Ink.GetGray(150, 5) != 255 {
		t.Error("blank area classified as ink")
	}
}

func TestPrepareBlankImageHasNoInk(t *testing.T) {
	p, err := Prepare(imageutil.CreateSolidImage(64, 48, imageutil.White), RenderConfig{Width: 64, Height: 48})
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if n := p.InkPixels(); n != 0 {
		t.Errorf("blank image has %d ink pixels", n)
	}
}

func TestPrepareRejectsBadSize(t *testing.T) {
	src := imageutil.CreateSolidImage(10, 10, imageutil.White)
	if _, err := Prepare(src, RenderConfig{Width: 0, Height: 10}); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("err = %v, want ErrInvalidConfig", err)
	}
	if _, err := Prepare(imageutil.NewRGBAImage(0, 0), RenderConfig{Width: 10, Height: 10}); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("empty source: err = %v, want ErrInvalidConfig", err)
	}
}

func TestEndFrame(t *testing.T) {
	p := syntheticPrepared(8, 8, image.Pt(1, 1))
	color := p.EndFrame(EndFrameColor)
	if !color.Equal(p.Color) {
		t.Error("color end frame differs from the color image")
	}
	color.SetRGB(0, 0, testBlue)
	if p.Color.GetRGB(0, 0) == testBlue {
		t.Error("end frame aliases the prepared image")
	}

	ink := p.EndFrame(EndFrameThreshold)
	if got := ink.GetRGB(1, 1); got != (imageutil.RGB{}) {
		t.Errorf("ink pixel = %v, want black", got)
	}
	if got := ink.GetRGB(2, 2); got != imageutil.White {
		t.Errorf("blank pixel = %v, want white", got)
	}
}

func TestRenderConfigValidate(t *testing.T) {
	good := RenderConfig{FrameRate: 25, Width: 640, Height: 480, SplitLen: 10, ObjectSkipRate: 8, BackgroundSkipRate: 20, EndHoldSeconds: 3}
	if err := good.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if got := good.EndHoldFrames(); got != 75 {
		t.Errorf("EndHoldFrames = %d, want 75", got)
	}

	mutations := map[string]func(*RenderConfig){
		"frame rate":    func(c *RenderConfig) { c.FrameRate = 0 },
		"width":         func(c *RenderConfig) { c.Width = -1 },
		"split length":  func(c *RenderConfig) { c.SplitLen = 0 },
		"object skip":   func(c *RenderConfig) { c.ObjectSkipRate = 0 },
		"bg skip":       func(c *RenderConfig) { c.BackgroundSkipRate = -3 },
		"negative hold": func(c *RenderConfig) { c.EndHoldSeconds = -1 },
	}
	for name, mutate := range mutations {
		cfg := good
		mutate(&cfg)
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("%s: err = %v, want ErrInvalidConfig", name, err)
		}
	}

	zeroHold := good
	zeroHold.EndHoldSeconds = 0
	if err := zeroHold.Validate(); err != nil {
		t.Errorf("zero hold rejected: %v", err)
	}
}

func TestEndFrameModeText(t *testing.T) {
	for _, in := range []string{"threshold", "Gray", " grayscale "} {
		m, err := ParseEndFrameMode(in)
		if err != nil || m != EndFrameThreshold {
			t.Errorf("ParseEndFrameMode(%q) = %v, %v", in, m, err)
		}
	}
	if _, err := ParseEndFrameMode("sepia"); err == nil {
		t.Error("expected error for unknown mode")
	}

	var m EndFrameMode
	if err := m.UnmarshalText([]byte("threshold")); err != nil || m != EndFrameThreshold {
		t.Errorf("UnmarshalText = %v, %v", m, err)
	}
	text, _ := EndFrameColor.MarshalText()
	if string(text) != "color" {
		t.Errorf("MarshalText = %q", text)
	}
}

func TestWriteHold(t *testing.T) {
	rec := &FrameRecorder{}
	frame := imageutil.CreateSolidImage(4, 4, testRed)
	if err := WriteHold(rec, frame, 5); err != nil {
		t.Fatalf("WriteHold: %v", err)
	}
	if len(rec.Frames) != 5 {
		t.Fatalf("%d frames, want 5", len(rec.Frames))
	}
	for i, f := range rec.Frames {
		if !f.Equal(frame) {
			t.Errorf("frame %d differs from the end frame", i)
		}
	}
	if err := WriteHold(failingSink{errors.New("boom")}, frame, 1); err == nil {
		t.Error("expected sink error")
	}
}

func TestSaveStages(t *testing.T) {
	p := syntheticPrepared(16, 12, image.Pt(3, 3))
	dir := filepath.Join(t.TempDir(), "stages")

	paths, err := p.SaveStages(dir, "vid_20240101_000000")
	if err != nil {
		t.Fatalf("SaveStages: %v", err)
	}
	if len(paths) != 4 {
		t.Fatalf("wrote %d files, want 4", len(paths))
	}
	ink, err := imageutil.LoadGrayImage(filepath.Join(dir, "vid_20240101_000000_ink.png"))
	if err != nil {
		t.Fatalf("reading ink stage: %v", err)
	}
	if ink.GetGray(3, 3) != 0 || ink.GetGray(4, 4) != 255 {
		t.Error("ink stage does not match the ink map")
	}
}
