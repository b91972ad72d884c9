package video

import (
	"errors"
	"fmt"

	"gocv.io/x/gocv"

	"github.com/wbrown/img2sketch/imageutil"
)

// ErrWriterClosed is returned by WriteFrame after Close.
var ErrWriterClosed = errors.New("video writer closed")

// Writer encodes RGBA frames into a video file with OpenCV.
type Writer struct {
	path   string
	codec  Codec
	width  int
	height int

	vw     *gocv.VideoWriter
	bgr    []byte
	frames int
	closed bool
}

// Open creates the video file at path using the codec for platform.
func Open(path, platform string, fps, width, height int) (*Writer, error) {
	if fps <= 0 || width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid video parameters: %d fps, %dx%d", fps, width, height)
	}
	codec := CodecFor(platform)
	vw, err := gocv.VideoWriterFile(path, codec.FourCC, float64(fps), width, height, true)
	if err != nil {
		return nil, fmt.Errorf("failed to open video %s: %w", path, err)
	}
	if !vw.IsOpened() {
		_ = vw.Close()
		return nil, fmt.Errorf("failed to open video %s: %s encoder unavailable", path, codec.FourCC)
	}
	return &Writer{
		path:   path,
		codec:  codec,
		width:  width,
		height: height,
		vw:     vw,
	}, nil
}

// Path returns the file being written.
func (w *Writer) Path() string { return w.path }

// Frames returns the number of frames written so far.
func (w *Writer) Frames() int { return w.frames }

// WriteFrame appends one frame. The frame must match the size given to
// Open.
func (w *Writer) WriteFrame(frame *imageutil.RGBAImage) error {
	if w.closed {
		return ErrWriterClosed
	}
	if frame.Width() != w.width || frame.Height() != w.height {
		return fmt.Errorf("frame is %dx%d, video is %dx%d",
			frame.Width(), frame.Height(), w.width, w.height)
	}

	w.bgr = frame.BGR(w.bgr)
	mat, err := gocv.NewMatFromBytes(w.height, w.width, gocv.MatTypeCV8UC3, w.bgr)
	if err != nil {
		return fmt.Errorf("failed to convert frame: %w", err)
	}
	defer func(mat *gocv.Mat) {
		_ = mat.Close()
	}(&mat)

	if err := w.vw.Write(mat); err != nil {
		return fmt.Errorf("failed to write frame %d: %w", w.frames, err)
	}
	w.frames++
	return nil
}

// Close flushes and releases the encoder. Only the first call has any
// effect.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	if err := w.vw.Close(); err != nil {
		return fmt.Errorf("failed to close video %s: %w", w.path, err)
	}
	return nil
}
