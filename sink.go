package img2sketch

import "github.com/wbrown/img2sketch/imageutil"

// FrameSink receives frames in display order. The frame passed to
// WriteFrame is reused by the caller afterwards; a sink that keeps frames
// must copy them.
type FrameSink interface {
	WriteFrame(frame *imageutil.RGBAImage) error
}

// FrameRecorder is a FrameSink that keeps a copy of every frame in memory.
type FrameRecorder struct {
	Frames []*imageutil.RGBAImage
}

// WriteFrame implements FrameSink.
func (r *FrameRecorder) WriteFrame(frame *imageutil.RGBAImage) error {
	r.Frames = append(r.Frames, frame.Clone())
	return nil
}

// FrameCounter is a FrameSink that only counts frames.
type FrameCounter struct {
	N int
}

// WriteFrame implements FrameSink.
func (c *FrameCounter) WriteFrame(*imageutil.RGBAImage) error {
	c.N++
	return nil
}

// WriteHold writes frame to sink n times.
func WriteHold(sink FrameSink, frame *imageutil.RGBAImage, n int) error {
	for i := 0; i < n; i++ {
		if err := sink.WriteFrame(frame); err != nil {
			return err
		}
	}
	return nil
}
