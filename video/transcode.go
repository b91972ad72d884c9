package video

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrTranscoderUnavailable is returned when the transcoder binary cannot
// be found.
var ErrTranscoderUnavailable = errors.New("transcoder unavailable")

// Transcoder re-encodes a finished video.
type Transcoder interface {
	Transcode(ctx context.Context, src, dst string) error
}

// FFmpeg transcodes to H.264 (CRF 20, yuv420p) with the ffmpeg binary.
type FFmpeg struct {
	// Binary is the ffmpeg executable. Empty means "ffmpeg" on PATH.
	Binary string
}

func (f FFmpeg) binary() string {
	if f.Binary == "" {
		return "ffmpeg"
	}
	return f.Binary
}

// Args returns the ffmpeg arguments for transcoding src to dst.
func (f FFmpeg) Args(src, dst string) []string {
	return []string{
		"-y", "-loglevel", "error",
		"-i", src,
		"-c:v", "libx264",
		"-crf", "20",
		"-pix_fmt", "yuv420p",
		dst,
	}
}

// Transcode runs ffmpeg. A missing binary yields ErrTranscoderUnavailable;
// a failed run returns ffmpeg's error output.
func (f FFmpeg) Transcode(ctx context.Context, src, dst string) error {
	bin, err := exec.LookPath(f.binary())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTranscoderUnavailable, err)
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, f.Args(src, dst)...)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("ffmpeg: %w: %s", err, msg)
		}
		return fmt.Errorf("ffmpeg: %w", err)
	}
	return nil
}
