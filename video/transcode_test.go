package video

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFFmpegArgs(t *testing.T) {
	got := FFmpeg{}.Args("in.avi", "out_h264.mp4")
	want := []string{"-y", "-loglevel", "error", "-i", "in.avi", "-c:v", "libx264", "-crf", "20", "-pix_fmt", "yuv420p", "out_h264.mp4"}
	assert.Equal(t, want, got)
}

func TestFFmpegMissingBinary(t *testing.T) {
	f := FFmpeg{Binary: filepath.Join(t.TempDir(), "no-such-ffmpeg")}
	err := f.Transcode(context.Background(), "in.avi", "out.mp4")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTranscoderUnavailable)
}

func TestFFmpegFailureReportsStderr(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script stand-in needs a POSIX shell")
	}
	script := filepath.Join(t.TempDir(), "fake-ffmpeg")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\necho 'unknown encoder libx264' >&2\nexit 1\n"), 0o755))

	err := FFmpeg{Binary: script}.Transcode(context.Background(), "in.avi", "out.mp4")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrTranscoderUnavailable)
	assert.Contains(t, err.Error(), "unknown encoder libx264")
}

func TestFFmpegSuccess(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script stand-in needs a POSIX shell")
	}
	dir := t.TempDir()
	script := filepath.Join(dir, "fake-ffmpeg")
	// Copies the input (argument 5) to the output (last argument).
	body := "#!/bin/sh\nsrc=$5\nfor a; do dst=$a; done\ncp \"$src\" \"$dst\"\n"
	require.NoError(t, os.WriteFile(script, []byte(body), 0o755))

	src := filepath.Join(dir, "in.avi")
	dst := filepath.Join(dir, "out.mp4")
	require.NoError(t, os.WriteFile(src, []byte("frames"), 0o644))

	require.NoError(t, FFmpeg{Binary: script}.Transcode(context.Background(), src, dst))
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "frames", string(data))
}
