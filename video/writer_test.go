package video

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wbrown/img2sketch/imageutil"
)

// openOrSkip opens a writer, skipping the test when the local OpenCV build
// lacks the encoder.
func openOrSkip(t *testing.T, platform string, w, h int) *Writer {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vid"+CodecFor(platform).Extension)
	vw, err := Open(path, platform, 25, w, h)
	if err != nil {
		t.Skipf("OpenCV cannot encode %s: %v", CodecFor(platform).FourCC, err)
	}
	return vw
}

func TestWriterWritesFrames(t *testing.T) {
	for _, platform := range []string{"android", "linux"} {
		t.Run(platform, func(t *testing.T) {
			vw := openOrSkip(t, platform, 64, 48)
			frame := imageutil.CreateColorBarsImage(64, 48)
			for i := 0; i < 10; i++ {
				require.NoError(t, vw.WriteFrame(frame))
			}
			assert.Equal(t, 10, vw.Frames())
			require.NoError(t, vw.Close())

			info, err := os.Stat(vw.Path())
			require.NoError(t, err)
			assert.Positive(t, info.Size())
		})
	}
}

func TestWriterRejectsWrongSize(t *testing.T) {
	vw := openOrSkip(t, "android", 64, 48)
	defer vw.Close()
	assert.Error(t, vw.WriteFrame(imageutil.NewRGBAImage(32, 48)))
}

func TestWriterCloseIsIdempotent(t *testing.T) {
	vw := openOrSkip(t, "android", 32, 32)
	require.NoError(t, vw.Close())
	require.NoError(t, vw.Close())
	assert.ErrorIs(t, vw.WriteFrame(imageutil.NewRGBAImage(32, 32)), ErrWriterClosed)
}

func TestOpenRejectsBadParameters(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "x.avi"), "android", 0, 10, 10)
	assert.Error(t, err)
	_, err = Open(filepath.Join(t.TempDir(), "x.avi"), "android", 25, 10, -1)
	assert.Error(t, err)
}
