package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	img2sketch "github.com/wbrown/img2sketch"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sketchify.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	f := Default()
	assert.Equal(t, 25, f.Render.FrameRate)
	assert.Equal(t, 10, f.Render.SplitLen)
	assert.Equal(t, 8, f.Render.ObjectSkipRate)
	assert.Equal(t, 20, f.Render.BackgroundSkipRate)
	assert.Equal(t, 3, f.Render.EndHoldSeconds)
	assert.Equal(t, img2sketch.EndFrameColor, f.Render.EndFrame)
	assert.Equal(t, "save_videos", f.Output.Dir)
	assert.True(t, f.Output.Transcode)
	assert.NoError(t, f.Validate())
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[render]
frame_rate = 30
end_frame = "threshold"

[output]
platform = "android"
transcode = false
`)
	f, err := Load(path, false)
	require.NoError(t, err)
	assert.Equal(t, 30, f.Render.FrameRate)
	assert.Equal(t, img2sketch.EndFrameThreshold, f.Render.EndFrame)
	assert.Equal(t, "android", f.Output.Platform)
	assert.False(t, f.Output.Transcode)
	// Untouched keys keep their defaults.
	assert.Equal(t, 8, f.Render.ObjectSkipRate)
	assert.Equal(t, "save_videos", f.Output.Dir)
}

func TestLoadMissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "none.toml")

	f, err := Load(missing, true)
	require.NoError(t, err)
	assert.Equal(t, Default(), f)

	_, err = Load(missing, false)
	assert.Error(t, err)
}

func TestLoadRejectsBadFiles(t *testing.T) {
	tests := map[string]string{
		"syntax":       "[render\nframe_rate = 1",
		"unknown key":  "[render]\nframe_rat = 30",
		"zero skip":    "[render]\nobject_skip_rate = 0",
		"bad end mode": "[render]\nend_frame = \"sepia\"",
		"half hand":    "[hand]\nsprite = \"hand.png\"",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body), false)
			assert.Error(t, err)
		})
	}
}

func TestValidateWrapsInvalidConfig(t *testing.T) {
	f := Default()
	f.Render.EndHoldSeconds = -1
	assert.ErrorIs(t, f.Validate(), img2sketch.ErrInvalidConfig)
}

func TestHandLoadHand(t *testing.T) {
	hand, err := Hand{}.LoadHand()
	require.NoError(t, err)
	builtin, err := img2sketch.DefaultHand()
	require.NoError(t, err)
	assert.Same(t, builtin, hand)

	_, err = Hand{Sprite: "missing.png", Mask: "missing-mask.png"}.LoadHand()
	assert.Error(t, err)
}
