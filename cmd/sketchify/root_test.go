package main

import (
	"bytes"
	"context"
	"image"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	img2sketch "github.com/wbrown/img2sketch"
	"github.com/wbrown/img2sketch/imageutil"
	"github.com/wbrown/img2sketch/pipeline"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeImage(t *testing.T, w, h int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "page.png")
	img := imageutil.CreateLineDrawing(w, h, 2, image.Rect(10, 10, w/2, h/2))
	require.NoError(t, imageutil.SaveImage(img, path))
	return path
}

func TestSetVersion(t *testing.T) {
	SetVersion("1.0.0", "abc123", "2024-01-01")
	out, err := runCLI(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "sketchify 1.0.0")
	assert.Contains(t, out, "commit: abc123")
}

func TestSplitLensCommand(t *testing.T) {
	out, err := runCLI(t, "split-lens", writeImage(t, 1000, 500))
	require.NoError(t, err)
	assert.Contains(t, out, "page.png, video resolution: 1080 x 480")
	assert.Contains(t, out, "[10]")
}

func TestSplitLensCommandMissingImage(t *testing.T) {
	_, err := runCLI(t, "split-lens", filepath.Join(t.TempDir(), "none.png"))
	assert.Error(t, err)
}

func TestSketchRejectsSplitThatDoesNotTile(t *testing.T) {
	out, err := runCLI(t, "sketch", "--split", "7", "--no-transcode", "-o", t.TempDir(), writeImage(t, 1000, 500))
	require.Error(t, err)
	assert.Contains(t, out, "split length 7 does not divide 1080x480")
}

func TestSketchRejectsBadEndFrame(t *testing.T) {
	_, err := runCLI(t, "sketch", "--end-frame", "sepia", writeImage(t, 100, 100))
	assert.Error(t, err)
}

func TestApplyRenderFlags(t *testing.T) {
	cmd := newSketchCmd(&globalFlags{})
	require.NoError(t, cmd.ParseFlags([]string{"--fps", "30", "--split", "20", "--end-frame", "threshold", "-a", "objs.json"}))

	req := pipeline.Request{FrameRate: 25, SplitLen: 10, ObjectSkipRate: 8}
	f := &sketchFlags{fps: 30, split: 20, endFrame: "threshold", annotations: "objs.json"}
	require.NoError(t, applyRenderFlags(cmd, f, &req))

	assert.Equal(t, 30, req.FrameRate)
	assert.Equal(t, 20, req.SplitLen)
	assert.Equal(t, 8, req.ObjectSkipRate, "unset flags keep the default")
	assert.Equal(t, img2sketch.EndFrameThreshold, req.EndFrame)
	assert.Equal(t, "objs.json", req.AnnotationPath)
}

func TestPrintResult(t *testing.T) {
	var buf bytes.Buffer
	printResult(&buf, pipeline.Result{Status: true, Message: "out/vid.mp4"})
	printResult(&buf, pipeline.Result{Status: false, Message: "Error: boom"})
	assert.Contains(t, buf.String(), "Video generated at: out/vid.mp4")
	assert.Contains(t, buf.String(), "Error: boom")
}
