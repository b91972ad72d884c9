// Package pipeline turns a sketch Request into a finished video file.
//
// A Runner executes the steps in order: decode the image, read optional
// annotations, normalize the resolution, prepare image and hand, draw every
// region into the video sink, hold the end frame, close the file and
// optionally transcode it. Every failure is reported as a Result rather
// than an error so callers can forward it unchanged.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	img2sketch "github.com/wbrown/img2sketch"
	"github.com/wbrown/img2sketch/imageutil"
	"github.com/wbrown/img2sketch/video"
)

// VideoSink is a frame sink backed by a file.
type VideoSink interface {
	img2sketch.FrameSink
	Close() error
}

// SinkOpener creates the raw video file.
type SinkOpener func(path, platform string, fps, width, height int) (VideoSink, error)

// OpenVideo is the default SinkOpener, backed by OpenCV.
func OpenVideo(path, platform string, fps, width, height int) (VideoSink, error) {
	return video.Open(path, platform, fps, width, height)
}

// Runner generates sketch videos. A Runner holds no per-request state;
// requests sharing an output directory should still be serialized because
// file names have one-second resolution.
type Runner struct {
	Logger *log.Logger
	// Now stamps output file names.
	Now func() time.Time
	// Hand is the cursor drawn over the canvas. nil uses the built-in hand.
	Hand *img2sketch.HandAsset
	// OpenSink creates the raw video. nil uses OpenVideo.
	OpenSink SinkOpener
	// Transcoder post-processes the raw video. nil skips the step.
	Transcoder video.Transcoder
	// StageDir, when set, receives PNG snapshots of the preprocessing
	// stages of every request.
	StageDir string
}

// NewRunner returns a Runner writing through OpenCV and transcoding with
// ffmpeg from PATH.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Logger:     logger,
		Now:        time.Now,
		OpenSink:   OpenVideo,
		Transcoder: video.FFmpeg{},
	}
}

func (r *Runner) logger() *log.Logger {
	if r.Logger == nil {
		return log.Default()
	}
	return r.Logger
}

func (r *Runner) now() time.Time {
	if r.Now == nil {
		return time.Now()
	}
	return r.Now()
}

// Submit runs req in its own goroutine. The returned channel receives
// exactly one Result and is then closed.
func (r *Runner) Submit(ctx context.Context, req Request) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		defer close(ch)
		ch <- r.Run(ctx, req)
	}()
	return ch
}

// Run generates the video for req.
func (r *Runner) Run(ctx context.Context, req Request) Result {
	logger := r.logger().With("request", uuid.NewString())
	start := time.Now()

	path, transcoded, err := r.render(req, logger)
	if err != nil {
		logger.Error("sketch failed", "image", req.ImagePath, "err", err)
		return failure(err)
	}

	if r.Transcoder != nil {
		path = r.transcode(ctx, path, transcoded, logger)
	}
	logger.Info("sketch finished", "video", path, "duration", time.Since(start).Round(time.Millisecond))
	return success(path)
}

// render writes the raw video and returns its path along with the path a
// transcoded copy should take. The raw file is removed on any failure
// after it was opened.
func (r *Runner) render(req Request, logger *log.Logger) (raw, transcoded string, err error) {
	img, err := imageutil.LoadImage(req.ImagePath)
	if err != nil {
		return "", "", err
	}

	var annotations *img2sketch.Annotations
	if req.AnnotationPath != "" {
		if annotations, err = img2sketch.LoadAnnotations(req.AnnotationPath); err != nil {
			return "", "", err
		}
	}

	width, height, err := img2sketch.NormalizeResolutionChecked(img.Height(), img.Width())
	if err != nil {
		return "", "", err
	}
	cfg := req.renderConfig(width, height)
	if err := cfg.Validate(); err != nil {
		return "", "", err
	}
	logger.Info("sketch started",
		"image", req.ImagePath,
		"width", width,
		"height", height,
		"split_len", cfg.SplitLen,
		"objects", shapeCount(annotations))

	if err := os.MkdirAll(req.OutputDir, 0o755); err != nil {
		return "", "", fmt.Errorf("failed to create output directory: %w", err)
	}

	prepared, err := img2sketch.Prepare(img, cfg)
	if err != nil {
		return "", "", err
	}
	logger.Debug("image prepared", "ink_pixels", prepared.InkPixels())
	rawPath, transcodedPath := video.OutputNames(req.OutputDir, r.now(), req.Platform)
	if r.StageDir != "" {
		prefix := strings.TrimSuffix(filepath.Base(rawPath), filepath.Ext(rawPath))
		if paths, err := prepared.SaveStages(r.StageDir, prefix); err != nil {
			logger.Warn("failed to save stages", "err", err)
		} else {
			logger.Debug("saved stages", "files", len(paths), "dir", r.StageDir)
		}
	}
	hand := r.Hand
	if hand == nil {
		if hand, err = img2sketch.DefaultHand(); err != nil {
			return "", "", err
		}
	}
	var masks []*imageutil.GrayImage
	if annotations != nil {
		if masks, err = annotations.Masks(img.Width(), img.Height(), width, height); err != nil {
			return "", "", err
		}
	}

	open := r.OpenSink
	if open == nil {
		open = OpenVideo
	}
	sink, err := open(rawPath, req.Platform, cfg.FrameRate, width, height)
	if err != nil {
		_ = os.Remove(rawPath)
		return "", "", err
	}
	defer func() {
		if cerr := sink.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to finish video: %w", cerr)
		}
		if err != nil {
			_ = os.Remove(rawPath)
			raw, transcoded = "", ""
		}
	}()

	engine := img2sketch.NewEngine(prepared, hand, sink, logger)
	stats, err := engine.Compose(cfg, masks)
	if err != nil {
		return "", "", err
	}
	for _, p := range stats.Passes {
		logger.Debug("pass finished", "pass", p.Name, "active", p.ActiveCells, "frames", p.Frames)
	}

	hold := cfg.EndHoldFrames()
	if err := img2sketch.WriteHold(sink, prepared.EndFrame(cfg.EndFrame), hold); err != nil {
		return "", "", fmt.Errorf("failed to write end frames: %w", err)
	}
	logger.Info("frames written", "drawing", stats.Frames(), "hold", hold)
	return rawPath, transcodedPath, nil
}

// transcode re-encodes raw into dst and returns the path of the video to
// report. Failure keeps the raw file and is not an error.
func (r *Runner) transcode(ctx context.Context, raw, dst string, logger *log.Logger) string {
	if err := r.Transcoder.Transcode(ctx, raw, dst); err != nil {
		if errors.Is(err, video.ErrTranscoderUnavailable) {
			logger.Warn("transcoder unavailable, keeping raw video", "video", raw)
		} else {
			logger.Warn("transcode failed, keeping raw video", "video", raw, "err", err)
		}
		_ = os.Remove(dst)
		return raw
	}
	if err := os.Remove(raw); err != nil {
		logger.Warn("failed to remove raw video", "video", raw, "err", err)
	}
	return dst
}

// SplitLens reports the normalized frame size for an image and the split
// lengths that tile it.
func (r *Runner) SplitLens(imagePath string) (SplitLensInfo, error) {
	img, err := imageutil.LoadImage(imagePath)
	if err != nil {
		return SplitLensInfo{}, err
	}
	width, height, err := img2sketch.NormalizeResolutionChecked(img.Height(), img.Width())
	if err != nil {
		return SplitLensInfo{}, err
	}
	return newSplitLensInfo(imagePath, width, height), nil
}

func shapeCount(a *img2sketch.Annotations) int {
	if a == nil {
		return 0
	}
	return len(a.Shapes)
}
