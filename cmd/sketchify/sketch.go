package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	img2sketch "github.com/wbrown/img2sketch"
	"github.com/wbrown/img2sketch/config"
	"github.com/wbrown/img2sketch/pipeline"
)

type sketchFlags struct {
	split       int
	fps         int
	objectSkip  int
	bgSkip      int
	hold        int
	endFrame    string
	out         string
	platform    string
	annotations string
	noTranscode bool
	ffmpeg      string
	hand        string
	handMask    string
	stagesDir   string
}

func newSketchCmd(g *globalFlags) *cobra.Command {
	var f sketchFlags

	cmd := &cobra.Command{
		Use:   "sketch <image>...",
		Short: "Generate a hand-drawing video for each image",
		Long: `Generate a hand-drawing video for each image.

Images are processed one after another. Values not given on the command
line come from the defaults file.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			applyOutputFlags(cmd, &f, &cfg.Output, &cfg.Hand.Sprite, &cfg.Hand.Mask)
			if err := cfg.Validate(); err != nil {
				return err
			}
			runner, err := newRunner(cfg, logger)
			if err != nil {
				return err
			}

			req := baseRequest(cfg)
			if err := applyRenderFlags(cmd, &f, &req); err != nil {
				return err
			}

			failed := 0
			for _, image := range args {
				req := req
				req.ImagePath = image
				if err := checkSplitLen(runner, req); err != nil {
					printResult(cmd.OutOrStdout(), pipeline.Result{Message: "Error: " + err.Error()})
					failed++
					continue
				}
				prog := newProgress(logger)
				res := runner.Run(cmd.Context(), req)
				prog.done("Sketched " + image)
				printResult(cmd.OutOrStdout(), res)
				if !res.Status {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d images failed", failed, len(args))
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.IntVarP(&f.split, "split", "s", 0, "grid cell size in pixels; must divide the video size (see split-lens)")
	flags.IntVar(&f.fps, "fps", 0, "frame rate")
	flags.IntVar(&f.objectSkip, "object-skip", 0, "cells drawn per frame while sketching objects")
	flags.IntVar(&f.bgSkip, "bg-skip", 0, "cells drawn per frame while sketching the background")
	flags.IntVar(&f.hold, "hold", 0, "seconds the finished image is held at the end")
	flags.StringVar(&f.endFrame, "end-frame", "", "final frame: color or threshold")
	flags.StringVarP(&f.out, "out", "o", "", "output directory")
	flags.StringVar(&f.platform, "platform", "", "target platform; android writes MJPG/AVI, others mp4v/MP4")
	flags.StringVarP(&f.annotations, "annotations", "a", "", "LabelMe JSON with object polygons to draw first")
	flags.BoolVar(&f.noTranscode, "no-transcode", false, "keep the raw video, skip the H.264 transcode")
	flags.StringVar(&f.ffmpeg, "ffmpeg", "", "ffmpeg binary")
	flags.StringVar(&f.stagesDir, "stages-dir", "", "save PNG snapshots of the preprocessing stages here")
	flags.StringVar(&f.hand, "hand", "", "hand sprite image")
	flags.StringVar(&f.handMask, "hand-mask", "", "hand mask image")
	return cmd
}

// applyOutputFlags overrides output and hand settings with the flags the
// user set.
func applyOutputFlags(cmd *cobra.Command, f *sketchFlags, out *config.Output, sprite, mask *string) {
	changed := cmd.Flags().Changed
	if changed("out") {
		out.Dir = f.out
	}
	if changed("platform") {
		out.Platform = f.platform
	}
	if changed("no-transcode") {
		out.Transcode = !f.noTranscode
	}
	if changed("ffmpeg") {
		out.FFmpeg = f.ffmpeg
	}
	if changed("stages-dir") {
		out.StagesDir = f.stagesDir
	}
	if changed("hand") {
		*sprite = f.hand
	}
	if changed("hand-mask") {
		*mask = f.handMask
	}
}

// applyRenderFlags overrides request fields with the flags the user set.
func applyRenderFlags(cmd *cobra.Command, f *sketchFlags, req *pipeline.Request) error {
	changed := cmd.Flags().Changed
	ints := []struct {
		flag string
		src  int
		dst  *int
	}{
		{"split", f.split, &req.SplitLen},
		{"fps", f.fps, &req.FrameRate},
		{"object-skip", f.objectSkip, &req.ObjectSkipRate},
		{"bg-skip", f.bgSkip, &req.BackgroundSkipRate},
		{"hold", f.hold, &req.EndHoldSeconds},
	}
	for _, v := range ints {
		if changed(v.flag) {
			*v.dst = v.src
		}
	}
	req.AnnotationPath = f.annotations
	if changed("end-frame") {
		mode, err := img2sketch.ParseEndFrameMode(f.endFrame)
		if err != nil {
			return err
		}
		req.EndFrame = mode
	}
	return nil
}

// checkSplitLen rejects a split length that does not tile the normalized
// video size.
func checkSplitLen(runner *pipeline.Runner, req pipeline.Request) error {
	info, err := runner.SplitLens(req.ImagePath)
	if err != nil {
		return err
	}
	if !slices.Contains(info.SplitLens, req.SplitLen) {
		return fmt.Errorf("split length %d does not divide %dx%d; choose one of %v",
			req.SplitLen, info.Width, info.Height, info.SplitLens)
	}
	return nil
}
