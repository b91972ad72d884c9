package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/wbrown/img2sketch/config"
	"github.com/wbrown/img2sketch/pipeline"
	"github.com/wbrown/img2sketch/video"
)

var buildInfo struct {
	version, commit, date string
}

// SetVersion sets the version shown by --version.
func SetVersion(v, c, d string) {
	buildInfo.version, buildInfo.commit, buildInfo.date = v, c, d
}

// globalFlags are shared by every subcommand.
type globalFlags struct {
	verbose    bool
	configPath string
}

func newRootCmd() *cobra.Command {
	var g globalFlags

	root := &cobra.Command{
		Use:          "sketchify",
		Short:        "Turn still images into whiteboard hand-drawing videos",
		Long:         `sketchify draws an image onto a white canvas cell by cell with a hand-held pencil, reveals it in color and writes the animation as a video.`,
		Version:      buildInfo.version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := log.InfoLevel
			if g.verbose {
				level = log.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("sketchify %s\ncommit: %s\nbuilt: %s\n",
		buildInfo.version, buildInfo.commit, buildInfo.date))
	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVarP(&g.configPath, "config", "c", "", "defaults file (default "+config.DefaultPath+" if present)")

	root.AddCommand(newSketchCmd(&g))
	root.AddCommand(newSplitLensCmd(&g))
	root.AddCommand(newServeCmd(&g))
	return root
}

// Execute runs the sketchify CLI.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

// loadConfig reads --config, or the default file when it exists.
func (g *globalFlags) loadConfig() (config.File, error) {
	if g.configPath == "" {
		return config.Load(config.DefaultPath, true)
	}
	return config.Load(g.configPath, false)
}

// newRunner builds a pipeline runner from the output and hand settings.
func newRunner(cfg config.File, logger *log.Logger) (*pipeline.Runner, error) {
	hand, err := cfg.Hand.LoadHand()
	if err != nil {
		return nil, fmt.Errorf("load hand: %w", err)
	}
	r := pipeline.NewRunner(logger)
	r.Hand = hand
	r.StageDir = cfg.Output.StagesDir
	r.Transcoder = nil
	if cfg.Output.Transcode {
		r.Transcoder = video.FFmpeg{Binary: cfg.Output.FFmpeg}
	}
	return r, nil
}

// baseRequest fills a request from the configured defaults.
func baseRequest(cfg config.File) pipeline.Request {
	return pipeline.Request{
		SplitLen:           cfg.Render.SplitLen,
		FrameRate:          cfg.Render.FrameRate,
		ObjectSkipRate:     cfg.Render.ObjectSkipRate,
		BackgroundSkipRate: cfg.Render.BackgroundSkipRate,
		EndHoldSeconds:     cfg.Render.EndHoldSeconds,
		EndFrame:           cfg.Render.EndFrame,
		OutputDir:          cfg.Output.Dir,
		Platform:           cfg.Output.Platform,
	}
}
