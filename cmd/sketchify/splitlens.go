package main

import (
	"github.com/spf13/cobra"

	"github.com/wbrown/img2sketch/pipeline"
)

func newSplitLensCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "split-lens <image>",
		Short: "Show the video size for an image and the split lengths that tile it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := pipeline.NewRunner(loggerFromContext(cmd.Context())).SplitLens(args[0])
			if err != nil {
				return err
			}
			printSplitLens(cmd.OutOrStdout(), info)
			return nil
		},
	}
}
