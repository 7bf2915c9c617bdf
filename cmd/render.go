package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"saxvideo/videogenerator"
)

var (
	renderOutput     string
	renderFramesOnly bool
	renderKeepFrames bool
	renderAudio      bool
	renderPaced      bool
)

func init() {
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "video file (default output/<name>.mp4)")
	renderCmd.Flags().BoolVar(&renderFramesOnly, "frames-only", false, "write PNG frames and skip ffmpeg")
	renderCmd.Flags().BoolVar(&renderKeepFrames, "keep-frames", false, "keep the PNG frames after encoding")
	renderCmd.Flags().BoolVar(&renderAudio, "audio", false, "add a timidity-rendered soundtrack")
	renderCmd.Flags().BoolVar(&renderPaced, "paced", false, "render in real time")
	rootCmd.AddCommand(renderCmd)
}

var renderCmd = &cobra.Command{
	Use:   "render <file.mid>",
	Short: "Renders a MIDI file to a video",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := cfg.GeneratorOptions(args[0])
		if cmd.Flags().Changed("output") {
			opts.OutputPath = renderOutput
		}
		if cmd.Flags().Changed("keep-frames") {
			opts.KeepFrames = renderKeepFrames
		}
		if cmd.Flags().Changed("audio") {
			opts.Audio = renderAudio
		}
		opts.FramesOnly = renderFramesOnly
		opts.Paced = renderPaced

		ctx, stop := signalContext()
		defer stop()

		res, err := videogenerator.Generate(ctx, opts)
		if err != nil {
			return err
		}

		if opts.FramesOnly {
			fmt.Fprintf(cmd.OutOrStdout(), "Frames: %d in %s\n", res.Frames, res.FramesFolder)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Execution time: %f seconds\nVideo Generated: %s\n", res.Elapsed.Seconds(), res.OutputPath)
		return nil
	},
}
