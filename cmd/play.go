package cmd

import (
	"github.com/spf13/cobra"

	"saxvideo/midiprocessor"
	"saxvideo/scheduler"
	"saxvideo/videogenerator"
	"saxvideo/window"
)

func init() {
	rootCmd.AddCommand(playCmd)
}

var playCmd = &cobra.Command{
	Use:   "play <file.mid>",
	Short: "Plays a MIDI file in a window",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tl, err := midiprocessor.LoadFile(args[0], cfg.TimelineSettings())
		if err != nil {
			return err
		}
		renderer, err := videogenerator.NewRenderer(cfg.RenderSettings())
		if err != nil {
			return err
		}

		ctx, stop := signalContext()
		defer stop()

		return window.Play(ctx, scheduler.New(tl, cfg.SchedulerConfig()), renderer, cfg.Debug)
	},
}
