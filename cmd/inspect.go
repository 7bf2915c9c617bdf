package cmd

import (
	"github.com/spf13/cobra"

	"saxvideo/midiprocessor"
)

var showEvents bool

func init() {
	inspectCmd.Flags().BoolVar(&showEvents, "events", false, "print the normalized note events instead of the timeline")
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.mid>",
	Short: "Prints the scheduled notes of a MIDI file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if showEvents {
			n, err := midiprocessor.LoadEvents(args[0])
			if err != nil {
				return err
			}
			return n.WriteEvents(cmd.OutOrStdout())
		}

		tl, err := midiprocessor.LoadFile(args[0], cfg.TimelineSettings())
		if err != nil {
			return err
		}
		return tl.WriteReport(cmd.OutOrStdout())
	},
}
