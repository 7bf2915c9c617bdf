package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"saxvideo/config"
)

var (
	configPath string
	debug      bool
	cfg        config.Config
)

var rootCmd = &cobra.Command{
	Use:   "saxvideo",
	Short: "Saxophone fingering visualizer",
	Long: `saxvideo turns a MIDI file into a scrolling piano roll of saxophone key lanes
with a fingering chart for the note at the playline. It can play the result in a
window, render it to a video, print the scheduled notes or serve fingering charts.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if debug {
			cfg.Debug = true
		}
		if cfg.Debug {
			logrus.SetLevel(logrus.DebugLevel)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "verbose logging")
}

// signalContext is cancelled on Ctrl-C or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
