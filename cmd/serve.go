package cmd

import (
	"github.com/spf13/cobra"

	"saxvideo/apiserver"
	"saxvideo/videogenerator"
)

var serveAddr string

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves fingering lookups and chart images over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		renderer, err := videogenerator.NewRenderer(cfg.RenderSettings())
		if err != nil {
			return err
		}

		addr := cfg.ServerAddr
		if serveAddr != "" {
			addr = serveAddr
		}

		ctx, stop := signalContext()
		defer stop()

		return apiserver.New(addr, cfg.AllowedOrigins, renderer).Run(ctx)
	},
}
