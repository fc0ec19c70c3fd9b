package cmd

import (
	"github.com/bgraf/trackheat/cmd/serve"
	"github.com/bgraf/trackheat/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve [FILE-OR-DIRECTORY...]",
	Short: "Serve tracks and heat points over a JSON API",
	RunE:  serve.RunServeCmd,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP(
		"listen",
		"L",
		config.DefaultListen(),
		"Address to listen on",
	)
	if err := viper.BindPFlag(config.KeyListen, serveCmd.Flags().Lookup("listen")); err != nil {
		panic(err)
	}
}
