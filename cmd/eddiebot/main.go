package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/siue-cs/eddiebot/config"
	srv "github.com/siue-cs/eddiebot/internal/server"
)

func main() {
	root := &cobra.Command{Use: "eddiebot"}
	root.AddCommand(serveCMD())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCMD() *cobra.Command {
	var cfgPath string
	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the chat backend HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig(cfgPath)
			return srv.Run(cfg)
		},
	}
	serve.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config file (default is .)")
	return serve
}
