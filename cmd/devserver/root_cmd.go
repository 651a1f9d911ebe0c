package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"jobportal-front/internal/config"
	"jobportal-front/internal/logging"
)

var configFile = ""

var rootCmd = cobra.Command{
	Use:   "devserver",
	Short: "Serve the job portal WASM client for local development",
	Run: func(cmd *cobra.Command, args []string) {
		execWithConfig(cmd, serve)
	},
}

// RootCommand will setup and return the root command
func RootCommand() *cobra.Command {
	rootCmd.AddCommand(&serveCmd, &versionCmd)
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "the env file to load")

	return &rootCmd
}

func execWithConfig(cmd *cobra.Command, fn func(*cobra.Command, *config.DevServerConfiguration)) {
	c, err := config.LoadDevServer(configFile)
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %+v", err)
	}
	if err := logging.Configure(&c.Logging); err != nil {
		logrus.Fatalf("Failed to configure logging: %+v", err)
	}

	fn(cmd, c)
}
