package main

import (
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"jobportal-front/internal/config"
	"jobportal-front/internal/devserver"
)

var serveCmd = cobra.Command{
	Use:  "serve",
	Long: "Serve the static bundle and proxy /api to the configured upstream",
	Run: func(cmd *cobra.Command, args []string) {
		execWithConfig(cmd, serve)
	},
}

func serve(cmd *cobra.Command, c *config.DevServerConfiguration) {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s, err := devserver.New(c, Version)
	if err != nil {
		logrus.WithError(err).Fatal("unable to create dev server")
	}
	if c.APIUpstream != "" {
		logrus.Infof("proxying /api to %s", c.APIUpstream)
	}

	if err := s.ListenAndServe(ctx); err != nil {
		logrus.WithError(err).Fatal("dev server stopped")
	}
}
