//go:build js

package main

import (
	"syscall/js"

	"github.com/hexops/vecty"
	"github.com/sirupsen/logrus"

	"jobportal-front/internal/api"
	"jobportal-front/internal/config"
	"jobportal-front/internal/logging"
	"jobportal-front/internal/store"
)

const sessionKey = "jobportal.auth.user"

func main() {
	// the environment comes from go.env in index.html
	c, err := config.LoadClient("")
	if err != nil {
		logrus.WithError(err).Fatal("unable to load config")
	}
	if err := logging.Configure(&c.Logging); err != nil {
		logrus.WithError(err).Fatal("unable to configure logging")
	}

	origin := js.Global().Get("location").Get("origin").String()
	endpoint, err := c.ResolveEndpoint(origin)
	if err != nil {
		logrus.WithError(err).Fatal("unable to resolve user API endpoint")
	}
	client, err := api.New(endpoint, api.WithPageOrigin(origin))
	if err != nil {
		logrus.WithError(err).Fatal("unable to create API client")
	}

	s := store.New(store.WithPersister(localStoragePersister{key: sessionKey}))
	if err := s.Restore(); err != nil {
		logrus.WithError(err).Warn("ignoring stored session")
	}

	logrus.WithField("endpoint", endpoint).Info("job portal client started")

	vecty.SetTitle("Job Portal")
	vecty.RenderBody(NewApp(c, s, client))

	// keep the Go runtime alive for event callbacks
	select {}
}
