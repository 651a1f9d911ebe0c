package logging

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"jobportal-front/internal/config"
)

var loggingOnce sync.Once

// Configure sets up the logrus standard logger. Only the first call has an
// effect.
func Configure(c *config.LoggingConfig) error {
	var err error

	loggingOnce.Do(func() {
		err = apply(logrus.StandardLogger(), c)
	})

	return err
}

func apply(logger *logrus.Logger, c *config.LoggingConfig) error {
	switch c.Format {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	case "", "text":
		// the browser console has no TTY, keep the output uncolored
		logger.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	default:
		return errors.Errorf("unknown log format %q", c.Format)
	}

	if c.Level != "" {
		level, err := logrus.ParseLevel(c.Level)
		if err != nil {
			return errors.Wrap(err, "parsing log level")
		}
		logger.SetLevel(level)
		logger.Debug("Set log level to: " + logger.GetLevel().String())
	}
	return nil
}
