package logging

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobportal-front/internal/config"
)

func TestApply(t *testing.T) {
	logger := logrus.New()

	require.NoError(t, apply(logger, &config.LoggingConfig{Level: "debug", Format: "json"}))
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)

	require.NoError(t, apply(logger, &config.LoggingConfig{Level: "warn"}))
	assert.Equal(t, logrus.WarnLevel, logger.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, logger.Formatter)
}

func TestApplyRejectsBadInput(t *testing.T) {
	logger := logrus.New()

	assert.Error(t, apply(logger, &config.LoggingConfig{Level: "loud"}))
	assert.Error(t, apply(logger, &config.LoggingConfig{Format: "xml"}))
}
