package config

import (
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

const (
	clientPrefix    = "jobportal"
	devServerPrefix = "jobportal_dev"
)

// LoggingConfig configures the logrus standard logger.
type LoggingConfig struct {
	Level  string `envconfig:"LEVEL" default:"info"`
	Format string `envconfig:"FORMAT" default:"text"`
}

// ClientConfiguration holds the settings read by the browser bundle.
type ClientConfiguration struct {
	// UserAPIEndpoint is the base of the user API, e.g. https://api.example.com/api/v1/user.
	// A path starting with "/" is resolved against the page origin.
	UserAPIEndpoint  string        `envconfig:"USER_API_END_POINT" default:"http://localhost:8000/api/v1/user"`
	StrictValidation bool          `envconfig:"SIGNUP_STRICT_VALIDATION" default:"false"`
	ToastDuration    time.Duration `envconfig:"TOAST_DURATION" default:"4s"`
	Logging          LoggingConfig `envconfig:"LOG"`
}

// DevServerConfiguration holds the settings of the local development server.
type DevServerConfiguration struct {
	Host           string        `envconfig:"HOST" default:"localhost"`
	Port           string        `envconfig:"PORT" default:"8080"`
	StaticDir      string        `envconfig:"STATIC_DIR" default:"static"`
	APIUpstream    string        `envconfig:"API_UPSTREAM"`
	AllowedOrigins []string      `envconfig:"ALLOWED_ORIGINS"`
	Logging        LoggingConfig `envconfig:"LOG"`
}

// LoadClient reads the client configuration from the environment. When
// filename is set its contents override the environment first. The browser
// passes an empty filename since it has no filesystem.
func LoadClient(filename string) (*ClientConfiguration, error) {
	if filename != "" {
		if err := godotenv.Overload(filename); err != nil {
			return nil, errors.Wrap(err, "loading env file")
		}
	}

	config := new(ClientConfiguration)
	if err := envconfig.Process(clientPrefix, config); err != nil {
		return nil, errors.Wrap(err, "processing client config")
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks the endpoint and durations.
func (c *ClientConfiguration) Validate() error {
	endpoint := strings.TrimSpace(c.UserAPIEndpoint)
	if endpoint == "" {
		return errors.New("user API endpoint is required")
	}
	if !strings.HasPrefix(endpoint, "/") {
		u, err := url.Parse(endpoint)
		if err != nil {
			return errors.Wrap(err, "invalid user API endpoint")
		}
		if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return errors.Errorf("user API endpoint must be an absolute http(s) URL or a path: %q", endpoint)
		}
	}
	c.UserAPIEndpoint = strings.TrimRight(endpoint, "/")

	if c.ToastDuration <= 0 {
		return errors.New("toast duration must be positive")
	}
	return nil
}

// ResolveEndpoint returns the absolute user API endpoint, resolving a
// path-only endpoint against origin.
func (c *ClientConfiguration) ResolveEndpoint(origin string) (string, error) {
	if !strings.HasPrefix(c.UserAPIEndpoint, "/") {
		return c.UserAPIEndpoint, nil
	}
	base, err := url.Parse(origin)
	if err != nil || base.Host == "" {
		return "", errors.Errorf("cannot resolve %q against origin %q", c.UserAPIEndpoint, origin)
	}
	return strings.TrimRight(base.ResolveReference(&url.URL{Path: c.UserAPIEndpoint}).String(), "/"), nil
}

// LoadDevServer reads the dev server configuration, loading a .env file
// first. A missing default .env file is not an error.
func LoadDevServer(filename string) (*DevServerConfiguration, error) {
	if err := loadEnvironment(filename); err != nil {
		return nil, errors.Wrap(err, "loading env file")
	}

	config := new(DevServerConfiguration)
	if err := envconfig.Process(devServerPrefix, config); err != nil {
		return nil, errors.Wrap(err, "processing dev server config")
	}
	if config.APIUpstream != "" {
		u, err := url.Parse(config.APIUpstream)
		if err != nil || u.Host == "" {
			return nil, errors.Errorf("invalid API upstream: %q", config.APIUpstream)
		}
	}
	return config, nil
}

func loadEnvironment(filename string) error {
	var err error
	if filename != "" {
		err = godotenv.Overload(filename)
	} else {
		err = godotenv.Load()
		// a missing .env file is fine
		if os.IsNotExist(err) {
			return nil
		}
	}
	return err
}
