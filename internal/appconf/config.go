package appconf

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

type Environment int

const (
	Development Environment = iota
	Test
	Production
)

func (e Environment) String() string {
	switch e {
	case Test:
		return "test"
	case Production:
		return "production"
	default:
		return "development"
	}
}

// ParseEnvironment maps the textual environment names used by config files,
// env vars and flags.
func ParseEnvironment(s string) (Environment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "dev", "development":
		return Development, nil
	case "test":
		return Test, nil
	case "prod", "production":
		return Production, nil
	}
	return Development, fmt.Errorf("unknown environment %q", s)
}

const (
	DefaultStationInformationURL = "https://gbfs.urbansharing.com/oslobysykkel.no/station_information.json"
	DefaultStationStatusURL      = "https://gbfs.urbansharing.com/oslobysykkel.no/station_status.json"
	DefaultClientIdentifier      = "bysykkel-demo"
)

// Config holds everything the CLI and the server need.
type Config struct {
	Port                  int
	Env                   Environment
	Verbose               bool
	LogFormat             string
	ClientIdentifier      string
	StationInformationURL string
	StationStatusURL      string
	RequestTimeout        time.Duration
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		Port:                  4000,
		Env:                   Development,
		LogFormat:             "text",
		ClientIdentifier:      DefaultClientIdentifier,
		StationInformationURL: DefaultStationInformationURL,
		StationStatusURL:      DefaultStationStatusURL,
		RequestTimeout:        10 * time.Second,
	}
}

// Validate reports every problem at once.
func (c Config) Validate() error {
	var errs []error

	if c.Port < 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range", c.Port))
	}
	if strings.TrimSpace(c.ClientIdentifier) == "" {
		errs = append(errs, errors.New("client identifier is required"))
	}
	if err := validateFeedURL("station information", c.StationInformationURL); err != nil {
		errs = append(errs, err)
	}
	if err := validateFeedURL("station status", c.StationStatusURL); err != nil {
		errs = append(errs, err)
	}
	if c.RequestTimeout < 0 {
		errs = append(errs, fmt.Errorf("request timeout %s must not be negative", c.RequestTimeout))
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log format %q must be text or json", c.LogFormat))
	}

	return errors.Join(errs...)
}

func validateFeedURL(name, raw string) error {
	if raw == "" {
		return fmt.Errorf("%s URL is required", name)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s URL: %w", name, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s URL must be http or https, got %q", name, raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%s URL has no host", name)
	}
	return nil
}
