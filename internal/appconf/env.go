package appconf

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables read by ApplyEnv.
const (
	EnvPort                  = "BYSYKKEL_PORT"
	EnvEnvironment           = "BYSYKKEL_ENV"
	EnvVerbose               = "BYSYKKEL_VERBOSE"
	EnvLogFormat             = "BYSYKKEL_LOG_FORMAT"
	EnvClientIdentifier      = "BYSYKKEL_CLIENT_IDENTIFIER"
	EnvStationInformationURL = "BYSYKKEL_STATION_INFORMATION_URL"
	EnvStationStatusURL      = "BYSYKKEL_STATION_STATUS_URL"
	EnvRequestTimeout        = "BYSYKKEL_REQUEST_TIMEOUT"
)

// LoadDotEnv loads the given .env files into the process environment.
// Missing files are skipped; variables already set win over the file.
func LoadDotEnv(files ...string) error {
	for _, file := range files {
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", file, err)
		}
	}
	return nil
}

// ApplyEnv overlays BYSYKKEL_* variables onto cfg.
func ApplyEnv(cfg Config) (Config, error) {
	return applyEnv(cfg, os.LookupEnv)
}

func applyEnv(cfg Config, lookup func(string) (string, bool)) (Config, error) {
	var errs []error

	if v, ok := lookup(EnvPort); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvPort, err))
		} else {
			cfg.Port = port
		}
	}
	if v, ok := lookup(EnvEnvironment); ok {
		env, err := ParseEnvironment(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvEnvironment, err))
		} else {
			cfg.Env = env
		}
	}
	if v, ok := lookup(EnvVerbose); ok {
		verbose, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvVerbose, err))
		} else {
			cfg.Verbose = verbose
		}
	}
	if v, ok := lookup(EnvLogFormat); ok && v != "" {
		cfg.LogFormat = v
	}
	if v, ok := lookup(EnvClientIdentifier); ok && v != "" {
		cfg.ClientIdentifier = v
	}
	if v, ok := lookup(EnvStationInformationURL); ok && v != "" {
		cfg.StationInformationURL = v
	}
	if v, ok := lookup(EnvStationStatusURL); ok && v != "" {
		cfg.StationStatusURL = v
	}
	if v, ok := lookup(EnvRequestTimeout); ok {
		timeout, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvRequestTimeout, err))
		} else {
			cfg.RequestTimeout = timeout
		}
	}

	return cfg, errors.Join(errs...)
}
