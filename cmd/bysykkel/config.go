package main

import (
	"fmt"

	"github.com/spf13/pflag"
	"viewer.bysykkel.dev/internal/appconf"
)

// loadConfig resolves the configuration. Later sources win: defaults, the
// config file, the dotenv file and BYSYKKEL_* variables, then flags the user
// actually set.
func loadConfig(opts *rootOptions, flags *pflag.FlagSet) (appconf.Config, error) {
	cfg := appconf.Default()

	if opts.configPath != "" {
		fileCfg, err := appconf.LoadFromFile(opts.configPath)
		if err != nil {
			return cfg, err
		}
		cfg = fileCfg.ApplyTo(cfg)
	}

	if opts.envFile != "" {
		if err := appconf.LoadDotEnv(opts.envFile); err != nil {
			return cfg, err
		}
	}
	cfg, err := appconf.ApplyEnv(cfg)
	if err != nil {
		return cfg, fmt.Errorf("invalid environment: %w", err)
	}

	if flags.Changed("env") {
		env, err := appconf.ParseEnvironment(opts.env)
		if err != nil {
			return cfg, fmt.Errorf("invalid --env: %w", err)
		}
		cfg.Env = env
	}
	if flags.Changed("verbose") {
		cfg.Verbose = opts.verbose
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = opts.logFormat
	}
	if flags.Changed("port") {
		port, err := flags.GetInt("port")
		if err != nil {
			return cfg, err
		}
		cfg.Port = port
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
