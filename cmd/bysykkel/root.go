package main

import (
	"io"

	"github.com/spf13/cobra"
	"viewer.bysykkel.dev/internal/appconf"
)

// rootOptions holds the persistent flags and the configuration resolved
// from them before any subcommand runs.
type rootOptions struct {
	configPath string
	envFile    string
	env        string
	verbose    bool
	logFormat  string

	cfg appconf.Config
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "bysykkel",
		Short: "Show bike-share stations and how many bikes each one has.",
		Long: `bysykkel fetches the GBFS station_information and station_status feeds, ` +
			`joins the live bike counts onto the station directory and shows the result ` +
			`as a table in the terminal (table) or over HTTP (serve).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts, cmd.Flags())
			if err != nil {
				return err
			}
			opts.cfg = cfg
			return nil
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "path to a YAML or JSON config file")
	flags.StringVar(&opts.envFile, "env-file", ".env", "dotenv file with BYSYKKEL_* variables; skipped when missing")
	flags.StringVar(&opts.env, "env", "", "environment: development, test or production")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log at debug level")
	flags.StringVar(&opts.logFormat, "log-format", "", "log format: text or json")

	cmd.AddCommand(newTableCmd(opts))
	cmd.AddCommand(newServeCmd(opts))
	return cmd
}
