package main

import (
	"github.com/spf13/cobra"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var open bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the station table, the JSON API and metrics over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			coreApp, err := BuildApplication(opts.cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			srv, api := CreateServer(coreApp, opts.cfg)
			return Run(cmd.Context(), srv, api, open)
		},
	}

	cmd.Flags().Int("port", 4000, "port to listen on")
	cmd.Flags().BoolVar(&open, "open", false, "open the station table in a browser once listening")
	return cmd
}
