package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"viewer.bysykkel.dev/internal/view"
)

// errTableShowsError makes the process exit non-zero after the error message
// has already been printed in place of the table.
var errTableShowsError = errors.New("station table shows an error")

func newTableCmd(opts *rootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "table",
		Short: "Fetch both feeds once and print the station table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != "text" && output != "json" {
				return fmt.Errorf("unknown output format %q, want text or json", output)
			}

			coreApp, err := BuildApplication(opts.cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer coreApp.Metrics.Shutdown()

			// The loader logs failures itself.
			state, loadErr := coreApp.Loader.Load(cmd.Context())

			out := cmd.OutOrStdout()
			if output == "json" {
				err = view.RenderJSON(out, state)
			} else {
				err = view.RenderText(out, view.Build(state))
			}
			if err != nil {
				return fmt.Errorf("failed to write table: %w", err)
			}

			if state.HasError() {
				return errTableShowsError
			}
			return loadErr
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format: text or json")
	return cmd
}
