package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// errProbeFailed makes the process exit 1 without a second error line.
var errProbeFailed = errors.New("connection test failed")

func newProbeCmd(load func(*cobra.Command) (*env, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "probe",
		Short: "Check that the configured provider answers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := load(cmd)
			if err != nil {
				return err
			}
			gen, err := e.generator(cmd.Context())
			if err != nil {
				return err
			}

			ok := gen.TestConnection(cmd.Context())
			out := cmd.OutOrStdout()
			models := strings.Join(gen.Models(), ", ")
			if !ok {
				fmt.Fprintf(out, "%s: connection failed (models: %s)\n", gen.Provider(), models)
				return errProbeFailed
			}
			fmt.Fprintf(out, "%s: connection ok (models: %s)\n", gen.Provider(), models)
			return nil
		},
	}
}
