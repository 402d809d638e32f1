package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTestCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "test",
		Short:       "Check that the CLI runs",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderStatusLine("test", styleOK, "Test successful!", shouldColorize(out)))
			return nil
		},
	}
}
