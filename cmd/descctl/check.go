package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/descriptor-studio/internal/client"
	"github.com/custodia-labs/descriptor-studio/internal/core/editor"
)

var checkCmd = &cobra.Command{
	Use:     "check <file>",
	Short:   "Validate a JSON or YAML descriptor without sending it",
	GroupID: "local",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := client.ReadDescriptorText(args[0])
		if err != nil {
			return err
		}
		d, err := client.Payload(text)
		if err != nil {
			return err
		}
		problems := client.Lint(d)
		if len(problems) > 0 {
			for _, p := range problems {
				fmt.Fprintf(cmd.ErrOrStderr(), "  - %s\n", p)
			}
			return fmt.Errorf("%s: %d problem(s)", args[0], len(problems))
		}
		if jsonOutput {
			fmt.Fprintln(cmd.OutOrStdout(), editor.Serialize(d))
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d api filters, %d backend filters)\n",
			args[0], len(d.APIFilters), len(d.BackendFilters))
		return nil
	},
}
