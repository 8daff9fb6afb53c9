package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/descriptor-studio/internal/core/domain"
	"github.com/custodia-labs/descriptor-studio/internal/core/editor"
)

var templateFormat string

var templateCmd = &cobra.Command{
	Use:     "template",
	Short:   "Print a descriptor with the editor defaults",
	GroupID: "local",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		text := editor.Serialize(domain.NewSourceDescriptor())
		switch templateFormat {
		case "json":
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		case "yaml":
			var v map[string]any
			if err := json.Unmarshal([]byte(text), &v); err != nil {
				return err
			}
			out, err := yaml.Marshal(v)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), string(out))
			return nil
		default:
			return fmt.Errorf("unknown format %q (must be json or yaml)", templateFormat)
		}
	},
}

func init() {
	templateCmd.Flags().StringVarP(&templateFormat, "format", "f", "json", "output format (json or yaml)")
}
