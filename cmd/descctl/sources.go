package main

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/descriptor-studio/internal/client"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List stored sources",
	GroupID: "sources",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sources, err := apiClient.ListSources(cmd.Context())
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(sources)
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tMETHOD\tENDPOINT\tACTIVE\tAUTH")
		for _, s := range sources {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%t\t%t\n", s.ID, s.Name, s.Method, s.Endpoint, s.IsActive, s.AuthRequired)
		}
		return w.Flush()
	},
}

var createCmd = &cobra.Command{
	Use:     "create <file>",
	Short:   "Create a source from a JSON or YAML descriptor",
	GroupID: "sources",
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
		source, err := apiClient.CreateSource(cmd.Context(), d)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(source)
		}
		fmt.Printf("Created %s (%s)\n", source.ID, source.Name)
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:     "delete <id>...",
	Short:   "Delete one or more sources",
	GroupID: "sources",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, id := range args {
			if err := apiClient.DeleteSource(cmd.Context(), id); err != nil {
				return fmt.Errorf("deleting %s: %w", id, err)
			}
			fmt.Printf("Deleted %s\n", id)
		}
		return nil
	},
}

var operatorsCmd = &cobra.Command{
	Use:     "operators",
	Short:   "Show the operators allowed per field type",
	GroupID: "sources",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := apiClient.OperatorCatalog(cmd.Context())
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(catalog)
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "TYPE\tOPERATOR\tLABEL")
		for _, t := range slices.Sorted(maps.Keys(catalog)) {
			for _, op := range catalog[t] {
				fmt.Fprintf(w, "%s\t%s\t%s\n", t, op.ID, op.Label)
			}
		}
		return w.Flush()
	},
}
