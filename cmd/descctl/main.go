package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/descriptor-studio/internal/client"
)

var (
	profilePath string
	serverURL   string
	token       string
	jsonOutput  bool

	profile   client.Profile
	apiClient *client.HTTPClient
)

var rootCmd = &cobra.Command{
	Use:           "descctl <command>",
	Short:         "Author and manage source descriptors",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if profilePath == "" {
			p, err := client.DefaultProfilePath()
			if err != nil {
				return err
			}
			profilePath = p
		}
		p, err := client.LoadProfile(profilePath)
		if err != nil {
			return fmt.Errorf("loading profile %s: %w", profilePath, err)
		}
		profile = p
		if serverURL == "" {
			serverURL = profile.ServerURL
		}
		if token == "" {
			token = profile.Token
		}
		apiClient = client.NewHTTPClient(serverURL, token)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&profilePath, "config", "", "profile file (default $XDG_CONFIG_HOME/descctl/config.toml)")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", os.Getenv("DESCCTL_SERVER"), "server URL")
	rootCmd.PersistentFlags().StringVar(&token, "token", os.Getenv("DESCCTL_TOKEN"), "bearer token")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")

	rootCmd.AddGroup(
		&cobra.Group{ID: "local", Title: "Local:"},
		&cobra.Group{ID: "sources", Title: "Sources:"},
		&cobra.Group{ID: "system", Title: "System:"},
	)

	rootCmd.AddCommand(templateCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(hashPasswordCmd)

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(operatorsCmd)
	rootCmd.AddCommand(watchCmd)

	rootCmd.AddCommand(loginCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
