package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/descriptor-studio/internal/adapters/driven/auth"
	"github.com/custodia-labs/descriptor-studio/internal/client"
)

var loginEmail string

var loginCmd = &cobra.Command{
	Use:     "login",
	Short:   "Sign in and save the token to the profile",
	GroupID: "system",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		email := loginEmail
		if email == "" {
			email = profile.Email
		}
		if email == "" {
			return errors.New("--email is required")
		}
		password, err := readPassword("Password: ")
		if err != nil {
			return err
		}

		resp, err := apiClient.Login(cmd.Context(), email, password)
		if err != nil {
			return err
		}

		profile.ServerURL = serverURL
		profile.Email = email
		profile.Token = resp.Token
		if err := client.SaveProfile(profilePath, profile); err != nil {
			return fmt.Errorf("saving profile: %w", err)
		}
		fmt.Printf("Logged in as %s (%s), token valid until %s\n",
			resp.User.Email, resp.User.Role, resp.ExpiresAt.Local().Format("2006-01-02 15:04"))
		return nil
	},
}

var hashPasswordCmd = &cobra.Command{
	Use:     "hash-password",
	Short:   "Print a bcrypt hash for ADMIN_PASSWORD_HASH",
	GroupID: "local",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := readPassword("Password: ")
		if err != nil {
			return err
		}
		if password == "" {
			return errors.New("password is empty")
		}
		// the jwt secret is unused for hashing
		hash, err := auth.NewAdapter("").HashPassword(password)
		if err != nil {
			return err
		}
		fmt.Println(hash)
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "account email")
}

// readPassword prompts without echo on a terminal and reads a line otherwise
func readPassword(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		fmt.Fprint(os.Stderr, prompt)
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
