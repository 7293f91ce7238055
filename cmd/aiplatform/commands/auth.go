package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/Sereen-Kh/ai-deployment-platform/users"
	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// LoginCommand authenticates and saves the session to disk.
func LoginCommand() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the platform",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			email, password, err = promptCredentials(email, password)
			if err != nil {
				return err
			}

			user, err := a.client.Login(cmd.Context(), users.Credentials{Email: email, Password: password})
			if err != nil {
				return err
			}

			color.Green("Logged in as %s", user.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password (prompted when omitted)")
	return cmd
}

// RegisterCommand creates an account and leaves the CLI signed in as it.
func RegisterCommand() *cobra.Command {
	var email, password, fullName string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new platform account",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			email, password, err = promptCredentials(email, password)
			if err != nil {
				return err
			}

			user, err := a.client.Register(cmd.Context(), users.Registration{
				Email:    email,
				Password: password,
				FullName: fullName,
			})
			if err != nil {
				return err
			}

			color.Green("Account created - logged in as %s", user.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password (prompted when omitted)")
	cmd.Flags().StringVar(&fullName, "name", "", "full name")
	return cmd
}

// LogoutCommand ends the session and removes saved credentials.
func LogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and discard saved credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			// Local credentials are removed even when the server call fails.
			if err := a.client.Logout(cmd.Context()); err != nil {
				color.Yellow("Server logout failed (%v) - local credentials removed anyway", err)
				return nil
			}
			fmt.Println("Logged out.")
			return nil
		},
	}
}

// WhoamiCommand shows the account behind the current session.
func WhoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			user, err := a.client.Me(cmd.Context())
			if err != nil {
				return err
			}
			if a.jsonOutput() {
				return printJSON(user)
			}

			table := newTable()
			table.AddRow("EMAIL:", user.Email)
			table.AddRow("NAME:", user.FullName)
			table.AddRow("ROLE:", string(user.Role))
			table.AddRow("VERIFIED:", fmt.Sprintf("%t", user.IsVerified))
			table.AddRow("JOINED:", user.CreatedAt.Format("2006-01-02"))
			fmt.Println(table)
			return nil
		},
	}
}

func promptCredentials(email, password string) (string, string, error) {
	reader := bufio.NewReader(os.Stdin)

	if email == "" {
		fmt.Print("Email: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return "", "", errors.Wrap(err, "reading email")
		}
		email = strings.TrimSpace(line)
	}
	if password == "" {
		fmt.Print("Password: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return "", "", errors.Wrap(err, "reading password")
		}
		password = strings.TrimSpace(line)
	}
	return email, password, nil
}
