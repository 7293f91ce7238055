package commands

import (
	"fmt"

	"github.com/Sereen-Kh/ai-deployment-platform/apikeys"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// KeysCommand groups the API key subcommands.
func KeysCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Manage API keys",
	}

	cmd.AddCommand(
		keysListCommand(),
		keysCreateCommand(),
		keysDeleteCommand(),
	)
	return cmd
}

func keysListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List API keys",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			keys, err := a.client.ListAPIKeys(cmd.Context())
			if err != nil {
				return err
			}
			if a.jsonOutput() {
				return printJSON(keys)
			}

			table := newTable()
			table.AddRow("ID", "NAME", "PREFIX", "ACTIVE", "EXPIRES")
			for _, k := range keys {
				expires := "never"
				if k.ExpiresAt != nil {
					expires = k.ExpiresAt.Format("2006-01-02")
				}
				table.AddRow(k.ID, k.Name, k.KeyPrefix, fmt.Sprintf("%t", k.IsActive), expires)
			}
			fmt.Println(table)
			return nil
		},
	}
}

func keysCreateCommand() *cobra.Command {
	var scopes []string
	var expiresInDays int

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create an API key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			created, err := a.client.CreateAPIKey(cmd.Context(), apikeys.CreateRequest{
				Name:          args[0],
				Scopes:        scopes,
				ExpiresInDays: expiresInDays,
			})
			if err != nil {
				return err
			}

			color.Green("Key %s created", created.Name)
			fmt.Printf("\n  %s\n\n", created.Key)
			color.Yellow("Store this key now - it cannot be retrieved again.")
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&scopes, "scopes", nil, "key scopes (default read,write)")
	cmd.Flags().IntVar(&expiresInDays, "expires-days", 0, "days until expiry (0 = never)")
	return cmd
}

func keysDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Revoke an API key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.client.DeleteAPIKey(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Key %s revoked.\n", args[0])
			return nil
		},
	}
}
