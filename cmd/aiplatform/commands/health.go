package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// HealthCommand checks the backend and its dependencies.
func HealthCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check platform health",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			health, err := a.client.HealthCheck(cmd.Context())
			if err != nil {
				return err
			}
			if a.jsonOutput() {
				return printJSON(health)
			}

			status := color.GreenString(health.Status)
			if health.Status != "healthy" {
				status = color.RedString(health.Status)
			}
			fmt.Printf("Platform %s (%s, %s)\n", status, health.Version, health.Environment)
			for service, state := range health.Services {
				marker := color.GreenString("ok")
				if state != "healthy" {
					marker = color.RedString(state)
				}
				fmt.Printf("  %-12s %s\n", service, marker)
			}
			return nil
		},
	}
}
