// Package commands implements the aiplatform CLI command tree.
package commands

import (
	"fmt"
	"os"

	"github.com/common-nighthawk/go-figure"
	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var version = "v0.1.0"

// Persistent flag values shared by every subcommand.
var (
	flagAPIURL  string
	flagOutput  string
	flagVerbose bool
)

// NewRootCMD builds the CLI entry command.
func NewRootCMD() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "aiplatform",
		Short: "Manage AI model deployments, RAG document stores and usage analytics",
		Long: fmt.Sprintf(`Command-line client for the AI deployment platform.
Manage deployments, RAG collections, API keys and analytics, and talk to
models in the playground.

Dashboard: %s`, color.HiCyanString("http://localhost:3000")),
		SilenceErrors: true,
		SilenceUsage:  true,
		Version:       version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			zerolog.SetGlobalLevel(zerolog.WarnLevel)
			if flagVerbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
			log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		},
		Run: func(cmd *cobra.Command, args []string) {
			displayBanner()
			_ = cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&flagAPIURL, "api-url", "", "API base URL (overrides config and AI_PLATFORM_API_URL)")
	cmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "", "output format: table or json")
	cmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(
		LoginCommand(),
		LogoutCommand(),
		RegisterCommand(),
		WhoamiCommand(),
		DeploymentsCommand(),
		RAGCommand(),
		AnalyticsCommand(),
		KeysCommand(),
		ChatCommand(),
		ConfigCommand(),
		HealthCommand(),
	)

	return cmd
}

func displayBanner() {
	banner := figure.NewFigure("AI Platform", "", true)
	banner.Print()
	fmt.Println()
}
