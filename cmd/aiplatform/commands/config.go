package commands

import (
	"fmt"
	"time"

	"github.com/Sereen-Kh/ai-deployment-platform/internal/config"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// ConfigCommand reads and writes the CLI config file.
func ConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change CLI configuration",
	}

	show := &cobra.Command{
		Use:   "get",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if a.jsonOutput() {
				return printJSON(a.cfg)
			}

			table := newTable()
			table.AddRow("api_url:", a.cfg.APIURL)
			table.AddRow("ws_url:", a.cfg.WSURL)
			table.AddRow("default_model:", a.cfg.DefaultModel)
			table.AddRow("output_format:", a.cfg.OutputFormat)
			table.AddRow("refresh_leeway:", a.cfg.RefreshLeeway.String())
			fmt.Println(table)
			return nil
		},
	}

	set := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, err := config.DefaultPath()
			if err != nil {
				return err
			}
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}

			key, value := args[0], args[1]
			switch key {
			case "api_url":
				cfg.APIURL = value
			case "ws_url":
				cfg.WSURL = value
			case "default_model":
				cfg.DefaultModel = value
			case "output_format":
				if value != "table" && value != "json" {
					return errors.Errorf("output_format must be table or json, got %q", value)
				}
				cfg.OutputFormat = value
			case "refresh_leeway":
				d, err := time.ParseDuration(value)
				if err != nil {
					return errors.Wrapf(err, "parsing %q as duration", value)
				}
				cfg.RefreshLeeway = d
			default:
				return errors.Errorf("unknown config key %q", key)
			}

			if err := cfg.Save(cfgPath); err != nil {
				return err
			}
			fmt.Printf("%s = %s\n", key, value)
			return nil
		},
	}

	cmd.AddCommand(show, set)
	return cmd
}
