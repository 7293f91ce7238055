package commands

import (
	"fmt"

	"github.com/Sereen-Kh/ai-deployment-platform/api"
	"github.com/Sereen-Kh/ai-deployment-platform/deployments"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// DeploymentsCommand groups the deployment lifecycle subcommands.
func DeploymentsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "deployments",
		Aliases: []string{"deploy", "dep"},
		Short:   "Manage model deployments",
	}

	cmd.AddCommand(
		deploymentsListCommand(),
		deploymentsGetCommand(),
		deploymentsCreateCommand(),
		deploymentsDeleteCommand(),
		deploymentsActionCommand("start", "Start a stopped deployment"),
		deploymentsActionCommand("stop", "Stop a running deployment"),
		deploymentsActionCommand("redeploy", "Rebuild and roll a deployment"),
		deploymentsStatsCommand(),
	)
	return cmd
}

func deploymentsListCommand() *cobra.Command {
	var page, pageSize int
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List deployments",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			list, err := a.client.ListDeployments(cmd.Context(), &api.ListDeploymentsOptions{
				Page:     page,
				PageSize: pageSize,
				Status:   deployments.Status(status),
			})
			if err != nil {
				return err
			}
			if a.jsonOutput() {
				return printJSON(list)
			}

			table := newTable()
			table.AddRow("ID", "NAME", "TYPE", "STATUS", "REPLICAS", "ENDPOINT")
			for _, d := range list.Items {
				table.AddRow(d.ID, d.Name, string(d.DeploymentType), colourStatus(d.Status), d.Replicas, d.EndpointURL)
			}
			fmt.Println(table)
			fmt.Printf("\n%d of %d deployments (page %d)\n", len(list.Items), list.Total, list.Page)
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 20, "items per page")
	cmd.Flags().StringVar(&status, "status", "", "filter by status")
	return cmd
}

func deploymentsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one deployment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			d, err := a.client.GetDeployment(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if a.jsonOutput() {
				return printJSON(d)
			}

			table := newTable()
			table.AddRow("ID:", d.ID)
			table.AddRow("NAME:", d.Name)
			table.AddRow("TYPE:", string(d.DeploymentType))
			table.AddRow("STATUS:", colourStatus(d.Status))
			table.AddRow("REPLICAS:", d.Replicas)
			table.AddRow("VERSION:", d.Version)
			table.AddRow("ENDPOINT:", d.EndpointURL)
			table.AddRow("CREATED:", d.CreatedAt.Format("2006-01-02 15:04:05"))
			if d.ErrorMessage != "" {
				table.AddRow("ERROR:", color.RedString(d.ErrorMessage))
			}
			fmt.Println(table)
			return nil
		},
	}
}

func deploymentsCreateCommand() *cobra.Command {
	var (
		name, description, deployType string
		model, provider               string
		replicas, maxTokens           int
		temperature                   float64
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a deployment",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if model == "" {
				model = a.cfg.DefaultModel
			}

			d, err := a.client.CreateDeployment(cmd.Context(), deployments.CreateRequest{
				Name:           name,
				Description:    description,
				DeploymentType: deployments.Type(deployType),
				Replicas:       replicas,
				Config: &deployments.Config{
					Model: deployments.ModelConfig{
						Provider:    provider,
						Model:       model,
						Temperature: temperature,
						MaxTokens:   maxTokens,
					},
				},
			})
			if err != nil {
				return err
			}

			color.Green("Deployment %s created (%s)", d.Name, d.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "deployment name")
	cmd.Flags().StringVar(&description, "description", "", "description")
	cmd.Flags().StringVar(&deployType, "type", string(deployments.TypeChat), "deployment type: rag, agent, chat, completion, custom")
	cmd.Flags().StringVar(&model, "model", "", "model identifier (defaults to configured default_model)")
	cmd.Flags().StringVar(&provider, "provider", "openai", "model provider")
	cmd.Flags().IntVar(&replicas, "replicas", 1, "replica count")
	cmd.Flags().IntVar(&maxTokens, "max-tokens", 4096, "completion token limit")
	cmd.Flags().Float64Var(&temperature, "temperature", 0.7, "sampling temperature")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func deploymentsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a deployment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.client.DeleteDeployment(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Deployment %s deleted.\n", args[0])
			return nil
		},
	}
}

func deploymentsActionCommand(action, short string) *cobra.Command {
	return &cobra.Command{
		Use:   action + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			var d *deployments.Deployment
			switch action {
			case "start":
				d, err = a.client.StartDeployment(cmd.Context(), args[0])
			case "stop":
				d, err = a.client.StopDeployment(cmd.Context(), args[0])
			case "redeploy":
				d, err = a.client.RedeployDeployment(cmd.Context(), args[0])
			}
			if err != nil {
				return err
			}

			fmt.Printf("Deployment %s is now %s\n", d.Name, colourStatus(d.Status))
			return nil
		},
	}
}

func deploymentsStatsCommand() *cobra.Command {
	var period string

	cmd := &cobra.Command{
		Use:   "stats <id>",
		Short: "Show traffic statistics for a deployment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			stats, err := a.client.DeploymentStats(cmd.Context(), args[0], period)
			if err != nil {
				return err
			}
			if a.jsonOutput() {
				return printJSON(stats)
			}

			table := newTable()
			table.AddRow("REQUESTS:", stats.TotalRequests)
			table.AddRow("SUCCEEDED:", stats.SuccessfulRequests)
			table.AddRow("FAILED:", stats.FailedRequests)
			table.AddRow("AVG LATENCY:", fmt.Sprintf("%.0f ms", stats.AvgLatencyMS))
			table.AddRow("TOKENS:", stats.TotalTokens)
			table.AddRow("COST:", formatCost(stats.EstimatedCost))
			fmt.Println(table)
			return nil
		},
	}

	cmd.Flags().StringVar(&period, "period", "24h", "period: 24h, 7d, 30d")
	return cmd
}
