package commands

import (
	"fmt"

	"github.com/Sereen-Kh/ai-deployment-platform/api"
	"github.com/spf13/cobra"
)

// AnalyticsCommand groups the usage and cost reporting subcommands.
func AnalyticsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analytics",
		Short: "Usage, cost and error analytics",
	}

	cmd.AddCommand(
		analyticsDashboardCommand(),
		analyticsUsageCommand(),
		analyticsModelsCommand(),
		analyticsCostsCommand(),
		analyticsErrorsCommand(),
	)
	return cmd
}

func analyticsDashboardCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Overview statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			stats, err := a.client.Dashboard(cmd.Context())
			if err != nil {
				return err
			}
			if a.jsonOutput() {
				return printJSON(stats)
			}

			table := newTable()
			table.AddRow("DEPLOYMENTS:", fmt.Sprintf("%d (%d active)", stats.TotalDeployments, stats.ActiveDeployments))
			table.AddRow("DOCUMENTS:", stats.TotalDocuments)
			table.AddRow("REQUESTS TODAY:", stats.TotalRequestsToday)
			table.AddRow("COST THIS MONTH:", formatCost(stats.TotalCostThisMonth))
			table.AddRow("API KEYS:", stats.APIKeysCount)
			fmt.Println(table)
			return nil
		},
	}
}

func analyticsUsageCommand() *cobra.Command {
	var period, deploymentID string

	cmd := &cobra.Command{
		Use:   "usage",
		Short: "Aggregate usage metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			usage, err := a.client.Usage(cmd.Context(), &api.UsageOptions{Period: period, DeploymentID: deploymentID})
			if err != nil {
				return err
			}
			if a.jsonOutput() {
				return printJSON(usage)
			}

			table := newTable()
			table.AddRow("REQUESTS:", fmt.Sprintf("%d (%d failed)", usage.TotalRequests, usage.FailedRequests))
			table.AddRow("TOKENS:", fmt.Sprintf("%d (%d prompt / %d completion)", usage.TotalTokens, usage.PromptTokens, usage.CompletionTokens))
			table.AddRow("AVG LATENCY:", fmt.Sprintf("%.0f ms (p95 %.0f ms)", usage.AvgLatencyMS, usage.P95LatencyMS))
			table.AddRow("CACHE HIT RATE:", fmt.Sprintf("%.1f%%", usage.CacheHitRate*100))
			table.AddRow("COST:", formatCost(usage.EstimatedCost))
			fmt.Println(table)
			return nil
		},
	}

	cmd.Flags().StringVar(&period, "period", "24h", "period: 1h, 24h, 7d, 30d, 90d")
	cmd.Flags().StringVar(&deploymentID, "deployment", "", "scope to one deployment")
	return cmd
}

func analyticsModelsCommand() *cobra.Command {
	var period string

	cmd := &cobra.Command{
		Use:   "models",
		Short: "Per-model usage breakdown",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			usage, err := a.client.ModelUsage(cmd.Context(), period)
			if err != nil {
				return err
			}
			if a.jsonOutput() {
				return printJSON(usage)
			}

			table := newTable()
			table.AddRow("MODEL", "REQUESTS", "TOKENS", "COST", "SHARE")
			for _, m := range usage {
				table.AddRow(m.Model, m.Requests, m.Tokens, formatCost(m.Cost), fmt.Sprintf("%.1f%%", m.Percentage))
			}
			fmt.Println(table)
			return nil
		},
	}

	cmd.Flags().StringVar(&period, "period", "30d", "period: 7d, 30d, 90d")
	return cmd
}

func analyticsCostsCommand() *cobra.Command {
	var period string

	cmd := &cobra.Command{
		Use:   "costs",
		Short: "Cost breakdown by category and deployment",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			costs, err := a.client.Costs(cmd.Context(), period)
			if err != nil {
				return err
			}
			if a.jsonOutput() {
				return printJSON(costs)
			}

			fmt.Printf("Total (%s): %s, %s %.1f%%\n\n", costs.Period, formatCost(costs.TotalCost), costs.Trend.Direction, costs.Trend.ChangePercent)
			table := newTable()
			for category, cost := range costs.Breakdown {
				table.AddRow(category, formatCost(cost))
			}
			for _, d := range costs.ByDeployment {
				table.AddRow(d.Name, formatCost(d.Cost))
			}
			fmt.Println(table)
			return nil
		},
	}

	cmd.Flags().StringVar(&period, "period", "30d", "period: 7d, 30d, 90d")
	return cmd
}

func analyticsErrorsCommand() *cobra.Command {
	var period, deploymentID string

	cmd := &cobra.Command{
		Use:   "errors",
		Short: "Error-rate breakdown",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			report, err := a.client.ErrorAnalytics(cmd.Context(), &api.UsageOptions{Period: period, DeploymentID: deploymentID})
			if err != nil {
				return err
			}
			if a.jsonOutput() {
				return printJSON(report)
			}

			fmt.Printf("Errors (%s): %d, rate %.2f%%\n\n", report.Period, report.TotalErrors, report.ErrorRate*100)
			table := newTable()
			table.AddRow("TYPE", "COUNT", "SHARE")
			for _, e := range report.ByType {
				table.AddRow(e.Type, e.Count, fmt.Sprintf("%.1f%%", e.Percentage))
			}
			fmt.Println(table)
			return nil
		},
	}

	cmd.Flags().StringVar(&period, "period", "24h", "period: 1h, 24h, 7d, 30d")
	cmd.Flags().StringVar(&deploymentID, "deployment", "", "scope to one deployment")
	return cmd
}
