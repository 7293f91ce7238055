package commands

import (
	"fmt"

	"github.com/Sereen-Kh/ai-deployment-platform/playground"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// ChatCommand sends a single playground turn, optionally streaming the
// response over the websocket as it is generated.
func ChatCommand() *cobra.Command {
	var (
		model, provider, systemPrompt string
		temperature                   float64
		maxTokens                     int
		stream                        bool
	)

	cmd := &cobra.Command{
		Use:   "chat <message>",
		Short: "Talk to a model in the playground",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if model == "" {
				model = a.cfg.DefaultModel
			}

			req := playground.ChatRequest{
				Messages:     []playground.Message{{Role: "user", Content: args[0]}},
				Model:        model,
				Provider:     provider,
				Temperature:  temperature,
				MaxTokens:    maxTokens,
				SystemPrompt: systemPrompt,
			}

			if stream {
				err := a.client.StreamChat(cmd.Context(), req, func(event playground.StreamEvent) error {
					if event.Type == playground.EventChunk {
						fmt.Print(event.Content)
					}
					return nil
				})
				fmt.Println()
				return err
			}

			resp, err := a.client.Chat(cmd.Context(), req)
			if err != nil {
				return err
			}

			fmt.Println(resp.Content)
			color.HiBlack("\n%s/%s - %d ms", resp.Provider, resp.Model, resp.LatencyMS)
			return nil
		},
	}

	cmd.Flags().StringVar(&model, "model", "", "model identifier (defaults to configured default_model)")
	cmd.Flags().StringVar(&provider, "provider", "openai", "model provider: openai, anthropic, gemini")
	cmd.Flags().StringVar(&systemPrompt, "system", "", "system prompt")
	cmd.Flags().Float64Var(&temperature, "temperature", 0.7, "sampling temperature")
	cmd.Flags().IntVar(&maxTokens, "max-tokens", 2048, "completion token limit")
	cmd.Flags().BoolVar(&stream, "stream", false, "stream the response as it is generated")
	return cmd
}
