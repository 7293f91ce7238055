package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Sereen-Kh/ai-deployment-platform/api"
	"github.com/Sereen-Kh/ai-deployment-platform/rag"
	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// RAGCommand groups the document store subcommands.
func RAGCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rag",
		Short: "Manage RAG collections and documents",
	}

	cmd.AddCommand(
		ragCollectionsCommand(),
		ragDocumentsCommand(),
		ragUploadCommand(),
		ragQueryCommand(),
		ragSearchCommand(),
	)
	return cmd
}

func ragCollectionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "collections",
		Short: "List collections",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			list, err := a.client.ListCollections(cmd.Context())
			if err != nil {
				return err
			}
			if a.jsonOutput() {
				return printJSON(list)
			}

			table := newTable()
			table.AddRow("NAME", "DOCUMENTS", "CHUNKS", "EMBEDDING MODEL")
			for _, col := range list.Items {
				table.AddRow(col.Name, col.DocumentCount, col.ChunkCount, col.EmbeddingModel)
			}
			fmt.Println(table)
			return nil
		},
	}

	create := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			description, _ := cmd.Flags().GetString("description")

			col, err := a.client.CreateCollection(cmd.Context(), rag.CreateCollectionRequest{
				Name:        args[0],
				Description: description,
			})
			if err != nil {
				return err
			}
			color.Green("Collection %s created", col.Name)
			return nil
		},
	}
	create.Flags().String("description", "", "collection description")

	remove := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.client.DeleteCollection(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Collection %s deleted.\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(create, remove)
	return cmd
}

func ragDocumentsCommand() *cobra.Command {
	var collection string

	cmd := &cobra.Command{
		Use:   "documents",
		Short: "List uploaded documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			list, err := a.client.ListDocuments(cmd.Context(), &api.ListDocumentsOptions{CollectionName: collection})
			if err != nil {
				return err
			}
			if a.jsonOutput() {
				return printJSON(list)
			}

			table := newTable()
			table.AddRow("ID", "NAME", "COLLECTION", "STATUS", "CHUNKS")
			for _, doc := range list.Items {
				table.AddRow(doc.ID, doc.Name, doc.CollectionName, colourDocumentStatus(doc.Status), doc.ChunkCount)
			}
			fmt.Println(table)
			return nil
		},
	}

	cmd.Flags().StringVar(&collection, "collection", "", "filter by collection")
	return cmd
}

func ragUploadCommand() *cobra.Command {
	var collection string

	cmd := &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload a document into a collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return errors.Wrapf(err, "opening %s", args[0])
			}
			defer f.Close()

			doc, err := a.client.UploadDocument(cmd.Context(), collection, filepath.Base(args[0]), f)
			if err != nil {
				return err
			}

			color.Green("Uploaded %s (%s) - status %s", doc.Name, doc.ID, doc.Status)
			return nil
		},
	}

	cmd.Flags().StringVar(&collection, "collection", "", "target collection")
	_ = cmd.MarkFlagRequired("collection")
	return cmd
}

func ragQueryCommand() *cobra.Command {
	var collection string
	var topK int

	cmd := &cobra.Command{
		Use:   "query <question>",
		Short: "Ask a question against a collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			resp, err := a.client.QueryRAG(cmd.Context(), rag.Query{
				Query:          args[0],
				CollectionName: collection,
				TopK:           topK,
			})
			if err != nil {
				return err
			}
			if a.jsonOutput() {
				return printJSON(resp)
			}

			fmt.Println(resp.Answer)
			fmt.Println()
			color.HiBlack("Sources:")
			for _, chunk := range resp.Chunks {
				color.HiBlack("  %.2f  %s", chunk.Score, chunk.DocumentName)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&collection, "collection", "", "collection to query")
	cmd.Flags().IntVar(&topK, "top-k", 5, "passages to retrieve")
	_ = cmd.MarkFlagRequired("collection")
	return cmd
}

func ragSearchCommand() *cobra.Command {
	var collection string
	var topK int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Semantic search without answer generation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			result, err := a.client.SemanticSearch(cmd.Context(), rag.SearchRequest{
				Query:          args[0],
				CollectionName: collection,
				TopK:           topK,
			})
			if err != nil {
				return err
			}
			if a.jsonOutput() {
				return printJSON(result)
			}

			for _, chunk := range result.Chunks {
				fmt.Printf("%.2f  %s\n%s\n\n", chunk.Score, color.CyanString(chunk.DocumentName), chunk.Content)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&collection, "collection", "", "collection to search")
	cmd.Flags().IntVar(&topK, "top-k", 5, "passages to retrieve")
	_ = cmd.MarkFlagRequired("collection")
	return cmd
}
