package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <course-id> <file>",
	Short: "Ingest a text file into a course",
	Long:  "Reads an extracted-text file, splits it into sentence-aligned chunks, embeds each chunk, and stores the material on the course.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		title, _ := cmd.Flags().GetString("title")
		pages, _ := cmd.Flags().GetInt("pages")

		raw, err := os.ReadFile(args[1])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[1], err)
		}
		text := strings.TrimSpace(string(raw))
		if text == "" {
			return fmt.Errorf("%s contains no text", args[1])
		}

		if title == "" {
			title = strings.TrimSuffix(filepath.Base(args[1]), filepath.Ext(args[1]))
		}

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		m, err := a.ingestor.IngestMaterial(context.Background(), args[0], title, text, pages)
		if err != nil {
			return err
		}

		embedded := 0
		for _, ch := range m.Chunks {
			if len(ch.Embedding) > 0 {
				embedded++
			}
		}

		fmt.Printf("Ingested %q: %d chunks (%d embedded)\n", m.Title, len(m.Chunks), embedded)
		if embedded == 0 {
			fmt.Println("No embeddings were stored; retrieval will use keyword matching.")
		}
		return nil
	},
}

func init() {
	ingestCmd.Flags().String("title", "", "Material title (defaults to the file name)")
	ingestCmd.Flags().Int("pages", 0, "Page count of the source document")
}
