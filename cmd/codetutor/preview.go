// cmd/codetutor/preview.go
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

func previewCmd() *cobra.Command {
	var widthFlag int

	cmd := &cobra.Command{
		Use:   "preview <tutorial-dir> [chapter-file]",
		Short: "Render a generated tutorial document in the terminal",
		Long: `Render a generated tutorial document with terminal styling. With only the
tutorial directory given, index.md is shown.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			file := "index.md"
			if len(args) > 1 {
				file = args[1]
			}
			path := filepath.Join(args[0], file)

			content, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}

			renderer, err := glamour.NewTermRenderer(
				glamour.WithAutoStyle(),
				glamour.WithWordWrap(widthFlag),
			)
			if err != nil {
				return fmt.Errorf("creating renderer: %w", err)
			}
			out, err := renderer.Render(string(content))
			if err != nil {
				return fmt.Errorf("rendering markdown: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().IntVar(&widthFlag, "width", 100, "word wrap width")

	return cmd
}
