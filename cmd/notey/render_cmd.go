package main

import (
	"fmt"
	"io"
	"os"

	"github.com/google/renameio/v2"
	"github.com/spf13/cobra"

	markdown "github.com/brandon-schabel/notey-md"
)

var renderOutput string

var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Render a Markdown note to HTML",
	Long: `Render reads a Markdown note (from a file argument or stdin)
and writes its rendered HTML to stdout, or to -o's destination.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := readSource(args)
		if err != nil {
			return fmt.Errorf("notey render: %w", err)
		}
		html := markdown.Render(string(src))
		if renderOutput == "" {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), html)
			return err
		}
		if err := writeFileAtomically(renderOutput, []byte(html+"\n")); err != nil {
			return fmt.Errorf("notey render: %w", err)
		}
		return nil
	},
}

func init() {
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "write HTML to this file instead of stdout")
}

// readSource reads args[0] if given, or stdin otherwise.
func readSource(args []string) ([]byte, error) {
	if len(args) == 0 {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(args[0])
}

// writeFileAtomically writes data to path via a temp file in the same
// directory, renamed into place on success, so a crash mid-write never
// leaves a half-written note behind.
func writeFileAtomically(path string, data []byte) error {
	return renameio.WriteFile(path, data, 0o644)
}
