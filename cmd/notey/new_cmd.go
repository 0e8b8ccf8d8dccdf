package main

import (
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var newDir string

var newCmd = &cobra.Command{
	Use:   "new [title]",
	Short: "Create a new note file",
	Long: `New creates a UUID-named Markdown note file under --dir (the
current directory by default), seeded with a title heading, and prints
the path it wrote.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		title := "Untitled note"
		if len(args) > 0 {
			title = args[0]
		}
		id := uuid.NewString()
		path := filepath.Join(newDir, id+".md")
		content := fmt.Sprintf("# %s\n", title)
		if err := writeFileAtomically(path, []byte(content)); err != nil {
			return fmt.Errorf("notey new: %w", err)
		}
		_, err := fmt.Fprintln(cmd.OutOrStdout(), path)
		return err
	},
}

func init() {
	newCmd.Flags().StringVar(&newDir, "dir", ".", "directory to create the note file in")
}
