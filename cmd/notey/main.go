// Command notey is a small caller for the markdown engine: it renders
// and parses Markdown files at the command line and mints new note
// files, playing the part the notey app's server would otherwise play
// as the engine's embedder.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "notey",
	Short: "Render, parse, and create notey Markdown notes",
	Long:  `notey is a command-line caller for the notey-md CommonMark engine.`,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(newCmd)
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("notey: ")
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
