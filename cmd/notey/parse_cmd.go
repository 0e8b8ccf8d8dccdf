package main

import (
	"fmt"

	"github.com/spf13/cobra"

	markdown "github.com/brandon-schabel/notey-md"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Print a Markdown note's parse tree",
	Long: `Parse reads a Markdown note (from a file argument or stdin)
and prints an indented dump of its block and inline tree, one node per
line, for inspecting how the engine structured a document.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := readSource(args)
		if err != nil {
			return fmt.Errorf("notey parse: %w", err)
		}
		doc := markdown.Parse(string(src))
		out := cmd.OutOrStdout()
		depth := 0
		markdown.Walk(doc, markdown.WalkOptions{
			Pre: func(c *markdown.Cursor) bool {
				fmt.Fprintf(out, "%*s%s\n", depth*2, "", describeNode(c.Node()))
				depth++
				return true
			},
			Post: func(c *markdown.Cursor) bool {
				depth--
				return true
			},
		})
		if len(doc.References) > 0 {
			fmt.Fprintln(out, "references:")
			for label, def := range doc.References {
				fmt.Fprintf(out, "  %s -> %s\n", label, def.Destination)
			}
		}
		return nil
	},
}

func describeNode(n markdown.Node) string {
	switch v := n.(type) {
	case *markdown.Block:
		switch v.Kind() {
		case markdown.HeadingKind:
			return fmt.Sprintf("%v(level=%d)", v.Kind(), v.HeadingLevel())
		case markdown.ListKind:
			return fmt.Sprintf("%v(ordered=%v tight=%v)", v.Kind(), v.IsOrdered(), v.IsTight())
		case markdown.CodeBlockKind:
			return fmt.Sprintf("%v(info=%q)", v.Kind(), v.InfoString())
		default:
			return v.Kind().String()
		}
	case *markdown.Inline:
		switch v.Kind() {
		case markdown.TextKind:
			return fmt.Sprintf("%v(%q)", v.Kind(), v.Text())
		case markdown.LinkKind, markdown.ImageKind:
			return fmt.Sprintf("%v(dest=%q)", v.Kind(), v.Destination())
		default:
			return v.Kind().String()
		}
	default:
		return "Node"
	}
}
