package main

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

//go:embed syntax.md
var syntaxDoc string

func newSyntaxCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "syntax",
		Short: MsgSyntaxShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Plain markdown when piped
			if !isatty.IsTerminal(os.Stdout.Fd()) {
				fmt.Print(syntaxDoc)
				return nil
			}

			r, err := glamour.NewTermRenderer(
				glamour.WithAutoStyle(),
				glamour.WithWordWrap(100),
			)
			if err != nil {
				fmt.Print(syntaxDoc)
				return nil
			}
			out, err := r.Render(syntaxDoc)
			if err != nil {
				fmt.Print(syntaxDoc)
				return nil
			}
			fmt.Print(out)
			return nil
		},
	}
}
