package cmd

import (
	"fmt"
	"os"

	"github.com/faber-lang/faber/internal/diagnostic"
	"github.com/faber-lang/faber/pkg/faber"
	"github.com/spf13/cobra"
)

var parseDumpAST bool

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a Faber file and display the resulting AST",
	Long: `Parse Faber source code and display its Abstract Syntax Tree.

Examples:
  faber parse script.fbr
  faber parse --dump-ast script.fbr`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().BoolVar(&parseDumpAST, "dump-ast", false, "dump the full AST structure")
}

func runParse(cmd *cobra.Command, args []string) error {
	file := args[0]
	content, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("reading %s: %w", file, err)
	}
	src := string(content)

	program, parseErrs, lexErrs := faber.Parse(src)

	if len(lexErrs) > 0 || len(parseErrs) > 0 {
		for _, e := range lexErrs {
			d := diagnostic.New(e.Code, e.Message, e.Pos)
			d.Source, d.File = src, file
			fmt.Fprintln(os.Stderr, d.Format(false))
		}
		for _, e := range parseErrs {
			d := diagnostic.New(e.Code, e.Message, e.Pos)
			d.Source, d.File = src, file
			fmt.Fprintln(os.Stderr, d.Format(false))
		}
	}

	if program == nil {
		return fmt.Errorf("parse failed")
	}

	if parseDumpAST {
		fmt.Println(program.String())
	} else {
		fmt.Printf("%d top-level statement(s)\n", len(program.Statements))
	}

	if len(lexErrs) > 0 || len(parseErrs) > 0 {
		return fmt.Errorf("%d diagnostic(s)", len(lexErrs)+len(parseErrs))
	}
	return nil
}
