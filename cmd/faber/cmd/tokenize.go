package cmd

import (
	"fmt"
	"os"

	"github.com/faber-lang/faber/internal/tokenjson"
	"github.com/faber-lang/faber/pkg/faber"
	"github.com/faber-lang/faber/pkg/token"
	"github.com/spf13/cobra"
)

var (
	tokShowPos  bool
	tokShowType bool
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [file]",
	Short: "Tokenize a Faber file and print the resulting tokens",
	Long: `Tokenize a Faber program and print the resulting tokens.

Examples:
  faber tokenize script.fbr
  faber tokenize --show-pos --show-type script.fbr
  faber tokenize --json script.fbr`,
	Args: cobra.ExactArgs(1),
	RunE: runTokenize,
}

func init() {
	rootCmd.AddCommand(tokenizeCmd)
	tokenizeCmd.Flags().BoolVar(&tokShowPos, "show-pos", false, "show token positions (line:column)")
	tokenizeCmd.Flags().BoolVar(&tokShowType, "show-type", false, "show token kind names")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	content, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	tokens, errs := faber.Tokenize(string(content))

	asJSON, _ := cmd.Flags().GetBool("json")
	if asJSON {
		doc, err := tokenjson.EncodeAll(tokens)
		if err != nil {
			return err
		}
		fmt.Println(doc)
	} else {
		printTokens(tokens)
	}

	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e.Error())
		}
		return fmt.Errorf("%d lexical error(s)", len(errs))
	}
	return nil
}

func printTokens(tokens []token.Token) {
	for _, t := range tokens {
		line := t.Text
		if tokShowType {
			line = fmt.Sprintf("%s %s", t.Kind, t.Text)
		}
		if tokShowPos {
			line = fmt.Sprintf("%-30s %s", line, t.Pos)
		}
		fmt.Println(line)
	}
}
