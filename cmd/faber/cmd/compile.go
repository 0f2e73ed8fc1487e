package cmd

import (
	"fmt"
	"os"

	"github.com/faber-lang/faber/internal/codegen"
	"github.com/faber-lang/faber/internal/config"
	"github.com/faber-lang/faber/internal/diagnostic"
	"github.com/faber-lang/faber/pkg/faber"
	"github.com/spf13/cobra"
)

var (
	compileTarget     string
	compileOutput     string
	compileConfigPath string
)

var compileCmd = &cobra.Command{
	Use:   "compile [file]",
	Short: "Compile a Faber file to a target language",
	Long: `Compile a Faber source file to one of the supported target dialects
(ts, zig, py).

Examples:
  faber compile script.fbr -t ts
  faber compile script.fbr -t zig -o out.zig
  faber compile script.fbr -t py --config faber.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)
	compileCmd.Flags().StringVarP(&compileTarget, "target", "t", "", "target dialect (ts, zig, py)")
	compileCmd.Flags().StringVarP(&compileOutput, "output", "o", "", "output file (default: stdout)")
	compileCmd.Flags().StringVar(&compileConfigPath, "config", "", "path to a faber.yaml config file")
}

func runCompile(cmd *cobra.Command, args []string) error {
	file := args[0]
	content, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("reading %s: %w", file, err)
	}
	src := string(content)

	cfg := config.Default()
	if compileConfigPath != "" {
		cfg, err = config.Load(compileConfigPath)
		if err != nil {
			return err
		}
	}

	target := compileTarget
	if target == "" {
		target = cfg.Target
	}

	opts := codegen.Options{IndentWidth: cfg.IndentFor(target)}
	res := faber.Compile(file, src, target, opts)

	for _, e := range res.Diagnostics.Lex {
		d := diagnostic.New(e.Code, e.Message, e.Pos)
		d.Source, d.File = src, file
		fmt.Fprintln(os.Stderr, d.Format(false))
	}
	for _, e := range res.Diagnostics.Parse {
		d := diagnostic.New(e.Code, e.Message, e.Pos)
		d.Source, d.File = src, file
		fmt.Fprintln(os.Stderr, d.Format(false))
	}
	for _, e := range res.Diagnostics.Semantic {
		d := diagnostic.New(e.Code, e.Message, e.Pos)
		d.Source, d.File = src, file
		fmt.Fprintln(os.Stderr, d.Format(false))
	}
	for _, e := range res.Diagnostics.Codegen {
		d := diagnostic.New(e.Code, e.Message, e.Pos)
		d.Source, d.File = src, file
		fmt.Fprintln(os.Stderr, d.Format(false))
	}

	if compileOutput != "" {
		if err := os.WriteFile(compileOutput, []byte(res.Text), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", compileOutput, err)
		}
	} else {
		fmt.Print(res.Text)
	}

	if res.Diagnostics.HasErrors() {
		return fmt.Errorf("compile failed with diagnostics")
	}
	return nil
}
