package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "faber",
	Short: "Faber source-to-source compiler",
	Long: `faber tokenizes, parses, and compiles Faber source files to any of the
generator's target dialects (TypeScript, Zig, Python).

A Faber source file declares its intent once, in a small Latin-derived
surface vocabulary, and faber renders that intent in whichever target
language a given consumer needs.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().Bool("json", false, "emit machine-readable JSON instead of text")
}
