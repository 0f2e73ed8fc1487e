// Command faber is the CLI front end over pkg/faber: tokenize, parse, and
// compile source files to any of the generator's target dialects.
package main

import (
	"os"

	"github.com/faber-lang/faber/cmd/faber/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
