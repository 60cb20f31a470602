// Package main provides the dirlint directory conformance CLI.
package main

import (
	"os"

	"github.com/dirlint/dirlint/internal/cli"
)

func main() {
	err := cli.Execute()
	if code := cli.ExitCode(err); code != cli.ExitOK {
		os.Exit(code)
	}
}
