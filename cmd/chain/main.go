// Command chain loads rows from a file, a command or a SQLite query and
// runs a chain script over them.
//
//	chain eval --input data.csv 'drop 1 | select_pos 2 | to_int | sum'
package main

import (
	"os"
)

var version = "0.1.0" // set at build time with -ldflags "-X main.version=..."

func main() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		printError(cmd.ErrOrStderr(), err, noColor(cmd))
		os.Exit(1)
	}
}
