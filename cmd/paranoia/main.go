// Command paranoia validates data files against paranoia schema files.
//
//	paranoia validate -s user.schema.yaml -d user.json
//	paranoia check -s user.schema.toml
//
// Defaults come from PARANOIA_* environment variables and an optional .env
// file in the working directory; flags override them.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// Exit codes.
const (
	exitOK      = 0
	exitInvalid = 1
	exitError   = 2
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		if errors.Is(err, errInvalid) {
			return exitInvalid
		}
		fmt.Fprintf(stderr, "paranoia: %v\n", err)
		return exitError
	}
	return exitOK
}
