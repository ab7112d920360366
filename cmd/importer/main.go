package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/Werneck0live/importa-empresas/internal/cli"
)

// cmd/importer/main.go
func main() {
	// Recover from panics to ensure graceful exits with stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(cli.ExitPanic)
		}
	}()

	if err := cli.Execute(); err != nil {
		os.Exit(cli.ExitCodeForError(err))
	}
}
