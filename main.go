// smallsh - a small interactive shell with background jobs and
// foreground-only mode.
package main

import (
	"context"
	"fmt"
	"os"

	"smallsh/cmd"
)

func main() {
	// No NotifyContext: SIGINT and SIGTSTP are owned by the interpreter
	// and SIGTERM keeps its default action.
	if err := cmd.Execute(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "smallsh: %v\n", err)
		os.Exit(1)
	}
}
