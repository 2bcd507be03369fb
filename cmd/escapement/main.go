// Command escapement drives the mechanical clock motion engine from the
// terminal: a live frame loop with optional debug and metrics servers, and
// a one-shot clock face renderer.
package main

import (
	"fmt"
	"os"

	"github.com/go-escapement/escapement/cmd/escapement/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
