// Command modalctl replays modal stack scenarios and prints the resulting
// layout. It is a debugging aid for UI bindings built on go-modals.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
