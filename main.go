// The main package for the bookscout executable.
package main

import (
	"github.com/jfalvarez/bookscout/cmd"
)

// main is the entry point of the application.
// It defers all execution to the Cobra CLI library.
func main() {
	cmd.Execute()
}
