// Package main provides the quillctl CLI, a thin administrative front end
// over pkg/quill's demo "users" shape: init a database, seed it, run finds
// and counts against it, and drive the pragma helpers.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
