package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is the quillctl release string.
const version = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the quillctl version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("quillctl", version)
	},
}
