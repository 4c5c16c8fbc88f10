package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/quill/pkg/quill/quilltest"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Idempotently seed the demo users table with sample rows",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := quilltest.Seed(context.Background(), db); err != nil {
			return err
		}
		fmt.Println("quillctl: seed complete")
		return nil
	},
}
