package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/quill/pkg/quill"
	"github.com/mesh-intelligence/quill/pkg/quill/quilltest"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the demo users table if it does not already exist",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ddl, err := quill.CreateTable(quilltest.Model, quilltest.Container)
		if err != nil {
			return err
		}
		if _, err := db.Exec(context.Background(), ddl); err != nil {
			return err
		}
		fmt.Println("quillctl: users table ready")
		return nil
	},
}
