package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/quill/pkg/quill"
	"github.com/mesh-intelligence/quill/pkg/quill/quilltest"
)

var deleteHandle int64

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a user from the demo table, by handle",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		delBuilder := quill.Delete(quilltest.Container)
		t, err := quill.Cond(quilltest.Filter, "handle", quill.OpEQ, 0)
		if err != nil {
			return err
		}
		if err := delBuilder.When(t); err != nil {
			return err
		}
		sqlText, err := delBuilder.Statement(quill.GateExact)
		if err != nil {
			return err
		}

		crud, err := db.Prepare(sqlText)
		if err != nil {
			return err
		}
		defer crud.Destroy()

		if err := crud.BindFilterValue(quilltest.Filter, "handle", deleteHandle); err != nil {
			return err
		}
		if _, err := crud.Exec(ctx, nil, nil); err != nil {
			return err
		}
		fmt.Println("quillctl: deleted", deleteHandle)
		return nil
	},
}

func init() {
	deleteCmd.Flags().Int64Var(&deleteHandle, "handle", 0, "user handle to delete (required)")
	_ = deleteCmd.MarkFlagRequired("handle")
}
