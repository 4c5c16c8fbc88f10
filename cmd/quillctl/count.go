package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/quill/pkg/quill"
	"github.com/mesh-intelligence/quill/pkg/quill/quilltest"
)

var countActiveOnly bool

var countCmd = &cobra.Command{
	Use:   "count",
	Short: "Count users in the demo table",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		cb := quill.Count(quilltest.Filter, quilltest.Container)
		if countActiveOnly {
			t, err := quill.Cond(quilltest.Filter, "active", quill.OpEQ, 0)
			if err != nil {
				return err
			}
			if err := cb.When(t); err != nil {
				return err
			}
		}
		sqlText, err := cb.Statement()
		if err != nil {
			return err
		}

		crud, err := db.Prepare(sqlText)
		if err != nil {
			return err
		}
		defer crud.Destroy()

		if countActiveOnly {
			if err := crud.BindFilterValue(quilltest.Filter, "active", true); err != nil {
				return err
			}
		}

		n, _, err := crud.ReadScalarInt64(ctx)
		if err != nil {
			return err
		}
		fmt.Println(n)
		return nil
	},
}

func init() {
	countCmd.Flags().BoolVar(&countActiveOnly, "active-only", false, "only count active users")
}
