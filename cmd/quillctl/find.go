package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/quill/pkg/quill"
	"github.com/mesh-intelligence/quill/pkg/quill/quilltest"
)

var (
	findActiveOnly bool
	findMinScore   float64
	findLimit      int
	findSkip       int
)

var findCmd = &cobra.Command{
	Use:   "find",
	Short: "List users from the demo table",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		fb := quill.Find(quilltest.View, quilltest.Filter, quilltest.Container)
		var tokens []quill.Token
		if findActiveOnly {
			t, err := quill.Cond(quilltest.Filter, "active", quill.OpEQ, 0)
			if err != nil {
				return err
			}
			tokens = append(tokens, t)
		}
		if findMinScore > 0 {
			t, err := quill.Cond(quilltest.Filter, "score", quill.OpGE, 0)
			if err != nil {
				return err
			}
			if len(tokens) > 0 {
				tokens = append(tokens, quill.ChainToken(quill.ChainAND))
			}
			tokens = append(tokens, t)
		}
		if len(tokens) == 0 {
			// Sort needs a prior When; score is NOT NULL, so this
			// condition keeps every row.
			t, err := quill.Cond(quilltest.Filter, "score", quill.OpNotNull, 0)
			if err != nil {
				return err
			}
			tokens = append(tokens, t)
		}
		if err := fb.When(tokens...); err != nil {
			return err
		}
		if err := fb.Sort(quill.Descending("score")); err != nil {
			return err
		}
		if findLimit > 0 {
			if err := fb.Limit(findLimit); err != nil {
				return err
			}
			if findSkip > 0 {
				if err := fb.Skip(findSkip); err != nil {
					return err
				}
			}
		}
		sqlText, err := fb.Statement()
		if err != nil {
			return err
		}

		crud, err := db.Prepare(sqlText)
		if err != nil {
			return err
		}
		defer crud.Destroy()

		if findActiveOnly {
			if err := crud.BindFilterValue(quilltest.Filter, "active", true); err != nil {
				return err
			}
		}
		if findMinScore > 0 {
			if err := crud.BindFilterValue(quilltest.Filter, "score", findMinScore); err != nil {
				return err
			}
		}

		rows, err := crud.ReadMany(ctx, quilltest.View, func() any { return &quilltest.User{} })
		if err != nil {
			return err
		}
		users := make([]*quilltest.User, len(rows))
		for i, r := range rows {
			users[i] = r.(*quilltest.User)
		}
		return printUsers(users)
	},
}

func init() {
	findCmd.Flags().BoolVar(&findActiveOnly, "active-only", false, "only list active users")
	findCmd.Flags().Float64Var(&findMinScore, "min-score", 0, "only list users with score >= this value")
	findCmd.Flags().IntVar(&findLimit, "limit", 0, "maximum rows to return (0 = unbounded)")
	findCmd.Flags().IntVar(&findSkip, "skip", 0, "rows to skip before the first returned (requires --limit)")
}
