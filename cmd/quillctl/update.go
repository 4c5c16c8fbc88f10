package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/quill/pkg/quill"
	"github.com/mesh-intelligence/quill/pkg/quill/quilltest"
)

var (
	updateHandle   int64
	updateScore    float64
	updateActive   bool
	updateSetScore bool
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update the score/active flag of a user, by handle",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		u, err := findByHandle(ctx, updateHandle)
		if err != nil {
			return err
		}
		if u == nil {
			return fmt.Errorf("no user with handle %d", updateHandle)
		}
		u.Active = updateActive
		if updateSetScore {
			u.Score = updateScore
		}

		ub := quill.Update(quilltest.Model, quilltest.Container)
		t, err := quill.Cond(quilltest.Filter, "handle", quill.OpEQ, 0)
		if err != nil {
			return err
		}
		if err := ub.When(t); err != nil {
			return err
		}
		sqlText, err := ub.Statement(quill.GateExact)
		if err != nil {
			return err
		}

		crud, err := db.Prepare(sqlText)
		if err != nil {
			return err
		}
		defer crud.Destroy()

		if err := crud.Bind(quilltest.Model, u); err != nil {
			return err
		}
		if err := crud.BindFilterValue(quilltest.Filter, "handle", updateHandle); err != nil {
			return err
		}
		if _, err := crud.Exec(ctx, nil, nil); err != nil {
			return err
		}
		fmt.Println("quillctl: updated", updateHandle)
		return nil
	},
}

// findByHandle runs a one-row Find against the demo table filtered on
// handle equality, or returns (nil, nil) if no row matches.
func findByHandle(ctx context.Context, handle int64) (*quilltest.User, error) {
	fb := quill.Find(quilltest.View, quilltest.Filter, quilltest.Container)
	t, err := quill.Cond(quilltest.Filter, "handle", quill.OpEQ, 0)
	if err != nil {
		return nil, err
	}
	if err := fb.When(t); err != nil {
		return nil, err
	}
	sqlText, err := fb.Statement()
	if err != nil {
		return nil, err
	}

	crud, err := db.Prepare(sqlText)
	if err != nil {
		return nil, err
	}
	defer crud.Destroy()

	if err := crud.BindFilterValue(quilltest.Filter, "handle", handle); err != nil {
		return nil, err
	}

	u := &quilltest.User{}
	found, err := crud.ReadOne(ctx, quilltest.View, u)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return u, nil
}

func init() {
	updateCmd.Flags().Int64Var(&updateHandle, "handle", 0, "user handle to update (required)")
	updateCmd.Flags().BoolVar(&updateActive, "active", true, "new active flag")
	updateCmd.Flags().Float64Var(&updateScore, "score", 0, "new score")
	updateCmd.Flags().Var(boolSetFlag{&updateSetScore}, "set-score", "apply --score (otherwise score is left unchanged)")
	_ = updateCmd.MarkFlagRequired("handle")
}

// boolSetFlag is a pflag.Value that flips a bool when the flag is passed at
// all, regardless of the (ignored) value text — used to distinguish "score
// not given" from "score given as 0".
type boolSetFlag struct{ target *bool }

func (f boolSetFlag) String() string   { return "" }
func (f boolSetFlag) Set(string) error { *f.target = true; return nil }
func (f boolSetFlag) Type() string     { return "bool" }
