package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/quill/pkg/quill"
	"github.com/mesh-intelligence/quill/pkg/quill/quilltest"
	"github.com/mesh-intelligence/quill/pkg/uuid7"
)

var (
	insertHandle int64
	insertActive bool
	insertScore  float64
	insertRole   string
	insertStatus string
	insertBio    string
	insertTags   string
	insertNick   string
)

var insertCmd = &cobra.Command{
	Use:   "insert",
	Short: "Insert a new user into the demo table",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		role, err := parseRole(insertRole)
		if err != nil {
			return err
		}
		status, err := parseStatus(insertStatus)
		if err != nil {
			return err
		}

		var tags []string
		if insertTags != "" {
			tags = strings.Split(insertTags, ",")
		}

		u := &quilltest.User{
			UUID:   uuid7.New().Bytes(),
			Handle: insertHandle,
			Active: insertActive,
			Score:  insertScore,
			Role:   role,
			Status: status,
			Tags:   quilltest.Tags{Labels: tags},
			Bio:    []byte(insertBio),
			Avatar: []byte{},
		}
		if insertNick != "" {
			u.Nick = []byte(insertNick)
		}

		sqlText, err := quill.CreateStatement(quilltest.Model, quilltest.Container, quill.InsertPlain)
		if err != nil {
			return err
		}
		crud, err := db.Prepare(sqlText)
		if err != nil {
			return err
		}
		defer crud.Destroy()

		if _, err := crud.Exec(context.Background(), quilltest.Model, u); err != nil {
			return err
		}
		fmt.Println("quillctl: inserted", insertHandle)
		return nil
	},
}

func parseRole(name string) (quilltest.Role, error) {
	switch name {
	case "admin":
		return quilltest.RoleAdmin, nil
	case "member", "":
		return quilltest.RoleMember, nil
	case "guest":
		return quilltest.RoleGuest, nil
	default:
		return 0, fmt.Errorf("unknown role %q", name)
	}
}

func parseStatus(name string) (quilltest.Status, error) {
	switch name {
	case "active", "":
		return quilltest.StatusActive, nil
	case "suspended":
		return quilltest.StatusSuspended, nil
	default:
		return 0, fmt.Errorf("unknown status %q", name)
	}
}

func init() {
	insertCmd.Flags().Int64Var(&insertHandle, "handle", 0, "user handle (required)")
	insertCmd.Flags().BoolVar(&insertActive, "active", true, "active flag")
	insertCmd.Flags().Float64Var(&insertScore, "score", 0, "score")
	insertCmd.Flags().StringVar(&insertRole, "role", "member", "role: admin|member|guest")
	insertCmd.Flags().StringVar(&insertStatus, "status", "active", "status: active|suspended")
	insertCmd.Flags().StringVar(&insertBio, "bio", "", "bio text")
	insertCmd.Flags().StringVar(&insertTags, "tags", "", "comma-separated tags")
	insertCmd.Flags().StringVar(&insertNick, "nick", "", "optional nickname")
	_ = insertCmd.MarkFlagRequired("handle")
}
