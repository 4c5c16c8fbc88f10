package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mesh-intelligence/quill/pkg/quill/quilltest"
	"github.com/mesh-intelligence/quill/pkg/uuid7"
)

type userView struct {
	UUID   string   `json:"uuid"`
	Handle int64    `json:"handle"`
	Active bool     `json:"active"`
	Score  float64  `json:"score"`
	Role   string   `json:"role"`
	Status string   `json:"status"`
	Tags   []string `json:"tags,omitempty"`
	Bio    string   `json:"bio"`
	Nick   string   `json:"nick,omitempty"`
}

func roleName(r quilltest.Role) string {
	switch r {
	case quilltest.RoleAdmin:
		return "admin"
	case quilltest.RoleMember:
		return "member"
	default:
		return "guest"
	}
}

func statusNameOf(s quilltest.Status) string {
	if s == quilltest.StatusSuspended {
		return "suspended"
	}
	return "active"
}

func toUserView(u *quilltest.User) userView {
	id, err := uuid7.FromBytes(u.UUID)
	idText := ""
	if err == nil {
		idText = id.ToURN()
	}
	return userView{
		UUID:   idText,
		Handle: u.Handle,
		Active: u.Active,
		Score:  u.Score,
		Role:   roleName(u.Role),
		Status: statusNameOf(u.Status),
		Tags:   u.Tags.Labels,
		Bio:    string(u.Bio),
		Nick:   string(u.Nick),
	}
}

func printUsers(users []*quilltest.User) error {
	views := make([]userView, len(users))
	for i, u := range users {
		views[i] = toUserView(u)
	}
	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(views)
	}
	for _, v := range views {
		fmt.Printf("%s\thandle=%d\tactive=%t\tscore=%.2f\trole=%s\tstatus=%s\n",
			v.UUID, v.Handle, v.Active, v.Score, v.Role, v.Status)
	}
	return nil
}
