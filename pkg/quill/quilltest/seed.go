// Package quilltest builds a small demo "users" shape exercising every C2
// descriptor and seeds it into a fresh database, for use by cmd/quillctl's
// seed command and by pkg/quill's own integration tests.
package quilltest

import (
	"context"
	"fmt"

	"github.com/mesh-intelligence/quill/pkg/quill"
	"github.com/mesh-intelligence/quill/pkg/quill/field"
	"github.com/mesh-intelligence/quill/pkg/uuid7"
)

// Role is a small int-backed enumeration bound through CastInto<Int,E>.
type Role int

const (
	RoleAdmin Role = iota
	RoleMember
	RoleGuest
)

func roleOrdinal(r Role) int64 { return int64(r) }

func roleFromOrdinal(n int64) (Role, error) {
	switch Role(n) {
	case RoleAdmin, RoleMember, RoleGuest:
		return Role(n), nil
	default:
		return 0, fmt.Errorf("unknown role ordinal %d", n)
	}
}

// Status is a small text-backed enumeration bound through CastInto<Text,E>.
type Status int

const (
	StatusActive Status = iota
	StatusSuspended
)

func statusName(s Status) string {
	if s == StatusSuspended {
		return "suspended"
	}
	return "active"
}

func statusFromName(name string) (Status, error) {
	switch name {
	case "active":
		return StatusActive, nil
	case "suspended":
		return StatusSuspended, nil
	default:
		return 0, fmt.Errorf("unknown status %q", name)
	}
}

// Tags is a small nested record written as JSON through CastInto<Text,R>.
type Tags struct {
	Labels []string `json:"labels"`
}

// User is the demo record. Model and View below between them use every C2
// descriptor, so Model/View round-trip tests exercise the whole vocabulary.
type User struct {
	UUID    []byte
	Handle  int64
	Active  bool
	Score   float64
	Role    Role
	Status  Status
	Tags    Tags
	Bio     []byte
	Avatar  []byte
	Nick    []byte
}

// Model is the write-side shape for User.
var Model = quill.MustModel(
	field.CastIntoBlobBytes("uuid", func(u *User) []byte { return u.UUID }, func(u *User, b []byte) { u.UUID = b }),
	field.Int("handle", func(u *User) int64 { return u.Handle }, func(u *User, v int64) { u.Handle = v }),
	field.Bool("active", func(u *User) bool { return u.Active }, func(u *User, v bool) { u.Active = v }),
	field.Float("score", func(u *User) float64 { return u.Score }, func(u *User, v float64) { u.Score = v }),
	field.CastIntoIntEnum("role", func(u *User) Role { return u.Role }, func(u *User, v Role) { u.Role = v }, roleOrdinal, roleFromOrdinal),
	field.CastIntoTextEnum("status", func(u *User) Status { return u.Status }, func(u *User, v Status) { u.Status = v }, statusName, statusFromName),
	field.CastIntoTextJSON("tags", func(u *User) Tags { return u.Tags }, func(u *User, v Tags) { u.Tags = v }),
	field.CastIntoTextBytes("bio", func(u *User) []byte { return u.Bio }, func(u *User, v []byte) { u.Bio = v }),
	field.CastIntoBlobBytes("avatar", func(u *User) []byte { return u.Avatar }, func(u *User, v []byte) { u.Avatar = v }),
	field.OptCastIntoTextBytes("nick", func(u *User) []byte { return u.Nick }, func(u *User, v []byte) { u.Nick = v }),
)

// View is the read-side shape for User, additionally covering the three
// view-only descriptors (Slice, Any<E> and Any<R>) that Model cannot carry.
var View = quill.MustView(
	field.Slice("uuid", func(u *User) []byte { return u.UUID }, func(u *User, b []byte) { u.UUID = b }),
	field.Int("handle", func(u *User) int64 { return u.Handle }, func(u *User, v int64) { u.Handle = v }),
	field.Bool("active", func(u *User) bool { return u.Active }, func(u *User, v bool) { u.Active = v }),
	field.Float("score", func(u *User) float64 { return u.Score }, func(u *User, v float64) { u.Score = v }),
	field.AnyEnum("role", func(u *User, v Role) { u.Role = v }, roleFromOrdinal, func(name string) (Role, error) {
		switch name {
		case "admin":
			return RoleAdmin, nil
		case "member":
			return RoleMember, nil
		case "guest":
			return RoleGuest, nil
		default:
			return 0, fmt.Errorf("unknown role name %q", name)
		}
	}),
	field.Slice("status", func(u *User) []byte { return []byte(statusName(u.Status)) }, func(u *User, b []byte) {
		s, err := statusFromName(string(b))
		if err == nil {
			u.Status = s
		}
	}),
	field.AnyJSON("tags", func(u *User, v Tags) { u.Tags = v }),
	field.Slice("bio", func(u *User) []byte { return u.Bio }, func(u *User, v []byte) { u.Bio = v }),
	field.Slice("avatar", func(u *User) []byte { return u.Avatar }, func(u *User, v []byte) { u.Avatar = v }),
	field.Slice("nick", func(u *User) []byte { return u.Nick }, func(u *User, v []byte) { u.Nick = v }),
)

// Filter restricts WHERE/ORDER BY targets to the raw scalar fields.
var Filter = quill.MustFilter(
	field.Int("handle", func(u *User) int64 { return u.Handle }, func(u *User, v int64) { u.Handle = v }),
	field.Bool("active", func(u *User) bool { return u.Active }, func(u *User, v bool) { u.Active = v }),
	field.Float("score", func(u *User) float64 { return u.Score }, func(u *User, v float64) { u.Score = v }),
)

// Container is the demo table name.
const Container = "users"

var demoUsers = []struct {
	handle int64
	active bool
	score  float64
	role   Role
	status Status
	tags   []string
	bio    string
	nick   []byte
}{
	{1, true, 4.5, RoleAdmin, StatusActive, []string{"founder"}, "Runs the place.", []byte("boss")},
	{2, true, 3.1, RoleMember, StatusActive, []string{"eng"}, "Writes the code.", nil},
	{3, false, 0.0, RoleGuest, StatusSuspended, nil, "Locked out.", nil},
}

// Seed creates the users table if needed and inserts the demo rows exactly
// once, mirroring the idempotent "seed only on first run" idiom of a
// count-then-insert-in-a-transaction check.
func Seed(ctx context.Context, db *quill.DB) error {
	ddl, err := quill.CreateTable(Model, Container)
	if err != nil {
		return err
	}
	if _, err := db.Exec(ctx, ddl); err != nil {
		return err
	}

	count, _, err := quill.RecordCount(ctx, db.Handle(), Container)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	if err := quill.Begin(ctx, db.Handle()); err != nil {
		return err
	}

	insertSQL, err := quill.CreateStatement(Model, Container, quill.InsertPlain)
	if err != nil {
		_ = quill.Rollback(ctx, db.Handle())
		return err
	}
	crud, err := db.Prepare(insertSQL)
	if err != nil {
		_ = quill.Rollback(ctx, db.Handle())
		return err
	}
	defer crud.Destroy()

	for _, d := range demoUsers {
		id := uuid7.New()
		u := &User{
			UUID:   id.Bytes(),
			Handle: d.handle,
			Active: d.active,
			Score:  d.score,
			Role:   d.role,
			Status: d.status,
			Tags:   Tags{Labels: d.tags},
			Bio:    []byte(d.bio),
			Avatar: []byte{},
			Nick:   d.nick,
		}
		if _, err := crud.Exec(ctx, Model, u); err != nil {
			_ = quill.Rollback(ctx, db.Handle())
			return fmt.Errorf("seeding user %d: %w", d.handle, err)
		}
		crud.Reset()
	}

	return quill.Commit(ctx, db.Handle())
}
