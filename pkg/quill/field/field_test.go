package field

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type widget struct {
	Name  string
	Count int64
	Note  *string
}

func TestIntFieldRoundTrip(t *testing.T) {
	f := Int[widget]("count", func(w *widget) int64 { return w.Count }, func(w *widget, v int64) { w.Count = v })
	w := &widget{Count: 7}

	v, present := f.Get(w)
	require.True(t, present)
	assert.Equal(t, int64(7), v)

	require.NoError(t, f.Set(w, int64(42), true))
	assert.Equal(t, int64(42), w.Count)
}

func TestOptCastIntoTextBytesAbsent(t *testing.T) {
	f := OptCastIntoTextBytes[widget]("note",
		func(w *widget) []byte {
			if w.Note == nil {
				return nil
			}
			return []byte(*w.Note)
		},
		func(w *widget, b []byte) {
			if b == nil {
				w.Note = nil
				return
			}
			s := string(b)
			w.Note = &s
		},
	)

	w := &widget{}
	_, present := f.Get(w)
	assert.False(t, present)

	require.NoError(t, f.Set(w, nil, false))
	assert.Nil(t, w.Note)

	require.NoError(t, f.Set(w, []byte("hi"), true))
	require.NotNil(t, w.Note)
	assert.Equal(t, "hi", *w.Note)
}

type color int

const (
	colorRed color = iota
	colorBlue
)

func colorOrdinal(c color) int64 { return int64(c) }
func colorFromOrdinal(o int64) (color, error) {
	if o < 0 || o > 1 {
		return 0, assertErr
	}
	return color(o), nil
}
func colorName(c color) string {
	if c == colorBlue {
		return "blue"
	}
	return "red"
}
func colorFromName(s string) (color, error) {
	if s == "blue" {
		return colorBlue, nil
	}
	if s == "red" {
		return colorRed, nil
	}
	return 0, assertErr
}

var assertErr = errBadColor{}

type errBadColor struct{}

func (errBadColor) Error() string { return "bad color" }

func TestCastIntoIntEnum(t *testing.T) {
	type rec struct{ C color }
	f := CastIntoIntEnum[rec]("c",
		func(r *rec) color { return r.C }, func(r *rec, c color) { r.C = c },
		colorOrdinal, colorFromOrdinal,
	)
	r := &rec{C: colorBlue}
	v, present := f.Get(r)
	require.True(t, present)
	assert.Equal(t, int64(1), v)
}

func TestAnyEnumBothForms(t *testing.T) {
	type rec struct{ C color }
	f := AnyEnum[rec]("c", func(r *rec, c color) { r.C = c }, colorFromOrdinal, colorFromName)

	r := &rec{}
	require.NoError(t, f.Set(r, int64(1), true))
	assert.Equal(t, colorBlue, r.C)

	require.NoError(t, f.Set(r, []byte("red"), true))
	assert.Equal(t, colorRed, r.C)
}

type social struct {
	FB string `json:"fb"`
	YT string `json:"yt"`
}

func TestCastIntoTextJSONRoundTrip(t *testing.T) {
	type rec struct{ Socials []social }
	f := CastIntoTextJSON[rec]("socials",
		func(r *rec) []social { return r.Socials },
		func(r *rec, s []social) { r.Socials = s },
	)

	r := &rec{Socials: []social{{FB: "a", YT: "b"}, {FB: "c", YT: "d"}}}
	encoded, present := f.Get(r)
	require.True(t, present)

	out := &rec{}
	require.NoError(t, f.Set(out, encoded, true))
	assert.Equal(t, r.Socials, out.Socials)
}
