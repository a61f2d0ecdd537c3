package scrub

import (
	"context"
	"strings"
	"unicode"

	m "github.com/mopbucket/mop/pkg/mop"
)

// Phone strips every non-digit character from phone numbers. No length or
// country-prefix validation is performed; downstream consumers only need a
// dialable digit string.
type Phone struct{ Column string }

func (t *Phone) Name() string { return "clean_phone" }

func (t *Phone) Apply(ctx context.Context, f *m.Frame) (*m.Frame, error) {
	col, ok := f.ColumnByName(t.Column)
	if !ok {
		return f, nil
	}
	if c, ok := col.(*m.StringColumn); ok {
		for i := 0; i < c.Len(); i++ {
			if c.IsNull(i) {
				continue
			}
			v, _ := c.Get(i)
			c.Set(i, digitsOnly(v))
		}
	}
	return f, nil
}

func digitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
