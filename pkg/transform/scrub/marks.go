package scrub

import (
	"context"
	"strings"

	m "github.com/mopbucket/mop/pkg/mop"
)

// StripMarks removes corruption marker tokens from a string column. The
// token set is configurable: card numbers arrive with a stray "?" mask
// character, product prices with a leading currency symbol. Non-string
// columns pass through unchanged.
type StripMarks struct {
	Column string
	Marks  []string
}

func (t *StripMarks) Name() string { return "strip_marks" }

func (t *StripMarks) Apply(ctx context.Context, f *m.Frame) (*m.Frame, error) {
	col, ok := f.ColumnByName(t.Column)
	if !ok {
		return f, nil
	}
	c, ok := col.(*m.StringColumn)
	if !ok {
		return f, nil
	}
	for i := 0; i < c.Len(); i++ {
		if c.IsNull(i) {
			continue
		}
		v, _ := c.Get(i)
		out := v
		for _, mark := range t.Marks {
			out = strings.ReplaceAll(out, mark, "")
		}
		if out != v {
			c.Set(i, out)
		}
	}
	return f, nil
}
