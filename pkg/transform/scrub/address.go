package scrub

import (
	"context"
	"strings"

	m "github.com/mopbucket/mop/pkg/mop"
)

// Address flattens multi-line postal addresses onto one line, replacing
// embedded line breaks with a comma-space separator.
type Address struct{ Column string }

func (t *Address) Name() string { return "clean_address" }

func (t *Address) Apply(ctx context.Context, f *m.Frame) (*m.Frame, error) {
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
			if strings.ContainsRune(v, '\n') {
				c.Set(i, strings.ReplaceAll(v, "\n", ", "))
			}
		}
	}
	return f, nil
}
