package scrub

import (
	"context"

	m "github.com/mopbucket/mop/pkg/mop"
)

// Locality nulls locality names containing digits. A locality column that
// is not text at all (mis-inferred extract) is nulled wholesale, matching
// the "non-text value becomes missing" contract.
type Locality struct{ Column string }

func (t *Locality) Name() string { return "clean_locality" }

func (t *Locality) Apply(ctx context.Context, f *m.Frame) (*m.Frame, error) {
	col, ok := f.ColumnByName(t.Column)
	if !ok {
		return f, nil
	}
	c, ok := col.(*m.StringColumn)
	if !ok {
		for i := 0; i < col.Len(); i++ {
			col.SetNull(i)
		}
		return f, nil
	}
	for i := 0; i < c.Len(); i++ {
		if c.IsNull(i) {
			continue
		}
		v, _ := c.Get(i)
		if containsDigit(v) {
			c.SetNull(i)
		}
	}
	return f, nil
}
