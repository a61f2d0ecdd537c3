package dates

import (
	"context"

	m "github.com/mopbucket/mop/pkg/mop"
)

// Normalize converts string date columns into time columns using Parse.
// Unparseable cells become null; a per-cell failure never aborts the run.
// Columns already of time kind pass through, so the stage is idempotent.
type Normalize struct {
	Columns []string
}

func (t *Normalize) Name() string { return "normalize_dates" }

func (t *Normalize) Apply(ctx context.Context, f *m.Frame) (*m.Frame, error) {
	for _, name := range t.Columns {
		col, ok := f.ColumnByName(name)
		if !ok {
			continue
		}
		c, ok := col.(*m.StringColumn)
		if !ok {
			continue
		}
		out := m.NewTimeColumn(name, 0)
		for i := 0; i < c.Len(); i++ {
			if c.IsNull(i) {
				out.AppendNull()
				continue
			}
			v, _ := c.Get(i)
			if ts, ok := Parse(v); ok {
				out.Append(ts)
			} else {
				out.AppendNull()
			}
		}
		if err := f.ReplaceColumn(name, out, m.KindTime); err != nil {
			return nil, err
		}
	}
	return f, nil
}
