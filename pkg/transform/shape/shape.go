package shape

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	m "github.com/mopbucket/mop/pkg/mop"
)

// Require guards a pipeline against misconfigured inputs: an expected
// column that is absent is a configuration error, not a data error, and
// aborts the run instead of degrading.
type Require struct {
	Columns []string
}

func (t *Require) Name() string { return "require_columns" }

func (t *Require) Apply(ctx context.Context, f *m.Frame) (*m.Frame, error) {
	var missing []string
	for _, name := range t.Columns {
		if !f.Schema().HasColumn(name) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("require_columns: input is missing expected columns: %s", strings.Join(missing, ", "))
	}
	return f, nil
}

// Drop removes the listed columns; names not present are ignored.
type Drop struct {
	Columns []string
}

func (t *Drop) Name() string { return "drop_columns" }

func (t *Drop) Apply(ctx context.Context, f *m.Frame) (*m.Frame, error) {
	for _, name := range t.Columns {
		f.DropColumn(name)
	}
	return f, nil
}

// Rename renames one column. A missing source column is a configuration
// error: renames encode the output schema contract.
type Rename struct {
	From, To string
}

func (t *Rename) Name() string { return "rename_column" }

func (t *Rename) Apply(ctx context.Context, f *m.Frame) (*m.Frame, error) {
	if err := f.RenameColumn(t.From, t.To); err != nil {
		return nil, fmt.Errorf("rename_column: %w", err)
	}
	return f, nil
}

// NumericCast converts a string column to KindFloat or KindInt in place.
// Cells that do not parse become null. Columns already numeric pass
// through untouched.
type NumericCast struct {
	Column string
	To     m.Kind // KindFloat (default) or KindInt
}

func (t *NumericCast) Name() string { return "numeric_cast" }

func (t *NumericCast) Apply(ctx context.Context, f *m.Frame) (*m.Frame, error) {
	col, ok := f.ColumnByName(t.Column)
	if !ok {
		return f, nil
	}
	to := t.To
	if to == m.KindInvalid {
		to = m.KindFloat
	}
	c, ok := col.(*m.StringColumn)
	if !ok {
		return f, nil
	}
	switch to {
	case m.KindFloat:
		out := m.NewFloatColumn(t.Column, 0)
		for i := 0; i < c.Len(); i++ {
			v, ok := c.Get(i)
			if !ok {
				out.AppendNull()
				continue
			}
			if x, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
				out.Append(x)
			} else {
				out.AppendNull()
			}
		}
		if err := f.ReplaceColumn(t.Column, out, m.KindFloat); err != nil {
			return nil, err
		}
	case m.KindInt:
		out := m.NewIntColumn(t.Column, 0)
		for i := 0; i < c.Len(); i++ {
			v, ok := c.Get(i)
			if !ok {
				out.AppendNull()
				continue
			}
			if x, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil {
				out.Append(x)
			} else {
				out.AppendNull()
			}
		}
		if err := f.ReplaceColumn(t.Column, out, m.KindInt); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("numeric_cast: unsupported target kind %d", to)
	}
	return f, nil
}

// MergeFirst fills null cells of Primary from Secondary, then drops
// Secondary (the store extract carries latitude split across two columns).
// Both columns must share a kind; a missing Secondary is a no-op.
type MergeFirst struct {
	Primary, Secondary string
}

func (t *MergeFirst) Name() string { return "merge_first" }

func (t *MergeFirst) Apply(ctx context.Context, f *m.Frame) (*m.Frame, error) {
	pcol, ok := f.ColumnByName(t.Primary)
	if !ok {
		return nil, fmt.Errorf("merge_first: missing column %s", t.Primary)
	}
	scol, ok := f.ColumnByName(t.Secondary)
	if !ok {
		return f, nil
	}
	switch p := pcol.(type) {
	case *m.StringColumn:
		if s, ok := scol.(*m.StringColumn); ok {
			for i := 0; i < p.Len(); i++ {
				if p.IsNull(i) {
					if v, ok := s.Get(i); ok {
						p.Set(i, v)
					}
				}
			}
		}
	case *m.FloatColumn:
		if s, ok := scol.(*m.FloatColumn); ok {
			for i := 0; i < p.Len(); i++ {
				if p.IsNull(i) {
					if v, ok := s.Get(i); ok {
						p.Set(i, v)
					}
				}
			}
		}
	}
	f.DropColumn(t.Secondary)
	return f, nil
}
