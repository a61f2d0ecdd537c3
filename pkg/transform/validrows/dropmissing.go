package validrows

import (
	"context"

	m "github.com/mopbucket/mop/pkg/mop"
)

// DropMissing removes rows that are null in any of the listed columns.
// Used for datasets whose crucial fields make a row meaningless when
// absent (a date event without its year, month, day or timestamp).
type DropMissing struct {
	Columns []string
}

func (t *DropMissing) Name() string { return "drop_missing" }

func (t *DropMissing) Apply(ctx context.Context, f *m.Frame) (*m.Frame, error) {
	var cols []m.Column
	for _, name := range t.Columns {
		if col, ok := f.ColumnByName(name); ok {
			cols = append(cols, col)
		}
	}
	return f.Select(func(row int) bool {
		for _, c := range cols {
			if c.IsNull(row) {
				return false
			}
		}
		return true
	}), nil
}
