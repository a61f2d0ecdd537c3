package nulls

import (
	"context"

	m "github.com/mopbucket/mop/pkg/mop"
)

// DefaultSentinels are the null spellings observed across the source
// systems: database NULLs serialized as text, Python None reprs, manual
// N/A entries, and bare empty strings.
var DefaultSentinels = []string{"NULL", "None", "N/A", ""}

// Standardize maps sentinel tokens to the canonical null marker across
// every string column (or only Columns, when set). Idempotent: once a cell
// is null it no longer equals any sentinel.
type Standardize struct {
	Columns   []string
	Sentinels []string
}

func (t *Standardize) Name() string { return "standardize_nulls" }

func (t *Standardize) Apply(ctx context.Context, f *m.Frame) (*m.Frame, error) {
	sentinels := t.Sentinels
	if sentinels == nil {
		sentinels = DefaultSentinels
	}
	set := make(map[string]struct{}, len(sentinels))
	for _, s := range sentinels {
		set[s] = struct{}{}
	}
	names := t.Columns
	if len(names) == 0 {
		for _, cs := range f.Schema().Columns {
			names = append(names, cs.Name)
		}
	}
	for _, name := range names {
		col, ok := f.ColumnByName(name)
		if !ok {
			continue
		}
		c, ok := col.(*m.StringColumn)
		if !ok {
			continue
		}
		for i := 0; i < c.Len(); i++ {
			if c.IsNull(i) {
				continue
			}
			v, _ := c.Get(i)
			if _, hit := set[v]; hit {
				c.SetNull(i)
			}
		}
	}
	return f, nil
}
