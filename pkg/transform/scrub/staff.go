package scrub

import (
	"context"

	m "github.com/mopbucket/mop/pkg/mop"
)

// StaffCount strips non-digit characters from a headcount column ("3n9"
// style corruption). A value with no digits at all becomes null, keeping
// "no number present" distinct from a zero count.
type StaffCount struct{ Column string }

func (t *StaffCount) Name() string { return "clean_staff_count" }

func (t *StaffCount) Apply(ctx context.Context, f *m.Frame) (*m.Frame, error) {
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
			digits := digitsOnly(v)
			if digits == "" {
				c.SetNull(i)
				continue
			}
			if digits != v {
				c.Set(i, digits)
			}
		}
	}
	return f, nil
}
