package scrub

import (
	"context"
	"strings"

	m "github.com/mopbucket/mop/pkg/mop"
)

// Categorical nulls values of a closed-vocabulary column that carry digits
// (store types and the like never legitimately contain numbers).
type Categorical struct{ Column string }

func (t *Categorical) Name() string { return "clean_categorical" }

func (t *Categorical) Apply(ctx context.Context, f *m.Frame) (*m.Frame, error) {
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
			if containsDigit(v) {
				c.SetNull(i)
			}
		}
	}
	return f, nil
}

// Continent repairs the doubled-vowel typo ("eeEurope", "eeAmerica") before
// applying the digit check.
type Continent struct {
	Column string
	Typo   string // defaults to "ee"
}

func (t *Continent) Name() string { return "clean_continent" }

func (t *Continent) Apply(ctx context.Context, f *m.Frame) (*m.Frame, error) {
	col, ok := f.ColumnByName(t.Column)
	if !ok {
		return f, nil
	}
	typo := t.Typo
	if typo == "" {
		typo = "ee"
	}
	if c, ok := col.(*m.StringColumn); ok {
		for i := 0; i < c.Len(); i++ {
			if c.IsNull(i) {
				continue
			}
			v, _ := c.Get(i)
			v = strings.ReplaceAll(v, typo, "")
			if containsDigit(v) {
				c.SetNull(i)
				continue
			}
			c.Set(i, v)
		}
	}
	return f, nil
}
