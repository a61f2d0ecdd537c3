package scrub

import (
	"context"
	"unicode"

	m "github.com/mopbucket/mop/pkg/mop"
)

func containsDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// Country nulls country names that carry digits; free-text entry lets
// garbage like "USA1" through upstream.
type Country struct{ Column string }

func (t *Country) Name() string { return "clean_country" }

func (t *Country) Apply(ctx context.Context, f *m.Frame) (*m.Frame, error) {
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

// DefaultCodeFixups corrects known malformed code literals; the doubled
// prefix GGB shows up in the legacy user extract.
var DefaultCodeFixups = map[string]string{"GGB": "GB"}

// CountryCode nulls codes that carry digits or exceed three characters,
// then applies literal fixups.
type CountryCode struct {
	Column string
	Fixups map[string]string
}

func (t *CountryCode) Name() string { return "clean_country_code" }

func (t *CountryCode) Apply(ctx context.Context, f *m.Frame) (*m.Frame, error) {
	col, ok := f.ColumnByName(t.Column)
	if !ok {
		return f, nil
	}
	fixups := t.Fixups
	if fixups == nil {
		fixups = DefaultCodeFixups
	}
	if c, ok := col.(*m.StringColumn); ok {
		for i := 0; i < c.Len(); i++ {
			if c.IsNull(i) {
				continue
			}
			v, _ := c.Get(i)
			if containsDigit(v) || len(v) > 3 {
				c.SetNull(i)
				continue
			}
			if fixed, hit := fixups[v]; hit {
				c.Set(i, fixed)
			}
		}
	}
	return f, nil
}
