package validrows

import (
	"context"
	"unicode"

	m "github.com/mopbucket/mop/pkg/mop"
)

// CorruptSignature reports whether a cell value matches the garbled-record
// signature: exactly 10 characters, all letters and digits, with at least
// one of each. Pure-digit and pure-letter strings of length 10 are
// legitimate (card fragments, codes) and do not match.
func CorruptSignature(s string) bool {
	runes := []rune(s)
	if len(runes) != 10 {
		return false
	}
	var hasDigit, hasLetter bool
	for _, r := range runes {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsLetter(r):
			hasLetter = true
		default:
			return false
		}
	}
	return hasDigit && hasLetter
}

// Filter drops any row where a string cell carries the corrupt signature.
// With KeyColumn set, rows whose key equals ExemptValue are kept no matter
// what, and rows with a null key are dropped (a store row without its code
// is unusable even when otherwise clean). Survivors are copied untouched.
type Filter struct {
	KeyColumn   string
	ExemptValue string
}

func (t *Filter) Name() string { return "remove_invalid_rows" }

func (t *Filter) Apply(ctx context.Context, f *m.Frame) (*m.Frame, error) {
	var strCols []*m.StringColumn
	for _, cs := range f.Schema().Columns {
		if cs.Type != m.KindString {
			continue
		}
		col, _ := f.ColumnByName(cs.Name)
		strCols = append(strCols, col.(*m.StringColumn))
	}
	var key *m.StringColumn
	if t.KeyColumn != "" {
		if col, ok := f.ColumnByName(t.KeyColumn); ok {
			key, _ = col.(*m.StringColumn)
		}
	}
	return f.Select(func(row int) bool {
		if key != nil {
			if v, ok := key.Get(row); ok {
				if v == t.ExemptValue {
					return true
				}
			} else {
				return false
			}
		}
		for _, c := range strCols {
			if v, ok := c.Get(row); ok && CorruptSignature(v) {
				return false
			}
		}
		return true
	}), nil
}
