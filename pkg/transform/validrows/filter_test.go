package validrows

import (
	"context"
	"testing"

	m "github.com/mopbucket/mop/pkg/mop"
)

func TestCorruptSignature(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"AB12345678", true},
		{"X9X9X9X9X9", true},
		{"1234567890", false}, // all digits: legitimate
		{"ABCDEFGHIJ", false}, // all letters: legitimate
		{"AB1234567", false},  // nine chars
		{"AB123456789", false},
		{"AB12-45678", false}, // punctuation breaks the signature
		{"", false},
	}
	for _, tc := range cases {
		if got := CorruptSignature(tc.in); got != tc.want {
			t.Fatalf("CorruptSignature(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func newRows(t *testing.T, names []string, rows [][]any) *m.Frame {
	t.Helper()
	cols := make([]m.ColumnSchema, len(names))
	for i, n := range names {
		cols[i] = m.ColumnSchema{Name: n, Type: m.KindString, Nullable: true}
	}
	f := m.NewFrame(m.Schema{Columns: cols})
	for r, row := range rows {
		f.AppendNullRow()
		for c, v := range row {
			if v == nil {
				continue
			}
			if err := f.SetCell(r, names[c], v); err != nil {
				t.Fatal(err)
			}
		}
	}
	return f
}

func TestFilterDropsCorruptRows(t *testing.T) {
	f := newRows(t, []string{"name", "code"}, [][]any{
		{"alice", "OK"},
		{"AB12345678", "OK"}, // corrupt cell anywhere drops the row
		{"bob", nil},
	})
	tf := &Filter{}
	out, err := tf.Apply(context.Background(), f)
	if err != nil {
		t.Fatal(err)
	}
	if out.Rows() != 2 {
		t.Fatalf("expected 2 rows, got %d", out.Rows())
	}
	col, _ := out.ColumnByName("name")
	if v, _ := col.(*m.StringColumn).Get(0); v != "alice" {
		t.Fatalf("unexpected survivor order, got %q", v)
	}
}

func TestFilterKeyExemption(t *testing.T) {
	f := newRows(t, []string{"store_code", "addr"}, [][]any{
		{"WEB-1388012W", "AB12345678"}, // exempt key wins over corrupt cell
		{"ST-001", "fine"},
		{nil, "fine"},                // null key drops the row
		{"QX3M8ZL2Fx", "whatever"},   // key itself carries the signature
	})
	tf := &Filter{KeyColumn: "store_code", ExemptValue: "WEB-1388012W"}
	out, err := tf.Apply(context.Background(), f)
	if err != nil {
		t.Fatal(err)
	}
	if out.Rows() != 2 {
		t.Fatalf("expected 2 rows, got %d", out.Rows())
	}
	col, _ := out.ColumnByName("store_code")
	c := col.(*m.StringColumn)
	if v, _ := c.Get(0); v != "WEB-1388012W" {
		t.Fatalf("exempt row lost, got %q", v)
	}
	if v, _ := c.Get(1); v != "ST-001" {
		t.Fatalf("clean row lost, got %q", v)
	}
}

func TestDropMissing(t *testing.T) {
	f := newRows(t, []string{"timestamp", "note"}, [][]any{
		{"22:00:06", nil}, // null outside the listed columns is fine
		{nil, "keep?"},
	})
	tf := &DropMissing{Columns: []string{"timestamp"}}
	out, err := tf.Apply(context.Background(), f)
	if err != nil {
		t.Fatal(err)
	}
	if out.Rows() != 1 {
		t.Fatalf("expected 1 row, got %d", out.Rows())
	}
	col, _ := out.ColumnByName("timestamp")
	if v, ok := col.(*m.StringColumn).Get(0); !ok || v != "22:00:06" {
		t.Fatalf("wrong survivor: %q %v", v, ok)
	}
}
