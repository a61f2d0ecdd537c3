package nulls

import (
	"context"
	"testing"

	m "github.com/mopbucket/mop/pkg/mop"
)

func TestStandardizeSentinels(t *testing.T) {
	s := m.Schema{Columns: []m.ColumnSchema{
		{Name: "a", Type: m.KindString, Nullable: true},
		{Name: "n", Type: m.KindFloat, Nullable: true},
	}}
	f := m.NewFrame(s)
	for i := 0; i < 5; i++ {
		f.AppendNullRow()
	}
	col, _ := f.ColumnByName("a")
	c := col.(*m.StringColumn)
	c.Set(0, "NULL")
	c.Set(1, "None")
	c.Set(2, "N/A")
	c.Set(3, "")
	c.Set(4, "keep me")

	tf := &Standardize{}
	if _, err := tf.Apply(context.Background(), f); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 4; i++ {
		if !c.IsNull(i) {
			t.Fatalf("row %d should be null", i)
		}
	}
	if v, ok := c.Get(4); !ok || v != "keep me" {
		t.Fatalf("non-sentinel value changed: %q %v", v, ok)
	}
}

func TestStandardizeIdempotent(t *testing.T) {
	s := m.Schema{Columns: []m.ColumnSchema{{Name: "a", Type: m.KindString, Nullable: true}}}
	f := m.NewFrame(s)
	f.AppendNullRow()
	col, _ := f.ColumnByName("a")
	col.(*m.StringColumn).Set(0, "NULL")

	tf := &Standardize{}
	if _, err := tf.Apply(context.Background(), f); err != nil {
		t.Fatal(err)
	}
	if _, err := tf.Apply(context.Background(), f); err != nil {
		t.Fatal(err)
	}
	if !col.IsNull(0) {
		t.Fatal("cell should stay null after second pass")
	}
}

func TestStandardizeColumnScope(t *testing.T) {
	s := m.Schema{Columns: []m.ColumnSchema{
		{Name: "a", Type: m.KindString, Nullable: true},
		{Name: "b", Type: m.KindString, Nullable: true},
	}}
	f := m.NewFrame(s)
	f.AppendNullRow()
	ca, _ := f.ColumnByName("a")
	cb, _ := f.ColumnByName("b")
	ca.(*m.StringColumn).Set(0, "NULL")
	cb.(*m.StringColumn).Set(0, "NULL")

	tf := &Standardize{Columns: []string{"a"}}
	if _, err := tf.Apply(context.Background(), f); err != nil {
		t.Fatal(err)
	}
	if !ca.IsNull(0) {
		t.Fatal("scoped column not standardized")
	}
	if cb.IsNull(0) {
		t.Fatal("out-of-scope column was standardized")
	}
}

func TestStandardizeCustomSentinels(t *testing.T) {
	s := m.Schema{Columns: []m.ColumnSchema{{Name: "a", Type: m.KindString, Nullable: true}}}
	f := m.NewFrame(s)
	for i := 0; i < 2; i++ {
		f.AppendNullRow()
	}
	col, _ := f.ColumnByName("a")
	c := col.(*m.StringColumn)
	c.Set(0, "missing")
	c.Set(1, "NULL")

	tf := &Standardize{Sentinels: []string{"missing"}}
	if _, err := tf.Apply(context.Background(), f); err != nil {
		t.Fatal(err)
	}
	if !c.IsNull(0) {
		t.Fatal("custom sentinel not applied")
	}
	if c.IsNull(1) {
		t.Fatal("default sentinel applied despite custom set")
	}
}
