package scrub

import (
	"context"
	"testing"

	m "github.com/mopbucket/mop/pkg/mop"
)

func stringFrame(t *testing.T, name string, values []any) (*m.Frame, *m.StringColumn) {
	t.Helper()
	f := m.NewFrame(m.Schema{Columns: []m.ColumnSchema{{Name: name, Type: m.KindString, Nullable: true}}})
	for i, v := range values {
		f.AppendNullRow()
		if v == nil {
			continue
		}
		if err := f.SetCell(i, name, v); err != nil {
			t.Fatal(err)
		}
	}
	col, _ := f.ColumnByName(name)
	return f, col.(*m.StringColumn)
}

func TestAddress(t *testing.T) {
	f, c := stringFrame(t, "address", []any{"52 Sean turnpike\nSouth Amandaville\nWC3B 5EU", "one line", nil})
	tf := &Address{Column: "address"}
	if _, err := tf.Apply(context.Background(), f); err != nil {
		t.Fatal(err)
	}
	if v, _ := c.Get(0); v != "52 Sean turnpike, South Amandaville, WC3B 5EU" {
		t.Fatalf("newlines not flattened: %q", v)
	}
	if v, _ := c.Get(1); v != "one line" {
		t.Fatalf("single-line address changed: %q", v)
	}
	if !c.IsNull(2) {
		t.Fatal("null cell touched")
	}
}

func TestCountry(t *testing.T) {
	f, c := stringFrame(t, "country", []any{"United Kingdom", "USA1"})
	tf := &Country{Column: "country"}
	if _, err := tf.Apply(context.Background(), f); err != nil {
		t.Fatal(err)
	}
	if v, _ := c.Get(0); v != "United Kingdom" {
		t.Fatalf("clean country changed: %q", v)
	}
	if !c.IsNull(1) {
		t.Fatal("digit-bearing country should be null")
	}
}

func TestCountryCode(t *testing.T) {
	f, c := stringFrame(t, "country_code", []any{"GB", "GGB", "DE1", "ABCD"})
	tf := &CountryCode{Column: "country_code"}
	if _, err := tf.Apply(context.Background(), f); err != nil {
		t.Fatal(err)
	}
	if v, _ := c.Get(0); v != "GB" {
		t.Fatalf("clean code changed: %q", v)
	}
	if v, _ := c.Get(1); v != "GB" {
		t.Fatalf("GGB not repaired: %q", v)
	}
	if !c.IsNull(2) {
		t.Fatal("digit-bearing code should be null")
	}
	if !c.IsNull(3) {
		t.Fatal("over-length code should be null")
	}
}

func TestPhone(t *testing.T) {
	f, c := stringFrame(t, "phone_number", []any{"+44(0)121 496 0340", "(0161) 496-0674"})
	tf := &Phone{Column: "phone_number"}
	if _, err := tf.Apply(context.Background(), f); err != nil {
		t.Fatal(err)
	}
	if v, _ := c.Get(0); v != "4401214960340" {
		t.Fatalf("phone not digit-stripped: %q", v)
	}
	if v, _ := c.Get(1); v != "01614960674" {
		t.Fatalf("phone not digit-stripped: %q", v)
	}
}

func TestStripMarks(t *testing.T) {
	f, c := stringFrame(t, "card_number", []any{"??4971858637664481", "349624180933183", nil})
	tf := &StripMarks{Column: "card_number", Marks: []string{"?"}}
	if _, err := tf.Apply(context.Background(), f); err != nil {
		t.Fatal(err)
	}
	if v, _ := c.Get(0); v != "4971858637664481" {
		t.Fatalf("mask not stripped: %q", v)
	}
	if v, _ := c.Get(1); v != "349624180933183" {
		t.Fatalf("clean number changed: %q", v)
	}
}

func TestCategorical(t *testing.T) {
	f, c := stringFrame(t, "store_type", []any{"Super Store", "Mall Kiosk 7"})
	tf := &Categorical{Column: "store_type"}
	if _, err := tf.Apply(context.Background(), f); err != nil {
		t.Fatal(err)
	}
	if v, _ := c.Get(0); v != "Super Store" {
		t.Fatalf("clean category changed: %q", v)
	}
	if !c.IsNull(1) {
		t.Fatal("digit-bearing category should be null")
	}
}

func TestContinent(t *testing.T) {
	f, c := stringFrame(t, "continent", []any{"eeEurope", "America", "Eur0pe"})
	tf := &Continent{Column: "continent"}
	if _, err := tf.Apply(context.Background(), f); err != nil {
		t.Fatal(err)
	}
	if v, _ := c.Get(0); v != "Europe" {
		t.Fatalf("typo not repaired: %q", v)
	}
	if v, _ := c.Get(1); v != "America" {
		t.Fatalf("clean continent changed: %q", v)
	}
	if !c.IsNull(2) {
		t.Fatal("digit-bearing continent should be null")
	}
}

func TestLocality(t *testing.T) {
	f, c := stringFrame(t, "locality", []any{"High Wycombe", "Sector 9"})
	tf := &Locality{Column: "locality"}
	if _, err := tf.Apply(context.Background(), f); err != nil {
		t.Fatal(err)
	}
	if v, _ := c.Get(0); v != "High Wycombe" {
		t.Fatalf("clean locality changed: %q", v)
	}
	if !c.IsNull(1) {
		t.Fatal("digit-bearing locality should be null")
	}
}

func TestLocalityNonStringColumn(t *testing.T) {
	f := m.NewFrame(m.Schema{Columns: []m.ColumnSchema{{Name: "locality", Type: m.KindFloat, Nullable: true}}})
	f.AppendNullRow()
	_ = f.SetCell(0, "locality", 3.14)
	tf := &Locality{Column: "locality"}
	if _, err := tf.Apply(context.Background(), f); err != nil {
		t.Fatal(err)
	}
	col, _ := f.ColumnByName("locality")
	if !col.IsNull(0) {
		t.Fatal("non-text locality column should be nulled wholesale")
	}
}

func TestStaffCount(t *testing.T) {
	f, c := stringFrame(t, "staff_numbers", []any{"30", "3n9", "abc"})
	tf := &StaffCount{Column: "staff_numbers"}
	if _, err := tf.Apply(context.Background(), f); err != nil {
		t.Fatal(err)
	}
	if v, _ := c.Get(0); v != "30" {
		t.Fatalf("clean count changed: %q", v)
	}
	if v, _ := c.Get(1); v != "39" {
		t.Fatalf("corruption not stripped: %q", v)
	}
	if !c.IsNull(2) {
		t.Fatal("digitless count should be null")
	}
}
