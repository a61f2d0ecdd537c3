package jsonlio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	m "github.com/mopbucket/mop/pkg/mop"
)

const sampleJSONL = `{"name":"alpha","qty":3,"price":1.5}
{"name":"beta","price":2.25}
{"name":null,"qty":5}
`

func TestInferSchemaAndReadAll(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.jsonl")
	if err := os.WriteFile(path, []byte(sampleJSONL), 0o644); err != nil {
		t.Fatal(err)
	}
	rdr, file, err := Open(path, ReaderOptions{SampleRows: 10})
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = file.Close() }()
	schema, err := rdr.InferSchema()
	if err != nil {
		t.Fatal(err)
	}
	// keys come out sorted: name, price, qty
	if len(schema.Columns) != 3 || schema.Columns[0].Name != "name" || schema.Columns[2].Name != "qty" {
		t.Fatalf("unexpected schema: %+v", schema.Columns)
	}
	if schema.Columns[2].Type != m.KindInt {
		t.Fatalf("qty kind = %v, want int", schema.Columns[2].Type)
	}

	f, err := rdr.ReadAll(schema)
	if err != nil {
		t.Fatal(err)
	}
	if f.Rows() != 3 {
		t.Fatalf("expected 3 rows, got %d", f.Rows())
	}
	qty, _ := f.ColumnByName("qty")
	if !qty.IsNull(1) {
		t.Fatal("absent key should read as null")
	}
	name, _ := f.ColumnByName("name")
	if !name.IsNull(2) {
		t.Fatal("JSON null should read as null")
	}
}

func TestReadAllBeyondInferenceSample(t *testing.T) {
	const rows = 500
	var b strings.Builder
	for i := 0; i < rows; i++ {
		fmt.Fprintf(&b, "{\"name\":\"alpha-%d\",\"qty\":%d}\n", i, i)
	}
	path := filepath.Join(t.TempDir(), "big.jsonl")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatal(err)
	}
	rdr, file, err := Open(path, ReaderOptions{SampleRows: 100})
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = file.Close() }()
	schema, err := rdr.InferSchema()
	if err != nil {
		t.Fatal(err)
	}
	f, err := rdr.ReadAll(schema)
	if err != nil {
		t.Fatal(err)
	}
	if f.Rows() != rows {
		t.Fatalf("expected %d rows, got %d", rows, f.Rows())
	}
	// the first row past the sample must be intact, not resumed mid-value
	name, _ := f.ColumnByName("name")
	if v, ok := name.(*m.StringColumn).Get(100); !ok || v != "alpha-100" {
		t.Fatalf("row 100 name = %q %v", v, ok)
	}
	qty, _ := f.ColumnByName("qty")
	if v, ok := qty.(*m.IntColumn).Get(rows - 1); !ok || v != rows-1 {
		t.Fatalf("last row qty = %v %v", v, ok)
	}
}

func TestWriteAllRoundTrip(t *testing.T) {
	f := m.NewFrame(m.Schema{Columns: []m.ColumnSchema{
		{Name: "name", Type: m.KindString, Nullable: true},
		{Name: "qty", Type: m.KindInt, Nullable: true},
	}})
	for i := 0; i < 2; i++ {
		f.AppendNullRow()
	}
	_ = f.SetCell(0, "name", "alpha")
	_ = f.SetCell(0, "qty", int64(3))

	path := filepath.Join(t.TempDir(), "out.jsonl")
	if err := WriteAll(path, f); err != nil {
		t.Fatal(err)
	}

	rdr, file, err := Open(path, ReaderOptions{SampleRows: 10})
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = file.Close() }()
	schema, err := rdr.InferSchema()
	if err != nil {
		t.Fatal(err)
	}
	f2, err := rdr.ReadAll(schema)
	if err != nil {
		t.Fatal(err)
	}
	if f2.Rows() != 2 {
		t.Fatalf("expected 2 rows, got %d", f2.Rows())
	}
	name, _ := f2.ColumnByName("name")
	if v, ok := name.(*m.StringColumn).Get(0); !ok || v != "alpha" {
		t.Fatalf("name row 0 = %q %v", v, ok)
	}
}
