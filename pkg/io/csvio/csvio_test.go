package csvio

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	m "github.com/mopbucket/mop/pkg/mop"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const sampleCSV = "name,qty,price\nalpha,3,1.5\nbeta,,2.25\nNULL,5,\n"

func TestInferSchemaAndReadAll(t *testing.T) {
	path := writeTemp(t, "in.csv", sampleCSV)
	rdr, closer, err := Open(path, ReaderOptions{HasHeader: true, SampleRows: 10})
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = closer.Close() }()
	schema, names, err := rdr.InferSchema()
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 3 || names[0] != "name" {
		t.Fatalf("unexpected header: %v", names)
	}
	if schema.Columns[1].Type != m.KindInt {
		t.Fatalf("qty kind = %v, want int", schema.Columns[1].Type)
	}
	if schema.Columns[2].Type != m.KindFloat {
		t.Fatalf("price kind = %v, want float", schema.Columns[2].Type)
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
		t.Fatal("empty field should read as null")
	}
	if v, ok := qty.(*m.IntColumn).Get(2); !ok || v != 5 {
		t.Fatalf("qty row 2 = %v %v", v, ok)
	}
	// "NULL" text is not the reader's business; standardization is a stage
	name, _ := f.ColumnByName("name")
	if v, ok := name.(*m.StringColumn).Get(2); !ok || v != "NULL" {
		t.Fatalf("name row 2 = %q %v", v, ok)
	}
}

func TestWriteAllRoundTrip(t *testing.T) {
	inPath := writeTemp(t, "in.csv", sampleCSV)
	rdr, closer, err := Open(inPath, ReaderOptions{HasHeader: true, SampleRows: 10})
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = closer.Close() }()
	schema, _, err := rdr.InferSchema()
	if err != nil {
		t.Fatal(err)
	}
	f, err := rdr.ReadAll(schema)
	if err != nil {
		t.Fatal(err)
	}

	outPath := filepath.Join(t.TempDir(), "out.csv")
	if err := WriteAll(outPath, f, WriterOptions{}); err != nil {
		t.Fatal(err)
	}

	rdr2, closer2, err := Open(outPath, ReaderOptions{HasHeader: true, SampleRows: 10})
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = closer2.Close() }()
	schema2, _, err := rdr2.InferSchema()
	if err != nil {
		t.Fatal(err)
	}
	f2, err := rdr2.ReadAll(schema2)
	if err != nil {
		t.Fatal(err)
	}
	if f2.Rows() != f.Rows() {
		t.Fatalf("round trip changed row count: %d vs %d", f2.Rows(), f.Rows())
	}
	price, _ := f2.ColumnByName("price")
	if v, ok := price.(*m.FloatColumn).Get(1); !ok || v != 2.25 {
		t.Fatalf("price row 1 = %v %v", v, ok)
	}
	if !price.IsNull(2) {
		t.Fatal("null should survive the round trip as an empty field")
	}
}

func TestOpenStdinSkipsSniffing(t *testing.T) {
	path := writeTemp(t, "in.csv", sampleCSV)
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = f.Close() }()
	orig := os.Stdin
	os.Stdin = f
	defer func() { os.Stdin = orig }()

	rdr, closer, err := Open("-", ReaderOptions{HasHeader: true, SampleRows: 10})
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = closer.Close() }()
	schema, _, err := rdr.InferSchema()
	if err != nil {
		t.Fatal(err)
	}
	fr, err := rdr.ReadAll(schema)
	if err != nil {
		t.Fatal(err)
	}
	// delimiter sniffing must not eat the stream before the reader sees it
	if fr.Rows() != 3 {
		t.Fatalf("expected 3 rows from stdin, got %d", fr.Rows())
	}
}

func TestStreamReaderChunks(t *testing.T) {
	path := writeTemp(t, "in.csv", sampleCSV)
	sr, closer, err := NewStreamReader(path, ReaderOptions{HasHeader: true, SampleRows: 10}, 2)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = closer.Close() }()

	var total, chunks int
	for {
		f, err := sr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
		if f.Rows() > 2 {
			t.Fatalf("chunk exceeds size: %d rows", f.Rows())
		}
		total += f.Rows()
		chunks++
	}
	if total != 3 || chunks != 2 {
		t.Fatalf("total=%d chunks=%d", total, chunks)
	}
}

func TestStreamWriterHeaderFromFirstFrame(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "out.csv")
	sw, err := NewStreamWriter(outPath, WriterOptions{})
	if err != nil {
		t.Fatal(err)
	}
	f := m.NewFrame(m.Schema{Columns: []m.ColumnSchema{{Name: "a", Type: m.KindString, Nullable: true}}})
	f.AppendNullRow()
	_ = f.SetCell(0, "a", "x")
	if err := sw.Write(f); err != nil {
		t.Fatal(err)
	}
	if err := sw.Close(); err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "a\nx\n" {
		t.Fatalf("unexpected output: %q", string(b))
	}
}
