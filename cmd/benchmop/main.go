package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/mopbucket/mop/pkg/dataset"
	m "github.com/mopbucket/mop/pkg/mop"
)

// genSource fabricates dirty user rows: null sentinels, mixed date
// formats, newline addresses, and garbled ten-character keys, at tunable
// rates. It measures the cleaning pipeline end to end without disk I/O.
type genSource struct {
	schema  m.Schema
	remain  int
	chunk   int
	dirtp   float64
	corrupt float64
	rnd     *rand.Rand
}

var dateForms = []func(t time.Time) string{
	func(t time.Time) string { return t.Format("2006-01-02") },
	func(t time.Time) string { return t.Format("2006/01/02") },
	func(t time.Time) string { return t.Format("02/01/2006") },
	func(t time.Time) string { return t.Format("January 2006 02") },
	func(t time.Time) string { return t.Format("2006 January 02") },
}

var sentinels = []string{"NULL", "None", "N/A", ""}

const garbleAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func (g *genSource) garble() string {
	b := make([]byte, 10)
	for i := range b {
		b[i] = garbleAlphabet[g.rnd.Intn(len(garbleAlphabet))]
	}
	// force the mixed-alphanumeric shape
	b[0] = 'A' + byte(g.rnd.Intn(26))
	b[1] = '0' + byte(g.rnd.Intn(10))
	return string(b)
}

func (g *genSource) date() string {
	t := time.Date(1960+g.rnd.Intn(50), time.Month(1+g.rnd.Intn(12)), 1+g.rnd.Intn(28), 0, 0, 0, 0, time.UTC)
	return dateForms[g.rnd.Intn(len(dateForms))](t)
}

func (g *genSource) cell(clean string) string {
	if g.rnd.Float64() < g.dirtp {
		return sentinels[g.rnd.Intn(len(sentinels))]
	}
	return clean
}

func (g *genSource) Next() (*m.Frame, error) {
	if g.remain <= 0 {
		return nil, ioEOF{}
	}
	n := g.chunk
	if n > g.remain {
		n = g.remain
	}
	g.remain -= n
	f := m.NewFrame(g.schema)
	for i := 0; i < n; i++ {
		f.AppendNullRow()
		if g.rnd.Float64() < g.corrupt {
			// corrupt rows carry garbage in every text cell
			gs := g.garble()
			for _, cs := range g.schema.Columns {
				_ = f.SetCell(i, cs.Name, gs)
			}
			continue
		}
		_ = f.SetCell(i, "address", g.cell("12 Some Street\nTowncaster\nTC1 2AB"))
		_ = f.SetCell(i, "country", g.cell("United Kingdom"))
		_ = f.SetCell(i, "country_code", g.cell("GGB"))
		_ = f.SetCell(i, "phone_number", g.cell("+44 (0)161 496 0000"))
		_ = f.SetCell(i, "date_of_birth", g.cell(g.date()))
		_ = f.SetCell(i, "join_date", g.cell(g.date()))
	}
	return f, nil
}

type ioEOF struct{}

func (ioEOF) Error() string { return "EOF" }

type blackholeSink struct{ rows int }

func (b *blackholeSink) Write(f *m.Frame) error { b.rows += f.Rows(); return nil }
func (b *blackholeSink) Close() error           { return nil }

func main() {
	var (
		rows    = flag.Int("rows", 5_000_000, "total rows to generate")
		chunk   = flag.Int("chunk", 100_000, "rows per chunk")
		dirtp   = flag.Float64("dirty", 0.10, "probability a cell holds a null sentinel")
		corrupt = flag.Float64("corrupt", 0.02, "probability a row is fully garbled")
		jsonOut = flag.Bool("json", false, "emit JSON summary")
		seed    = flag.Int64("seed", 42, "random seed")
	)
	flag.Parse()

	cols := []m.ColumnSchema{
		{Name: "address", Type: m.KindString, Nullable: true},
		{Name: "country", Type: m.KindString, Nullable: true},
		{Name: "country_code", Type: m.KindString, Nullable: true},
		{Name: "phone_number", Type: m.KindString, Nullable: true},
		{Name: "date_of_birth", Type: m.KindString, Nullable: true},
		{Name: "join_date", Type: m.KindString, Nullable: true},
	}
	schema := m.Schema{Columns: cols}

	p, err := dataset.Build(dataset.User)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	src := &genSource{schema: schema, remain: *rows, chunk: *chunk, dirtp: *dirtp, corrupt: *corrupt, rnd: rand.New(rand.NewSource(*seed))}
	sink := &blackholeSink{}

	// Warm up
	runtime.GC()
	time.Sleep(100 * time.Millisecond)

	var msBefore, msAfter runtime.MemStats
	runtime.ReadMemStats(&msBefore)
	start := time.Now()
	rep, err := m.RunStream(context.Background(), p, src, sink)
	if err != nil && err.Error() != "EOF" {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	elapsed := time.Since(start)
	runtime.ReadMemStats(&msAfter)

	rowsPerSec := float64(*rows) / elapsed.Seconds()
	summary := map[string]any{
		"rows":                  *rows,
		"rows_out":              sink.rows,
		"rows_dropped":          rep.RowsDropped(),
		"elapsed_ms":            elapsed.Milliseconds(),
		"rows_per_sec":          rowsPerSec,
		"mem_alloc_bytes":       msAfter.Alloc,
		"mem_total_alloc_bytes": msAfter.TotalAlloc - msBefore.TotalAlloc,
		"gc_num":                msAfter.NumGC - msBefore.NumGC,
		"chunk":                 *chunk,
		"dirty_prob":            *dirtp,
		"corrupt_prob":          *corrupt,
	}

	if *jsonOut {
		b, _ := json.MarshalIndent(summary, "", "  ")
		fmt.Println(string(b))
		return
	}
	fmt.Printf("Rows: %d\n", *rows)
	fmt.Printf("Rows out: %d (dropped %d)\n", sink.rows, rep.RowsDropped())
	fmt.Printf("Elapsed: %s\n", elapsed)
	fmt.Printf("Throughput: %.0f rows/s\n", rowsPerSec)
	fmt.Printf("Current Alloc: %d MB\n", msAfter.Alloc/1024/1024)
	fmt.Printf("Total Alloc (delta): %d MB\n", (msAfter.TotalAlloc-msBefore.TotalAlloc)/1024/1024)
	fmt.Printf("GC cycles (delta): %d\n", msAfter.NumGC-msBefore.NumGC)
}
