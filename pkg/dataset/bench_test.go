package dataset

import (
	"context"
	"fmt"
	"testing"

	m "github.com/mopbucket/mop/pkg/mop"
)

func makeDirtyUsers(rows int) *m.Frame {
	names := []string{"address", "country", "country_code", "phone_number", "date_of_birth", "join_date"}
	cols := make([]m.ColumnSchema, len(names))
	for i, n := range names {
		cols[i] = m.ColumnSchema{Name: n, Type: m.KindString, Nullable: true}
	}
	f := m.NewFrame(m.Schema{Columns: cols})
	for i := 0; i < rows; i++ {
		f.AppendNullRow()
		if i%50 == 0 {
			for _, n := range names {
				_ = f.SetCell(i, n, "QX3M8ZL2FX")
			}
			continue
		}
		_ = f.SetCell(i, "address", "1 Way\nTown")
		_ = f.SetCell(i, "country", "United Kingdom")
		_ = f.SetCell(i, "country_code", "GB")
		_ = f.SetCell(i, "phone_number", "+44 161 496 0000")
		_ = f.SetCell(i, "date_of_birth", fmt.Sprintf("19%02d-01-02", i%100))
		_ = f.SetCell(i, "join_date", "2018-10-10")
	}
	return f
}

func BenchmarkUserPipeline(b *testing.B) {
	p, err := Build(User)
	if err != nil {
		b.Fatal(err)
	}
	f := makeDirtyUsers(100000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _, _ = p.Run(context.Background(), f)
	}
}
