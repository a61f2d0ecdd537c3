package csvio

import (
	"encoding/csv"
	"os"
	"strconv"

	m "github.com/mopbucket/mop/pkg/mop"
)

type WriterOptions struct {
	Delimiter rune // default ','
}

const timeLayout = "2006-01-02T15:04:05Z07:00"

// WriteAll writes a Frame to a CSV file with headers. Null cells are
// written as empty fields.
func WriteAll(path string, f *m.Frame, opt WriterOptions) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()
	w := csv.NewWriter(out)
	if opt.Delimiter != 0 {
		w.Comma = opt.Delimiter
	}

	hdr := make([]string, len(f.Schema().Columns))
	for i, cs := range f.Schema().Columns {
		hdr[i] = cs.Name
	}
	if err := w.Write(hdr); err != nil {
		return err
	}
	for r := 0; r < f.Rows(); r++ {
		if err := w.Write(formatRow(f, r)); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func formatRow(f *m.Frame, r int) []string {
	row := make([]string, len(f.Schema().Columns))
	for c, cs := range f.Schema().Columns {
		col, _ := f.ColumnByName(cs.Name)
		switch cs.Type {
		case m.KindFloat:
			if v, ok := col.(*m.FloatColumn).Get(r); ok {
				row[c] = strconv.FormatFloat(v, 'g', -1, 64)
			}
		case m.KindInt:
			if v, ok := col.(*m.IntColumn).Get(r); ok {
				row[c] = strconv.FormatInt(v, 10)
			}
		case m.KindBool:
			if v, ok := col.(*m.BoolColumn).Get(r); ok {
				row[c] = strconv.FormatBool(v)
			}
		case m.KindString:
			if v, ok := col.(*m.StringColumn).Get(r); ok {
				row[c] = v
			}
		case m.KindTime:
			if v, ok := col.(*m.TimeColumn).Get(r); ok {
				row[c] = v.Format(timeLayout)
			}
		}
	}
	return row
}
