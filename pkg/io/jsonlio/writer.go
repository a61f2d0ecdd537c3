package jsonlio

import (
	"bufio"
	"encoding/json"

	iox "github.com/mopbucket/mop/pkg/io/ioutils"
	m "github.com/mopbucket/mop/pkg/mop"
)

// WriteAll writes a Frame as one JSON object per line. Null cells are
// omitted from the row object.
func WriteAll(path string, f *m.Frame) error {
	out, err := iox.CreateMaybeCompressed(path)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()
	w := bufio.NewWriter(out)
	enc := json.NewEncoder(w)
	for r := 0; r < f.Rows(); r++ {
		if err := enc.Encode(rowMap(f, r)); err != nil {
			return err
		}
	}
	return w.Flush()
}

func rowMap(f *m.Frame, r int) map[string]any {
	rec := map[string]any{}
	for _, cs := range f.Schema().Columns {
		col, _ := f.ColumnByName(cs.Name)
		switch cs.Type {
		case m.KindFloat:
			if v, ok := col.(*m.FloatColumn).Get(r); ok {
				rec[cs.Name] = v
			}
		case m.KindInt:
			if v, ok := col.(*m.IntColumn).Get(r); ok {
				rec[cs.Name] = v
			}
		case m.KindBool:
			if v, ok := col.(*m.BoolColumn).Get(r); ok {
				rec[cs.Name] = v
			}
		case m.KindString:
			if v, ok := col.(*m.StringColumn).Get(r); ok {
				rec[cs.Name] = v
			}
		case m.KindTime:
			if v, ok := col.(*m.TimeColumn).Get(r); ok {
				rec[cs.Name] = v
			}
		}
	}
	return rec
}
