package parquetio

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	parquet "github.com/segmentio/parquet-go"

	m "github.com/mopbucket/mop/pkg/mop"
)

type Reader struct {
	file   *os.File
	reader *parquet.GenericReader[map[string]any]
	schema m.Schema
}

// OpenReader infers a schema from the first sampleRows rows, then reopens
// the reader from the start (the generic reader cannot unread).
func OpenReader(path string, sampleRows int) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	r := parquet.NewGenericReader[map[string]any](f)
	if sampleRows <= 0 {
		sampleRows = 100
	}
	rows := make([]map[string]any, sampleRows)
	n, err := r.Read(rows)
	if err != nil && !isEOF(err) {
		_ = r.Close()
		_ = f.Close()
		return nil, err
	}
	schema := inferSchema(rows[:n])
	if err := r.Close(); err != nil {
		_ = f.Close()
		return nil, err
	}
	if _, err := f.Seek(0, 0); err != nil {
		_ = f.Close()
		return nil, err
	}
	return &Reader{file: f, reader: parquet.NewGenericReader[map[string]any](f), schema: schema}, nil
}

func isEOF(err error) bool {
	return err != nil && strings.Contains(err.Error(), "EOF")
}

func (r *Reader) Close() error {
	_ = r.reader.Close()
	return r.file.Close()
}

func (r *Reader) Schema() m.Schema { return r.schema }

func (r *Reader) ReadAll() (*m.Frame, error) {
	f := m.NewFrame(r.schema)
	buf := make([]map[string]any, 1024)
	for {
		n, err := r.reader.Read(buf)
		for i := 0; i < n; i++ {
			f.AppendNullRow()
			setRow(f, f.Rows()-1, buf[i])
		}
		if err != nil {
			if isEOF(err) {
				break
			}
			return nil, err
		}
		if n == 0 {
			break
		}
	}
	return f, nil
}

func inferSchema(rows []map[string]any) m.Schema {
	keysSet := map[string]struct{}{}
	for _, rec := range rows {
		for k := range rec {
			keysSet[k] = struct{}{}
		}
	}
	keys := make([]string, 0, len(keysSet))
	for k := range keysSet {
		keys = append(keys, k)
	}
	kinds := make([]m.Kind, len(keys))
	for i, k := range keys {
		nNum, nInt, nBool, nStr := 0, 0, 0, 0
		for _, rec := range rows {
			v, ok := rec[k]
			if !ok || v == nil {
				continue
			}
			switch t := v.(type) {
			case float64:
				nNum++
				if float64(int64(t)) == t {
					nInt++
				}
			case int, int64:
				nNum++
				nInt++
			case bool:
				nBool++
			case string:
				s := strings.TrimSpace(t)
				if s == "" {
					continue
				}
				if x, err := strconv.ParseFloat(s, 64); err == nil {
					nNum++
					if float64(int64(x)) == x {
						nInt++
					}
				} else {
					nStr++
				}
			default:
				nStr++
			}
		}
		switch {
		case nBool > nNum && nBool >= nStr:
			kinds[i] = m.KindBool
		case nNum > nStr:
			if nInt == nNum {
				kinds[i] = m.KindInt
			} else {
				kinds[i] = m.KindFloat
			}
		default:
			kinds[i] = m.KindString
		}
	}
	schema := m.Schema{Columns: make([]m.ColumnSchema, len(keys))}
	for i, k := range keys {
		schema.Columns[i] = m.ColumnSchema{Name: k, Type: kinds[i], Nullable: true}
	}
	return schema
}

func setRow(f *m.Frame, row int, rec map[string]any) {
	for _, cs := range f.Schema().Columns {
		v, ok := rec[cs.Name]
		if !ok || v == nil {
			continue
		}
		switch cs.Type {
		case m.KindFloat:
			switch t := v.(type) {
			case float64:
				_ = f.SetCell(row, cs.Name, t)
			case int:
				_ = f.SetCell(row, cs.Name, float64(t))
			case int64:
				_ = f.SetCell(row, cs.Name, float64(t))
			case string:
				if s := strings.TrimSpace(t); s != "" {
					if x, err := strconv.ParseFloat(s, 64); err == nil {
						_ = f.SetCell(row, cs.Name, x)
					}
				}
			}
		case m.KindInt:
			switch t := v.(type) {
			case int64:
				_ = f.SetCell(row, cs.Name, t)
			case int:
				_ = f.SetCell(row, cs.Name, int64(t))
			case float64:
				_ = f.SetCell(row, cs.Name, int64(t))
			case string:
				if s := strings.TrimSpace(t); s != "" {
					if x, err := strconv.ParseInt(s, 10, 64); err == nil {
						_ = f.SetCell(row, cs.Name, x)
					}
				}
			}
		case m.KindBool:
			switch t := v.(type) {
			case bool:
				_ = f.SetCell(row, cs.Name, t)
			case string:
				if x, err := strconv.ParseBool(strings.ToLower(strings.TrimSpace(t))); err == nil {
					_ = f.SetCell(row, cs.Name, x)
				}
			}
		default:
			switch t := v.(type) {
			case string:
				_ = f.SetCell(row, cs.Name, t)
			default:
				_ = f.SetCell(row, cs.Name, fmt.Sprintf("%v", t))
			}
		}
	}
}
