package jsonlio

import (
	"bufio"
	"encoding/json"
	"io"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"

	m "github.com/mopbucket/mop/pkg/mop"
)

type ReaderOptions struct {
	SampleRows int
}

// Reader decodes JSONL through a single decoder shared by InferSchema and
// ReadAll. Two decoders over one stream would each buffer ahead and lose
// the other's bytes once the file outgrows the inference sample.
type Reader struct {
	dec *json.Decoder
	opt ReaderOptions
	buf []map[string]any
}

func Open(path string, opt ReaderOptions) (*Reader, *os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return &Reader{dec: json.NewDecoder(bufio.NewReader(f)), opt: opt}, f, nil
}

// InferSchema samples rows to determine the key set and column kinds.
// Keys are sorted for a deterministic column order.
func (r *Reader) InferSchema() (m.Schema, error) {
	max := r.opt.SampleRows
	if max <= 0 {
		max = 100
	}
	var sample []map[string]any
	keysSet := map[string]struct{}{}
	for len(sample) < max {
		var rec map[string]any
		if err := r.dec.Decode(&rec); err != nil {
			if err == io.EOF {
				break
			}
			return m.Schema{}, err
		}
		sample = append(sample, rec)
		for k := range rec {
			keysSet[k] = struct{}{}
		}
	}
	r.buf = append(r.buf, sample...)
	keys := make([]string, 0, len(keysSet))
	for k := range keysSet {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	kinds := inferKinds(sample, keys)
	schema := m.Schema{Columns: make([]m.ColumnSchema, len(keys))}
	for i, k := range keys {
		schema.Columns[i] = m.ColumnSchema{Name: k, Type: kinds[i], Nullable: true}
	}
	return schema, nil
}

func (r *Reader) ReadAll(schema m.Schema) (*m.Frame, error) {
	f := m.NewFrame(schema)
	for len(r.buf) > 0 {
		rec := r.buf[0]
		r.buf = r.buf[1:]
		f.AppendNullRow()
		setRowFromMap(f, f.Rows()-1, rec)
	}
	for {
		var rec map[string]any
		if err := r.dec.Decode(&rec); err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}
		f.AppendNullRow()
		setRowFromMap(f, f.Rows()-1, rec)
	}
	return f, nil
}

func setRowFromMap(f *m.Frame, row int, rec map[string]any) {
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
			case string:
				if s := strings.TrimSpace(t); s != "" {
					if x, err := strconv.ParseFloat(s, 64); err == nil {
						_ = f.SetCell(row, cs.Name, x)
					}
				}
			}
		case m.KindInt:
			switch t := v.(type) {
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
				b, _ := json.Marshal(t)
				_ = f.SetCell(row, cs.Name, string(b))
			}
		}
	}
}

func inferKinds(sample []map[string]any, keys []string) []m.Kind {
	kinds := make([]m.Kind, len(keys))
	numre := regexp.MustCompile(`^[-+]?[0-9]*\.?[0-9]+([eE][-+]?[0-9]+)?$`)
	for i, k := range keys {
		nNum, nInt, nBool, nStr := 0, 0, 0, 0
		for _, rec := range sample {
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
			case bool:
				nBool++
			case string:
				s := strings.TrimSpace(t)
				if s == "" {
					continue
				}
				if numre.MatchString(s) {
					nNum++
					if !strings.ContainsAny(s, ".eE") {
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
	return kinds
}
