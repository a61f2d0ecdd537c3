package csvio

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	iox "github.com/mopbucket/mop/pkg/io/ioutils"
	m "github.com/mopbucket/mop/pkg/mop"
)

type ReaderOptions struct {
	HasHeader  bool
	Delimiter  rune // 0 = sniff, default ','
	SampleRows int  // for inference; default 100
	Strict     bool // if true, error on short/long records
}

type Reader struct {
	r   *csv.Reader
	opt ReaderOptions
	buf [][]string
	// repair/warning counters
	shortRecords int
	longRecords  int
}

// Open opens a CSV file (or stdin for "-") and returns a Reader.
func Open(path string, opt ReaderOptions) (*Reader, io.Closer, error) {
	rc, err := iox.OpenMaybeCompressed(path)
	if err != nil {
		return nil, nil, err
	}
	rr := csv.NewReader(rc)
	if opt.Delimiter == 0 {
		// sniffing re-reads the leading bytes, which only works for real
		// files; stdin would lose whatever the sniffer consumed
		if path != "-" && path != "" {
			if d, lazy, err := sniffDelimiterAndQuotes(path); err == nil && d != 0 {
				rr.Comma = d
				rr.LazyQuotes = lazy
			}
		}
	} else {
		rr.Comma = opt.Delimiter
	}
	rr.ReuseRecord = true
	return &Reader{r: rr, opt: opt}, rc, nil
}

// NewReaderFrom constructs a Reader from an arbitrary io.Reader.
func NewReaderFrom(r io.Reader, opt ReaderOptions) *Reader {
	rr := csv.NewReader(r)
	if opt.Delimiter != 0 {
		rr.Comma = opt.Delimiter
	}
	rr.ReuseRecord = true
	return &Reader{r: rr, opt: opt}
}

// InferSchema reads the header (if present) and samples rows to determine
// column kinds. Dirty extracts default to string columns: a column is only
// numeric when the sample says so by majority.
func (r *Reader) InferSchema() (m.Schema, []string, error) {
	var names []string
	rec, err := r.r.Read()
	if err != nil {
		return m.Schema{}, nil, err
	}
	if r.opt.HasHeader {
		names = make([]string, len(rec))
		for i := range rec {
			names[i] = strings.ToValidUTF8(rec[i], "?")
		}
		if len(names) > 0 {
			names[0] = strings.TrimPrefix(names[0], "\ufeff")
		}
		rec, err = r.r.Read()
		if err != nil {
			return m.Schema{}, nil, err
		}
	} else {
		names = make([]string, len(rec))
		for i := range names {
			names[i] = "col_" + strconv.Itoa(i)
		}
	}

	sample := [][]string{append([]string(nil), rec...)}
	max := r.opt.SampleRows
	if max <= 0 {
		max = 100
	}
	for i := 1; i < max; i++ {
		rr, err := r.r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return m.Schema{}, nil, err
		}
		sample = append(sample, append([]string(nil), rr...))
	}

	kinds := inferKinds(sample)
	schema := m.Schema{Columns: make([]m.ColumnSchema, len(names))}
	for i := range names {
		schema.Columns[i] = m.ColumnSchema{Name: names[i], Type: kinds[i], Nullable: true}
	}
	// retain sampled rows for the subsequent ReadAll
	r.buf = append(r.buf, sample...)
	return schema, names, nil
}

// ReadAll loads the remaining CSV into a Frame.
func (r *Reader) ReadAll(schema m.Schema) (*m.Frame, error) {
	f := m.NewFrame(schema)
	for len(r.buf) > 0 {
		rec := r.buf[0]
		r.buf = r.buf[1:]
		if err := r.appendRecord(f, schema, rec); err != nil {
			return nil, err
		}
	}
	for {
		rec, err := r.r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if err := r.appendRecord(f, schema, rec); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func (r *Reader) appendRecord(f *m.Frame, schema m.Schema, rec []string) error {
	f.AppendNullRow()
	row := f.Rows() - 1
	if len(rec) > len(schema.Columns) {
		r.longRecords++
		if r.opt.Strict {
			return fmt.Errorf("csv long record: need %d fields, got %d", len(schema.Columns), len(rec))
		}
	}
	for i, cs := range schema.Columns {
		if i >= len(rec) {
			r.shortRecords++
			if r.opt.Strict {
				return fmt.Errorf("csv short record: need %d fields, got %d", len(schema.Columns), len(rec))
			}
			continue
		}
		val := strings.ToValidUTF8(strings.TrimSpace(rec[i]), "?")
		if val == "" {
			continue
		}
		switch cs.Type {
		case m.KindFloat:
			if x, err := strconv.ParseFloat(val, 64); err == nil {
				_ = f.SetCell(row, cs.Name, x)
			}
		case m.KindInt:
			if x, err := strconv.ParseInt(val, 10, 64); err == nil {
				_ = f.SetCell(row, cs.Name, x)
			}
		case m.KindBool:
			if x, err := strconv.ParseBool(strings.ToLower(val)); err == nil {
				_ = f.SetCell(row, cs.Name, x)
			}
		default:
			_ = f.SetCell(row, cs.Name, val)
		}
	}
	return nil
}

func inferKinds(rows [][]string) []m.Kind {
	if len(rows) == 0 {
		return nil
	}
	ncol := len(rows[0])
	kinds := make([]m.Kind, ncol)
	numre := regexp.MustCompile(`^[-+]?[0-9]*\.?[0-9]+([eE][-+]?[0-9]+)?$`)
	for c := 0; c < ncol; c++ {
		num, integer, str := 0, 0, 0
		for _, row := range rows {
			if c >= len(row) {
				continue
			}
			v := strings.TrimSpace(row[c])
			if v == "" {
				continue
			}
			if numre.MatchString(v) {
				num++
				if !strings.ContainsAny(v, ".eE") {
					integer++
				}
			} else {
				lv := strings.ToLower(v)
				if lv == "true" || lv == "false" {
					continue
				}
				str++
			}
		}
		if num > str {
			if integer == num {
				kinds[c] = m.KindInt
			} else {
				kinds[c] = m.KindFloat
			}
		} else {
			kinds[c] = m.KindString
		}
	}
	return kinds
}

func sniffDelimiterAndQuotes(path string) (rune, bool, error) {
	rc, err := iox.OpenMaybeCompressed(path)
	if err != nil {
		return 0, false, err
	}
	defer func() { _ = rc.Close() }()
	br := bufio.NewReader(rc)
	sample, _ := br.Peek(4096)
	if len(sample) == 0 {
		return ',', false, nil
	}
	candidates := []byte{',', '\t', ';', '|'}
	best := byte(',')
	bestCount := -1
	for _, c := range candidates {
		cnt := 0
		for _, b := range sample {
			if b == c {
				cnt++
			}
		}
		if cnt > bestCount {
			bestCount = cnt
			best = c
		}
	}
	quoteCount := 0
	for _, b := range sample {
		if b == '"' {
			quoteCount++
		}
	}
	lazy := quoteCount > 0
	return rune(best), lazy, nil
}

// Warnings summarizes record-length repairs applied while reading.
func (r *Reader) Warnings() string {
	if r.shortRecords == 0 && r.longRecords == 0 {
		return ""
	}
	var parts []string
	if r.shortRecords > 0 {
		parts = append(parts, fmt.Sprintf("short_records=%d", r.shortRecords))
	}
	if r.longRecords > 0 {
		parts = append(parts, fmt.Sprintf("long_records=%d", r.longRecords))
	}
	return strings.Join(parts, ", ")
}
