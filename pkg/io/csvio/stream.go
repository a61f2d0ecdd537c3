package csvio

import (
	"encoding/csv"
	"io"
	"os"

	m "github.com/mopbucket/mop/pkg/mop"
)

// StreamReader reads CSV into Frame chunks of up to chunkSize rows.
type StreamReader struct {
	r         *Reader
	schema    m.Schema
	chunkSize int
}

// NewStreamReader opens the file, infers the schema, and returns a
// StreamReader plus the closer for the underlying file.
func NewStreamReader(path string, opt ReaderOptions, chunkSize int) (*StreamReader, io.Closer, error) {
	rr, closer, err := Open(path, opt)
	if err != nil {
		return nil, nil, err
	}
	schema, _, err := rr.InferSchema()
	if err != nil {
		_ = closer.Close()
		return nil, nil, err
	}
	return &StreamReader{r: rr, schema: schema, chunkSize: chunkSize}, closer, nil
}

func (s *StreamReader) Schema() m.Schema { return s.schema }

// Next returns the next chunk frame or io.EOF when complete.
func (s *StreamReader) Next() (*m.Frame, error) {
	if s.chunkSize <= 0 {
		s.chunkSize = 1024
	}
	f := m.NewFrame(s.schema)
	for len(s.r.buf) > 0 && f.Rows() < s.chunkSize {
		rec := s.r.buf[0]
		s.r.buf = s.r.buf[1:]
		if err := s.r.appendRecord(f, s.schema, rec); err != nil {
			return nil, err
		}
	}
	for f.Rows() < s.chunkSize {
		rec, err := s.r.r.Read()
		if err == io.EOF {
			if f.Rows() == 0 {
				return nil, io.EOF
			}
			return f, nil
		}
		if err != nil {
			return nil, err
		}
		if err := s.r.appendRecord(f, s.schema, rec); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// StreamWriter appends frames to a CSV file with a header written once.
// The header reflects the first frame written, so schema-changing
// pipelines work without declaring an output schema up front.
type StreamWriter struct {
	w           *csv.Writer
	file        *os.File
	wroteHeader bool
}

func NewStreamWriter(path string, opt WriterOptions) (*StreamWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	w := csv.NewWriter(f)
	if opt.Delimiter != 0 {
		w.Comma = opt.Delimiter
	}
	return &StreamWriter{w: w, file: f}, nil
}

func (s *StreamWriter) Write(fr *m.Frame) error {
	if !s.wroteHeader {
		hdr := make([]string, len(fr.Schema().Columns))
		for i, cs := range fr.Schema().Columns {
			hdr[i] = cs.Name
		}
		if err := s.w.Write(hdr); err != nil {
			return err
		}
		s.wroteHeader = true
	}
	for r := 0; r < fr.Rows(); r++ {
		if err := s.w.Write(formatRow(fr, r)); err != nil {
			return err
		}
	}
	s.w.Flush()
	return s.w.Error()
}

func (s *StreamWriter) Close() error {
	s.w.Flush()
	if err := s.w.Error(); err != nil {
		_ = s.file.Close()
		return err
	}
	return s.file.Close()
}
