package jsonlio

import (
	"bufio"
	"encoding/json"
	"io"
	"os"

	m "github.com/mopbucket/mop/pkg/mop"
)

type StreamReader struct {
	dec       *json.Decoder
	schema    m.Schema
	chunkSize int
}

// NewStreamReader infers the schema from a leading sample, then rewinds
// and streams the whole file in chunks.
func NewStreamReader(path string, chunkSize int) (*StreamReader, *os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	r := &Reader{dec: json.NewDecoder(bufio.NewReader(f))}
	schema, err := r.InferSchema()
	if err != nil {
		_ = f.Close()
		return nil, nil, err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		_ = f.Close()
		return nil, nil, err
	}
	dec := json.NewDecoder(bufio.NewReader(f))
	return &StreamReader{dec: dec, schema: schema, chunkSize: chunkSize}, f, nil
}

func (s *StreamReader) Schema() m.Schema { return s.schema }

func (s *StreamReader) Next() (*m.Frame, error) {
	if s.chunkSize <= 0 {
		s.chunkSize = 1024
	}
	f := m.NewFrame(s.schema)
	for f.Rows() < s.chunkSize {
		var rec map[string]any
		if err := s.dec.Decode(&rec); err != nil {
			if err == io.EOF {
				if f.Rows() == 0 {
					return nil, io.EOF
				}
				return f, nil
			}
			return nil, err
		}
		f.AppendNullRow()
		setRowFromMap(f, f.Rows()-1, rec)
	}
	return f, nil
}

type StreamWriter struct {
	enc  *json.Encoder
	w    *bufio.Writer
	file *os.File
}

func NewStreamWriter(path string) (*StreamWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	w := bufio.NewWriter(f)
	return &StreamWriter{enc: json.NewEncoder(w), w: w, file: f}, nil
}

func (s *StreamWriter) Write(f *m.Frame) error {
	for r := 0; r < f.Rows(); r++ {
		if err := s.enc.Encode(rowMap(f, r)); err != nil {
			return err
		}
	}
	return s.w.Flush()
}

func (s *StreamWriter) Close() error {
	if err := s.w.Flush(); err != nil {
		_ = s.file.Close()
		return err
	}
	return s.file.Close()
}
