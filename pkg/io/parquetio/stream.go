package parquetio

import (
	"fmt"
	"os"

	parquet "github.com/segmentio/parquet-go"

	m "github.com/mopbucket/mop/pkg/mop"
)

// StreamReader reads Parquet rows in chunks as Frames.
type StreamReader struct {
	file      *os.File
	reader    *parquet.GenericReader[map[string]any]
	schema    m.Schema
	chunkSize int
	buf       []map[string]any
}

func NewStreamReader(path string, chunkSize int, sampleRows int) (*StreamReader, error) {
	rd, err := OpenReader(path, sampleRows)
	if err != nil {
		return nil, err
	}
	schema := rd.Schema()
	f := rd.file
	if err := rd.reader.Close(); err != nil {
		_ = f.Close()
		return nil, err
	}
	if _, err := f.Seek(0, 0); err != nil {
		_ = f.Close()
		return nil, err
	}
	if chunkSize <= 0 {
		chunkSize = 8192
	}
	return &StreamReader{
		file:      f,
		reader:    parquet.NewGenericReader[map[string]any](f),
		schema:    schema,
		chunkSize: chunkSize,
		buf:       make([]map[string]any, chunkSize),
	}, nil
}

func (s *StreamReader) Close() error {
	_ = s.reader.Close()
	return s.file.Close()
}

func (s *StreamReader) Schema() m.Schema { return s.schema }

func (s *StreamReader) Next() (*m.Frame, error) {
	n, err := s.reader.Read(s.buf)
	if n == 0 && err != nil {
		return nil, err
	}
	f := m.NewFrame(s.schema)
	for i := 0; i < n; i++ {
		f.AppendNullRow()
		setRow(f, f.Rows()-1, s.buf[i])
	}
	return f, nil
}

// StreamWriter writes Frames to a Parquet file incrementally.
type StreamWriter struct {
	file   *os.File
	writer *parquet.GenericWriter[map[string]any]
}

func NewStreamWriter(path string) (*StreamWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &StreamWriter{file: f, writer: parquet.NewGenericWriter[map[string]any](f)}, nil
}

func (s *StreamWriter) Write(fr *m.Frame) error {
	for r := 0; r < fr.Rows(); r++ {
		rec := make(map[string]any, len(fr.Schema().Columns))
		for _, cs := range fr.Schema().Columns {
			col, _ := fr.ColumnByName(cs.Name)
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
					rec[cs.Name] = v.Format(timeLayout)
				}
			}
		}
		if _, err := s.writer.Write([]map[string]any{rec}); err != nil {
			return fmt.Errorf("parquet stream write: %w", err)
		}
	}
	return nil
}

func (s *StreamWriter) Close() error {
	if err := s.writer.Close(); err != nil {
		_ = s.file.Close()
		return err
	}
	return s.file.Close()
}
