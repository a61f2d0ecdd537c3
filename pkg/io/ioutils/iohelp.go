package ioutils

import (
	"bufio"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
)

// OpenMaybeCompressed opens a file path or stdin ("-") for reading,
// transparently unwrapping gzip detected by extension or magic bytes.
func OpenMaybeCompressed(path string) (io.ReadCloser, error) {
	if path == "-" || path == "" {
		br := bufio.NewReader(os.Stdin)
		if isGzip(br) {
			zr, err := gzip.NewReader(br)
			if err != nil {
				return nil, err
			}
			return zr, nil
		}
		return io.NopCloser(br), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if filepath.Ext(path) == ".gz" {
		zr, err := gzip.NewReader(f)
		if err != nil {
			_ = f.Close()
			return nil, err
		}
		return &compoundCloser{Reader: zr, close: func() error { _ = zr.Close(); return f.Close() }}, nil
	}
	br := bufio.NewReader(f)
	if isGzip(br) {
		zr, err := gzip.NewReader(br)
		if err != nil {
			_ = f.Close()
			return nil, err
		}
		return &compoundCloser{Reader: zr, close: func() error { _ = zr.Close(); return f.Close() }}, nil
	}
	return &compoundCloser{Reader: br, close: f.Close}, nil
}

func isGzip(br *bufio.Reader) bool {
	b, err := br.Peek(2)
	return err == nil && len(b) == 2 && b[0] == 0x1f && b[1] == 0x8b
}

// CreateMaybeCompressed creates a file (or wraps stdout for "-"),
// gzip-compressing when the path ends in .gz.
func CreateMaybeCompressed(path string) (io.WriteCloser, error) {
	if path == "-" || path == "" {
		return &flushCloser{Writer: bufio.NewWriter(os.Stdout)}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	if filepath.Ext(path) == ".gz" {
		zw := gzip.NewWriter(f)
		return &compoundWriteCloser{Writer: zw, close: func() error { _ = zw.Close(); return f.Close() }}, nil
	}
	return &compoundWriteCloser{Writer: bufio.NewWriter(f), close: f.Close}, nil
}

type compoundCloser struct {
	io.Reader
	close func() error
}

func (c *compoundCloser) Close() error { return c.close() }

type compoundWriteCloser struct {
	io.Writer
	close func() error
}

func (c *compoundWriteCloser) Close() error {
	if bw, ok := c.Writer.(*bufio.Writer); ok {
		_ = bw.Flush()
	}
	return c.close()
}

type flushCloser struct{ io.Writer }

func (c *flushCloser) Close() error {
	if bw, ok := c.Writer.(*bufio.Writer); ok {
		return bw.Flush()
	}
	return nil
}
