package mop

import (
	"context"
	"io"
)

// ChunkSource yields frames in chunks until io.EOF.
type ChunkSource interface {
	Next() (*Frame, error)
}

// ChunkSink consumes frames, typically writing them out.
type ChunkSink interface {
	Write(*Frame) error
	Close() error
}

// RunStream pulls chunks from src, applies the pipeline, and writes to sink.
// Per-chunk reports are merged so dropped-row totals cover the whole stream.
func RunStream(ctx context.Context, p *Pipeline, src ChunkSource, sink ChunkSink) (Report, error) {
	var rep Report
	defer func() { _ = sink.Close() }()
	for {
		f, err := src.Next()
		if err == io.EOF {
			return rep, nil
		}
		if err != nil {
			return rep, err
		}
		out, chunkRep, err := p.Run(ctx, f)
		if err != nil {
			return rep, err
		}
		rep.merge(chunkRep)
		if err := sink.Write(out); err != nil {
			return rep, err
		}
	}
}
