package mop

import (
	"context"
	"io"
	"testing"
)

// halver drops the second half of the frame's rows.
type halver struct{}

func (halver) Name() string { return "halver" }
func (halver) Apply(ctx context.Context, f *Frame) (*Frame, error) {
	n := f.Rows()
	return f.Select(func(row int) bool { return row < n/2 }), nil
}

// noop passes the frame through.
type noop struct{}

func (noop) Name() string { return "noop" }
func (noop) Apply(ctx context.Context, f *Frame) (*Frame, error) { return f, nil }

func frameOfRows(n int) *Frame {
	f := NewFrame(Schema{Columns: []ColumnSchema{{Name: "v", Type: KindInt, Nullable: true}}})
	for i := 0; i < n; i++ {
		f.AppendNullRow()
		_ = f.SetCell(i, "v", int64(i))
	}
	return f
}

func TestPipelineReportCountsDrops(t *testing.T) {
	p := NewPipeline().Add(noop{}).Add(halver{}).Add(noop{})
	out, rep, err := p.Run(context.Background(), frameOfRows(10))
	if err != nil {
		t.Fatal(err)
	}
	if out.Rows() != 5 {
		t.Fatalf("expected 5 rows out, got %d", out.Rows())
	}
	if got := rep.RowsDropped(); got != 5 {
		t.Fatalf("expected 5 dropped, got %d", got)
	}
	if len(rep.Stages) != 3 {
		t.Fatalf("expected 3 stage entries, got %d", len(rep.Stages))
	}
	if rep.Stages[1].Stage != "halver" || rep.Stages[1].RowsIn != 10 || rep.Stages[1].RowsOut != 5 {
		t.Fatalf("unexpected halver stats: %+v", rep.Stages[1])
	}
}

type sliceSource struct {
	frames []*Frame
}

func (s *sliceSource) Next() (*Frame, error) {
	if len(s.frames) == 0 {
		return nil, io.EOF
	}
	f := s.frames[0]
	s.frames = s.frames[1:]
	return f, nil
}

type collectSink struct {
	rows   int
	closed bool
}

func (s *collectSink) Write(f *Frame) error { s.rows += f.Rows(); return nil }
func (s *collectSink) Close() error         { s.closed = true; return nil }

func TestRunStreamMergesChunkReports(t *testing.T) {
	p := NewPipeline().Add(halver{})
	src := &sliceSource{frames: []*Frame{frameOfRows(10), frameOfRows(6)}}
	sink := &collectSink{}
	rep, err := RunStream(context.Background(), p, src, sink)
	if err != nil {
		t.Fatal(err)
	}
	if sink.rows != 8 {
		t.Fatalf("expected 8 rows written, got %d", sink.rows)
	}
	if got := rep.RowsDropped(); got != 8 {
		t.Fatalf("expected 8 dropped across chunks, got %d", got)
	}
	if !sink.closed {
		t.Fatal("sink not closed")
	}
}
