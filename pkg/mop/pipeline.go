package mop

import "context"

// Transform is a mutation or validation applied to a Frame. Transforms that
// reject rows return a smaller Frame; the Pipeline records the difference.
type Transform interface {
	Name() string
	Apply(ctx context.Context, f *Frame) (*Frame, error)
}

// StageStats records the row counts around one pipeline stage.
type StageStats struct {
	Stage   string
	RowsIn  int
	RowsOut int
}

// Report summarizes a pipeline run. Dropped rows are surfaced here rather
// than logged: callers decide what to do with the counts.
type Report struct {
	Stages []StageStats
}

// RowsDropped returns the total number of rows rejected across all stages.
func (r Report) RowsDropped() int {
	var n int
	for _, s := range r.Stages {
		if s.RowsIn > s.RowsOut {
			n += s.RowsIn - s.RowsOut
		}
	}
	return n
}

func (r *Report) merge(other Report) {
	if len(r.Stages) == 0 {
		r.Stages = append(r.Stages, other.Stages...)
		return
	}
	for i := range other.Stages {
		r.Stages[i].RowsIn += other.Stages[i].RowsIn
		r.Stages[i].RowsOut += other.Stages[i].RowsOut
	}
}

// Pipeline composes a sequence of Transforms.
type Pipeline struct {
	steps []Transform
}

func NewPipeline() *Pipeline { return &Pipeline{} }

func (p *Pipeline) Add(t Transform) *Pipeline {
	p.steps = append(p.steps, t)
	return p
}

// Run applies each stage in order. Stage errors abort the run; a stage that
// fails on a single cell is expected to null the cell instead of erroring.
func (p *Pipeline) Run(ctx context.Context, f *Frame) (*Frame, Report, error) {
	var rep Report
	cur := f
	for _, t := range p.steps {
		in := cur.Rows()
		var err error
		cur, err = t.Apply(ctx, cur)
		if err != nil {
			return nil, rep, err
		}
		rep.Stages = append(rep.Stages, StageStats{Stage: t.Name(), RowsIn: in, RowsOut: cur.Rows()})
	}
	return cur, rep, nil
}
