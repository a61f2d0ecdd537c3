package dates

import (
	"context"
	"fmt"
	"time"

	m "github.com/mopbucket/mop/pkg/mop"
)

// Combine folds separate year/month/day/timestamp string columns into one
// time column named Out, then drops the four sources. Rows whose parts do
// not assemble into a valid datetime get a null.
type Combine struct {
	Year, Month, Day, Timestamp string
	Out                         string
}

func (t *Combine) Name() string { return "combine_datetime" }

func (t *Combine) Apply(ctx context.Context, f *m.Frame) (*m.Frame, error) {
	year, err := stringColumn(f, t.Year)
	if err != nil {
		return nil, err
	}
	month, err := stringColumn(f, t.Month)
	if err != nil {
		return nil, err
	}
	day, err := stringColumn(f, t.Day)
	if err != nil {
		return nil, err
	}
	stamp, err := stringColumn(f, t.Timestamp)
	if err != nil {
		return nil, err
	}

	out := m.NewTimeColumn(t.Out, 0)
	for i := 0; i < f.Rows(); i++ {
		y, yok := year.Get(i)
		mo, mok := month.Get(i)
		d, dok := day.Get(i)
		ts, tok := stamp.Get(i)
		if !yok || !mok || !dok || !tok {
			out.AppendNull()
			continue
		}
		// month and day arrive without zero padding
		v, err := time.Parse("2006-1-2 15:04:05", y+"-"+mo+"-"+d+" "+ts)
		if err != nil {
			out.AppendNull()
			continue
		}
		out.Append(v)
	}
	if err := f.AddColumn(m.ColumnSchema{Name: t.Out, Type: m.KindTime, Nullable: true}, out); err != nil {
		return nil, err
	}
	for _, name := range []string{t.Timestamp, t.Day, t.Month, t.Year} {
		f.DropColumn(name)
	}
	return f, nil
}

func stringColumn(f *m.Frame, name string) (*m.StringColumn, error) {
	col, ok := f.ColumnByName(name)
	if !ok {
		return nil, fmt.Errorf("combine_datetime: missing column %s", name)
	}
	c, ok := col.(*m.StringColumn)
	if !ok {
		return nil, fmt.Errorf("combine_datetime: column %s is not a string column", name)
	}
	return c, nil
}
