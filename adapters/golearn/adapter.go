// Package golearn converts between mop's Frame and
// github.com/sjwhitworth/golearn/base DenseInstances, so cleaned tables
// can feed golearn models directly.
package golearn

import (
	"github.com/sjwhitworth/golearn/base"

	m "github.com/mopbucket/mop/pkg/mop"
)

const timeLayout = "2006-01-02T15:04:05Z07:00"

// ToDenseInstances converts a cleaned Frame into golearn DenseInstances.
// Numeric columns map to float attributes; strings and times become
// categorical. The last attribute is registered as the class attribute.
func ToDenseInstances(f *m.Frame) (*base.DenseInstances, error) {
	attrs := make([]base.Attribute, len(f.Schema().Columns))
	for i, cs := range f.Schema().Columns {
		switch cs.Type {
		case m.KindFloat, m.KindInt:
			attrs[i] = base.NewFloatAttribute(cs.Name)
		default:
			ca := new(base.CategoricalAttribute)
			ca.SetName(cs.Name)
			attrs[i] = ca
		}
	}
	inst := base.NewDenseInstances()
	specs := make([]base.AttributeSpec, len(attrs))
	for i, a := range attrs {
		specs[i] = inst.AddAttribute(a)
	}
	if err := inst.Extend(f.Rows()); err != nil {
		return nil, err
	}

	for r := 0; r < f.Rows(); r++ {
		for c, cs := range f.Schema().Columns {
			col, _ := f.ColumnByName(cs.Name)
			switch cs.Type {
			case m.KindFloat:
				if v, ok := col.(*m.FloatColumn).Get(r); ok {
					inst.Set(specs[c], r, base.PackFloatToBytes(v))
				}
			case m.KindInt:
				if v, ok := col.(*m.IntColumn).Get(r); ok {
					inst.Set(specs[c], r, base.PackFloatToBytes(float64(v)))
				}
			case m.KindTime:
				if v, ok := col.(*m.TimeColumn).Get(r); ok {
					inst.Set(specs[c], r, base.Attribute.GetSysValFromString(attrs[c], v.Format(timeLayout)))
				}
			default:
				if v, ok := col.(*m.StringColumn).Get(r); ok {
					inst.Set(specs[c], r, base.Attribute.GetSysValFromString(attrs[c], v))
				}
			}
		}
	}
	if len(attrs) > 0 {
		if err := inst.AddClassAttribute(attrs[len(attrs)-1]); err != nil {
			return nil, err
		}
	}
	return inst, nil
}

// FromDenseInstances converts golearn DenseInstances back into a Frame.
func FromDenseInstances(inst *base.DenseInstances) (*m.Frame, error) {
	attrs := inst.AllAttributes()
	schema := m.Schema{Columns: make([]m.ColumnSchema, len(attrs))}
	specs := make([]base.AttributeSpec, len(attrs))
	for i, a := range attrs {
		k := m.KindString
		if a.GetType() == base.Float64Type {
			k = m.KindFloat
		}
		schema.Columns[i] = m.ColumnSchema{Name: a.GetName(), Type: k, Nullable: true}
		spec, err := inst.GetAttribute(a)
		if err != nil {
			return nil, err
		}
		specs[i] = spec
	}
	f := m.NewFrame(schema)
	_, nrows := inst.Size()
	for r := 0; r < nrows; r++ {
		f.AppendNullRow()
		for c, cs := range schema.Columns {
			switch cs.Type {
			case m.KindFloat:
				v := base.UnpackBytesToFloat(inst.Get(specs[c], r))
				_ = f.SetCell(r, cs.Name, v)
			default:
				v := base.Attribute.GetStringFromSysVal(specs[c].GetAttribute(), inst.Get(specs[c], r))
				_ = f.SetCell(r, cs.Name, v)
			}
		}
	}
	return f, nil
}
