package mop

import (
	"fmt"
	"time"
)

// Schema describes the logical shape of a dataset.
type Schema struct {
	Columns []ColumnSchema
}

type ColumnSchema struct {
	Name     string
	Type     Kind
	Nullable bool
}

// HasColumn reports whether the schema contains a column with the given name.
func (s Schema) HasColumn(name string) bool {
	for _, cs := range s.Columns {
		if cs.Name == name {
			return true
		}
	}
	return false
}

// Kind enumerates supported logical types.
type Kind int

const (
	KindInvalid Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindTime
)

// Column is a typed, nullable column abstraction. The null mask is the
// canonical missing marker: a null string cell is distinct from "".
type Column interface {
	Name() string
	Kind() Kind
	Len() int
	IsNull(i int) bool
	SetNull(i int)
}

type BoolColumn struct {
	name  string
	data  []bool
	nulls []bool
}

func NewBoolColumn(name string, n int) *BoolColumn {
	return &BoolColumn{name: name, data: make([]bool, n), nulls: make([]bool, n)}
}
func (c *BoolColumn) Name() string           { return c.name }
func (c *BoolColumn) Kind() Kind             { return KindBool }
func (c *BoolColumn) Len() int               { return len(c.data) }
func (c *BoolColumn) IsNull(i int) bool      { return c.nulls[i] }
func (c *BoolColumn) SetNull(i int)          { c.nulls[i] = true }
func (c *BoolColumn) Get(i int) (bool, bool) { return c.data[i], !c.nulls[i] }
func (c *BoolColumn) Set(i int, v bool)      { c.data[i] = v; c.nulls[i] = false }
func (c *BoolColumn) AppendNull()            { c.data = append(c.data, false); c.nulls = append(c.nulls, true) }
func (c *BoolColumn) Append(v bool)          { c.data = append(c.data, v); c.nulls = append(c.nulls, false) }

type IntColumn struct {
	name  string
	data  []int64
	nulls []bool
}

func NewIntColumn(name string, n int) *IntColumn {
	return &IntColumn{name: name, data: make([]int64, n), nulls: make([]bool, n)}
}
func (c *IntColumn) Name() string            { return c.name }
func (c *IntColumn) Kind() Kind              { return KindInt }
func (c *IntColumn) Len() int                { return len(c.data) }
func (c *IntColumn) IsNull(i int) bool       { return c.nulls[i] }
func (c *IntColumn) SetNull(i int)           { c.nulls[i] = true }
func (c *IntColumn) Get(i int) (int64, bool) { return c.data[i], !c.nulls[i] }
func (c *IntColumn) Set(i int, v int64)      { c.data[i] = v; c.nulls[i] = false }
func (c *IntColumn) AppendNull()             { c.data = append(c.data, 0); c.nulls = append(c.nulls, true) }
func (c *IntColumn) Append(v int64)          { c.data = append(c.data, v); c.nulls = append(c.nulls, false) }

type FloatColumn struct {
	name  string
	data  []float64
	nulls []bool
}

func NewFloatColumn(name string, n int) *FloatColumn {
	return &FloatColumn{name: name, data: make([]float64, n), nulls: make([]bool, n)}
}
func (c *FloatColumn) Name() string              { return c.name }
func (c *FloatColumn) Kind() Kind                { return KindFloat }
func (c *FloatColumn) Len() int                  { return len(c.data) }
func (c *FloatColumn) IsNull(i int) bool         { return c.nulls[i] }
func (c *FloatColumn) SetNull(i int)             { c.nulls[i] = true }
func (c *FloatColumn) Get(i int) (float64, bool) { return c.data[i], !c.nulls[i] }
func (c *FloatColumn) Set(i int, v float64)      { c.data[i] = v; c.nulls[i] = false }
func (c *FloatColumn) AppendNull()               { c.data = append(c.data, 0); c.nulls = append(c.nulls, true) }
func (c *FloatColumn) Append(v float64)          { c.data = append(c.data, v); c.nulls = append(c.nulls, false) }

type StringColumn struct {
	name  string
	data  []string
	nulls []bool
}

func NewStringColumn(name string, n int) *StringColumn {
	return &StringColumn{name: name, data: make([]string, n), nulls: make([]bool, n)}
}
func (c *StringColumn) Name() string             { return c.name }
func (c *StringColumn) Kind() Kind               { return KindString }
func (c *StringColumn) Len() int                 { return len(c.data) }
func (c *StringColumn) IsNull(i int) bool        { return c.nulls[i] }
func (c *StringColumn) SetNull(i int)            { c.nulls[i] = true }
func (c *StringColumn) Get(i int) (string, bool) { return c.data[i], !c.nulls[i] }
func (c *StringColumn) Set(i int, v string)      { c.data[i] = v; c.nulls[i] = false }
func (c *StringColumn) AppendNull()              { c.data = append(c.data, ""); c.nulls = append(c.nulls, true) }
func (c *StringColumn) Append(v string)          { c.data = append(c.data, v); c.nulls = append(c.nulls, false) }

type TimeColumn struct {
	name  string
	data  []time.Time
	nulls []bool
}

func NewTimeColumn(name string, n int) *TimeColumn {
	return &TimeColumn{name: name, data: make([]time.Time, n), nulls: make([]bool, n)}
}
func (c *TimeColumn) Name() string                { return c.name }
func (c *TimeColumn) Kind() Kind                  { return KindTime }
func (c *TimeColumn) Len() int                    { return len(c.data) }
func (c *TimeColumn) IsNull(i int) bool           { return c.nulls[i] }
func (c *TimeColumn) SetNull(i int)               { c.nulls[i] = true }
func (c *TimeColumn) Get(i int) (time.Time, bool) { return c.data[i], !c.nulls[i] }
func (c *TimeColumn) Set(i int, v time.Time)      { c.data[i] = v; c.nulls[i] = false }
func (c *TimeColumn) AppendNull() {
	c.data = append(c.data, time.Time{})
	c.nulls = append(c.nulls, true)
}
func (c *TimeColumn) Append(v time.Time) {
	c.data = append(c.data, v)
	c.nulls = append(c.nulls, false)
}

func newColumn(cs ColumnSchema, n int) Column {
	switch cs.Type {
	case KindBool:
		return NewBoolColumn(cs.Name, n)
	case KindInt:
		return NewIntColumn(cs.Name, n)
	case KindFloat:
		return NewFloatColumn(cs.Name, n)
	case KindString:
		return NewStringColumn(cs.Name, n)
	case KindTime:
		return NewTimeColumn(cs.Name, n)
	default:
		panic("invalid column kind")
	}
}

// Frame is a columnar container for tabular data. Rows are aligned by
// position across columns; all columns always have equal length.
type Frame struct {
	schema Schema
	cols   []Column
	index  map[string]int // name -> col index
	nrows  int
}

func NewFrame(s Schema) *Frame {
	f := &Frame{schema: s, cols: make([]Column, len(s.Columns)), index: make(map[string]int)}
	for i, cs := range s.Columns {
		f.cols[i] = newColumn(cs, 0)
		f.index[cs.Name] = i
	}
	return f
}

func (f *Frame) Schema() Schema { return f.schema }
func (f *Frame) Rows() int      { return f.nrows }
func (f *Frame) Cols() int      { return len(f.cols) }

func (f *Frame) ColumnByName(name string) (Column, bool) {
	i, ok := f.index[name]
	if !ok {
		return nil, false
	}
	return f.cols[i], true
}

// AppendNullRow appends a row with all-null values.
func (f *Frame) AppendNullRow() {
	for _, c := range f.cols {
		switch col := c.(type) {
		case *BoolColumn:
			col.AppendNull()
		case *IntColumn:
			col.AppendNull()
		case *FloatColumn:
			col.AppendNull()
		case *StringColumn:
			col.AppendNull()
		case *TimeColumn:
			col.AppendNull()
		default:
			panic("unknown column type")
		}
	}
	f.nrows++
}

// SetCell sets a single cell value by name (row must exist).
func (f *Frame) SetCell(row int, name string, v any) error {
	i, ok := f.index[name]
	if !ok {
		return fmt.Errorf("unknown column: %s", name)
	}
	c := f.cols[i]
	switch col := c.(type) {
	case *BoolColumn:
		if v == nil {
			col.SetNull(row)
			return nil
		}
		b, ok := v.(bool)
		if !ok {
			return fmt.Errorf("column %s expects bool", name)
		}
		col.Set(row, b)
	case *IntColumn:
		if v == nil {
			col.SetNull(row)
			return nil
		}
		switch t := v.(type) {
		case int:
			col.Set(row, int64(t))
		case int64:
			col.Set(row, t)
		case float64:
			col.Set(row, int64(t))
		default:
			return fmt.Errorf("column %s expects int/int64", name)
		}
	case *FloatColumn:
		if v == nil {
			col.SetNull(row)
			return nil
		}
		switch t := v.(type) {
		case float32:
			col.Set(row, float64(t))
		case float64:
			col.Set(row, t)
		case int:
			col.Set(row, float64(t))
		case int64:
			col.Set(row, float64(t))
		default:
			return fmt.Errorf("column %s expects float64", name)
		}
	case *StringColumn:
		if v == nil {
			col.SetNull(row)
			return nil
		}
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("column %s expects string", name)
		}
		col.Set(row, s)
	case *TimeColumn:
		if v == nil {
			col.SetNull(row)
			return nil
		}
		t, ok := v.(time.Time)
		if !ok {
			return fmt.Errorf("column %s expects time.Time", name)
		}
		col.Set(row, t)
	default:
		return fmt.Errorf("unknown column kind")
	}
	return nil
}

// DropColumn removes the named column, preserving the order of the rest.
// Unknown names are ignored, matching the tolerant drop semantics of the
// upstream extracts (junk columns are not always present).
func (f *Frame) DropColumn(name string) {
	i, ok := f.index[name]
	if !ok {
		return
	}
	f.cols = append(f.cols[:i], f.cols[i+1:]...)
	f.schema.Columns = append(f.schema.Columns[:i], f.schema.Columns[i+1:]...)
	delete(f.index, name)
	for n, j := range f.index {
		if j > i {
			f.index[n] = j - 1
		}
	}
}

// RenameColumn renames a column in place.
func (f *Frame) RenameColumn(from, to string) error {
	i, ok := f.index[from]
	if !ok {
		return fmt.Errorf("unknown column: %s", from)
	}
	if _, exists := f.index[to]; exists {
		return fmt.Errorf("column already exists: %s", to)
	}
	cs := f.schema.Columns[i]
	cs.Name = to
	f.schema.Columns[i] = cs
	f.cols[i] = renamed(f.cols[i], to)
	delete(f.index, from)
	f.index[to] = i
	return nil
}

func renamed(c Column, name string) Column {
	switch col := c.(type) {
	case *BoolColumn:
		col.name = name
	case *IntColumn:
		col.name = name
	case *FloatColumn:
		col.name = name
	case *StringColumn:
		col.name = name
	case *TimeColumn:
		col.name = name
	}
	return c
}

// ReplaceColumn swaps the named column for col, keeping its position. The
// replacement must carry exactly Rows() values. Used when a cleaning stage
// changes a column's kind (string dates -> time, string prices -> float).
func (f *Frame) ReplaceColumn(name string, col Column, kind Kind) error {
	i, ok := f.index[name]
	if !ok {
		return fmt.Errorf("unknown column: %s", name)
	}
	if col.Len() != f.nrows {
		return fmt.Errorf("column %s length %d does not match %d rows", name, col.Len(), f.nrows)
	}
	f.cols[i] = renamed(col, name)
	f.schema.Columns[i].Type = kind
	return nil
}

// AddColumn appends a derived column to the schema. The column must carry
// exactly Rows() values.
func (f *Frame) AddColumn(cs ColumnSchema, col Column) error {
	if _, exists := f.index[cs.Name]; exists {
		return fmt.Errorf("column already exists: %s", cs.Name)
	}
	if col.Len() != f.nrows {
		return fmt.Errorf("column %s length %d does not match %d rows", cs.Name, col.Len(), f.nrows)
	}
	f.schema.Columns = append(f.schema.Columns, cs)
	f.cols = append(f.cols, renamed(col, cs.Name))
	f.index[cs.Name] = len(f.cols) - 1
	return nil
}

// Select builds a new Frame containing only the rows for which keep returns
// true, in input order. Surviving rows are copied, never mutated.
func (f *Frame) Select(keep func(row int) bool) *Frame {
	out := NewFrame(Schema{Columns: append([]ColumnSchema(nil), f.schema.Columns...)})
	for r := 0; r < f.nrows; r++ {
		if !keep(r) {
			continue
		}
		out.AppendNullRow()
		dst := out.nrows - 1
		for i, c := range f.cols {
			copyCell(out.cols[i], c, dst, r)
		}
	}
	return out
}

func copyCell(dst, src Column, di, si int) {
	if src.IsNull(si) {
		return
	}
	switch s := src.(type) {
	case *BoolColumn:
		v, _ := s.Get(si)
		dst.(*BoolColumn).Set(di, v)
	case *IntColumn:
		v, _ := s.Get(si)
		dst.(*IntColumn).Set(di, v)
	case *FloatColumn:
		v, _ := s.Get(si)
		dst.(*FloatColumn).Set(di, v)
	case *StringColumn:
		v, _ := s.Get(si)
		dst.(*StringColumn).Set(di, v)
	case *TimeColumn:
		v, _ := s.Get(si)
		dst.(*TimeColumn).Set(di, v)
	}
}
