// Package profile summarizes cleaned frames: per-column value and null
// counts, numeric ranges, and top categorical values. The CLI prints the
// summary next to the pipeline's dropped-row report so operators can see
// what cleaning did to a dataset.
package profile

import (
	"fmt"
	"math"
	"sort"
	"strings"

	m "github.com/mopbucket/mop/pkg/mop"
)

type NumStats struct {
	Count int
	Nulls int
	Min   float64
	Max   float64
	Sum   float64
}

type ValueStats struct {
	Count int
	Nulls int
	Freqs map[string]int
}

type ColumnProfile struct {
	Name string
	Kind m.Kind
	Num  *NumStats
	Val  *ValueStats
}

type Collector struct {
	cols  []ColumnProfile
	index map[string]int
	topK  int
}

func NewCollector(schema m.Schema, topK int) *Collector {
	c := &Collector{index: make(map[string]int), topK: topK}
	c.cols = make([]ColumnProfile, len(schema.Columns))
	for i, cs := range schema.Columns {
		cp := ColumnProfile{Name: cs.Name, Kind: cs.Type}
		switch cs.Type {
		case m.KindFloat, m.KindInt:
			cp.Num = &NumStats{Min: math.Inf(1), Max: math.Inf(-1)}
		default:
			cp.Val = &ValueStats{Freqs: make(map[string]int)}
		}
		c.cols[i] = cp
		c.index[cs.Name] = i
	}
	return c
}

// ConsumeFrame folds one frame into the collector. Chunked runs call this
// once per chunk.
func (c *Collector) ConsumeFrame(f *m.Frame) {
	for _, cs := range f.Schema().Columns {
		idx, ok := c.index[cs.Name]
		if !ok {
			continue
		}
		cp := &c.cols[idx]
		col, _ := f.ColumnByName(cs.Name)
		switch cc := col.(type) {
		case *m.FloatColumn:
			for i := 0; i < cc.Len(); i++ {
				v, ok := cc.Get(i)
				if !ok {
					cp.Num.Nulls++
					continue
				}
				cp.Num.Count++
				cp.Num.Min = math.Min(cp.Num.Min, v)
				cp.Num.Max = math.Max(cp.Num.Max, v)
				cp.Num.Sum += v
			}
		case *m.IntColumn:
			for i := 0; i < cc.Len(); i++ {
				v, ok := cc.Get(i)
				if !ok {
					cp.Num.Nulls++
					continue
				}
				cp.Num.Count++
				fv := float64(v)
				cp.Num.Min = math.Min(cp.Num.Min, fv)
				cp.Num.Max = math.Max(cp.Num.Max, fv)
				cp.Num.Sum += fv
			}
		case *m.StringColumn:
			for i := 0; i < cc.Len(); i++ {
				v, ok := cc.Get(i)
				if !ok {
					cp.Val.Nulls++
					continue
				}
				cp.Val.Count++
				if c.topK > 0 {
					cp.Val.Freqs[v]++
				}
			}
		case *m.BoolColumn:
			for i := 0; i < cc.Len(); i++ {
				v, ok := cc.Get(i)
				if !ok {
					cp.Val.Nulls++
					continue
				}
				cp.Val.Count++
				if c.topK > 0 {
					cp.Val.Freqs[fmt.Sprintf("%t", v)]++
				}
			}
		case *m.TimeColumn:
			for i := 0; i < cc.Len(); i++ {
				if cc.IsNull(i) {
					cp.Val.Nulls++
					continue
				}
				cp.Val.Count++
			}
		}
	}
}

// ReportText renders the profile for terminal output.
func (c *Collector) ReportText() string {
	var b strings.Builder
	b.WriteString("Column Summary\n")
	for _, cp := range c.cols {
		fmt.Fprintf(&b, "- %s (%s): ", cp.Name, kindString(cp.Kind))
		switch {
		case cp.Num != nil:
			mean := 0.0
			if cp.Num.Count > 0 {
				mean = cp.Num.Sum / float64(cp.Num.Count)
			}
			fmt.Fprintf(&b, "count=%d nulls=%d min=%.6g max=%.6g mean=%.6g\n",
				cp.Num.Count, cp.Num.Nulls, cp.Num.Min, cp.Num.Max, mean)
		default:
			fmt.Fprintf(&b, "count=%d nulls=%d\n", cp.Val.Count, cp.Val.Nulls)
			if len(cp.Val.Freqs) > 0 {
				type kv struct {
					k string
					v int
				}
				arr := make([]kv, 0, len(cp.Val.Freqs))
				for k, v := range cp.Val.Freqs {
					arr = append(arr, kv{k, v})
				}
				sort.Slice(arr, func(i, j int) bool { return arr[i].v > arr[j].v })
				n := c.topK
				if n > len(arr) {
					n = len(arr)
				}
				for i := 0; i < n; i++ {
					fmt.Fprintf(&b, "    %q: %d\n", arr[i].k, arr[i].v)
				}
			}
		}
	}
	return b.String()
}

func kindString(k m.Kind) string {
	switch k {
	case m.KindBool:
		return "bool"
	case m.KindInt:
		return "int"
	case m.KindFloat:
		return "float"
	case m.KindString:
		return "string"
	case m.KindTime:
		return "time"
	default:
		return "invalid"
	}
}
