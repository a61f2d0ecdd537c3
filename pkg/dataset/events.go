package dataset

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	m "github.com/mopbucket/mop/pkg/mop"
)

// eventFields are the column-major maps the date-event feed carries. The
// timestamp map's key set drives row production; every other field is
// looked up under the same keys.
var eventFields = []string{"timestamp", "month", "year", "day", "time_period", "date_uuid"}

// FrameFromKeyIndexedJSON reshapes the date-event feed into a frame. The
// feed is a mapping from field name to a mapping from row key to value.
// A row key present under timestamp but absent under a sibling field is a
// hard error: key sets are assumed identical, and a mismatch means the
// extraction is broken, not the data.
func FrameFromKeyIndexedJSON(data []byte) (*m.Frame, error) {
	var raw map[string]map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("date events: %w", err)
	}
	for _, field := range eventFields {
		if _, ok := raw[field]; !ok {
			return nil, fmt.Errorf("date events: missing field %q", field)
		}
	}

	cols := make([]m.ColumnSchema, len(eventFields))
	for i, field := range eventFields {
		cols[i] = m.ColumnSchema{Name: field, Type: m.KindString, Nullable: true}
	}
	f := m.NewFrame(m.Schema{Columns: cols})

	keys := sortedKeys(raw["timestamp"])
	for _, key := range keys {
		f.AppendNullRow()
		row := f.Rows() - 1
		for _, field := range eventFields {
			v, ok := raw[field][key]
			if !ok {
				return nil, fmt.Errorf("date events: field %q has no entry for key %q", field, key)
			}
			if v == nil {
				continue
			}
			_ = f.SetCell(row, field, stringify(v))
		}
	}
	return f, nil
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		// JSON numbers for year/month/day arrive as float64
		if float64(int64(t)) == t {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		b, _ := json.Marshal(t)
		return string(b)
	}
}

func sortedKeys(mp map[string]any) []string {
	keys := make([]string, 0, len(mp))
	for k := range mp {
		keys = append(keys, k)
	}
	// numeric row keys ("0", "1", ... "10") sort by value, everything else
	// lexically, so output row order is stable across runs
	sort.Slice(keys, func(i, j int) bool {
		a, aerr := strconv.Atoi(keys[i])
		b, berr := strconv.Atoi(keys[j])
		if aerr == nil && berr == nil {
			return a < b
		}
		if aerr == nil {
			return true
		}
		if berr == nil {
			return false
		}
		return keys[i] < keys[j]
	})
	return keys
}
