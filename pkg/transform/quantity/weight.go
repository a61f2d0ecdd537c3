package quantity

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	m "github.com/mopbucket/mop/pkg/mop"
)

// numRun locates the first numeric run in a quantity string.
var numRun = regexp.MustCompile(`[0-9]+\.?[0-9]*`)

// unit is the normalized unit class of a quantity token.
type unit int

const (
	unitUnknown unit = iota
	unitKG
	unitG
	unitLiters
)

// classifyUnit maps a raw unit token to its class by substring containment,
// case-insensitively. Milliliters are treated as gram-equivalent (1ml ~ 1g
// for the catalog's water-dense products). Order matters: "kg" must be
// checked before the bare "g" rule.
func classifyUnit(tok string) unit {
	tok = strings.ToLower(strings.TrimSpace(tok))
	if tok == "" {
		return unitUnknown
	}
	switch {
	case strings.Contains(tok, "kg"), strings.Contains(tok, "kilogram"):
		return unitKG
	case strings.Contains(tok, "g"):
		// catches "g", "gram", "grams"
		return unitG
	case strings.Contains(tok, "ml"), strings.Contains(tok, "milliliter"), strings.Contains(tok, "millilitre"):
		return unitG
	case strings.Contains(tok, "liter"), strings.Contains(tok, "litre"):
		return unitLiters
	default:
		return unitUnknown
	}
}

// parseQuantity splits a combined number+unit string and converts it to the
// base value. Grams divide by 1000; kilograms pass through. Liters also
// pass through unconverted: the source field mixes mass and volume and the
// downstream schema expects the raw magnitude (known modeling quirk, kept
// for compatibility). Returns false for malformed input.
func parseQuantity(s string) (float64, bool) {
	s = strings.ReplaceAll(s, " ", "")
	loc := numRun.FindStringIndex(s)
	if loc == nil {
		return 0, false
	}
	num, err := strconv.ParseFloat(s[loc[0]:loc[1]], 64)
	if err != nil {
		return 0, false
	}
	// only the text after the numeric run counts as the unit; a leading
	// unit ("kg100") is outside the supported format set
	switch classifyUnit(s[loc[1]:]) {
	case unitG:
		return num / 1000, true
	case unitKG:
		return num, true
	case unitLiters:
		return num, true
	default:
		return 0, false
	}
}

// NormalizeWeight parses a "<number><unit>" string column into a float
// column named Out holding the base-unit value, then drops the source
// column. The intermediate number/unit split never appears in the schema.
type NormalizeWeight struct {
	Column string
	Out    string
}

func (t *NormalizeWeight) Name() string { return "normalize_weight" }

func (t *NormalizeWeight) Apply(ctx context.Context, f *m.Frame) (*m.Frame, error) {
	col, ok := f.ColumnByName(t.Column)
	if !ok {
		return f, nil
	}
	out := m.NewFloatColumn(t.Out, 0)
	if c, ok := col.(*m.StringColumn); ok {
		for i := 0; i < c.Len(); i++ {
			if c.IsNull(i) {
				out.AppendNull()
				continue
			}
			v, _ := c.Get(i)
			if w, ok := parseQuantity(v); ok {
				out.Append(w)
			} else {
				out.AppendNull()
			}
		}
	} else {
		for i := 0; i < col.Len(); i++ {
			out.AppendNull()
		}
	}
	if err := f.AddColumn(m.ColumnSchema{Name: t.Out, Type: m.KindFloat, Nullable: true}, out); err != nil {
		return nil, err
	}
	f.DropColumn(t.Column)
	return f, nil
}
