package dates

import (
	"regexp"
	"strings"
	"time"
)

// formatRule pairs a shape gate with the layouts that interpret it. The
// regexp decides whether the rule claims the string; the layouts are tried
// in order until one parses. Rules are ordered by decreasing specificity so
// no two can claim the same unambiguous string.
type formatRule struct {
	re      *regexp.Regexp
	layouts []string
}

var rules = []formatRule{
	{regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`), []string{"2006-01-02"}},
	{regexp.MustCompile(`^\d{4}/\d{2}/\d{2}$`), []string{"2006/01/02"}},
	{regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`), []string{"02/01/2006"}},
	{regexp.MustCompile(`^\d{2}/\d{2}$`), []string{"01/06"}},
	{regexp.MustCompile(`^[A-Za-z]+ \d{4} \d{2}$`), []string{"January 2006 02", "Jan 2006 02"}},
	{regexp.MustCompile(`^\d{4} [A-Za-z]+ \d{2}$`), []string{"2006 January 02", "2006 Jan 02"}},
}

// genericLayouts covers the well-formed representations the sources emit;
// tried before the rule chain and again as the final best-effort fallback.
var genericLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02 January 2006",
	"January 02, 2006",
	"2 January 2006",
}

// Parse normalizes one date-like string. The boolean is false when no rule
// or generic layout matches; parsing never panics or errors. Results carry
// no timezone, so equal text always yields the identical date value.
func Parse(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range genericLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	for _, r := range rules {
		if !r.re.MatchString(s) {
			continue
		}
		for _, layout := range r.layouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
		// the rule claimed the shape but the content is bogus ("13/13" etc)
		return time.Time{}, false
	}
	return time.Time{}, false
}
