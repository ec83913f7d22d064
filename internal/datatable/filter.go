package datatable

import (
	"slices"
	"strings"
	"time"
)

// FilterValue is the value of one column filter. Text drives includes/equals
// matching and, for range strategies, an exact value. Values drives "in"
// filters. Min and Max bound range and date range filters.
type FilterValue struct {
	Text   string   `json:"text,omitempty"`
	Values []string `json:"values,omitempty"`
	Min    string   `json:"min,omitempty"`
	Max    string   `json:"max,omitempty"`
}

// TextFilter is shorthand for a free-text filter value.
func TextFilter(text string) FilterValue {
	return FilterValue{Text: text}
}

// IsZero reports whether the filter constrains nothing.
func (f FilterValue) IsZero() bool {
	return strings.TrimSpace(f.Text) == "" && len(f.Values) == 0 &&
		strings.TrimSpace(f.Min) == "" && strings.TrimSpace(f.Max) == ""
}

func (f FilterValue) hasBounds() bool {
	return strings.TrimSpace(f.Min) != "" || strings.TrimSpace(f.Max) != ""
}

func (f FilterValue) clone() FilterValue {
	f.Values = slices.Clone(f.Values)
	return f
}

// Match reports whether a cell value satisfies the filter under the column's
// strategy. A zero filter matches everything; a missing value matches no
// active filter.
func Match(col Column, value any, f FilterValue) bool {
	if f.IsZero() {
		return true
	}
	class, n := normalize(value)
	if class == classNil {
		return false
	}
	if class == classList {
		for _, item := range n.([]any) {
			if Match(col, item, f) {
				return true
			}
		}
		return false
	}
	switch col.Strategy() {
	case FilterEquals:
		return strings.EqualFold(stringify(value), strings.TrimSpace(f.Text))
	case FilterIn:
		return matchIn(value, f)
	case FilterRange:
		return matchRange(class, n, value, f)
	case FilterDateRange:
		return matchDateRange(class, n, value, f)
	default:
		return matchIncludes(value, f.Text)
	}
}

func matchIncludes(value any, text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return true
	}
	return strings.Contains(strings.ToLower(stringify(value)), strings.ToLower(text))
}

func matchIn(value any, f FilterValue) bool {
	s := stringify(value)
	if len(f.Values) == 0 {
		return matchIncludes(value, f.Text)
	}
	for _, candidate := range f.Values {
		if strings.EqualFold(s, candidate) {
			return true
		}
	}
	return false
}

func matchRange(class valueClass, n any, value any, f FilterValue) bool {
	if class != classNumber {
		// Non-numeric data in a numeric column degrades to text matching
		// and never satisfies a bound.
		return !f.hasBounds() && matchIncludes(value, f.Text)
	}
	x := n.(float64)
	if text := strings.TrimSpace(f.Text); text != "" {
		want, ok := parseNumber(text)
		if !ok {
			return matchIncludes(value, text)
		}
		if x != want {
			return false
		}
	}
	if lo, ok := parseNumber(f.Min); ok && x < lo {
		return false
	}
	if hi, ok := parseNumber(f.Max); ok && x > hi {
		return false
	}
	return true
}

func matchDateRange(class valueClass, n any, value any, f FilterValue) bool {
	if class != classTime {
		return !f.hasBounds() && matchIncludes(value, f.Text)
	}
	day := truncateDay(n.(time.Time))
	if text := strings.TrimSpace(f.Text); text != "" {
		want, ok := parseDate(text)
		if !ok {
			return matchIncludes(value, text)
		}
		if !day.Equal(want) {
			return false
		}
	}
	if from, ok := parseDate(f.Min); ok && day.Before(from) {
		return false
	}
	if to, ok := parseDate(f.Max); ok && day.After(to) {
		return false
	}
	return true
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
