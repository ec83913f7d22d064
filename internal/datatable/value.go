package datatable

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/collate"
)

// DateLayout is the wire layout of date filter bounds.
const DateLayout = "2006-01-02"

type valueClass int

const (
	classNil valueClass = iota
	classBool
	classNumber
	classTime
	classString
	classList
)

// normalize folds the many Go representations of a cell value into a small
// set of comparable classes.
func normalize(v any) (valueClass, any) {
	if v == nil {
		return classNil, nil
	}
	switch x := v.(type) {
	case string:
		return classString, x
	case bool:
		return classBool, x
	case time.Time:
		if x.IsZero() {
			return classNil, nil
		}
		return classTime, x
	case *time.Time:
		if x == nil || x.IsZero() {
			return classNil, nil
		}
		return classTime, *x
	case fmt.Stringer:
		return classString, x.String()
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return classNumber, float64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return classNumber, float64(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return classNumber, rv.Float()
	case reflect.Slice, reflect.Array:
		items := make([]any, rv.Len())
		for i := range items {
			items[i] = rv.Index(i).Interface()
		}
		return classList, items
	case reflect.Pointer:
		if rv.IsNil() {
			return classNil, nil
		}
		return normalize(rv.Elem().Interface())
	}
	return classString, fmt.Sprint(v)
}

// stringify renders a value as plain text for matching and exports.
func stringify(v any) string {
	class, n := normalize(v)
	switch class {
	case classNil:
		return ""
	case classBool:
		return strconv.FormatBool(n.(bool))
	case classNumber:
		return strconv.FormatFloat(n.(float64), 'f', -1, 64)
	case classTime:
		t := n.(time.Time)
		if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
			return t.Format(DateLayout)
		}
		return t.Format("2006-01-02 15:04")
	case classList:
		items := n.([]any)
		parts := make([]string, 0, len(items))
		for _, item := range items {
			parts = append(parts, stringify(item))
		}
		return strings.Join(parts, ", ")
	default:
		return n.(string)
	}
}

// compareValues orders two cell values. Missing values sort first. Values of
// different classes fall back to their string form.
func compareValues(a, b any, coll *collate.Collator) int {
	ca, na := normalize(a)
	cb, nb := normalize(b)
	if ca == classNil || cb == classNil {
		switch {
		case ca == cb:
			return 0
		case ca == classNil:
			return -1
		default:
			return 1
		}
	}
	if ca != cb {
		return compareStrings(stringify(a), stringify(b), coll)
	}
	switch ca {
	case classBool:
		x, y := na.(bool), nb.(bool)
		switch {
		case x == y:
			return 0
		case !x:
			return -1
		default:
			return 1
		}
	case classNumber:
		x, y := na.(float64), nb.(float64)
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		default:
			return 0
		}
	case classTime:
		return na.(time.Time).Compare(nb.(time.Time))
	default:
		return compareStrings(stringify(a), stringify(b), coll)
	}
}

func compareStrings(a, b string, coll *collate.Collator) int {
	if coll != nil {
		return coll.CompareString(a, b)
	}
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	return f, err == nil
}

func parseDate(s string) (time.Time, bool) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	return t, err == nil
}
