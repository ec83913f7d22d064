package datatable

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Query parameter names carrying table state between requests.
const (
	ParamSort      = "sort"
	ParamPage      = "page"
	ParamSize      = "size"
	ParamHide      = "hide"
	ParamSelect    = "sel"
	filterPrefix   = "f."
	filterMinPart  = ".min"
	filterMaxPart  = ".max"
	descSortPrefix = "-"
)

// FilterParam returns the query parameter name of a column filter.
func FilterParam(key string) string {
	return filterPrefix + key
}

// FilterMinParam returns the query parameter name of a range lower bound.
func FilterMinParam(key string) string {
	return filterPrefix + key + filterMinPart
}

// FilterMaxParam returns the query parameter name of a range upper bound.
func FilterMaxParam(key string) string {
	return filterPrefix + key + filterMaxPart
}

type stateQuery struct {
	Page int      `validate:"gte=0,lte=1000000"`
	Size int      `validate:"omitempty,oneof=10 20 50 100"`
	Sort []string `validate:"max=8,dive,required,max=64"`
	Hide []string `validate:"max=64,dive,required,max=64"`
	Sel  []string `validate:"max=1000,dive,required,max=128"`
}

var queryValidator = validator.New()

// DecodeState reads table state from query values. Invalid parts fall back to
// their defaults; the returned error lists what was ignored and is meant for
// logging only.
func DecodeState(values url.Values, cols []Column) (State, error) {
	state := NewState()
	index := make(map[string]Column, len(cols))
	for _, c := range cols {
		index[c.Key] = c
	}

	q := stateQuery{
		Sort: splitList(values[ParamSort]),
		Hide: values[ParamHide],
		Sel:  values[ParamSelect],
	}
	var problems []error
	if raw := values.Get(ParamPage); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			problems = append(problems, fmt.Errorf("page %q: %w", raw, err))
		} else {
			q.Page = page
		}
	}
	if raw := values.Get(ParamSize); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil {
			problems = append(problems, fmt.Errorf("size %q: %w", raw, err))
		} else {
			q.Size = size
		}
	}
	if err := queryValidator.Struct(q); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				problems = append(problems, fmt.Errorf("%s: %s", strings.ToLower(fe.Field()), fe.Tag()))
				resetField(&q, fe.StructField())
			}
		}
	}

	if q.Page > 0 {
		state.PageIndex = q.Page - 1
	}
	if q.Size > 0 {
		state.PageSize = q.Size
	}
	for _, raw := range q.Sort {
		spec := SortSpec{Column: strings.TrimPrefix(raw, descSortPrefix), Desc: strings.HasPrefix(raw, descSortPrefix)}
		col, ok := index[spec.Column]
		if !ok || !col.Sortable {
			problems = append(problems, fmt.Errorf("%w: sort %s", ErrUnknownColumn, spec.Column))
			continue
		}
		if state.SortDirection(spec.Column) != 0 {
			continue
		}
		state.Sorting = append(state.Sorting, spec)
	}
	for _, key := range q.Hide {
		if col, ok := index[key]; ok && col.Hideable {
			state.SetVisible(key, false)
		}
	}
	for _, id := range q.Sel {
		state.SetSelected(id, true)
	}

	for _, col := range cols {
		if !col.IsData() || !col.Filterable {
			continue
		}
		f := FilterValue{
			Min: strings.TrimSpace(values.Get(FilterMinParam(col.Key))),
			Max: strings.TrimSpace(values.Get(FilterMaxParam(col.Key))),
		}
		raw := values[FilterParam(col.Key)]
		if col.Strategy() == FilterIn {
			for _, v := range raw {
				if v = strings.TrimSpace(v); v != "" {
					f.Values = append(f.Values, v)
				}
			}
		} else if len(raw) > 0 {
			f.Text = raw[0]
		}
		if !f.IsZero() {
			state.Filters[col.Key] = f
		}
	}
	return state, errors.Join(problems...)
}

func resetField(q *stateQuery, field string) {
	// Element errors are reported as e.g. "Sort[2]".
	field, _, _ = strings.Cut(field, "[")
	switch field {
	case "Page":
		q.Page = 0
	case "Size":
		q.Size = 0
	case "Sort":
		q.Sort = nil
	case "Hide":
		q.Hide = nil
	case "Sel":
		q.Sel = nil
	}
}

func splitList(raw []string) []string {
	var out []string
	for _, item := range raw {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// EncodeState writes table state as query values. Default values are
// omitted so that links stay short.
func EncodeState(state State) url.Values {
	values := url.Values{}
	if len(state.Sorting) > 0 {
		parts := make([]string, 0, len(state.Sorting))
		for _, spec := range state.Sorting {
			if spec.Desc {
				parts = append(parts, descSortPrefix+spec.Column)
			} else {
				parts = append(parts, spec.Column)
			}
		}
		values.Set(ParamSort, strings.Join(parts, ","))
	}
	if state.PageIndex > 0 {
		values.Set(ParamPage, strconv.Itoa(state.PageIndex+1))
	}
	if state.PageSize > 0 && state.PageSize != DefaultPageSize {
		values.Set(ParamSize, strconv.Itoa(state.PageSize))
	}
	hidden := make([]string, 0, len(state.Visibility))
	for key, visible := range state.Visibility {
		if !visible {
			hidden = append(hidden, key)
		}
	}
	sort.Strings(hidden)
	for _, key := range hidden {
		values.Add(ParamHide, key)
	}
	for _, id := range state.SelectedIDs() {
		values.Add(ParamSelect, id)
	}
	keys := make([]string, 0, len(state.Filters))
	for key := range state.Filters {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		f := state.Filters[key]
		if f.Text != "" {
			values.Set(FilterParam(key), f.Text)
		}
		for _, v := range f.Values {
			values.Add(FilterParam(key), v)
		}
		if f.Min != "" {
			values.Set(FilterMinParam(key), f.Min)
		}
		if f.Max != "" {
			values.Set(FilterMaxParam(key), f.Max)
		}
	}
	return values
}
