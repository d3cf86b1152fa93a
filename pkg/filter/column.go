package filter

import (
	"sort"
	"strings"

	"github.com/tenantscope/dashboard/pkg/constants"
	"github.com/tenantscope/dashboard/pkg/record"
)

// Mode is the auto-chosen UI style for one column's filter.
type Mode string

const (
	// ModeSelection renders a checkbox list of the column's distinct values.
	ModeSelection Mode = "selection"
	// ModeText renders a debounced free-text input.
	ModeText Mode = "text"
)

// ColumnFilter is the active constraint on one column. Exactly one of the
// two fields is populated depending on the column's filter mode. A filter
// whose selection set has been emptied must be removed from its owning map
// rather than kept around; Active treats such a value as no constraint.
type ColumnFilter struct {
	Text     string   `json:"text,omitempty"`
	Selected []string `json:"selected,omitempty"`
}

// Active reports whether the filter constrains anything. Whitespace-only
// text counts as absent.
func (f ColumnFilter) Active() bool {
	return strings.TrimSpace(f.Text) != "" || len(f.Selected) > 0
}

// MatchColumn reports whether the record's cell at key passes the filter.
// Selection sets use any-element membership (consistent with Config
// includes); text uses case-insensitive substring over the stringified
// cell, arrays element-wise.
func MatchColumn(rec record.Record, key string, f ColumnFilter) bool {
	if !f.Active() {
		return true
	}

	value := rec.Resolve(key)

	if len(f.Selected) > 0 {
		return anyElementIn(value, f.Selected)
	}

	needle := strings.ToLower(strings.TrimSpace(f.Text))
	elements := record.Elements(value)
	for _, element := range elements {
		if strings.Contains(strings.ToLower(element), needle) {
			return true
		}
	}
	return false
}

// ApplyColumnFilters returns the records passing every active column
// filter, in input order.
func ApplyColumnFilters(records []record.Record, filters map[string]ColumnFilter) []record.Record {
	if len(filters) == 0 {
		return records
	}
	out := make([]record.Record, 0, len(records))
	for _, rec := range records {
		keep := true
		for key, f := range filters {
			if !MatchColumn(rec, key, f) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, rec)
		}
	}
	return out
}

// UniqueValues collects the distinct stringified values present at key
// across all records, arrays element-wise. Null and missing values land in
// the "(empty)" bucket. The result is deduplicated and sorted.
func UniqueValues(records []record.Record, key string) []string {
	seen := make(map[string]struct{})
	for _, rec := range records {
		elements := record.Elements(rec.Resolve(key))
		if len(elements) == 0 {
			seen[constants.EmptyValueLabel] = struct{}{}
			continue
		}
		for _, element := range elements {
			if element == "" {
				element = constants.EmptyValueLabel
			}
			seen[element] = struct{}{}
		}
	}

	out := make([]string, 0, len(seen))
	for value := range seen {
		out = append(out, value)
	}
	sort.Strings(out)
	return out
}

// ModeFor picks the filter UI style from a column's distinct value count.
func ModeFor(uniqueValues []string) Mode {
	if len(uniqueValues) <= constants.SelectionModeMaxValues {
		return ModeSelection
	}
	return ModeText
}
