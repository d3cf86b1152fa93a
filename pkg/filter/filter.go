// Package filter evaluates declarative filter configurations against
// in-memory record slices. Evaluation is pure: input order is preserved,
// inputs are never mutated, and a record survives only when every active
// constraint matches (conjunctive composition).
package filter

import (
	"reflect"
	"strings"

	"github.com/tenantscope/dashboard/pkg/constants"
	"github.com/tenantscope/dashboard/pkg/record"
)

// Config is a one-shot bundle of constraints applied to a dataset.
// Field names are dot-paths into the record.
type Config struct {
	// Search is a free-text term matched case-insensitively as a substring
	// against every field in SearchFields; any hit keeps the record.
	Search       string   `json:"search,omitempty"`
	SearchFields []string `json:"search_fields,omitempty"`

	// Exact maps a field to a value the record must equal. A nil value or
	// the "all" sentinel means no constraint on that field.
	Exact map[string]interface{} `json:"exact,omitempty"`

	// Includes maps a field to a set of allowed values. Array-valued cells
	// match when any element is in the set; scalars when their stringified
	// value is.
	Includes map[string][]string `json:"includes,omitempty"`
}

// Apply returns the records matching cfg, in input order. The input slice
// is never modified.
func Apply(records []record.Record, cfg Config) []record.Record {
	out := make([]record.Record, 0, len(records))
	for _, rec := range records {
		if Matches(rec, cfg) {
			out = append(out, rec)
		}
	}
	return out
}

// Matches reports whether a single record satisfies every active
// constraint in cfg.
func Matches(rec record.Record, cfg Config) bool {
	if term := strings.TrimSpace(cfg.Search); term != "" {
		if !matchesSearch(rec, term, cfg.SearchFields) {
			return false
		}
	}

	for field, expected := range cfg.Exact {
		if expected == nil {
			continue
		}
		if s, ok := expected.(string); ok && s == constants.FilterAllSentinel {
			continue
		}
		if !valueEquals(rec.Resolve(field), expected) {
			return false
		}
	}

	for field, allowed := range cfg.Includes {
		if len(allowed) == 0 {
			continue
		}
		if !anyElementIn(rec.Resolve(field), allowed) {
			return false
		}
	}

	return true
}

func matchesSearch(rec record.Record, term string, fields []string) bool {
	needle := strings.ToLower(term)
	for _, field := range fields {
		haystack := strings.ToLower(record.Stringify(rec.Resolve(field)))
		if haystack != "" && strings.Contains(haystack, needle) {
			return true
		}
	}
	return false
}

func valueEquals(got, want interface{}) bool {
	if reflect.DeepEqual(got, want) {
		return true
	}
	// JSON decoding yields float64 for every number; callers may hand us
	// ints. Compare the normalized representations.
	return record.Stringify(got) == record.Stringify(want)
}

func anyElementIn(value interface{}, allowed []string) bool {
	elements := record.Elements(value)
	if len(elements) == 0 {
		elements = []string{constants.EmptyValueLabel}
	}
	for _, element := range elements {
		// Empty-string cells live in the "(empty)" bucket, same as
		// UniqueValues puts them there when building the options.
		if element == "" {
			element = constants.EmptyValueLabel
		}
		for _, candidate := range allowed {
			if element == candidate {
				return true
			}
		}
	}
	return false
}
