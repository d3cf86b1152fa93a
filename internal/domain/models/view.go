package models

import (
	"time"

	"github.com/tenantscope/dashboard/pkg/record"
)

// ViewDefinition is the declarative configuration a dashboard page
// supplies: which dataset to show and how. Definitions are registered at
// bootstrap and never mutated afterwards.
type ViewDefinition struct {
	// Name is the view's URL segment ("users", "devices").
	Name  string `json:"name"`
	Title string `json:"title"`

	// Dataset names the snapshot dataset backing the view.
	Dataset string `json:"dataset"`

	Columns []ColumnSpec `json:"columns"`

	// SearchFields are the dot-paths free-text search runs over.
	SearchFields []string `json:"search_fields"`

	DefaultSortKey  string `json:"default_sort_key,omitempty"`
	DefaultSortDesc bool   `json:"default_sort_desc,omitempty"`
	PageSize        int    `json:"page_size,omitempty"`

	// RowKey is the field used as the row identity attribute.
	RowKey string `json:"row_key,omitempty"`

	// RowClass, when set, adds a CSS class per body row.
	RowClass func(rec record.Record) string `json:"-"`
}

// ColumnKeys returns the dot-paths of all columns.
func (v ViewDefinition) ColumnKeys() []string {
	keys := make([]string, len(v.Columns))
	for i, col := range v.Columns {
		keys[i] = col.Key
	}
	return keys
}

// HasColumn reports whether a dot-path is one of the view's columns.
func (v ViewDefinition) HasColumn(key string) bool {
	for _, col := range v.Columns {
		if col.Key == key {
			return true
		}
	}
	return false
}

// SnapshotInfo describes the loaded tenant snapshot (the dashboard
// header's "data as of ..." line).
type SnapshotInfo struct {
	TenantName  string         `json:"tenant_name"`
	CollectedAt time.Time      `json:"collected_at"`
	Datasets    map[string]int `json:"datasets"`
}

// ChartSlice is one slice of a donut chart: a distinct value and how many
// records carry it.
type ChartSlice struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}
