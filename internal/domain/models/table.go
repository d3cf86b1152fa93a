package models

import (
	"github.com/tenantscope/dashboard/pkg/filter"
	"github.com/tenantscope/dashboard/pkg/record"
)

// CellFormatter renders one cell. The returned string is inserted into the
// table as-is, so a formatter must escape any dynamic content it
// interpolates (pkg/markup). The default formatting path escapes
// everything.
type CellFormatter func(value interface{}, rec record.Record) string

// ColumnSpec declares how one record field is displayed, sorted and
// filtered in a table.
type ColumnSpec struct {
	// Key is a dot-path into the record ("user.department").
	Key   string `json:"key"`
	Label string `json:"label"`

	// Sortable defaults to true; only an explicit false disables sorting.
	Sortable   *bool  `json:"sortable,omitempty"`
	Filterable bool   `json:"filterable,omitempty"`
	ClassName  string `json:"class_name,omitempty"`

	Formatter CellFormatter `json:"-"`
}

// IsSortable reports whether the column participates in sorting.
func (c ColumnSpec) IsSortable() bool {
	return c.Sortable == nil || *c.Sortable
}

// TableViewState is the sort/page/filter state of one rendered table
// container. It is created lazily on first render and lives until the
// owning session store is reset or discarded.
type TableViewState struct {
	CurrentPage   int                            `json:"current_page"`
	PageSize      int                            `json:"page_size"`
	SortKey       string                         `json:"sort_key,omitempty"`
	SortDesc      bool                           `json:"sort_desc,omitempty"`
	ColumnFilters map[string]filter.ColumnFilter `json:"column_filters,omitempty"`
}

// ActiveFilterCount counts columns with an active filter (the filter
// badge number).
func (s *TableViewState) ActiveFilterCount() int {
	count := 0
	for _, f := range s.ColumnFilters {
		if f.Active() {
			count++
		}
	}
	return count
}

// TableRenderConfig is the per-call input to TableService.Render.
type TableRenderConfig struct {
	// ContainerID keys the table's persistent view state. Two call sites
	// sharing an id share state.
	ContainerID string
	Title       string
	Data        []record.Record
	Columns     []ColumnSpec

	// PageSize applies only when the container's state is first created.
	PageSize int

	// RowKey names the field emitted as data-record-id on each body row so
	// the embedding page can wire row clicks.
	RowKey string

	// RowClass, when set, adds a CSS class per body row.
	RowClass func(rec record.Record) string

	// EmptyMessage overrides the default zero-results row text.
	EmptyMessage string
}

// TableRenderResult is the output of one render pass.
type TableRenderResult struct {
	ContainerID string `json:"container_id"`
	HTML        string `json:"html"`

	CurrentPage int `json:"current_page"`
	TotalPages  int `json:"total_pages"`
	TotalItems  int `json:"total_items"`
	ShowingFrom int `json:"showing_from"`
	ShowingTo   int `json:"showing_to"`

	SortKey  string `json:"sort_key,omitempty"`
	SortDesc bool   `json:"sort_desc,omitempty"`

	// ActiveFilters is the filter badge count.
	ActiveFilters int `json:"active_filters"`

	// DebounceMillis is the text-filter input debounce the embedding page
	// should apply.
	DebounceMillis int `json:"debounce_millis"`
}
