package services

import (
	"strconv"

	"github.com/tenantscope/dashboard/internal/domain/models"
	"github.com/tenantscope/dashboard/pkg/constants"
	"github.com/tenantscope/dashboard/pkg/filter"
	"github.com/tenantscope/dashboard/pkg/markup"
	"github.com/tenantscope/dashboard/pkg/record"
)

// formatCell renders one cell. A column formatter, when present, fully
// overrides the default path and its output is trusted as render-safe.
// The default path escapes everything it interpolates.
func formatCell(col models.ColumnSpec, rec record.Record) string {
	value := rec.Resolve(col.Key)
	if col.Formatter != nil {
		return col.Formatter(value, rec)
	}

	switch v := value.(type) {
	case nil:
		return constants.PlaceholderCell
	case bool:
		if v {
			return constants.BoolTrueLabel
		}
		return constants.BoolFalseLabel
	case []interface{}:
		if len(v) == 0 {
			return constants.PlaceholderCell
		}
		var b markup.Builder
		for _, item := range v {
			b.Raw(markup.Tag("span", "tag", record.Stringify(item)))
		}
		return b.String()
	default:
		return markup.Escape(record.Stringify(value))
	}
}

// renderTable builds the full container fragment: header row with sort
// affordances and filter triggers, body rows, footer with the showing line
// and pagination.
func renderTable(
	cfg models.TableRenderConfig,
	state *models.TableViewState,
	pageRows []record.Record,
	allRows []record.Record,
	totalItems, totalPages int,
) string {
	var b markup.Builder

	b.Raw("<div class=\"table-container\"").Attr("data-container-id", cfg.ContainerID).Raw(">")

	if cfg.Title != "" || state.ActiveFilterCount() > 0 {
		b.Raw("<div class=\"table-header\">")
		if cfg.Title != "" {
			b.Raw("<h3>").Text(cfg.Title).Raw("</h3>")
		}
		if n := state.ActiveFilterCount(); n > 0 {
			label := strconv.Itoa(n) + " filter"
			if n > 1 {
				label += "s"
			}
			b.Raw(markup.Tag("span", "filter-badge", label))
		}
		b.Raw("</div>")
	}

	b.Raw("<table class=\"data-table\"><thead><tr>")
	for _, col := range cfg.Columns {
		renderHeaderCell(&b, cfg, state, col)
	}
	b.Raw("</tr></thead><tbody>")

	if totalItems == 0 {
		message := cfg.EmptyMessage
		if message == "" {
			message = "No data found"
		}
		b.Raw("<tr class=\"empty-row\"><td").
			Attr("colspan", strconv.Itoa(len(cfg.Columns))).
			Raw(">").Text(message).Raw("</td></tr>")
	} else {
		for _, rec := range pageRows {
			renderBodyRow(&b, cfg, rec)
		}
	}
	b.Raw("</tbody></table>")

	b.Raw("<div class=\"table-footer\">")
	if totalItems > 0 {
		from := (state.CurrentPage-1)*state.PageSize + 1
		to := from + len(pageRows) - 1
		showing := "Showing " + strconv.Itoa(from) + "-" + strconv.Itoa(to) +
			" of " + strconv.Itoa(totalItems)
		b.Raw(markup.Tag("span", "showing", showing))
	}
	if totalItems > state.PageSize {
		renderPagination(&b, state.CurrentPage, totalPages)
	}
	b.Raw("</div>")

	b.Raw("</div>")
	return b.String()
}

func renderHeaderCell(b *markup.Builder, cfg models.TableRenderConfig, state *models.TableViewState, col models.ColumnSpec) {
	class := col.ClassName
	if col.IsSortable() {
		if class != "" {
			class += " "
		}
		class += "sortable"
	}

	b.Raw("<th")
	if class != "" {
		b.Attr("class", class)
	}
	if col.IsSortable() {
		b.Attr("data-sort-key", col.Key)
	}
	b.Raw(">").Text(col.Label)

	if col.IsSortable() && state.SortKey == col.Key {
		indicator := "▲"
		if state.SortDesc {
			indicator = "▼"
		}
		b.Raw(markup.Tag("span", "sort-indicator", indicator))
	}

	if col.Filterable {
		renderFilterTrigger(b, cfg, state, col)
	}

	b.Raw("</th>")
}

// renderFilterTrigger emits the per-column filter control. The mode is
// picked from the column's distinct value count over the unfiltered
// dataset, so options never vanish as filters narrow the rows.
func renderFilterTrigger(b *markup.Builder, cfg models.TableRenderConfig, state *models.TableViewState, col models.ColumnSpec) {
	active := state.ColumnFilters[col.Key]
	unique := filter.UniqueValues(cfg.Data, col.Key)

	triggerClass := "filter-trigger"
	if active.Active() {
		triggerClass += " active"
	}

	b.Raw("<div class=\"column-filter\"").Attr("data-filter-key", col.Key).Raw(">")
	b.Raw(markup.Tag("button", triggerClass, "⚲"))

	if filter.ModeFor(unique) == filter.ModeSelection {
		b.Raw("<div class=\"filter-dropdown\">")
		for _, value := range unique {
			b.Raw("<label><input type=\"checkbox\"").Attr("value", value)
			if selectionContains(active.Selected, value) {
				b.Raw(" checked")
			}
			b.Raw(">").Text(value).Raw("</label>")
		}
		b.Raw("<button class=\"filter-clear\">Clear</button>")
		b.Raw("</div>")
	} else {
		b.Raw("<input type=\"text\" class=\"filter-text\"").
			Attr("value", active.Text).
			Attr("data-debounce", strconv.Itoa(constants.FilterDebounceMillis)).
			Raw(">")
	}

	b.Raw("</div>")
}

func renderBodyRow(b *markup.Builder, cfg models.TableRenderConfig, rec record.Record) {
	b.Raw("<tr")
	if cfg.RowClass != nil {
		if class := cfg.RowClass(rec); class != "" {
			b.Attr("class", class)
		}
	}
	if cfg.RowKey != "" {
		b.Attr("data-record-id", record.Stringify(rec.Resolve(cfg.RowKey)))
	}
	b.Raw(">")

	for _, col := range cfg.Columns {
		b.Raw("<td")
		if col.ClassName != "" {
			b.Attr("class", col.ClassName)
		}
		b.Raw(">")
		b.Raw(formatCell(col, rec))
		b.Raw("</td>")
	}
	b.Raw("</tr>")
}

func renderPagination(b *markup.Builder, currentPage, totalPages int) {
	b.Raw("<div class=\"pagination\">")

	b.Raw("<button class=\"page-prev\"").Attr("data-page", strconv.Itoa(currentPage-1))
	if currentPage <= 1 {
		b.Raw(" disabled")
	}
	b.Raw(">Previous</button>")

	for _, page := range pageWindow(currentPage, totalPages) {
		class := "page-number"
		if page == currentPage {
			class += " current"
		}
		b.Raw("<button").Attr("class", class).Attr("data-page", strconv.Itoa(page)).Raw(">").
			Text(strconv.Itoa(page)).Raw("</button>")
	}

	b.Raw("<button class=\"page-next\"").Attr("data-page", strconv.Itoa(currentPage+1))
	if currentPage >= totalPages {
		b.Raw(" disabled")
	}
	b.Raw(">Next</button>")

	b.Raw("</div>")
}

// pageWindow returns up to PaginationWindow page numbers centered on the
// current page. When centering would overflow past the last page the
// window shifts left just enough to stay full; fewer pages than the window
// yields them all.
func pageWindow(currentPage, totalPages int) []int {
	size := constants.PaginationWindow
	start := currentPage - size/2
	if start < 1 {
		start = 1
	}
	end := start + size - 1
	if end > totalPages {
		end = totalPages
		start = end - size + 1
		if start < 1 {
			start = 1
		}
	}

	pages := make([]int, 0, end-start+1)
	for page := start; page <= end; page++ {
		pages = append(pages, page)
	}
	return pages
}

func selectionContains(selected []string, value string) bool {
	for _, s := range selected {
		if s == value {
			return true
		}
	}
	return false
}
