package services

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tenantscope/dashboard/internal/domain/models"
	"github.com/tenantscope/dashboard/pkg/filter"
	"github.com/tenantscope/dashboard/pkg/record"
)

func columnFilterSelected(values ...string) filter.ColumnFilter {
	return filter.ColumnFilter{Selected: values}
}

func makeRows(n int) []record.Record {
	rows := make([]record.Record, n)
	for i := 0; i < n; i++ {
		status := "compliant"
		if i%6 == 0 {
			status = "noncompliant"
		}
		rows[i] = record.Record{
			"id":     fmt.Sprintf("rec-%03d", i),
			"name":   fmt.Sprintf("Device %03d", i),
			"status": status,
			"index":  float64(i),
		}
	}
	return rows
}

func deviceColumns() []models.ColumnSpec {
	return []models.ColumnSpec{
		{Key: "name", Label: "Name"},
		{Key: "status", Label: "Status", Filterable: true},
		{Key: "index", Label: "Index"},
	}
}

func newTableService() *TableService {
	return NewTableService(NewSessionStore())
}

func renderConfig(containerID string, rows []record.Record, pageSize int) models.TableRenderConfig {
	return models.TableRenderConfig{
		ContainerID: containerID,
		Title:       "Devices",
		Data:        rows,
		Columns:     deviceColumns(),
		PageSize:    pageSize,
		RowKey:      "id",
	}
}

// 120 records at page size 50: page 1 shows rows [0,50) and
// "Showing 1-50 of 120"; Next shows [50,100) and "Showing 51-100 of 120".
func TestRender_Pagination(t *testing.T) {
	ts := newTableService()
	rows := makeRows(120)
	cfg := renderConfig("devices-table", rows, 50)

	result, err := ts.Render(cfg)
	require.NoError(t, err)
	assert.Equal(t, 1, result.CurrentPage)
	assert.Equal(t, 3, result.TotalPages)
	assert.Equal(t, 120, result.TotalItems)
	assert.Equal(t, 1, result.ShowingFrom)
	assert.Equal(t, 50, result.ShowingTo)
	assert.Contains(t, result.HTML, "Showing 1-50 of 120")
	assert.Contains(t, result.HTML, `data-record-id="rec-000"`)
	assert.Contains(t, result.HTML, `data-record-id="rec-049"`)
	assert.NotContains(t, result.HTML, `data-record-id="rec-050"`)

	require.NoError(t, ts.SetPage("devices-table", 2))
	result, err = ts.Render(cfg)
	require.NoError(t, err)
	assert.Equal(t, 51, result.ShowingFrom)
	assert.Equal(t, 100, result.ShowingTo)
	assert.Contains(t, result.HTML, "Showing 51-100 of 120")
	assert.Contains(t, result.HTML, `data-record-id="rec-050"`)
	assert.NotContains(t, result.HTML, `data-record-id="rec-100"`)
}

// Concatenating every page reproduces the filtered+sorted dataset exactly
// once.
func TestRender_PagesCoverDatasetExactlyOnce(t *testing.T) {
	ts := newTableService()
	rows := makeRows(103)
	cfg := renderConfig("cover-table", rows, 25)

	seen := make(map[string]int)
	result, err := ts.Render(cfg)
	require.NoError(t, err)
	for page := 1; page <= result.TotalPages; page++ {
		require.NoError(t, ts.SetPage("cover-table", page))
		pageResult, err := ts.Render(cfg)
		require.NoError(t, err)
		for _, id := range recordIDs(pageResult.HTML) {
			seen[id]++
		}
	}

	assert.Len(t, seen, 103)
	for id, count := range seen {
		assert.Equalf(t, 1, count, "record %s appeared %d times", id, count)
	}
}

func recordIDs(html string) []string {
	var ids []string
	for _, part := range strings.Split(html, `data-record-id="`)[1:] {
		ids = append(ids, part[:strings.Index(part, `"`)])
	}
	return ids
}

// Rendering twice with identical config and no state change produces
// identical output.
func TestRender_Idempotent(t *testing.T) {
	ts := newTableService()
	cfg := renderConfig("idem-table", makeRows(30), 10)

	first, err := ts.Render(cfg)
	require.NoError(t, err)
	second, err := ts.Render(cfg)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, ts.GetData("idem-table"), ts.GetData("idem-table"))
}

func TestRender_EmptyDataset(t *testing.T) {
	ts := newTableService()
	cfg := renderConfig("empty-table", nil, 50)

	result, err := ts.Render(cfg)
	require.NoError(t, err)
	assert.Equal(t, 0, result.TotalItems)
	assert.Equal(t, 1, result.TotalPages)
	assert.Equal(t, 0, result.ShowingFrom)
	assert.Contains(t, result.HTML, "No data found")
	assert.Contains(t, result.HTML, `colspan="3"`)
	assert.NotContains(t, result.HTML, "pagination")
}

func TestRender_PaginationOmittedWhenSinglePage(t *testing.T) {
	ts := newTableService()
	cfg := renderConfig("small-table", makeRows(10), 50)

	result, err := ts.Render(cfg)
	require.NoError(t, err)
	assert.Equal(t, 1, result.TotalPages)
	assert.NotContains(t, result.HTML, "pagination")
	assert.Contains(t, result.HTML, "Showing 1-10 of 10")
}

func TestRender_MissingContainerID(t *testing.T) {
	ts := newTableService()
	cfg := renderConfig("", makeRows(5), 50)
	_, err := ts.Render(cfg)
	assert.Error(t, err)
}

func TestSetSort_ClickContract(t *testing.T) {
	ts := newTableService()
	cfg := renderConfig("sort-table", makeRows(20), 5)
	_, err := ts.Render(cfg)
	require.NoError(t, err)

	// First click: ascending.
	require.NoError(t, ts.SetSort("sort-table", "index"))
	result, err := ts.Render(cfg)
	require.NoError(t, err)
	assert.Equal(t, "index", result.SortKey)
	assert.False(t, result.SortDesc)

	// Second click on the same key: descending.
	require.NoError(t, ts.SetSort("sort-table", "index"))
	result, err = ts.Render(cfg)
	require.NoError(t, err)
	assert.True(t, result.SortDesc)
	ids := recordIDs(result.HTML)
	require.NotEmpty(t, ids)
	assert.Equal(t, "rec-019", ids[0])

	// Clicking a different key: back to ascending on the new key.
	require.NoError(t, ts.SetSort("sort-table", "name"))
	result, err = ts.Render(cfg)
	require.NoError(t, err)
	assert.Equal(t, "name", result.SortKey)
	assert.False(t, result.SortDesc)
}

func TestSetSort_ResetsPage(t *testing.T) {
	ts := newTableService()
	cfg := renderConfig("sort-page-table", makeRows(100), 10)
	_, err := ts.Render(cfg)
	require.NoError(t, err)

	require.NoError(t, ts.SetPage("sort-page-table", 5))
	require.NoError(t, ts.SetSort("sort-page-table", "name"))
	result, err := ts.Render(cfg)
	require.NoError(t, err)
	assert.Equal(t, 1, result.CurrentPage)
}

func TestSortedRenderIsStableForTies(t *testing.T) {
	ts := newTableService()
	rows := []record.Record{
		{"id": "a", "name": "x", "status": "same", "index": float64(0)},
		{"id": "b", "name": "x", "status": "same", "index": float64(1)},
		{"id": "c", "name": "x", "status": "same", "index": float64(2)},
	}
	cfg := renderConfig("tie-table", rows, 10)
	_, err := ts.Render(cfg)
	require.NoError(t, err)

	require.NoError(t, ts.SetSort("tie-table", "name"))
	result, err := ts.Render(cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, recordIDs(result.HTML))

	// Equal keys keep their relative order in the descending pass too.
	require.NoError(t, ts.SetSort("tie-table", "name"))
	result, err = ts.Render(cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, recordIDs(result.HTML))
}

func TestColumnFilter_SelectionFlow(t *testing.T) {
	ts := newTableService()
	rows := makeRows(120) // 20 noncompliant (every 6th)
	cfg := renderConfig("filter-table", rows, 50)
	_, err := ts.Render(cfg)
	require.NoError(t, err)

	require.NoError(t, ts.ToggleSelection("filter-table", "status", "noncompliant"))
	result, err := ts.Render(cfg)
	require.NoError(t, err)
	assert.Equal(t, 20, result.TotalItems)
	assert.Equal(t, 1, result.ActiveFilters)
	assert.Contains(t, result.HTML, "1 filter<")

	// Unchecking the only selected value removes the filter entry, not
	// leaves it as an empty set.
	require.NoError(t, ts.ToggleSelection("filter-table", "status", "noncompliant"))
	state := ts.Store().State("filter-table")
	_, present := state.ColumnFilters["status"]
	assert.False(t, present)

	result, err = ts.Render(cfg)
	require.NoError(t, err)
	assert.Equal(t, 120, result.TotalItems)
	assert.Equal(t, 0, result.ActiveFilters)
}

func TestColumnFilter_ClearDecrementsBadgeByOne(t *testing.T) {
	ts := newTableService()
	cfg := renderConfig("badge-table", makeRows(60), 20)
	_, err := ts.Render(cfg)
	require.NoError(t, err)

	require.NoError(t, ts.ToggleSelection("badge-table", "status", "compliant"))
	require.NoError(t, ts.SetTextFilter("badge-table", "name", "Device"))
	result, err := ts.Render(cfg)
	require.NoError(t, err)
	require.Equal(t, 2, result.ActiveFilters)

	require.NoError(t, ts.ClearColumnFilter("badge-table", "status"))
	result, err = ts.Render(cfg)
	require.NoError(t, err)
	assert.Equal(t, 1, result.ActiveFilters)
}

func TestColumnFilter_WhitespaceTextRemovesFilter(t *testing.T) {
	ts := newTableService()
	cfg := renderConfig("ws-table", makeRows(10), 50)
	_, err := ts.Render(cfg)
	require.NoError(t, err)

	require.NoError(t, ts.SetTextFilter("ws-table", "name", "Device 003"))
	result, err := ts.Render(cfg)
	require.NoError(t, err)
	require.Equal(t, 1, result.TotalItems)

	require.NoError(t, ts.SetTextFilter("ws-table", "name", "   "))
	state := ts.Store().State("ws-table")
	_, present := state.ColumnFilters["name"]
	assert.False(t, present)
}

// A filter shrinking the result set below the stored page clamps the next
// render to the last valid page, both from page 1 and from a later page.
func TestRender_ClampsPageWhenFilterShrinksResults(t *testing.T) {
	ts := newTableService()
	rows := makeRows(120)
	cfg := renderConfig("clamp-table", rows, 10)
	_, err := ts.Render(cfg)
	require.NoError(t, err)

	// Shrink while on page 1: stays on page 1.
	require.NoError(t, ts.ToggleSelection("clamp-table", "status", "noncompliant"))
	result, err := ts.Render(cfg)
	require.NoError(t, err)
	assert.Equal(t, 1, result.CurrentPage)
	assert.Equal(t, 20, result.TotalItems)
	require.NoError(t, ts.ClearColumnFilter("clamp-table", "status"))

	// Shrink while deep in the dataset: page 12 of the unfiltered rows,
	// then a filter leaving 2 pages. ToggleSelection itself resets to
	// page 1; force a stale page to exercise the render-side clamp.
	_, err = ts.Render(cfg)
	require.NoError(t, err)
	require.NoError(t, ts.SetPage("clamp-table", 12))
	state := ts.Store().State("clamp-table")
	state.ColumnFilters["status"] = columnFilterSelected("noncompliant")

	result, err = ts.Render(cfg)
	require.NoError(t, err)
	assert.Equal(t, 2, result.CurrentPage)
	assert.Equal(t, 2, result.TotalPages)
	assert.Contains(t, result.HTML, "Showing 11-20 of 20")
}

func TestReset(t *testing.T) {
	ts := newTableService()
	cfg := renderConfig("reset-table", makeRows(100), 10)
	_, err := ts.Render(cfg)
	require.NoError(t, err)

	require.NoError(t, ts.SetSort("reset-table", "name"))
	require.NoError(t, ts.SetPage("reset-table", 4))
	require.NoError(t, ts.SetTextFilter("reset-table", "name", "Device 01"))

	ts.Reset("reset-table")
	result, err := ts.Render(cfg)
	require.NoError(t, err)
	assert.Equal(t, 1, result.CurrentPage)
	assert.Empty(t, result.SortKey)
	assert.Equal(t, 0, result.ActiveFilters)
	assert.Equal(t, 100, result.TotalItems)
}

func TestGetDataAndColumns(t *testing.T) {
	ts := newTableService()

	// Unrendered containers return empty, not nil and not an error.
	assert.Empty(t, ts.GetData("never-rendered"))
	assert.Empty(t, ts.GetColumns("never-rendered"))

	cfg := renderConfig("export-table", makeRows(30), 10)
	_, err := ts.Render(cfg)
	require.NoError(t, err)

	require.NoError(t, ts.SetTextFilter("export-table", "status", "noncompliant"))
	_, err = ts.Render(cfg)
	require.NoError(t, err)

	// GetData reflects the full filtered dataset, not just the page.
	data := ts.GetData("export-table")
	assert.Len(t, data, 5)
	assert.Len(t, ts.GetColumns("export-table"), 3)
}

func TestMutatorsOnUnknownContainer(t *testing.T) {
	ts := newTableService()
	assert.Error(t, ts.SetSort("ghost", "name"))
	assert.Error(t, ts.SetPage("ghost", 2))
	assert.Error(t, ts.SetTextFilter("ghost", "name", "x"))
	assert.Error(t, ts.ToggleSelection("ghost", "status", "ok"))
	assert.Error(t, ts.ClearColumnFilter("ghost", "status"))
}

func TestPageWindow(t *testing.T) {
	testCases := []struct {
		name     string
		current  int
		total    int
		expected []int
	}{
		{name: "Fewer pages than window", current: 1, total: 3, expected: []int{1, 2, 3}},
		{name: "Centered", current: 5, total: 9, expected: []int{3, 4, 5, 6, 7}},
		{name: "Clamped at start", current: 1, total: 9, expected: []int{1, 2, 3, 4, 5}},
		{name: "Clamped near start", current: 2, total: 9, expected: []int{1, 2, 3, 4, 5}},
		{name: "Shifted left at end", current: 9, total: 9, expected: []int{5, 6, 7, 8, 9}},
		{name: "Near end keeps full window", current: 8, total: 9, expected: []int{5, 6, 7, 8, 9}},
		{name: "Single page", current: 1, total: 1, expected: []int{1}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, pageWindow(tc.current, tc.total))
		})
	}
}

func TestRender_EscapesRecordContent(t *testing.T) {
	ts := newTableService()
	rows := []record.Record{
		{"id": "inj", "name": `<img src=x onerror=alert(1)>`, "status": "ok", "index": float64(0)},
	}
	cfg := renderConfig("xss-table", rows, 50)

	result, err := ts.Render(cfg)
	require.NoError(t, err)
	assert.NotContains(t, result.HTML, "<img")
	assert.Contains(t, result.HTML, "&lt;img")
}

// Renders and state mutations on one container from many goroutines, the
// way gin serves them. Run with -race; the final state is deterministic
// because mutations serialize through the store.
func TestConcurrentRenderAndMutate(t *testing.T) {
	ts := newTableService()
	cfg := renderConfig("concurrent-table", makeRows(120), 10)
	_, err := ts.Render(cfg)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := ts.Render(cfg)
			assert.NoError(t, err)
		}()
		go func(page int) {
			defer wg.Done()
			assert.NoError(t, ts.SetSort("concurrent-table", "name"))
			assert.NoError(t, ts.SetPage("concurrent-table", page%12+1))
			assert.NoError(t, ts.ToggleSelection("concurrent-table", "status", "noncompliant"))
		}(i)
	}
	wg.Wait()

	// 50 toggles of the same value cancel out, and every toggle lands the
	// container back on page 1.
	result, err := ts.Render(cfg)
	require.NoError(t, err)
	assert.Equal(t, 120, result.TotalItems)
	assert.Equal(t, 0, result.ActiveFilters)
	assert.Equal(t, 1, result.CurrentPage)
	assert.Equal(t, "name", result.SortKey)
}
