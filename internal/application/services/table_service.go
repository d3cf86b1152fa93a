package services

import (
	"log"
	"sort"

	"github.com/tenantscope/dashboard/internal/domain/models"
	"github.com/tenantscope/dashboard/pkg/constants"
	"github.com/tenantscope/dashboard/pkg/errors"
	"github.com/tenantscope/dashboard/pkg/filter"
	"github.com/tenantscope/dashboard/pkg/record"
)

// TableService is the table view controller: it owns the render pipeline
// (column filters → stable sort → clamp → page window → HTML) and the
// state mutations behind every sort click, page click and filter change.
// All state lives in the injected SessionStore.
type TableService struct {
	store *SessionStore
}

// NewTableService creates a table service over the given session store.
func NewTableService(store *SessionStore) *TableService {
	return &TableService{store: store}
}

// Store exposes the underlying session store (export reads through it).
func (ts *TableService) Store() *SessionStore {
	return ts.store
}

// Render runs the full pipeline for one container and returns the
// rendered fragment plus its metadata. Re-invoking with the same config
// and unchanged state is deterministic and side-effect free apart from
// refreshing the stored render.
func (ts *TableService) Render(cfg models.TableRenderConfig) (*models.TableRenderResult, error) {
	if cfg.ContainerID == "" {
		log.Printf("⚠️  Table render called without a container id (title=%q)", cfg.Title)
		return nil, errors.NewValidationError("container_id", "container id is required")
	}
	if cfg.Columns == nil {
		log.Printf("⚠️  Table render for '%s' called without columns", cfg.ContainerID)
		return nil, errors.NewValidationError("columns", "at least one column is required")
	}

	// The pipeline works on a snapshot of the state so concurrent requests
	// mutating the same container never race with the render read side.
	state := ts.store.snapshot(cfg.ContainerID, cfg.PageSize)

	// Stage 1: column filters.
	rows := filter.ApplyColumnFilters(cfg.Data, state.ColumnFilters)

	// Stage 2: stable sort on a copy; the filtered slice may alias the
	// caller's data and records are read-only inputs.
	if state.SortKey != "" {
		sorted := make([]record.Record, len(rows))
		copy(sorted, rows)
		key, desc := state.SortKey, state.SortDesc
		sort.SliceStable(sorted, func(i, j int) bool {
			return record.Compare(sorted[i].Resolve(key), sorted[j].Resolve(key), desc) < 0
		})
		rows = sorted
	}

	// Stage 3: clamp the page. A filter can shrink the result set below
	// the stored page; rendering an intentional empty page would strand
	// the user, so the last valid page wins. The clamp writes back through
	// the store's lock.
	totalItems := len(rows)
	totalPages := (totalItems + state.PageSize - 1) / state.PageSize
	if totalPages < 1 {
		totalPages = 1
	}
	state.CurrentPage = ts.store.clampPage(cfg.ContainerID, totalPages)

	// Stage 4: page window.
	from := (state.CurrentPage - 1) * state.PageSize
	to := from + state.PageSize
	if to > totalItems {
		to = totalItems
	}
	if from > totalItems {
		from = totalItems
	}
	pageRows := rows[from:to]

	// Stage 5: render.
	html := renderTable(cfg, &state, pageRows, rows, totalItems, totalPages)

	// Stage 6: persist the post-filter post-sort dataset for export.
	ts.store.setRendered(cfg.ContainerID, rows, cfg.Columns)

	showingFrom := 0
	if totalItems > 0 {
		showingFrom = from + 1
	}
	return &models.TableRenderResult{
		ContainerID:    cfg.ContainerID,
		HTML:           html,
		CurrentPage:    state.CurrentPage,
		TotalPages:     totalPages,
		TotalItems:     totalItems,
		ShowingFrom:    showingFrom,
		ShowingTo:      to,
		SortKey:        state.SortKey,
		SortDesc:       state.SortDesc,
		ActiveFilters:  state.ActiveFilterCount(),
		DebounceMillis: constants.FilterDebounceMillis,
	}, nil
}

// InitDefaults creates the container's state with a view's default sort
// when no state exists yet. Existing state is left untouched, so user
// interactions survive re-renders.
func (ts *TableService) InitDefaults(containerID string, pageSize int, sortKey string, sortDesc bool) {
	if containerID == "" {
		return
	}
	ts.store.initDefaults(containerID, pageSize, sortKey, sortDesc)
}

// SetSort applies the sort click contract: a new key sorts ascending, the
// active key toggles direction. Any sort change resets to page 1.
func (ts *TableService) SetSort(containerID, key string) error {
	ok := ts.store.update(containerID, func(state *models.TableViewState) {
		if state.SortKey == key {
			state.SortDesc = !state.SortDesc
		} else {
			state.SortKey = key
			state.SortDesc = false
		}
		state.CurrentPage = 1
	})
	if !ok {
		return ts.unknownContainer(containerID)
	}
	return nil
}

// SetPage moves the container to the given page. Out-of-range values are
// clamped by the next render.
func (ts *TableService) SetPage(containerID string, page int) error {
	if page < 1 {
		page = 1
	}
	ok := ts.store.update(containerID, func(state *models.TableViewState) {
		state.CurrentPage = page
	})
	if !ok {
		return ts.unknownContainer(containerID)
	}
	return nil
}

// SetTextFilter sets or clears a column's free-text filter. Whitespace-only
// text removes the filter entirely. Filter changes reset to page 1.
func (ts *TableService) SetTextFilter(containerID, key, text string) error {
	ok := ts.store.update(containerID, func(state *models.TableViewState) {
		f := filter.ColumnFilter{Text: text}
		if !f.Active() {
			delete(state.ColumnFilters, key)
		} else {
			state.ColumnFilters[key] = f
		}
		state.CurrentPage = 1
	})
	if !ok {
		return ts.unknownContainer(containerID)
	}
	return nil
}

// ToggleSelection flips one checkbox value in a column's selection filter.
// An emptied selection deletes the column's filter entry rather than
// leaving an empty set behind. Filter changes reset to page 1.
func (ts *TableService) ToggleSelection(containerID, key, value string) error {
	ok := ts.store.update(containerID, func(state *models.TableViewState) {
		f := state.ColumnFilters[key]

		// Build a fresh slice rather than splicing in place; render
		// snapshots may still hold the old backing array.
		selected := make([]string, 0, len(f.Selected)+1)
		found := false
		for _, s := range f.Selected {
			if s == value {
				found = true
				continue
			}
			selected = append(selected, s)
		}
		if !found {
			selected = append(selected, value)
		}
		f.Selected = selected

		if len(f.Selected) == 0 && f.Text == "" {
			delete(state.ColumnFilters, key)
		} else {
			state.ColumnFilters[key] = f
		}
		state.CurrentPage = 1
	})
	if !ok {
		return ts.unknownContainer(containerID)
	}
	return nil
}

// ClearColumnFilter removes a column's filter. Resets to page 1.
func (ts *TableService) ClearColumnFilter(containerID, key string) error {
	ok := ts.store.update(containerID, func(state *models.TableViewState) {
		delete(state.ColumnFilters, key)
		state.CurrentPage = 1
	})
	if !ok {
		return ts.unknownContainer(containerID)
	}
	return nil
}

// Reset clears the container's page/sort/filter state back to defaults.
func (ts *TableService) Reset(containerID string) {
	ts.store.Reset(containerID)
}

// GetData returns the filtered+sorted dataset from the container's last
// render ("whatever the table currently shows", all pages). Unrendered
// containers return an empty slice.
func (ts *TableService) GetData(containerID string) []record.Record {
	return ts.store.RenderedData(containerID)
}

// GetColumns returns the column specs from the container's last render.
// Unrendered containers return an empty slice.
func (ts *TableService) GetColumns(containerID string) []models.ColumnSpec {
	return ts.store.RenderedColumns(containerID)
}

func (ts *TableService) unknownContainer(containerID string) error {
	log.Printf("⚠️  Unknown table container '%s'", containerID)
	return errors.NewNotFoundError("table container", containerID)
}
