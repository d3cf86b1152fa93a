package services

import (
	"sync"

	"github.com/tenantscope/dashboard/internal/domain/models"
	"github.com/tenantscope/dashboard/pkg/constants"
	"github.com/tenantscope/dashboard/pkg/filter"
	"github.com/tenantscope/dashboard/pkg/record"
)

// SessionStore owns the per-container table view state plus the
// last-rendered dataset and columns of each container (what CSV export
// reads). It is injected into TableService rather than living as a
// package global, so the host decides its lifecycle: one store per
// logical page, discarded on navigation, and ids can never collide across
// independent stores.
type SessionStore struct {
	mu       sync.RWMutex
	states   map[string]*models.TableViewState
	rendered map[string]renderedTable
}

type renderedTable struct {
	data    []record.Record
	columns []models.ColumnSpec
}

// NewSessionStore creates an empty store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		states:   make(map[string]*models.TableViewState),
		rendered: make(map[string]renderedTable),
	}
}

// State returns the container's state, or nil if it was never rendered.
// Concurrent callers must not mutate through the returned pointer; state
// mutations go through update.
func (s *SessionStore) State(containerID string) *models.TableViewState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.states[containerID]
}

// snapshot returns a copy of the container's state, creating it first if
// needed. The copy owns its ColumnFilters map, so the render pipeline can
// read it without holding the lock while other requests mutate the
// container.
func (s *SessionStore) snapshot(containerID string, pageSize int) models.TableViewState {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.states[containerID]
	if !ok {
		state = s.create(containerID, pageSize)
	}

	snap := *state
	snap.ColumnFilters = make(map[string]filter.ColumnFilter, len(state.ColumnFilters))
	for key, f := range state.ColumnFilters {
		snap.ColumnFilters[key] = f
	}
	return snap
}

// update runs fn on the container's state under the write lock. Returns
// false when the container is unknown.
func (s *SessionStore) update(containerID string, fn func(*models.TableViewState)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.states[containerID]
	if !ok {
		return false
	}
	fn(state)
	return true
}

// clampPage bounds the container's stored page to [1, totalPages] and
// returns the resulting page.
func (s *SessionStore) clampPage(containerID string, totalPages int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.states[containerID]
	if !ok {
		return 1
	}
	if state.CurrentPage > totalPages {
		state.CurrentPage = totalPages
	}
	if state.CurrentPage < 1 {
		state.CurrentPage = 1
	}
	return state.CurrentPage
}

// initDefaults creates the container's state with a default sort when no
// state exists yet. Existing state is left untouched.
func (s *SessionStore) initDefaults(containerID string, pageSize int, sortKey string, sortDesc bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.states[containerID]; ok {
		return
	}
	state := s.create(containerID, pageSize)
	state.SortKey = sortKey
	state.SortDesc = sortDesc
}

// create adds a fresh state; callers hold the write lock.
func (s *SessionStore) create(containerID string, pageSize int) *models.TableViewState {
	if pageSize <= 0 {
		pageSize = constants.DefaultPageSize
	}
	state := &models.TableViewState{
		CurrentPage:   1,
		PageSize:      pageSize,
		ColumnFilters: make(map[string]filter.ColumnFilter),
	}
	s.states[containerID] = state
	return state
}

// Reset clears the container's sort/filter/page state back to defaults
// while keeping the container known.
func (s *SessionStore) Reset(containerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if state, ok := s.states[containerID]; ok {
		state.CurrentPage = 1
		state.SortKey = ""
		state.SortDesc = false
		state.ColumnFilters = make(map[string]filter.ColumnFilter)
	}
}

func (s *SessionStore) setRendered(containerID string, data []record.Record, columns []models.ColumnSpec) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rendered[containerID] = renderedTable{data: data, columns: columns}
}

// RenderedData returns the filtered+sorted dataset of the container's last
// render. Unrendered containers return an empty slice.
func (s *SessionStore) RenderedData(containerID string) []record.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if rt, ok := s.rendered[containerID]; ok {
		return rt.data
	}
	return []record.Record{}
}

// RenderedColumns returns the column specs of the container's last render.
// Unrendered containers return an empty slice.
func (s *SessionStore) RenderedColumns(containerID string) []models.ColumnSpec {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if rt, ok := s.rendered[containerID]; ok {
		return rt.columns
	}
	return []models.ColumnSpec{}
}
