package services

import (
	"sort"
	"sync"

	"github.com/tenantscope/dashboard/internal/domain/models"
	"github.com/tenantscope/dashboard/pkg/errors"
)

// ViewRegistry holds the dashboard's registered views. Views are seeded at
// bootstrap and read-only afterwards.
type ViewRegistry struct {
	mu    sync.RWMutex
	views map[string]models.ViewDefinition
}

// NewViewRegistry creates an empty registry.
func NewViewRegistry() *ViewRegistry {
	return &ViewRegistry{views: make(map[string]models.ViewDefinition)}
}

// Register adds or replaces a view definition.
func (r *ViewRegistry) Register(view models.ViewDefinition) error {
	if view.Name == "" {
		return errors.NewValidationError("name", "view name is required")
	}
	if view.Dataset == "" {
		return errors.NewValidationError("dataset", "view dataset is required")
	}
	if len(view.Columns) == 0 {
		return errors.NewValidationError("columns", "view needs at least one column")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.views[view.Name] = view
	return nil
}

// View returns a registered view by name.
func (r *ViewRegistry) View(name string) (models.ViewDefinition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	view, ok := r.views[name]
	if !ok {
		return models.ViewDefinition{}, errors.NewNotFoundError("view", name)
	}
	return view, nil
}

// Names lists the registered view names, sorted.
func (r *ViewRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.views))
	for name := range r.views {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
