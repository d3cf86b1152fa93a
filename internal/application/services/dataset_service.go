package services

import (
	"log"
	"sort"
	"strings"

	"github.com/tenantscope/dashboard/internal/domain/models"
	"github.com/tenantscope/dashboard/pkg/errors"
	"github.com/tenantscope/dashboard/pkg/expression"
	"github.com/tenantscope/dashboard/pkg/filter"
	"github.com/tenantscope/dashboard/pkg/record"
)

// DataSource is the boundary to the loaded snapshot. Absent datasets
// return an empty slice, never nil.
type DataSource interface {
	GetData(dataset string) []record.Record
	Info() models.SnapshotInfo
}

// DatasetService answers dataset-level questions: raw data for a view,
// free-text search and filter-expression queries. It never mutates the
// source records.
type DatasetService struct {
	source DataSource
	views  *ViewRegistry
	engine *expression.Engine
}

// NewDatasetService creates a dataset service.
func NewDatasetService(source DataSource, views *ViewRegistry, engine *expression.Engine) *DatasetService {
	return &DatasetService{source: source, views: views, engine: engine}
}

// DataForView returns the records backing a registered view.
func (ds *DatasetService) DataForView(viewName string) ([]record.Record, models.ViewDefinition, error) {
	view, err := ds.views.View(viewName)
	if err != nil {
		return nil, models.ViewDefinition{}, err
	}
	return ds.source.GetData(view.Dataset), view, nil
}

// Search runs a free-text search over a view's search fields.
func (ds *DatasetService) Search(viewName, term string) ([]record.Record, error) {
	rows, view, err := ds.DataForView(viewName)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(term) == "" {
		return rows, nil
	}
	return filter.Apply(rows, filter.Config{
		Search:       term,
		SearchFields: view.SearchFields,
	}), nil
}

// QueryWithFilter evaluates a filter expression per record, then applies
// optional sorting and a limit. Expression fields are validated against
// the view's columns before any row is touched. A row that fails to
// evaluate is excluded and logged, never fatal.
func (ds *DatasetService) QueryWithFilter(viewName, filterExpr, sortField, sortDirection string, limit int) ([]record.Record, error) {
	rows, view, err := ds.DataForView(viewName)
	if err != nil {
		return nil, err
	}

	if filterExpr != "" {
		fields, err := expression.Fields(filterExpr)
		if err != nil {
			return nil, errors.NewExpressionError(filterExpr, err)
		}
		for _, field := range fields {
			if !view.HasColumn(field) {
				return nil, errors.NewValidationError(field, "unknown field in filter expression")
			}
		}
		if err := ds.engine.Validate(filterExpr); err != nil {
			return nil, errors.NewExpressionError(filterExpr, err)
		}

		matched := make([]record.Record, 0, len(rows))
		for _, rec := range rows {
			ok, err := ds.engine.EvaluateBool(filterExpr, rec)
			if err != nil {
				log.Printf("⚠️  Filter expression error on view '%s': %v", viewName, err)
				continue
			}
			if ok {
				matched = append(matched, rec)
			}
		}
		rows = matched
	}

	if sortField != "" {
		desc := strings.EqualFold(sortDirection, "desc")
		sorted := make([]record.Record, len(rows))
		copy(sorted, rows)
		sort.SliceStable(sorted, func(i, j int) bool {
			return record.Compare(sorted[i].Resolve(sortField), sorted[j].Resolve(sortField), desc) < 0
		})
		rows = sorted
	}

	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	return rows, nil
}

// SnapshotInfo describes the loaded snapshot.
func (ds *DatasetService) SnapshotInfo() models.SnapshotInfo {
	return ds.source.Info()
}
