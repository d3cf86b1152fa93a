package services

import (
	"sort"

	"github.com/tenantscope/dashboard/internal/domain/models"
	"github.com/tenantscope/dashboard/pkg/constants"
	"github.com/tenantscope/dashboard/pkg/errors"
	"github.com/tenantscope/dashboard/pkg/record"
)

// AnalyticsService computes the simple reductions behind the dashboard's
// charts and KPI tiles: group-by counts and totals over a view's dataset.
type AnalyticsService struct {
	datasets *DatasetService
}

// NewAnalyticsService creates an analytics service.
func NewAnalyticsService(datasets *DatasetService) *AnalyticsService {
	return &AnalyticsService{datasets: datasets}
}

// Summary counts records per distinct value of groupBy (donut-chart
// slices). Null and missing values land in the "(empty)" bucket. Slices
// come back largest first, ties broken by label.
func (as *AnalyticsService) Summary(viewName, groupBy string) ([]models.ChartSlice, error) {
	rows, view, err := as.datasets.DataForView(viewName)
	if err != nil {
		return nil, err
	}
	if !view.HasColumn(groupBy) {
		return nil, errors.NewValidationError(groupBy, "unknown group-by field")
	}

	counts := make(map[string]int)
	for _, rec := range rows {
		value := record.Stringify(rec.Resolve(groupBy))
		if value == "" {
			value = constants.EmptyValueLabel
		}
		counts[value]++
	}

	slices := make([]models.ChartSlice, 0, len(counts))
	for label, count := range counts {
		slices = append(slices, models.ChartSlice{Label: label, Count: count})
	}
	sort.Slice(slices, func(i, j int) bool {
		if slices[i].Count != slices[j].Count {
			return slices[i].Count > slices[j].Count
		}
		return slices[i].Label < slices[j].Label
	})
	return slices, nil
}

// Count returns the number of records behind a view (KPI tiles).
func (as *AnalyticsService) Count(viewName string) (int, error) {
	rows, _, err := as.datasets.DataForView(viewName)
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}
