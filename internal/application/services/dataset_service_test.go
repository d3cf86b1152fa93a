package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tenantscope/dashboard/internal/domain/models"
	"github.com/tenantscope/dashboard/pkg/expression"
	"github.com/tenantscope/dashboard/pkg/record"
)

// fakeSource stands in for the snapshot store.
type fakeSource struct {
	datasets map[string][]record.Record
}

func (f *fakeSource) GetData(dataset string) []record.Record {
	if rows, ok := f.datasets[dataset]; ok {
		return rows
	}
	return []record.Record{}
}

func (f *fakeSource) Info() models.SnapshotInfo {
	counts := make(map[string]int)
	for name, rows := range f.datasets {
		counts[name] = len(rows)
	}
	return models.SnapshotInfo{
		TenantName:  "Contoso",
		CollectedAt: time.Date(2026, 8, 30, 6, 0, 0, 0, time.UTC),
		Datasets:    counts,
	}
}

func vulnerabilityView() models.ViewDefinition {
	return models.ViewDefinition{
		Name:    "vulnerabilities",
		Title:   "Vulnerabilities",
		Dataset: "vulnerabilities",
		Columns: []models.ColumnSpec{
			{Key: "cveId", Label: "CVE"},
			{Key: "severity", Label: "Severity", Filterable: true},
			{Key: "cvssScore", Label: "CVSS"},
			{Key: "affectedDevices", Label: "Affected"},
		},
		SearchFields: []string{"cveId", "severity"},
	}
}

func newDatasetService(t *testing.T) *DatasetService {
	t.Helper()
	source := &fakeSource{datasets: map[string][]record.Record{
		"vulnerabilities": {
			{"cveId": "CVE-2026-0001", "severity": "Critical", "cvssScore": 9.8, "affectedDevices": float64(14)},
			{"cveId": "CVE-2026-0002", "severity": "High", "cvssScore": 8.1, "affectedDevices": float64(3)},
			{"cveId": "CVE-2026-0003", "severity": "Low", "cvssScore": 3.2, "affectedDevices": float64(1)},
			{"cveId": "CVE-2026-0004", "severity": "High", "cvssScore": 7.4, "affectedDevices": float64(9)},
		},
	}}

	views := NewViewRegistry()
	require.NoError(t, views.Register(vulnerabilityView()))
	return NewDatasetService(source, views, expression.NewEngine())
}

func TestDataForView(t *testing.T) {
	ds := newDatasetService(t)

	rows, view, err := ds.DataForView("vulnerabilities")
	require.NoError(t, err)
	assert.Len(t, rows, 4)
	assert.Equal(t, "vulnerabilities", view.Dataset)

	_, _, err = ds.DataForView("nope")
	assert.Error(t, err)
}

func TestSearch(t *testing.T) {
	ds := newDatasetService(t)

	rows, err := ds.Search("vulnerabilities", "critical")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "CVE-2026-0001", rows[0].GetString("cveId"))

	// Blank terms return everything.
	rows, err = ds.Search("vulnerabilities", "  ")
	require.NoError(t, err)
	assert.Len(t, rows, 4)
}

func TestQueryWithFilter(t *testing.T) {
	ds := newDatasetService(t)

	rows, err := ds.QueryWithFilter("vulnerabilities", "severity == 'High' && cvssScore > 7", "cvssScore", "desc", 0)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "CVE-2026-0002", rows[0].GetString("cveId"))
	assert.Equal(t, "CVE-2026-0004", rows[1].GetString("cveId"))
}

func TestQueryWithFilter_Limit(t *testing.T) {
	ds := newDatasetService(t)

	rows, err := ds.QueryWithFilter("vulnerabilities", "", "cvssScore", "desc", 2)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "CVE-2026-0001", rows[0].GetString("cveId"))
}

func TestQueryWithFilter_UnknownFieldRejected(t *testing.T) {
	ds := newDatasetService(t)

	_, err := ds.QueryWithFilter("vulnerabilities", "nonexistent == 'x'", "", "", 0)
	assert.Error(t, err)
}

func TestQueryWithFilter_InvalidExpression(t *testing.T) {
	ds := newDatasetService(t)

	_, err := ds.QueryWithFilter("vulnerabilities", "severity == == 'High'", "", "", 0)
	assert.Error(t, err)
}

func TestSnapshotInfo(t *testing.T) {
	ds := newDatasetService(t)
	info := ds.SnapshotInfo()
	assert.Equal(t, "Contoso", info.TenantName)
	assert.Equal(t, 4, info.Datasets["vulnerabilities"])
}
