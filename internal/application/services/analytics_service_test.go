package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tenantscope/dashboard/internal/domain/models"
)

func TestSummary(t *testing.T) {
	ds := newDatasetService(t)
	as := NewAnalyticsService(ds)

	slices, err := as.Summary("vulnerabilities", "severity")
	require.NoError(t, err)
	assert.Equal(t, []models.ChartSlice{
		{Label: "High", Count: 2},
		{Label: "Critical", Count: 1},
		{Label: "Low", Count: 1},
	}, slices)
}

func TestSummary_UnknownField(t *testing.T) {
	ds := newDatasetService(t)
	as := NewAnalyticsService(ds)

	_, err := as.Summary("vulnerabilities", "nope")
	assert.Error(t, err)
}

func TestCount(t *testing.T) {
	ds := newDatasetService(t)
	as := NewAnalyticsService(ds)

	n, err := as.Count("vulnerabilities")
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	_, err = as.Count("ghost")
	assert.Error(t, err)
}
