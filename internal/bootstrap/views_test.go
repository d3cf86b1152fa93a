package bootstrap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tenantscope/dashboard/internal/application/services"
	"github.com/tenantscope/dashboard/pkg/record"
)

func TestRegisterBuiltinViews(t *testing.T) {
	registry := services.NewViewRegistry()
	require.NoError(t, RegisterBuiltinViews(registry))

	names := registry.Names()
	assert.Len(t, names, 11)

	for _, name := range []string{"users", "guests", "devices", "vulnerabilities", "licenses"} {
		view, err := registry.View(name)
		require.NoError(t, err, name)
		assert.NotEmpty(t, view.Dataset, name)
		assert.NotEmpty(t, view.Columns, name)
		assert.NotEmpty(t, view.SearchFields, name)
	}
}

func TestBadgeFormatter(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  string
	}{
		{"Severity", "Critical", `<span class="badge badge-critical">Critical</span>`},
		{"MultiWord", "Service Degradation", `<span class="badge badge-service-degradation">Service Degradation</span>`},
		{"Nil", nil, "--"},
		{"EscapesMarkup", "<img>", `<span class="badge badge-&lt;img&gt;">&lt;img&gt;</span>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, badge(tt.value, nil))
		})
	}
}

func TestYesNoFormatter(t *testing.T) {
	assert.Equal(t, "Yes", yesNo(true, nil))
	assert.Equal(t, "No", yesNo(false, nil))
	assert.Equal(t, "Yes", yesNo("true", nil))
	assert.Equal(t, "No", yesNo("0", nil))
	assert.Equal(t, "--", yesNo(nil, nil))
}

func TestDevicesRowClass(t *testing.T) {
	view := devicesView()
	require.NotNil(t, view.RowClass)

	assert.Equal(t, "row-noncompliant", view.RowClass(record.Record{"complianceState": "noncompliant"}))
	assert.Equal(t, "", view.RowClass(record.Record{"complianceState": "compliant"}))
}
