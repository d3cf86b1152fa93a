package services

import (
	"github.com/tenantscope/dashboard/pkg/expression"
)

// ServiceManager wires the dashboard services together
type ServiceManager struct {
	Views     *ViewRegistry
	Tables    *TableService
	Datasets  *DatasetService
	Analytics *AnalyticsService
	Export    *ExportService
}

// NewServiceManager creates a new service manager with all dependencies wired
func NewServiceManager(source DataSource) *ServiceManager {
	sm := &ServiceManager{}

	// Initialize services in dependency order
	sm.Views = NewViewRegistry()
	sm.Tables = NewTableService(NewSessionStore())
	sm.Datasets = NewDatasetService(source, sm.Views, expression.NewEngine())
	sm.Analytics = NewAnalyticsService(sm.Datasets)
	sm.Export = NewExportService(sm.Tables)

	return sm
}
