package services

import (
	"bytes"
	"encoding/csv"
	"strings"

	"github.com/google/uuid"

	"github.com/tenantscope/dashboard/internal/domain/models"
	"github.com/tenantscope/dashboard/pkg/errors"
	"github.com/tenantscope/dashboard/pkg/record"
)

// ExportService turns a container's last-rendered table — filtered and
// sorted, all pages — into a CSV download.
type ExportService struct {
	tables *TableService
}

// NewExportService creates an export service.
func NewExportService(tables *TableService) *ExportService {
	return &ExportService{tables: tables}
}

// CSV builds the CSV for a rendered container and a download filename
// carrying a short unique suffix. Containers that were never rendered
// return a NotFoundError.
func (es *ExportService) CSV(containerID string) (string, []byte, error) {
	columns := es.tables.GetColumns(containerID)
	if len(columns) == 0 {
		return "", nil, errors.NewNotFoundError("table container", containerID)
	}
	rows := es.tables.GetData(containerID)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := make([]string, len(columns))
	for i, col := range columns {
		header[i] = col.Label
	}
	if err := w.Write(header); err != nil {
		return "", nil, errors.NewInternalError("csv write failed", err)
	}

	line := make([]string, len(columns))
	for _, rec := range rows {
		for i, col := range columns {
			line[i] = cellText(col, rec)
		}
		if err := w.Write(line); err != nil {
			return "", nil, errors.NewInternalError("csv write failed", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", nil, errors.NewInternalError("csv write failed", err)
	}

	filename := containerID + "-" + uuid.NewString()[:8] + ".csv"
	return filename, buf.Bytes(), nil
}

// cellText is the plain-text sibling of the HTML cell formatter: arrays
// join with "; ", null stays empty, everything else stringifies. Column
// formatters emit HTML and are deliberately not used here.
func cellText(col models.ColumnSpec, rec record.Record) string {
	switch value := rec.Resolve(col.Key).(type) {
	case []interface{}, []string:
		return strings.Join(record.Elements(value), "; ")
	default:
		return record.Stringify(value)
	}
}
