package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tenantscope/dashboard/internal/application/services"
)

type ExportHandler struct {
	svc *services.ServiceManager
}

func NewExportHandler(svc *services.ServiceManager) *ExportHandler {
	return &ExportHandler{svc: svc}
}

// DownloadCSV handles GET /api/export/:container/csv
// Streams the container's last-rendered dataset (filtered and sorted,
// all pages) as a CSV attachment.
func (h *ExportHandler) DownloadCSV(c *gin.Context) {
	containerID := c.Param("container")

	filename, data, err := h.svc.Export.CSV(containerID)
	if err != nil {
		RespondAppError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}
