package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/tenantscope/dashboard/internal/application/services"
	"github.com/tenantscope/dashboard/pkg/errors"
)

type AnalyticsHandler struct {
	svc *services.ServiceManager
}

func NewAnalyticsHandler(svc *services.ServiceManager) *AnalyticsHandler {
	return &AnalyticsHandler{svc: svc}
}

// Summary handles GET /api/analytics/:view/summary
// Returns donut-chart slices: record counts grouped by ?group_by=<field>.
func (h *AnalyticsHandler) Summary(c *gin.Context) {
	viewName := c.Param("view")
	groupBy := c.Query("group_by")

	if groupBy == "" {
		RespondAppError(c, errors.NewValidationError("group_by", "group_by query parameter is required"))
		return
	}

	HandleGetEnvelope(c, "slices", func() (interface{}, error) {
		return h.svc.Analytics.Summary(viewName, groupBy)
	})
}

// Count handles GET /api/analytics/:view/count
func (h *AnalyticsHandler) Count(c *gin.Context) {
	viewName := c.Param("view")

	HandleGetEnvelope(c, "count", func() (interface{}, error) {
		return h.svc.Analytics.Count(viewName)
	})
}
