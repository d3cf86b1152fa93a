package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/tenantscope/dashboard/internal/application/services"
)

type DataHandler struct {
	svc *services.ServiceManager
}

func NewDataHandler(svc *services.ServiceManager) *DataHandler {
	return &DataHandler{svc: svc}
}

// QueryRequest represents a query request
type QueryRequest struct {
	View          string `json:"view" binding:"required"`
	FilterExpr    string `json:"filter_expr"`
	SortField     string `json:"sort_field"`
	SortDirection string `json:"sort_direction"`
	Limit         int    `json:"limit"`
}

// Query handles POST /api/data/query
func (h *DataHandler) Query(c *gin.Context) {
	var req QueryRequest
	if !BindJSON(c, &req) {
		return
	}

	HandleGetEnvelope(c, "records", func() (interface{}, error) {
		return h.svc.Datasets.QueryWithFilter(
			req.View,
			req.FilterExpr,
			req.SortField,
			req.SortDirection,
			req.Limit,
		)
	})
}

// Search handles GET /api/data/:view/search
func (h *DataHandler) Search(c *gin.Context) {
	viewName := c.Param("view")
	term := c.Query("term")

	HandleGetEnvelope(c, "records", func() (interface{}, error) {
		return h.svc.Datasets.Search(viewName, term)
	})
}
