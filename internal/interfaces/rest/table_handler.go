package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/tenantscope/dashboard/internal/application/services"
)

// TableHandler exposes the table view controller's state mutations. Every
// mutation re-renders the view so the client gets a coherent fragment in
// one round trip.
type TableHandler struct {
	svc *services.ServiceManager
}

func NewTableHandler(svc *services.ServiceManager) *TableHandler {
	return &TableHandler{svc: svc}
}

func (h *TableHandler) rerender(c *gin.Context, containerID string) {
	viewName := c.Query("view")
	if viewName == "" {
		viewName = containerID
	}
	HandleGetEnvelope(c, "table", func() (interface{}, error) {
		return RenderViewTable(h.svc, viewName, containerID)
	})
}

// SetSort handles POST /api/table/:container/sort
// New keys sort ascending, the active key toggles direction, and any sort
// change lands the user back on page 1.
func (h *TableHandler) SetSort(c *gin.Context) {
	containerID := c.Param("container")
	var req struct {
		Key string `json:"key" binding:"required"`
	}
	if !BindJSON(c, &req) {
		return
	}

	if err := h.svc.Tables.SetSort(containerID, req.Key); err != nil {
		RespondAppError(c, err)
		return
	}
	h.rerender(c, containerID)
}

// SetPage handles POST /api/table/:container/page
func (h *TableHandler) SetPage(c *gin.Context) {
	containerID := c.Param("container")
	var req struct {
		Page int `json:"page" binding:"required"`
	}
	if !BindJSON(c, &req) {
		return
	}

	if err := h.svc.Tables.SetPage(containerID, req.Page); err != nil {
		RespondAppError(c, err)
		return
	}
	h.rerender(c, containerID)
}

// SetTextFilter handles POST /api/table/:container/filter/text
// Whitespace-only text clears the column's filter.
func (h *TableHandler) SetTextFilter(c *gin.Context) {
	containerID := c.Param("container")
	var req struct {
		Key  string `json:"key" binding:"required"`
		Text string `json:"text"`
	}
	if !BindJSON(c, &req) {
		return
	}

	if err := h.svc.Tables.SetTextFilter(containerID, req.Key, req.Text); err != nil {
		RespondAppError(c, err)
		return
	}
	h.rerender(c, containerID)
}

// ToggleSelection handles POST /api/table/:container/filter/toggle
func (h *TableHandler) ToggleSelection(c *gin.Context) {
	containerID := c.Param("container")
	var req struct {
		Key   string `json:"key" binding:"required"`
		Value string `json:"value" binding:"required"`
	}
	if !BindJSON(c, &req) {
		return
	}

	if err := h.svc.Tables.ToggleSelection(containerID, req.Key, req.Value); err != nil {
		RespondAppError(c, err)
		return
	}
	h.rerender(c, containerID)
}

// ClearColumnFilter handles DELETE /api/table/:container/filter/:key
func (h *TableHandler) ClearColumnFilter(c *gin.Context) {
	containerID := c.Param("container")
	key := c.Param("key")

	if err := h.svc.Tables.ClearColumnFilter(containerID, key); err != nil {
		RespondAppError(c, err)
		return
	}
	h.rerender(c, containerID)
}

// Reset handles DELETE /api/table/:container/state
func (h *TableHandler) Reset(c *gin.Context) {
	containerID := c.Param("container")
	HandleUpdateEnvelope(c, "Table state reset", func() error {
		h.svc.Tables.Reset(containerID)
		return nil
	})
}
