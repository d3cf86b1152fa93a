package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/tenantscope/dashboard/internal/application/services"
	"github.com/tenantscope/dashboard/internal/domain/models"
)

type ViewHandler struct {
	svc *services.ServiceManager
}

func NewViewHandler(svc *services.ServiceManager) *ViewHandler {
	return &ViewHandler{svc: svc}
}

// GetViews handles GET /api/views
func (h *ViewHandler) GetViews(c *gin.Context) {
	HandleGetEnvelope(c, "views", func() (interface{}, error) {
		names := h.svc.Views.Names()
		views := make([]gin.H, 0, len(names))
		for _, name := range names {
			view, err := h.svc.Views.View(name)
			if err != nil {
				continue
			}
			views = append(views, gin.H{
				"name":    view.Name,
				"title":   view.Title,
				"dataset": view.Dataset,
			})
		}
		return views, nil
	})
}

// RenderView handles GET /api/views/:view/table
// The optional ?container= query keys the table's persistent state;
// it defaults to the view name.
func (h *ViewHandler) RenderView(c *gin.Context) {
	viewName := c.Param("view")
	containerID := c.DefaultQuery("container", viewName)

	HandleGetEnvelope(c, "table", func() (interface{}, error) {
		return RenderViewTable(h.svc, viewName, containerID)
	})
}

// RenderViewTable resolves a registered view and runs the table pipeline
// for the given container. Shared by the fragment endpoint and every
// state-mutation handler that re-renders after mutating.
func RenderViewTable(svc *services.ServiceManager, viewName, containerID string) (*models.TableRenderResult, error) {
	rows, view, err := svc.Datasets.DataForView(viewName)
	if err != nil {
		return nil, err
	}

	svc.Tables.InitDefaults(containerID, view.PageSize, view.DefaultSortKey, view.DefaultSortDesc)

	return svc.Tables.Render(models.TableRenderConfig{
		ContainerID: containerID,
		Title:       view.Title,
		Data:        rows,
		Columns:     view.Columns,
		PageSize:    view.PageSize,
		RowKey:      view.RowKey,
		RowClass:    view.RowClass,
	})
}
