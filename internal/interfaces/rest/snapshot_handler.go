package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/tenantscope/dashboard/internal/application/services"
)

type SnapshotHandler struct {
	svc *services.ServiceManager
}

func NewSnapshotHandler(svc *services.ServiceManager) *SnapshotHandler {
	return &SnapshotHandler{svc: svc}
}

// Info handles GET /api/snapshot
// The dashboard header's "data as of ..." line reads this.
func (h *SnapshotHandler) Info(c *gin.Context) {
	HandleGetEnvelope(c, "snapshot", func() (interface{}, error) {
		return h.svc.Datasets.SnapshotInfo(), nil
	})
}
