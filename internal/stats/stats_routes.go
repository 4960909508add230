package stats

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes memasang endpoint agregasi di bawah /attendance sebelum
// wildcard :employee_id milik ledger didaftarkan.
func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	r.GET("/attendance/stats/", h.Get)
}
