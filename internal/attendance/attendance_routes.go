package attendance

import (
	"go-attendance/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RegisterRoutes memasang route ledger. Route statis /stats/ didaftarkan oleh
// paket stats pada group yang sama, sebelum wildcard :employee_id.
func RegisterRoutes(r *gin.RouterGroup, h *Handler, rdb *redis.Client) {
	records := r.Group("/attendance")
	{
		if rdb != nil {
			records.POST("/", middleware.Idempotency(rdb), h.Mark)
		} else {
			records.POST("/", h.Mark)
		}
		records.GET("/:employee_id/", h.GetByEmployee)
	}
}
