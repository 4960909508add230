package employee

import (
	"go-attendance/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rdb *redis.Client) {
	employees := r.Group("/employees")
	{
		employees.GET("/", h.List)
		if rdb != nil {
			employees.POST("/", middleware.Idempotency(rdb), h.Register)
		} else {
			employees.POST("/", h.Register)
		}
		employees.DELETE("/:id/", h.Delete)
	}
}
