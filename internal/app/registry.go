package app

import (
	"database/sql"
	"net/http"

	"go-attendance/internal/attendance"
	"go-attendance/internal/employee"
	"go-attendance/internal/messaging/kafka"
	"go-attendance/internal/middleware"
	"go-attendance/internal/stats"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	employeeRepo := employee.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	statsRepo := stats.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Services ---
	employeeService := employee.NewServiceWithOutbox(db, employeeRepo, outboxRepo)
	attendanceService := attendance.NewServiceWithOutbox(db, attendanceRepo, outboxRepo, rdb)
	statsService := stats.NewService(statsRepo, rdb)

	// --- Handlers ---
	employeeHandler := employee.NewHandler(employeeService)
	attendanceHandler := attendance.NewHandler(attendanceService)
	statsHandler := stats.NewHandler(statsService)

	// --- Routes Registration ---
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	api.Use(middleware.RequestID())
	api.Use(middleware.RateLimitByIP(50, 100))
	{
		employee.RegisterRoutes(api, employeeHandler, rdb)
		// Route statis stats harus hidup berdampingan dengan wildcard
		// :employee_id milik ledger; daftarkan lebih dulu.
		stats.RegisterRoutes(api, statsHandler)
		attendance.RegisterRoutes(api, attendanceHandler, rdb)
	}

	return nil
}
