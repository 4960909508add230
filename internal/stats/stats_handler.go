package stats

import (
	"net/http"

	"go-attendance/internal/shared/apperror"
	"go-attendance/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("stats.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("stats.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) Get(c *gin.Context) {
	resp, err := h.service.StatsForDay(c.Request.Context(), c.Query("date"))
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		h.logger.Warn("stats request failed",
			zap.Int("status", httpErr.Status),
			zap.String("code", httpErr.Code),
		)
		if httpErr.Status >= http.StatusInternalServerError {
			h.logger.Error("stats request internal error", zap.Error(err))
		}
		response.Error(c, httpErr.Status, httpErr.Fields, httpErr.Message)
		return
	}

	response.JSON(c, http.StatusOK, resp)
}
