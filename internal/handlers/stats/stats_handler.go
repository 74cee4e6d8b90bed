// internal/handlers/stats/stats_handler.go
package stats

import (
	"context"
	"net/http"

	"realty-service/internal/pkg/response"
	statssvc "realty-service/internal/service/stats"

	"github.com/gin-gonic/gin"
)

type Service interface {
	Get(ctx context.Context) (*statssvc.Stats, error)
}

type StatsHandler struct {
	service Service
}

func NewStatsHandler(service Service) *StatsHandler {
	return &StatsHandler{service: service}
}

func (h *StatsHandler) Get(c *gin.Context) {
	st, err := h.service.Get(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "stats retrieved", st)
}
