package dashboard

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lavimachotel/Lavimac-Hotel-sub003/internal/model"
	"github.com/lavimachotel/Lavimac-Hotel-sub003/internal/service"
)

// Handler serves the dashboard stat cards and series.
type Handler struct {
	svc *service.ReportService
}

// NewHandler creates a Handler backed by svc.
func NewHandler(svc *service.ReportService) *Handler {
	return &Handler{svc: svc}
}

// Get returns the dataset and KPIs for ?range=, 7days by default
func (h *Handler) Get(c *gin.Context) {
	rangeKey := model.Range7Days
	if raw := c.Query("range"); raw != "" {
		parsed, err := model.ParseDateRange(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
			return
		}
		rangeKey = parsed
	}

	c.JSON(http.StatusOK, h.svc.Dashboard(c.Request.Context(), rangeKey))
}
