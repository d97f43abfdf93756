package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"claimdesk.app/server/internal/http/dto"
	"claimdesk.app/server/internal/service"
)

type DashboardHandler struct {
	dashboardService service.DashboardService
}

func NewDashboardHandler(dashboardService service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

func (h *DashboardHandler) Get(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}

	d, err := h.dashboardService.Get(c.Request.Context(), a)
	if err != nil {
		respondError(c, err, "failed to load dashboard")
		return
	}

	c.JSON(http.StatusOK, dto.ToDashboardResponse(d))
}
