package api

import (
	"net/http"

	"roomstay-admin/internal/handler/httperr"
	"roomstay-admin/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	queries queries.DashboardQueries
}

func NewDashboardHandler(q queries.DashboardQueries) *DashboardHandler {
	return &DashboardHandler{queries: q}
}

// @Summary Dashboard stats
// @Description Collection sizes plus the count of locally-originated records
// @Tags dashboard
// @Produce json
// @Success 200 {object} queries.StatsView
// @Failure 401 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /dashboard/stats [get]
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.queries.Stats(c.Request.Context())
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
