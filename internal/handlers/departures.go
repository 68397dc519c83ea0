package handlers

import (
	"net/http"

	"transit_dashboard/internal/models"

	"github.com/gin-gonic/gin"
)

const statusOK = "ok"

// @Summary      Real-time departures
// @Description  stop_id is one RBL number or a comma separated list. Upstream failures yield an empty list.
// @Tags         departures
// @Produce      json
// @Param        stop_id  query  string  false  "RBL number(s)"
// @Success      200  {array}  models.Departure
// @Router       /api/departures [get]
func (h *Handler) getDepartures(c *gin.Context) {
	stopID := c.Query("stop_id")
	if stopID == "" {
		c.JSON(http.StatusOK, []models.Departure{})
		return
	}
	c.JSON(http.StatusOK, h.services.GetDepartures(c.Request.Context(), stopID))
}

// @Summary      Known stops
// @Tags         departures
// @Produce      json
// @Success      200  {array}  models.Stop
// @Router       /api/stops [get]
func (h *Handler) getStops(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.ListStops())
}
