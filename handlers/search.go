package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SearchOrders looks an order up by ?mode=by_id|by_table|by_status&value=
func (h *Handler) SearchOrders(c *gin.Context) {
	res, err := h.Orders.Search(c.Request.Context(), c.Query("mode"), c.Query("value"))
	if err != nil {
		writeError(c, err)
		return
	}
	Success(http.StatusOK, res.Message, res.Link).Write(c)
}

// GetRevenue reports the summed total of all paid orders
func (h *Handler) GetRevenue(c *gin.Context) {
	revenue, paid, err := h.Orders.Revenue(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"revenue":     revenue,
		"paid_orders": paid,
	})
}
