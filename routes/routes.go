package routes

import (
	"restaurant-orders-api/handlers"
	"restaurant-orders-api/middleware"
	"restaurant-orders-api/models"

	"github.com/gin-gonic/gin"
)

// SetupRoutes registers the API. With authEnabled every /api route except
// auth and the state machine description requires a staff token, and menu
// writes and revenue require a manager.
func SetupRoutes(r *gin.Engine, h *handlers.Handler, authEnabled bool) {
	r.GET("/health", handlers.Health)
	r.GET("/", handlers.Welcome)

	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		public.POST("/auth/register", h.Register)
		public.POST("/auth/login", h.Login)
		public.GET("/state-machine", handlers.GetStateMachineInfo)
	}

	// ── Authenticated routes ───────────────────────────────────────
	r.GET("/api/profile", middleware.AuthRequired(), h.GetProfile)

	staffOnly := []gin.HandlerFunc{}
	managerOnly := []gin.HandlerFunc{}
	if authEnabled {
		staffOnly = append(staffOnly, middleware.AuthRequired())
		managerOnly = append(managerOnly, middleware.RoleRequired(models.RoleManager))
	}

	// ── Staff routes ───────────────────────────────────────────────
	api := r.Group("/api", staffOnly...)
	{
		api.GET("/items", h.ListItems)
		api.GET("/items/:id", h.GetItem)

		api.GET("/orders", h.ListOrders)
		api.POST("/orders", h.CreateOrder)
		api.GET("/orders/search", h.SearchOrders)
		api.GET("/orders/:id", h.GetOrder)
		api.PUT("/orders/:id", h.UpdateOrder)
		api.DELETE("/orders/:id", h.DeleteOrder)
		api.GET("/orders/:id/history", h.GetOrderHistory)
		api.PATCH("/orders/:id/status", h.ChangeOrderStatus)

		api.POST("/orders/:id/items", h.AddOrderItems)
		api.PUT("/orders/:id/items", h.ReplaceOrderItems)
		api.DELETE("/orders/:id/items", h.ClearOrderItems)
		api.DELETE("/orders/:id/items/:itemId", h.RemoveOrderItem)
	}

	// ── Manager routes ─────────────────────────────────────────────
	manager := api.Group("", managerOnly...)
	{
		manager.POST("/items", h.CreateItem)
		manager.PUT("/items/:id", h.UpdateItem)
		manager.DELETE("/items/:id", h.DeleteItem)
		manager.GET("/revenue", h.GetRevenue)
	}
}
