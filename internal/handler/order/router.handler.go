package order

import (
	"github.com/gin-gonic/gin"
)

func (h *Handler) NewRoutes(e *gin.RouterGroup) {
	orders := e.Group("/v1/orders")

	orders.GET("", h.List)
	orders.GET("/last", h.LastOrder)
	orders.GET("/:order_id", h.Get)
	orders.GET("/:order_id/receipt", h.Receipt)

	gated := orders.Group("", h.gate...)
	gated.POST("/:type", h.Submit)
}
