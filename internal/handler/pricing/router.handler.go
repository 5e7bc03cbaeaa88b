package pricing

import (
	"github.com/gin-gonic/gin"
)

func (h *Handler) NewRoutes(e *gin.RouterGroup) {
	prices := e.Group("/v1/prices")

	prices.GET("", h.Catalog)
	prices.GET("/sim/:provider", h.Packages)

	quotes := e.Group("/v1/quotes", h.gate...)
	quotes.POST("", h.Quote)
}
