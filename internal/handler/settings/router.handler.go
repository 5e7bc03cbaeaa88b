package settings

import (
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/middleware"
	"github.com/gin-gonic/gin"
)

func (h *Handler) NewRoutes(e *gin.RouterGroup) {
	cfg := e.Group("/v1/config")
	cfg.GET("", h.SiteConfig)
	cfg.POST("/reload", middleware.AuthMiddleware(), h.Reload)

	prefs := e.Group("/v1/preferences")
	prefs.GET("", h.Preferences)
	prefs.PUT("", h.UpdatePreferences)
}
