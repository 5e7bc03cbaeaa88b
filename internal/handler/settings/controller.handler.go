package settings

import (
	"context"
	"net/http"

	types "github.com/Baru2006/EasyRecharge-MM/internal/common/type"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/helper"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/middleware"
	settingsService "github.com/Baru2006/EasyRecharge-MM/internal/service/settings"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	ctx             context.Context
	settingsService settingsService.IService
}

type IHandler interface {
	NewRoutes(e *gin.RouterGroup)
}

func NewHandler(ctx context.Context, settingsService settingsService.IService) IHandler {
	return &Handler{
		ctx:             ctx,
		settingsService: settingsService,
	}
}

// SiteConfig godoc
// @Summary      Site configuration
// @Description  Maintenance flag, message and support link
// @Tags         Settings
// @Produce      json
// @Success      200  {object}  types.ResponseAPI{data=config.SiteConfig}
// @Router       /v1/config [get]
func (h *Handler) SiteConfig(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	send(h.settingsService.SiteConfig())
}

// Reload godoc
// @Summary      Reload site configuration
// @Tags         Settings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  types.ResponseAPI{data=config.SiteConfig}
// @Failure      401  {object}  types.ResponseAPI
// @Failure      422  {object}  types.ResponseAPI
// @Router       /v1/config/reload [post]
func (h *Handler) Reload(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	send(h.settingsService.Reload())
}

// Preferences godoc
// @Summary      My preferences
// @Description  Theme plus the last SIM phone and SMM link used, for prefilling forms
// @Tags         Settings
// @Produce      json
// @Success      200  {object}  types.ResponseAPI{data=preference.Preferences}
// @Router       /v1/preferences [get]
func (h *Handler) Preferences(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))
	user, _ := middleware.GetUser(c)

	send(h.settingsService.Preferences(user))
}

// UpdatePreferences godoc
// @Summary      Update my preferences
// @Tags         Settings
// @Accept       json
// @Produce      json
// @Param        request  body      settingsService.UpdatePreferencesRequest  true  "Preferences"
// @Success      200      {object}  types.ResponseAPI{data=preference.Preferences}
// @Failure      400      {object}  types.ResponseAPI
// @Router       /v1/preferences [put]
func (h *Handler) UpdatePreferences(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))
	user, _ := middleware.GetUser(c)

	var req settingsService.UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		send(helper.ParseResponse(&types.Response{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
			Error:   err,
		}))
		return
	}

	send(h.settingsService.UpdatePreferences(user, req))
}
