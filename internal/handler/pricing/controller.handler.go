package pricing

import (
	"context"
	"net/http"

	types "github.com/Baru2006/EasyRecharge-MM/internal/common/type"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/helper"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/middleware"
	pricingService "github.com/Baru2006/EasyRecharge-MM/internal/service/pricing"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	ctx            context.Context
	pricingService pricingService.IService
	gate           []gin.HandlerFunc
}

type IHandler interface {
	NewRoutes(e *gin.RouterGroup)
}

func NewHandler(ctx context.Context, pricingService pricingService.IService, gate ...gin.HandlerFunc) IHandler {
	return &Handler{
		ctx:            ctx,
		pricingService: pricingService,
		gate:           gate,
	}
}

// Catalog godoc
// @Summary      Price catalog
// @Description  Every priced item grouped by category, plus SIM providers and the P2P fee policy
// @Tags         Prices
// @Produce      json
// @Success      200  {object}  types.ResponseAPI{data=pricingService.CatalogResponse}
// @Router       /v1/prices [get]
func (h *Handler) Catalog(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	send(h.pricingService.Catalog())
}

// Packages godoc
// @Summary      SIM packages of a provider
// @Tags         Prices
// @Produce      json
// @Param        provider  path      string  true  "Provider"
// @Success      200       {object}  types.ResponseAPI{data=[]pricing.PriceEntry}
// @Failure      404       {object}  types.ResponseAPI
// @Router       /v1/prices/sim/{provider} [get]
func (h *Handler) Packages(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	send(h.pricingService.Packages(c.Param("provider")))
}

// Quote godoc
// @Summary      Live quote
// @Description  Prices the current form state with the caller's role tier
// @Tags         Prices
// @Accept       json
// @Produce      json
// @Param        request  body      pricingService.QuoteRequest  true  "Quote request"
// @Success      200      {object}  types.ResponseAPI{data=pricingService.QuoteResponse}
// @Failure      400      {object}  types.ResponseAPI
// @Router       /v1/quotes [post]
func (h *Handler) Quote(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))
	user, _ := middleware.GetUser(c)

	var req pricingService.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		send(helper.ParseResponse(&types.Response{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
			Error:   err,
		}))
		return
	}

	send(h.pricingService.Quote(user, req))
}
