package order

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Baru2006/EasyRecharge-MM/internal/common/enum"
	types "github.com/Baru2006/EasyRecharge-MM/internal/common/type"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/apperror"
	database "github.com/Baru2006/EasyRecharge-MM/internal/pkg/db"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/helper"
	"github.com/Baru2006/EasyRecharge-MM/internal/pkg/middleware"
	orderService "github.com/Baru2006/EasyRecharge-MM/internal/service/order"

	"github.com/gin-gonic/gin"
)

const slipField = "payment_slip"

type Handler struct {
	ctx          context.Context
	orderService orderService.IService
	maxSlipBytes int64
	gate         []gin.HandlerFunc
}

type IHandler interface {
	NewRoutes(e *gin.RouterGroup)
}

// NewHandler wires the order routes; gate runs before order submission
// (maintenance, rate limiting).
func NewHandler(ctx context.Context, orderService orderService.IService, maxSlipBytes int64, gate ...gin.HandlerFunc) IHandler {
	return &Handler{
		ctx:          ctx,
		orderService: orderService,
		maxSlipBytes: maxSlipBytes,
		gate:         gate,
	}
}

// Submit godoc
// @Summary      Submit an order
// @Description  Validates the form, preprocesses the payment slip, renders the receipt and forwards the order to the backend
// @Tags         Orders
// @Accept       multipart/form-data
// @Produce      json
// @Param        type          path      string  true   "Order type"  Enums(sim, game, smm, p2p)
// @Param        payment_slip  formData  file    false  "Payment slip image"
// @Success      201           {object}  types.ResponseAPI{data=orderService.SubmitResult}
// @Failure      400           {object}  types.ResponseAPI
// @Failure      409           {object}  types.ResponseAPI
// @Failure      502           {object}  types.ResponseAPI
// @Failure      503           {object}  types.ResponseAPI
// @Router       /v1/orders/{type} [post]
func (h *Handler) Submit(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))

	user, ok := middleware.GetUser(c)
	if !ok {
		send(helper.ParseResponse(&types.Response{Code: http.StatusUnauthorized, Message: "identity not found"}))
		return
	}

	category := enum.Category(c.Param("type"))
	if !category.IsValid() {
		send(helper.ParseResponse(&types.Response{Error: apperror.NewValidationMessage("type", fmt.Sprintf("Unknown order type %q", c.Param("type")))}))
		return
	}

	var draft orderService.OrderDraft
	if err := c.ShouldBind(&draft); err != nil {
		send(helper.ParseResponse(&types.Response{
			Code:    http.StatusBadRequest,
			Message: "Invalid form data",
			Error:   err,
		}))
		return
	}
	draft.Category = category

	slip, err := h.readSlip(c)
	if err != nil {
		send(helper.ParseResponse(&types.Response{
			Code:    http.StatusBadRequest,
			Message: "Could not read file.",
			Error:   err,
		}))
		return
	}

	send(h.orderService.Submit(c.Request.Context(), user, draft, slip))
}

// readSlip returns nil when no file was attached.
func (h *Handler) readSlip(c *gin.Context) (*types.SlipFile, error) {
	header, err := c.FormFile(slipField)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return helper.PrepareSlipFile(types.UploadFile{File: file, Header: header}, h.maxSlipBytes)
}

// List godoc
// @Summary      List my orders
// @Tags         Orders
// @Produce      json
// @Param        limit      query     int     false  "Max rows (1-100)"
// @Param        direction  query     string  false  "Sort by creation time"  Enums(asc, desc)
// @Success      200        {object}  types.ResponseAPI{data=[]orderService.OrderView}
// @Router       /v1/orders [get]
func (h *Handler) List(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))
	user, _ := middleware.GetUser(c)

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	direction := database.ParseDirection(c.Query("direction"))

	send(h.orderService.List(c.Request.Context(), user, limit, direction))
}

// LastOrder godoc
// @Summary      Last order summary
// @Description  Summary shown on the confirmation page
// @Tags         Orders
// @Produce      json
// @Success      200  {object}  types.ResponseAPI{data=types.LastOrder}
// @Failure      404  {object}  types.ResponseAPI
// @Router       /v1/orders/last [get]
func (h *Handler) LastOrder(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))
	user, _ := middleware.GetUser(c)

	send(h.orderService.LastOrder(c.Request.Context(), user))
}

// Get godoc
// @Summary      Get an order
// @Tags         Orders
// @Produce      json
// @Param        order_id  path      string  true  "Order ID"
// @Success      200       {object}  types.ResponseAPI{data=orderService.OrderView}
// @Failure      404       {object}  types.ResponseAPI
// @Router       /v1/orders/{order_id} [get]
func (h *Handler) Get(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))
	user, _ := middleware.GetUser(c)

	send(h.orderService.Get(c.Request.Context(), user, c.Param("order_id")))
}

// Receipt godoc
// @Summary      Download the receipt
// @Description  PNG attachment, or a redirect to a signed object storage URL
// @Tags         Orders
// @Produce      png
// @Param        order_id  path  string  true  "Order ID"
// @Success      200
// @Success      302
// @Failure      404  {object}  types.ResponseAPI
// @Router       /v1/orders/{order_id}/receipt [get]
func (h *Handler) Receipt(c *gin.Context) {
	send := c.MustGet("send").(func(r *types.Response))
	user, _ := middleware.GetUser(c)

	dl, err := h.orderService.Receipt(c.Request.Context(), user, c.Param("order_id"))
	if err != nil {
		send(helper.ParseResponse(&types.Response{Error: err}))
		return
	}

	if dl.URL != "" {
		c.Redirect(http.StatusFound, dl.URL)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", dl.FileName))
	c.Data(http.StatusOK, dl.ContentType, dl.Data)
}
