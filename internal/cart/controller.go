package cart

import (
	"net/http"

	"stagepass/internal/pricing"
	"stagepass/internal/shared/apperr"
	"stagepass/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionHeader identifies the shopper's cart session. The frontend mints
// a random id on first visit and sends it on every cart call.
const SessionHeader = "X-Session-ID"

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// ToggleSeatRequest carries the seat to add or remove
type ToggleSeatRequest struct {
	Seat string `json:"seat" binding:"required,seatcode"`
}

// SetMerchLineRequest carries one merchandise line to upsert. Quantity
// zero removes the line.
type SetMerchLineRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	VariantID string `json:"variant_id"`
	Quantity  int    `json:"quantity" binding:"min=0"`
}

func sessionID(ctx *gin.Context) (string, bool) {
	sid := ctx.GetHeader(SessionHeader)
	if sid == "" {
		response.RespondError(ctx, apperr.New(apperr.KindValidation, "missing "+SessionHeader+" header"))
		return "", false
	}
	return sid, true
}

// NewSession handles POST /api/v1/cart. It mints a session id for
// clients that do not generate their own.
func (c *Controller) NewSession(ctx *gin.Context) {
	sid := uuid.New().String()
	ctx.Header(SessionHeader, sid)
	response.RespondJSON(ctx, "success", http.StatusCreated, "Cart session created", gin.H{"session_id": sid}, nil)
}

// GetCart handles GET /api/v1/cart
func (c *Controller) GetCart(ctx *gin.Context) {
	sid, ok := sessionID(ctx)
	if !ok {
		return
	}

	cart, err := c.service.GetCart(ctx.Request.Context(), sid)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Cart retrieved successfully", cart, nil)
}

// ToggleSeat handles POST /api/v1/cart/seats/toggle
func (c *Controller) ToggleSeat(ctx *gin.Context) {
	sid, ok := sessionID(ctx)
	if !ok {
		return
	}

	var req ToggleSeatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	cart, err := c.service.ToggleSeat(ctx.Request.Context(), sid, req.Seat)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Seat toggled", cart, nil)
}

// SetMerchLine handles PUT /api/v1/cart/merch
func (c *Controller) SetMerchLine(ctx *gin.Context) {
	sid, ok := sessionID(ctx)
	if !ok {
		return
	}

	var req SetMerchLineRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	cart, err := c.service.SetMerchLine(ctx.Request.Context(), sid, pricing.CartLine{
		ProductID: req.ProductID,
		VariantID: req.VariantID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		response.RespondError(ctx, err)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Cart updated", cart, nil)
}

// Checkout handles POST /api/v1/cart/checkout
func (c *Controller) Checkout(ctx *gin.Context) {
	sid, ok := sessionID(ctx)
	if !ok {
		return
	}

	handoff, err := c.service.Checkout(ctx.Request.Context(), sid)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Checkout ready", handoff, nil)
}

// Clear handles DELETE /api/v1/cart
func (c *Controller) Clear(ctx *gin.Context) {
	sid, ok := sessionID(ctx)
	if !ok {
		return
	}

	if err := c.service.Clear(ctx.Request.Context(), sid); err != nil {
		response.RespondError(ctx, err)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Cart cleared", nil, nil)
}
