package bookings

import (
	"net/http"
	"strconv"
	"time"

	"stagepass/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionHeader mirrors the cart module's session header
const SessionHeader = "X-Session-ID"

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// ConfirmBooking handles POST /api/v1/bookings/confirm (multipart)
func (c *Controller) ConfirmBooking(ctx *gin.Context) {
	sessionID := ctx.GetHeader(SessionHeader)
	if sessionID == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Missing "+SessionHeader+" header", nil, nil)
		return
	}

	var form ConfirmBookingForm
	if err := ctx.ShouldBind(&form); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid booking details", nil, err.Error())
		return
	}

	receipt, err := ctx.FormFile("receipt")
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Payment receipt is required", nil, err.Error())
		return
	}

	booking, err := c.service.Commit(ctx.Request.Context(), CommitRequest{
		SessionID: sessionID,
		Name:      form.Name,
		Email:     form.Email,
		ContactNo: form.ContactNo,
		StudentID: form.StudentID,
		Receipt:   receipt,
	})
	if err != nil {
		response.RespondError(ctx, err)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusCreated, "Booking confirmed", booking, nil)
}

// GetBooking handles GET /api/v1/bookings/:id
func (c *Controller) GetBooking(ctx *gin.Context) {
	id, ok := parseBookingID(ctx)
	if !ok {
		return
	}

	booking, err := c.service.GetBooking(ctx.Request.Context(), id)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Booking retrieved successfully", booking, nil)
}

// ListBookings handles GET /api/v1/admin/bookings
func (c *Controller) ListBookings(ctx *gin.Context) {
	query := BookingListQuery{
		Email:    ctx.Query("email"),
		Status:   Status(ctx.Query("status")),
		SortBy:   ctx.DefaultQuery("sort_by", "created_at"),
		SortDesc: ctx.DefaultQuery("sort_order", "desc") == "desc",
	}
	query.Page, _ = strconv.Atoi(ctx.DefaultQuery("page", "1"))
	query.Limit, _ = strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	if redeemed := ctx.Query("redeemed"); redeemed != "" {
		val := redeemed == "true"
		query.Redeemed = &val
	}
	if from := ctx.Query("created_from"); from != "" {
		if t, err := time.Parse(time.RFC3339, from); err == nil {
			query.CreatedFrom = &t
		}
	}
	if to := ctx.Query("created_to"); to != "" {
		if t, err := time.Parse(time.RFC3339, to); err == nil {
			query.CreatedTo = &t
		}
	}

	bookings, total, err := c.service.ListBookings(ctx.Request.Context(), query)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Bookings retrieved successfully", BookingListResponse{
		Bookings:   bookings,
		TotalCount: total,
		Page:       query.Page,
		Limit:      query.Limit,
	}, nil)
}

// GetReceiptURL handles GET /api/v1/admin/bookings/:id/receipt
func (c *Controller) GetReceiptURL(ctx *gin.Context) {
	id, ok := parseBookingID(ctx)
	if !ok {
		return
	}

	url, err := c.service.GetReceiptURL(ctx.Request.Context(), id)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Receipt link generated", ReceiptURLResponse{URL: url}, nil)
}

// DeleteBooking handles DELETE /api/v1/admin/bookings/:id
func (c *Controller) DeleteBooking(ctx *gin.Context) {
	id, ok := parseBookingID(ctx)
	if !ok {
		return
	}

	if err := c.service.DeleteBooking(ctx.Request.Context(), id); err != nil {
		response.RespondError(ctx, err)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Booking deleted and seats released", nil, nil)
}

// SetRedeemed handles PATCH /api/v1/admin/bookings/:id/redeem
func (c *Controller) SetRedeemed(ctx *gin.Context) {
	id, ok := parseBookingID(ctx)
	if !ok {
		return
	}

	var req RedeemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	booking, err := c.service.SetRedeemed(ctx.Request.Context(), id, *req.Redeemed)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Redemption updated", booking, nil)
}

// GetSalesSummary handles GET /api/v1/admin/sales
func (c *Controller) GetSalesSummary(ctx *gin.Context) {
	summary, err := c.service.GetSalesSummary(ctx.Request.Context())
	if err != nil {
		response.RespondError(ctx, err)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Sales summary retrieved successfully", summary, nil)
}

func parseBookingID(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid booking id", nil, err.Error())
		return uuid.Nil, false
	}
	return id, true
}
