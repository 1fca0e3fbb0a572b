package pricing

import (
	"net/http"
	"time"

	"stagepass/internal/seatmap"
	"stagepass/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// QuoteRequest carries a draft order to price
type QuoteRequest struct {
	Seats []string   `json:"seats" binding:"omitempty,dive,seatcode"`
	Merch []CartLine `json:"merch" binding:"omitempty,dive"`
}

// QuoteOrder handles POST /api/v1/pricing/quote
func (c *Controller) QuoteOrder(ctx *gin.Context) {
	var req QuoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	seats := make([]seatmap.SeatCode, 0, len(req.Seats))
	for _, s := range req.Seats {
		seats = append(seats, seatmap.SeatCode(s))
	}

	quote, err := c.service.QuoteOrder(ctx.Request.Context(), seats, req.Merch, time.Now())
	if err != nil {
		response.RespondError(ctx, err)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Quote computed", quote, nil)
}
