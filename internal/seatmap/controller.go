package seatmap

import (
	"net/http"

	"stagepass/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// ValidateSelectionRequest carries the seats to batch-validate
type ValidateSelectionRequest struct {
	Seats []string `json:"seats" binding:"required,min=1,dive,seatcode"`
}

// GetSeatMap handles GET /api/v1/seatmap
func (c *Controller) GetSeatMap(ctx *gin.Context) {
	view, err := c.service.GetSeatMap(ctx.Request.Context())
	if err != nil {
		response.RespondError(ctx, err)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Seat map retrieved successfully", view, nil)
}

// ValidateSelection handles POST /api/v1/seatmap/validate
func (c *Controller) ValidateSelection(ctx *gin.Context) {
	var req ValidateSelectionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	seats := make([]SeatCode, 0, len(req.Seats))
	for _, s := range req.Seats {
		seats = append(seats, SeatCode(s))
	}

	result, err := c.service.ValidateSelection(ctx.Request.Context(), seats)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Selection validated", result, nil)
}
