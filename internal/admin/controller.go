package admin

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

type LoginRequest struct {
	Passphrase string `json:"passphrase" binding:"required"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
}

// Login exchanges the operator passphrase for a session token.
func (c *Controller) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	session, err := c.service.Login(req.Passphrase)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Login successful", LoginResponse{
		Token:     session.Token,
		ExpiresIn: int64(session.ExpiresIn.Seconds()),
	}, nil)
}
