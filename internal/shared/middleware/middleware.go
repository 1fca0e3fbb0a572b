package middleware

import (
	"net/http"
	"strings"
	"time"

	"stagepass/internal/admin"
	"stagepass/internal/shared/utils/response"
	"stagepass/pkg/logger"

	"github.com/gin-gonic/gin"
)

// AdminAuth validates the operator bearer token on every request.
func AdminAuth(auth admin.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "Authorization header is required", nil, nil)
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "authorization header format must be Bearer {token}", nil, nil)
			c.Abort()
			return
		}

		claims, err := auth.ValidateToken(parts[1])
		if err != nil {
			response.RespondError(c, err)
			c.Abort()
			return
		}

		c.Set("admin_role", claims.Role)
		c.Next()
	}
}

// RequestLogger emits one structured line per request.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.LogHTTPRequest(c, time.Since(start))
	}
}
