package response

import (
	"stagepass/internal/shared/apperr"

	"github.com/gin-gonic/gin"
)

func RespondJSON(c *gin.Context, status string, code int, message string, data interface{}, errors interface{}) {
	c.JSON(code, StandardApiResponse{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Errors:     errors,
	})
}

// RespondError renders an application error with its machine-readable kind.
// Callers never have to string-match the message to find out what went wrong.
func RespondError(c *gin.Context, err error) {
	code := apperr.HTTPStatus(err)
	c.JSON(code, StandardApiResponse{
		Status:     "error",
		StatusCode: code,
		Message:    err.Error(),
		Errors: ErrorBody{
			Kind:    string(apperr.KindOf(err)),
			Details: apperr.DetailsOf(err),
		},
	})
}
