package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/pinterest-downloader/internal/pkg/apperror"
)

type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Code    string      `json:"code,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

// Error отдаёт ошибку клиенту. Причина попадает в поле error только при withDetail.
func Error(c *gin.Context, err error, withDetail bool) {
	appErr, ok := apperror.As(err)
	if !ok {
		appErr = apperror.Wrap(err, apperror.ErrCodeInternal, apperror.MsgInternal)
	}

	body := Response{
		Success: false,
		Message: appErr.Message,
		Code:    string(appErr.Code),
	}
	if withDetail {
		body.Error = appErr.Detail()
	}

	c.JSON(appErr.HTTPStatus, body)
}

func AbortWithError(c *gin.Context, err error, withDetail bool) {
	Error(c, err, withDetail)
	c.Abort()
}
