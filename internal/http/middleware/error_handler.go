package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/pinterest-downloader/internal/interface/http/response"
	"github.com/ignatzorin/pinterest-downloader/internal/logger"
	"github.com/ignatzorin/pinterest-downloader/internal/pkg/apperror"
)

// ErrorHandler обрабатывает ошибки централизованно.
// Хэндлеры кладут ошибку через c.Error, клиент получает код и сообщение из AppError.
// Причина ошибки отдаётся в поле error только при exposeDetails (не production).
func ErrorHandler(exposeDetails bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Проверяем, не был ли уже отправлен ответ
		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		code := apperror.CodeOf(err)

		entry := logger.Get().WithFields(logrus.Fields{
			"error":      err.Error(),
			"code":       code,
			"path":       c.Request.URL.Path,
			"method":     c.Request.Method,
			"request_id": c.GetString(ContextRequestIDKey),
		})
		switch code {
		case apperror.ErrCodeInternal:
			entry.Error("Request error")
		case apperror.ErrCodeUpstream, apperror.ErrCodeTimeout:
			entry.Warn("Request error")
		default:
			entry.Info("Request error")
		}

		response.Error(c, err, exposeDetails)
	}
}

// Recovery перехватывает panic и отвечает INTERNAL_ERROR без стека.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Get().WithFields(logrus.Fields{
			"panic":      fmt.Sprint(recovered),
			"path":       c.Request.URL.Path,
			"method":     c.Request.Method,
			"request_id": c.GetString(ContextRequestIDKey),
		}).Error("Panic recovered")

		response.AbortWithError(c, apperror.New(apperror.ErrCodeInternal, apperror.MsgInternal), false)
	})
}
