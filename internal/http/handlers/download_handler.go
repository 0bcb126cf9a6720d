package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/pinterest-downloader/internal/http/middleware"
	"github.com/ignatzorin/pinterest-downloader/internal/interface/http/response"
	"github.com/ignatzorin/pinterest-downloader/internal/logger"
	"github.com/ignatzorin/pinterest-downloader/internal/models"
)

// Downloader получает канонический результат по ссылке на пин.
type Downloader interface {
	Download(ctx context.Context, rawURL string) (*models.MediaResult, error)
}

// DownloadHandler обслуживает /api/download.
type DownloadHandler struct {
	downloads Downloader
}

// NewDownloadHandler создаёт новый хэндлер.
func NewDownloadHandler(downloads Downloader) *DownloadHandler {
	return &DownloadHandler{downloads: downloads}
}

// Download обрабатывает GET /api/download?url=<pin url>.
func (h *DownloadHandler) Download(c *gin.Context) {
	rawURL := c.Query("url")

	logger.Get().WithFields(logrus.Fields{
		"url":        rawURL,
		"request_id": c.GetString(middleware.ContextRequestIDKey),
	}).Debug("processing pinterest url")

	// Отключение клиента не отменяет запрос к апстриму, его ограничивает только таймаут клиента.
	ctx := context.WithoutCancel(c.Request.Context())

	result, err := h.downloads.Download(ctx, rawURL)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Success(c, result)
}
