package models

import (
	"github.com/guregu/null/v6"
)

// MediaResult - канонический ответ клиенту, не зависящий от формы ответа апстрима.
// Необязательные поля сериализуются в null.
type MediaResult struct {
	Title         string      `json:"title"`
	Description   null.String `json:"description"`
	Author        null.String `json:"author"`
	Board         null.String `json:"board"`
	MediaURL      string      `json:"mediaUrl"`
	IsVideo       bool        `json:"isVideo"`
	MediaType     string      `json:"mediaType"`
	Extension     null.String `json:"extension"`
	MimeType      null.String `json:"mimeType"`
	Quality       string      `json:"quality"`
	FileSize      null.Int    `json:"fileSize"`
	FormattedSize null.String `json:"formattedSize"`
	SourceURL     string      `json:"sourceUrl"`
}
