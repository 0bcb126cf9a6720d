package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/pinterest-downloader/internal/interface/http/response"
	"github.com/ignatzorin/pinterest-downloader/internal/validation"
)

// RulesHandler отдаёт странице тот же набор правил, которым пользуется сервер.
type RulesHandler struct {
	validator *validation.PinValidator
}

// NewRulesHandler создаёт новый хэндлер.
func NewRulesHandler(validator *validation.PinValidator) *RulesHandler {
	return &RulesHandler{validator: validator}
}

// Rules обрабатывает GET /api/rules.
func (h *RulesHandler) Rules(c *gin.Context) {
	response.Success(c, h.validator.Rules())
}
