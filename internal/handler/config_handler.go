package handler

import (
	app_errors "visitas/internal/errors"
	"visitas/internal/response"

	"github.com/gin-gonic/gin"
)

// GetSettings returns all institution settings as a key/value map.
// GET /api/config
func (s *Server) GetSettings(c *gin.Context) {
	settings, err := s.SettingsService.GetAll()
	if HandleServiceError(c, err) {
		return
	}
	response.Success(c, settings)
}

// UpdateSettingsRequest defines the payload for a settings update.
type UpdateSettingsRequest struct {
	Values map[string]string `json:"valores" binding:"required"`
}

// UpdateSettings upserts institution settings. Admin only.
// PUT /api/config
func (s *Server) UpdateSettings(c *gin.Context) {
	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, app_errors.NewAPIError(app_errors.ErrInvalidJSON, err.Error()))
		return
	}
	if len(req.Values) == 0 {
		response.ErrorI18nFromAPIError(c, app_errors.ErrValidation, "config.key_required")
		return
	}

	if HandleServiceError(c, s.SettingsService.SetMany(req.Values)) {
		return
	}

	settings, err := s.SettingsService.GetAll()
	if HandleServiceError(c, err) {
		return
	}
	response.SuccessI18n(c, "config.updated", settings)
}
