package handler

import (
	"visitas/internal/models"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Custom binding validators for the wire formats used across the API:
// "fecha" for YYYY-MM-DD dates and "hora" for HH:MM times.
func init() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	_ = v.RegisterValidation("fecha", func(fl validator.FieldLevel) bool {
		return models.ValidDate(fl.Field().String())
	})
	_ = v.RegisterValidation("hora", func(fl validator.FieldLevel) bool {
		return models.ValidTime(fl.Field().String())
	})
}
