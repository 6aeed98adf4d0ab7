package handlers

import (
	"errors"

	"celustock-backend/models"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidations adds the domain tags to gin's validator. It must run
// before the first request is bound.
func RegisterValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("validator de gin no disponible")
	}
	return v.RegisterValidation("moneda", validarMoneda)
}

// validarMoneda accepts ARS, USD and DUAL.
func validarMoneda(fl validator.FieldLevel) bool {
	switch models.Moneda(fl.Field().String()) {
	case models.ARS, models.USD, models.DUAL:
		return true
	}
	return false
}
