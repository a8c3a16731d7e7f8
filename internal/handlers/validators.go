package handlers

import (
	"fmt"

	"github.com/SscSPs/buildledger/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators adds the custom binding tags used by the request DTOs.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding validator engine %T", binding.Validator.Engine())
	}
	return v.RegisterValidation("currency", validateCurrency)
}

// validateCurrency accepts the supported currency codes.
func validateCurrency(fl validator.FieldLevel) bool {
	return domain.Currency(fl.Field().String()).IsValid()
}
