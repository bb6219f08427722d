package utils

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/go-playground/validator/v10"
)

func NewTrue() *bool {
	b := true
	return &b
}

func NewFalse() *bool {
	b := false
	return &b
}

func NewFloat64(f float64) *float64 {
	return &f
}

func NewInt(i int) *int {
	return &i
}

// GenerateDocumentNumber builds ids like ORD_RM_1721894400_371: a coarse
// unix timestamp plus a random three-digit suffix. Collisions are possible
// but acceptably rare for one decision cycle.
func GenerateDocumentNumber(prefix string) string {
	return fmt.Sprintf("%s_%d_%d", prefix, time.Now().Unix(), rand.Intn(900)+100)
}

func ProcessValidationErrors(err error) map[string]string {
	errorResponse := make(map[string]string)

	var validationErrors validator.ValidationErrors
	ok := false
	validationErrors, ok = err.(validator.ValidationErrors)
	if !ok {
		errorResponse["error"] = err.Error()
		return errorResponse
	}

	for _, fieldErr := range validationErrors {
		switch fieldErr.Tag() {
		case "required":
			errorResponse[fieldErr.Field()] = fmt.Sprintf("%s is required", fieldErr.Field())
		case "gt":
			errorResponse[fieldErr.Field()] = fmt.Sprintf("%s must be greater than %s", fieldErr.Field(), fieldErr.Param())
		case "gte":
			errorResponse[fieldErr.Field()] = fmt.Sprintf("%s must be at least %s", fieldErr.Field(), fieldErr.Param())
		case "oneof":
			errorResponse[fieldErr.Field()] = fmt.Sprintf("%s must be one of [%s]", fieldErr.Field(), fieldErr.Param())
		default:
			errorResponse[fieldErr.Field()] = fmt.Sprintf("%s is invalid", fieldErr.Field())
		}
	}
	return errorResponse
}
