package dto

import (
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// The request types in this package carry calendar dates as plain strings so
// that an unparsable form field fails binding instead of reaching a service.
func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("dateonly", validDateOnly)
	}
}

func validDateOnly(fl validator.FieldLevel) bool {
	_, err := time.Parse(DateOnly, fl.Field().String())
	return err == nil
}
