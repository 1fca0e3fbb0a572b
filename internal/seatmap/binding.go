package seatmap

import (
	"errors"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterSeatCodeValidator teaches gin's binding layer the RR-SS seat
// code format so request DTOs can use the seatcode tag.
func RegisterSeatCodeValidator() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected gin validator engine")
	}

	return v.RegisterValidation("seatcode", func(fl validator.FieldLevel) bool {
		_, _, err := SeatCode(fl.Field().String()).Parse()
		return err == nil
	})
}
