package api

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"relocation_quest/internal/domain"
)

// CustomValidator plugs go-playground/validator into echo. Failures wrap
// domain.ErrInvalidArgument.
type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	validate := validator.New()

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &CustomValidator{validator: validate}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		var messages []string
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				messages = append(messages, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
			}
		} else {
			messages = append(messages, err.Error())
		}
		return fmt.Errorf("%s: %w", strings.Join(messages, "; "), domain.ErrInvalidArgument)
	}
	return nil
}
