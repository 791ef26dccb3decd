package planner

import (
	"github.com/go-playground/validator/v10"

	"github.com/username/vacation-planner/pkg/dateutil"
)

// Shared validator instance with the planner's custom tags registered
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// isodate accepts zero-padded YYYY-MM-DD calendar dates only
	if err := v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		return dateutil.IsValidDate(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// Validator exposes the shared instance so request types elsewhere can use
// the isodate tag
func Validator() *validator.Validate {
	return validate
}

// Validate checks the aggregate's structure: non-empty user names, valid date
// keys and known categories
func Validate(data AppData) error {
	return validate.Struct(data)
}
