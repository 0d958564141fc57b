package validator

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_.]+$`)

// registerCustomRules adds the domain rules used by the DTOs.
func registerCustomRules(v *validator.Validate) error {
	// username: letters, digits, underscore and dot only
	if err := v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernameRe.MatchString(fl.Field().String())
	}); err != nil {
		return err
	}

	// notblank: non-empty after trimming whitespace
	return v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
}
