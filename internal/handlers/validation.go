package handlers

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// usernamePattern restricts usernames to lowercase letters, digits and
// underscores so they are safe to embed in channel URLs.
var usernamePattern = regexp.MustCompile(`^[a-z0-9_]+$`)

// RegisterCustomValidations installs the "username" rule on gin's binding
// validator. Must be called once before routes are served.
func RegisterCustomValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
			return usernamePattern.MatchString(fl.Field().String())
		})
	}
}
