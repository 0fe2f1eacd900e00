package rest

import (
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// usernamePattern allows letters, digits and @ . + - _ .
var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

var setupOnce sync.Once

// setupValidator registers the custom tags on gin's validator and makes field
// errors report JSON names.
func setupValidator() {
	setupOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
			return usernamePattern.MatchString(fl.Field().String())
		})
	})
}

// fieldErrors converts validator errors into a map of field name to
// messages. ok is false for errors that are not validation errors.
func fieldErrors(err error) (map[string][]string, bool) {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil, false
	}

	out := make(map[string][]string, len(verrs))
	for _, e := range verrs {
		out[e.Field()] = append(out[e.Field()], validationMessage(e))
	}
	return out, true
}

func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "max":
		return "Ensure this field has no more than " + e.Param() + " characters."
	case "username":
		return "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters."
	default:
		return "Invalid value."
	}
}
