package fiber

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	eventNameRegex = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

	// A single validator instance is used, because it caches struct parsing.
	validate *validator.Validate
)

func init() {
	validate = validator.New()
	err := validate.RegisterValidation("eventname", func(fl validator.FieldLevel) bool {
		return eventNameRegex.MatchString(fl.Field().String())
	})
	if err != nil {
		panic(err)
	}
}

// validationMessage flattens validator errors into one line for the response.
func validationMessage(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err.Error()
	}

	parts := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		parts = append(parts, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}
