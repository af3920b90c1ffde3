package stub

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// echoValidator wraps go-playground/validator so handlers can call
// c.Validate(req). Validation failures surface as a 400 whose message is a
// list of strings, matching the real backend's validation envelope.
type echoValidator struct {
	v *validator.Validate
}

func newValidator() *echoValidator {
	return &echoValidator{v: validator.New()}
}

// Validate satisfies the echo.Validator interface.
func (ev *echoValidator) Validate(i any) error {
	err := ev.v.Struct(i)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		msgs := make([]string, 0, len(ve))
		for _, fe := range ve {
			msgs = append(msgs, fieldError(fe))
		}
		return &validationError{messages: msgs}
	}
	return err
}

// validationError carries the individual field messages so the handler can
// emit them as an array.
type validationError struct {
	messages []string
}

func (e *validationError) Error() string { return strings.Join(e.messages, "; ") }

func fieldError(fe validator.FieldError) string {
	field := lowerFirst(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " es requerido"
	case "email":
		return field + " debe ser un email válido"
	case "gt":
		return fmt.Sprintf("%s debe ser mayor a %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s debe ser mínimo %s", field, fe.Param())
	case "datetime":
		return field + " debe tener formato ISO"
	default:
		return fmt.Sprintf("%s no pasó la validación (%s)", field, fe.Tag())
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
