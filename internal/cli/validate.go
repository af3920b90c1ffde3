package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/envaplast/planta-cli/internal/core/domain"
)

var validate = validator.New()

type loginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

// validateLogin checks credentials before any network call, with the same
// rules the backend applies.
func validateLogin(in loginInput) error {
	return collect(validate.Struct(in), map[string]string{
		"Email.required":    "El email es requerido",
		"Email.email":       "El formato del email no es válido",
		"Password.required": "La contraseña es requerida",
		"Password.min":      "La contraseña debe tener al menos 6 caracteres",
	})
}

// validateRegistro checks a new production batch before submitting it.
func validateRegistro(req domain.CreateRegistroEnvase) error {
	return collect(validate.Struct(req), map[string]string{
		"CantidadDeMaterialUsado.required":     "La cantidad de material usado debe ser mayor a 0",
		"CantidadDeMaterialUsado.gt":           "La cantidad de material usado debe ser mayor a 0",
		"CantidadDeEnvasesProducidos.required": "La cantidad de envases producidos debe ser mayor a 0",
		"CantidadDeEnvasesProducidos.gt":       "La cantidad de envases producidos debe ser mayor a 0",
		"HorasTrabajadas.required":             "Las horas trabajadas deben ser mínimo 1",
		"HorasTrabajadas.min":                  "Las horas trabajadas deben ser mínimo 1",
		"IDUser.required":                      "El ID de usuario es requerido",
		"IDOperario.required":                  "El ID de operario es requerido",
		"IDProducto.required":                  "El ID de producto es requerido",
		"IDMaterial.required":                  "El ID de material es requerido",
		"FechaCreacion.datetime":               "El formato de fecha no es válido (use formato ISO)",
	})
}

// collect turns validator field errors into one user-facing error listing
// every problem, using the given message table.
func collect(err error, messages map[string]string) error {
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}

	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		key := fe.Field() + "." + fe.Tag()
		if m, ok := messages[key]; ok {
			msgs = append(msgs, m)
		} else {
			msgs = append(msgs, fmt.Sprintf("%s no es válido", fe.Field()))
		}
	}
	return errors.New(strings.Join(msgs, "\n"))
}
