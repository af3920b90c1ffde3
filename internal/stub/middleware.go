package stub

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/envaplast/planta-cli/internal/core/domain"
)

const userContextKey = "user"

// requireAuth validates the bearer token and injects the owning user into
// the request context under userContextKey.
func requireAuth(issuer *tokenIssuer, users *userDirectory) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Token no proporcionado")
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "Encabezado de autorización inválido")
			}

			userID, err := issuer.verify(parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Token inválido o expirado")
			}

			user := users.lookup(userID)
			if user == nil || !user.Activo {
				return echo.NewHTTPError(http.StatusUnauthorized, "Usuario no encontrado o inactivo")
			}

			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

// requireCargo enforces the role allow-list for a route. Runs after
// requireAuth.
func requireCargo(allowed ...string) echo.MiddlewareFunc {
	set := make(map[string]struct{}, len(allowed))
	for _, cargo := range allowed {
		set[cargo] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := currentUser(c)
			if user == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "No autenticado")
			}
			if _, ok := set[user.Cargo]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, "No tiene permisos para esta operación")
			}
			return next(c)
		}
	}
}

func currentUser(c echo.Context) *domain.User {
	user, _ := c.Get(userContextKey).(*domain.User)
	return user
}
