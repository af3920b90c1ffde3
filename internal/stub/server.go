package stub

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/envaplast/planta-cli/internal/config"
	"github.com/envaplast/planta-cli/internal/core/domain"
)

// NewServer builds the Echo instance with all routes registered. Callers own
// starting and shutting it down.
func NewServer(cfg config.StubConfig, log zerolog.Logger) (*echo.Echo, error) {
	users, err := seedUsers()
	if err != nil {
		return nil, err
	}

	issuer := newTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	repo := newRecordsRepo(users)

	e := echo.New()
	e.HideBanner = true
	e.Validator = newValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())

	auth := &authHandler{users: users, issuer: issuer}
	records := &recordsHandler{repo: repo}
	authed := requireAuth(issuer, users)

	e.POST("/auth/login", auth.login)
	e.POST("/auth/logout", auth.logout, authed)
	e.GET("/auth/profile", auth.profile, authed)
	e.POST("/auth/refresh", auth.refresh, authed)

	e.POST("/api/production-records/envases", records.create, authed,
		requireCargo(domain.CargoOperario, domain.CargoSupervisor, domain.CargoGerente))
	e.GET("/api/production-records", records.list, authed,
		requireCargo(domain.CargoSupervisor, domain.CargoGerente, domain.CargoAdministrativo))
	e.GET("/api/production-records/:id", records.get, authed)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	log.Info().
		Strs("accounts", users.emails()).
		Str("password", DefaultPassword).
		Msg("stub backend seeded")

	return e, nil
}
