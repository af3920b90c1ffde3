package stub

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/envaplast/planta-cli/internal/core/domain"
)

type authHandler struct {
	users  *userDirectory
	issuer *tokenIssuer
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginResponse struct {
	AccessToken string       `json:"access_token"`
	User        *domain.User `json:"user"`
}

func (h *authHandler) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Cuerpo de la petición inválido")
	}
	if err := c.Validate(&req); err != nil {
		var ve *validationError
		if errors.As(err, &ve) {
			return echo.NewHTTPError(http.StatusBadRequest, ve.messages)
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user := h.users.authenticate(req.Email, req.Password)
	if user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Credenciales inválidas")
	}

	token, err := h.issuer.issue(user.ID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, loginResponse{AccessToken: token, User: user})
}

func (h *authHandler) logout(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"message": "Sesión cerrada"})
}

func (h *authHandler) profile(c echo.Context) error {
	return c.JSON(http.StatusOK, currentUser(c))
}

func (h *authHandler) refresh(c echo.Context) error {
	user := currentUser(c)
	token, err := h.issuer.issue(user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, loginResponse{AccessToken: token, User: user})
}

type recordsHandler struct {
	repo *recordsRepo
}

func (h *recordsHandler) create(c echo.Context) error {
	var req domain.CreateRegistroEnvase
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Cuerpo de la petición inválido")
	}
	if err := c.Validate(&req); err != nil {
		var ve *validationError
		if errors.As(err, &ve) {
			return echo.NewHTTPError(http.StatusBadRequest, ve.messages)
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusCreated, h.repo.create(req))
}

func (h *recordsHandler) list(c echo.Context) error {
	f := listFilter{
		page:       intQuery(c, "page"),
		limit:      intQuery(c, "limit"),
		sortBy:     c.QueryParam("sortBy"),
		sortOrder:  c.QueryParam("sortOrder"),
		userID:     intQuery(c, "userId"),
		operarioID: intQuery(c, "operarioId"),
		productoID: intQuery(c, "productoId"),
	}

	var problems []string
	if f.sortBy != "" && !domain.ValidSortBy(f.sortBy) {
		problems = append(problems, "sortBy debe ser uno de: id, fechaCreacion, cantidadDeEnvasesProducidos, horasTrabajadas")
	}
	if f.sortOrder != "" && f.sortOrder != domain.SortAsc && f.sortOrder != domain.SortDesc {
		problems = append(problems, "sortOrder debe ser ASC o DESC")
	}
	if len(problems) > 0 {
		return echo.NewHTTPError(http.StatusBadRequest, problems)
	}

	return c.JSON(http.StatusOK, h.repo.list(f))
}

func (h *recordsHandler) get(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "El id debe ser numérico")
	}

	rec := h.repo.get(id)
	if rec == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Registro no encontrado")
	}
	return c.JSON(http.StatusOK, rec)
}

func intQuery(c echo.Context, name string) int {
	n, _ := strconv.Atoi(c.QueryParam(name))
	return n
}
