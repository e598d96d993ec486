package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/evolfitness/booking-system/internal/api/metrics"
	"github.com/evolfitness/booking-system/internal/core/ports"
)

const recentUsersLimit = 5

// AccountHandler handles registration, login, and the admin user overview.
type AccountHandler struct {
	accounts ports.AccountService
}

func NewAccountHandler(accounts ports.AccountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

// Register creates a new account.
//
// @Summary      Register a new account
// @Tags         cuentas
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  registerResponse
// @Failure      400   {object}  map[string]any
// @Failure      409   {object}  map[string]any
// @Router       /registro [post]
func (h *AccountHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Peticion invalida")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	id, err := h.accounts.Register(c.Request().Context(), ports.RegisterInput{
		Username:  req.NombreUsuario,
		FirstName: req.Nombre,
		LastName:  req.Apellidos,
		Password:  req.Contrasena,
	})
	if err != nil {
		return err
	}

	metrics.UsersRegisteredTotal.Inc()
	return c.JSON(http.StatusCreated, registerResponse{OK: true, ID: id})
}

// Login verifies credentials and returns a token plus the user summary.
//
// @Summary      Login
// @Tags         cuentas
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]any
// @Failure      401   {object}  map[string]any
// @Router       /login [post]
func (h *AccountHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Peticion invalida")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Faltan credenciales")
	}

	token, user, err := h.accounts.Login(c.Request().Context(), req.NombreUsuario, req.Contrasena)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("denied").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusOK, loginResponse{OK: true, Token: token, User: toUserResponse(user)})
}

// UsersOverview returns the account count and the newest accounts. Admin only.
//
// @Summary      User overview
// @Tags         cuentas
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  usersOverviewResponse
// @Failure      401  {object}  map[string]any
// @Failure      403  {object}  map[string]any
// @Router       /debug/usuarios [get]
func (h *AccountHandler) UsersOverview(c echo.Context) error {
	count, recent, err := h.accounts.Overview(c.Request().Context(), recentUsersLimit)
	if err != nil {
		return err
	}

	docs := make([]userResponse, 0, len(recent))
	for _, u := range recent {
		docs = append(docs, toUserResponse(u))
	}
	return c.JSON(http.StatusOK, usersOverviewResponse{OK: true, Count: count, Docs: docs})
}
