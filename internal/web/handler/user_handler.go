package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/farmacia-institucional/tutelas-portal/internal/core/domain"
	"github.com/farmacia-institucional/tutelas-portal/internal/core/ports"
	"github.com/farmacia-institucional/tutelas-portal/internal/web/middleware"
)

type UserHandler struct {
	users  ports.UserService
	logger zerolog.Logger
}

func NewUserHandler(users ports.UserService, logger zerolog.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

type usersPage struct {
	basePage
	Users   []domain.User
	Roles   []domain.Role
	Editing bool
	Action  string
	Form    userForm
}

// List shows every account next to the create form.
func (h *UserHandler) List(c echo.Context) error {
	page := h.listPage(c)
	return c.Render(http.StatusOK, "usuarios", page)
}

// EditForm shows the account list with the form pre-filled for one account.
func (h *UserHandler) EditForm(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.Redirect(http.StatusFound, "/usuarios")
	}

	page := h.listPage(c)
	for _, u := range page.Users {
		if u.ID == id {
			page.Editing = true
			page.Action = fmt.Sprintf("/usuarios/%d", id)
			page.Form = userForm{Nombre: u.Nombre, Username: u.Username, Rol: string(u.Rol)}
			return c.Render(http.StatusOK, "usuarios", page)
		}
	}
	return c.Redirect(http.StatusFound, "/usuarios")
}

// Create registers a new account. Password is required here, unlike update.
func (h *UserHandler) Create(c echo.Context) error {
	var form userForm
	if err := c.Bind(&form); err != nil {
		return err
	}

	page := h.listPage(c)
	page.Form = form
	if err := c.Validate(form); err != nil {
		page.Error = err.Error()
		return c.Render(http.StatusBadRequest, "usuarios", page)
	}
	if form.Password == "" {
		page.Error = "la contraseña es obligatoria"
		return c.Render(http.StatusBadRequest, "usuarios", page)
	}

	created, err := h.users.Create(c.Request().Context(), middleware.Token(c), form.input())
	if err != nil {
		page.Error = errorMessage(err, "No fue posible crear el usuario.")
		return c.Render(http.StatusOK, "usuarios", page)
	}

	h.logger.Info().Str("username", created.Username).Str("rol", string(created.Rol)).Msg("user created")
	page = h.listPage(c)
	page.Success = "Usuario creado correctamente"
	return c.Render(http.StatusOK, "usuarios", page)
}

// Update saves an account's fields. An empty password keeps the stored one.
func (h *UserHandler) Update(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.Redirect(http.StatusFound, "/usuarios")
	}

	var form userForm
	if err := c.Bind(&form); err != nil {
		return err
	}

	page := h.listPage(c)
	page.Editing = true
	page.Action = fmt.Sprintf("/usuarios/%d", id)
	page.Form = form
	if err := c.Validate(form); err != nil {
		page.Error = err.Error()
		return c.Render(http.StatusBadRequest, "usuarios", page)
	}

	updated, err := h.users.Update(c.Request().Context(), middleware.Token(c), id, form.input())
	if err != nil {
		page.Error = errorMessage(err, "No fue posible actualizar el usuario.")
		return c.Render(http.StatusOK, "usuarios", page)
	}

	h.logger.Info().Str("username", updated.Username).Msg("user updated")
	page = h.listPage(c)
	page.Success = "Usuario actualizado correctamente"
	return c.Render(http.StatusOK, "usuarios", page)
}

// Toggle flips an account between activo and inactivo.
func (h *UserHandler) Toggle(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.Redirect(http.StatusFound, "/usuarios")
	}

	if _, err := h.users.Toggle(c.Request().Context(), middleware.Token(c), id); err != nil {
		h.logger.Warn().Err(err).Int("user_id", id).Msg("toggle failed")
	}
	return c.Redirect(http.StatusFound, "/usuarios")
}

func (h *UserHandler) listPage(c echo.Context) usersPage {
	page := usersPage{
		basePage: newPage(c, "Usuarios"),
		Roles:    domain.Roles(),
		Action:   "/usuarios",
		Form:     userForm{Rol: string(domain.RoleVisualizador)},
	}

	users, err := h.users.List(c.Request().Context(), middleware.Token(c))
	if err != nil {
		page.Error = errorMessage(err, "No fue posible cargar los usuarios.")
		return page
	}
	page.Users = users
	return page
}
