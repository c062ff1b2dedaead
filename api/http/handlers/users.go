package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/agenda-pj/accounts/api/http/presenter"
	"github.com/agenda-pj/accounts/pkg/user"
)

// UsersHandler serves the /usuarios CRUD routes.
type UsersHandler struct {
	uc user.UseCase
}

func NewUsersHandler(uc user.UseCase) *UsersHandler {
	return &UsersHandler{uc: uc}
}

type createUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Create handles account signup.
// @Summary Create user
// @Tags    users
// @Accept  json
// @Produce json
// @Param   input body createUserRequest true "signup payload"
// @Success 201 {object} user.User
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 409 {object} presenter.ErrorResponse
// @Router  /usuarios [post]
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	var req createUserRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}

	u, err := h.uc.Signup(c.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrMissingField):
			return presenter.Error(c, http.StatusBadRequest, "name, email and password are required")
		case errors.Is(err, user.ErrDuplicateEmail):
			return presenter.Error(c, http.StatusConflict, "email already registered")
		default:
			return presenter.Error(c, http.StatusInternalServerError, "failed to create user")
		}
	}
	return presenter.JSON(c, http.StatusCreated, u)
}

// List returns every user record.
// @Summary List users
// @Tags    users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} user.User
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /usuarios [get]
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.uc.List(c.Context())
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to list users")
	}
	return presenter.JSON(c, http.StatusOK, users)
}

type updateUserRequest struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Password *string `json:"password"`
}

// Update mutates name/email and, when a password is supplied, the stored hash.
// @Summary Update user
// @Tags    users
// @Accept  json
// @Produce json
// @Param   id    path string            true "user id (UUID)"
// @Param   input body updateUserRequest true "fields to update"
// @Security BearerAuth
// @Success 200 {object} user.User
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /usuarios/{id} [put]
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid user id")
	}
	var req updateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}

	u, err := h.uc.Update(c.Context(), id, user.UpdateInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to update user")
	}
	return presenter.JSON(c, http.StatusOK, u)
}

// Delete removes a user record.
// @Summary Delete user
// @Tags    users
// @Produce json
// @Param   id path string true "user id (UUID)"
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /usuarios/{id} [delete]
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid user id")
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to delete user")
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"message": "user deleted successfully"})
}
