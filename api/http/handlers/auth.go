package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/agenda-pj/accounts/api/http/presenter"
	"github.com/agenda-pj/accounts/pkg/metrics"
	"github.com/agenda-pj/accounts/pkg/security/jwt"
	"github.com/agenda-pj/accounts/pkg/user"
)

// AuthHandler serves login, token refresh and token validation.
type AuthHandler struct {
	uc      user.UseCase
	issuer  *jwt.Issuer
	metrics *metrics.Metrics
}

func NewAuthHandler(uc user.UseCase, issuer *jwt.Issuer, m *metrics.Metrics) *AuthHandler {
	return &AuthHandler{uc: uc, issuer: issuer, metrics: m}
}

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// Login authenticates by email or name and returns the session token pair.
// @Summary Login
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body loginRequest true "login payload"
// @Success 200 {object} map[string]any
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}

	result, err := h.uc.Login(c.Context(), req.Login, req.Password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			return presenter.Error(c, http.StatusUnauthorized, "invalid login or password")
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to login")
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{
		"accessToken":  result.Tokens.AccessToken,
		"refreshToken": result.Tokens.RefreshToken,
		"user":         result.User,
	})
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// Refresh mints a new access token from a valid refresh token. The refresh
// token is not rotated and remains valid until its own expiry.
// @Summary Refresh access token
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body refreshRequest true "refresh payload"
// @Success 200 {object} map[string]string
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /refresh-token [post]
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req refreshRequest
	if err := c.BodyParser(&req); err != nil || req.RefreshToken == "" {
		return presenter.Error(c, http.StatusUnauthorized, "refresh token not sent")
	}

	accessToken, err := h.issuer.Refresh(req.RefreshToken)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, "invalid or expired refresh token")
	}
	h.metrics.TokenRefreshes.Inc()
	return presenter.JSON(c, http.StatusOK, fiber.Map{"accessToken": accessToken})
}

// Validate confirms the bearer access token accepted by the auth middleware.
// @Summary Validate access token
// @Tags    auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /validate-token [get]
func (h *AuthHandler) Validate(c *fiber.Ctx) error {
	userID, _ := c.Locals(jwt.LocalsUserID).(string)
	return presenter.JSON(c, http.StatusOK, fiber.Map{
		"valid":  true,
		"userId": userID,
	})
}
