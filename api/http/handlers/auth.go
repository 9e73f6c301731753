package handlers

import (
	"errors"
	"net/http"
	"net/mail"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/fundwatch/api/http/presenter"
	"github.com/artem13815/fundwatch/pkg/auth"
)

type AuthHandler struct {
	useCase auth.AuthUseCase
}

func NewAuthHandler(useCase auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{useCase: useCase}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func validEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}

// userPayload is the public user shape; the password hash never leaves
// the domain layer.
func userPayload(u auth.User) fiber.Map {
	return fiber.Map{
		"id":    u.ID,
		"email": u.Email,
		"name":  u.Name,
	}
}

// Register handles user registration.
// @Summary Register user
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body registerRequest true "registration payload"
// @Success 200 {object} map[string]any
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	// First violated rule wins, mirroring schema validation.
	if !validEmail(req.Email) {
		return presenter.Error(c, http.StatusBadRequest, "Invalid email format")
	}
	if len(req.Password) < 6 {
		return presenter.Error(c, http.StatusBadRequest, "Password must be at least 6 characters")
	}
	if strings.TrimSpace(req.Name) == "" {
		return presenter.Error(c, http.StatusBadRequest, "Name is required")
	}

	result, err := h.useCase.Register(c.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		if errors.Is(err, auth.ErrUserAlreadyExists) {
			return presenter.Error(c, http.StatusBadRequest, "User already exists with this email")
		}
		return presenter.Error(c, http.StatusInternalServerError, "Internal server error")
	}

	return presenter.JSON(c, http.StatusOK, fiber.Map{
		"user":  userPayload(result.User),
		"token": result.Token,
	})
}

// Login handles user login.
// @Summary Login
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body loginRequest true "login payload"
// @Success 200 {object} map[string]any
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if !validEmail(req.Email) {
		return presenter.Error(c, http.StatusBadRequest, "Invalid email format")
	}
	if req.Password == "" {
		return presenter.Error(c, http.StatusBadRequest, "Password is required")
	}

	result, err := h.useCase.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return presenter.Error(c, http.StatusUnauthorized, "Invalid email or password")
		}
		return presenter.Error(c, http.StatusInternalServerError, "Internal server error")
	}

	return presenter.JSON(c, http.StatusOK, fiber.Map{
		"user":  userPayload(result.User),
		"token": result.Token,
	})
}

// Me returns the profile of the authenticated user. The token is
// trusted for auth, but the record is re-read here so a stale token for
// a missing user yields 404 rather than fabricated data.
// @Summary Current user
// @Tags    auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(int64)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "Access token required")
	}
	user, err := h.useCase.CurrentUser(c.Context(), userID)
	if err != nil {
		if errors.Is(err, auth.ErrNotFound) {
			return presenter.Error(c, http.StatusNotFound, "User not found")
		}
		return presenter.Error(c, http.StatusInternalServerError, "Internal server error")
	}
	return presenter.JSON(c, http.StatusOK, userPayload(user))
}
