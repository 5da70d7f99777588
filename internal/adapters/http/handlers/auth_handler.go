package handlers

import (
	"strings"

	"loandesk/internal/core/domain"
	"loandesk/internal/core/services"
	"loandesk/internal/pkg/response"
	"loandesk/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *services.AuthService
	validate    *validation.Engine
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, validate *validation.Engine) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validate,
	}
}

// RegisterRequest represents registration request body
type RegisterRequest struct {
	Username string `json:"username" validate:"min=3"`
	Password string `json:"password" validate:"min=6"`
}

// LoginRequest represents login request body
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Register handles user registration
// @Summary Register new user
// @Description Register a new user and return a session token
// @Tags Users
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "Registration data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /users/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		if fe, ok := validation.TypeError(err); ok {
			return response.ValidationFailed(c, []domain.FieldError{fe})
		}
		return response.BadRequest(c, "Invalid request body")
	}

	if fields := h.validate.Check(&req); fields != nil {
		return response.ValidationFailed(c, fields)
	}

	input := &services.RegisterInput{
		Username: strings.TrimSpace(req.Username),
		Password: req.Password,
	}

	result, err := h.authService.Register(c.Context(), input)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Created(c, "User registered successfully", result)
}

// Login handles user login
// @Summary Login user
// @Description Authenticate a user and return a fresh session token
// @Tags Users
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Login credentials"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /users/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		if fe, ok := validation.TypeError(err); ok {
			return response.ValidationFailed(c, []domain.FieldError{fe})
		}
		return response.BadRequest(c, "Invalid request body")
	}

	if fields := h.validate.Check(&req); fields != nil {
		return response.ValidationFailed(c, fields)
	}

	input := &services.LoginInput{
		Username: strings.TrimSpace(req.Username),
		Password: req.Password,
	}

	result, err := h.authService.Login(c.Context(), input)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, "User logged in successfully", result)
}
