package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/turnkey-platform/turnkey-service/internal/api/dto"
	"github.com/turnkey-platform/turnkey-service/internal/auth"
	"github.com/turnkey-platform/turnkey-service/internal/service"
	"github.com/turnkey-platform/turnkey-service/pkg/errorutil"
)

// AuthHandler exposes login and self-service signup.
type AuthHandler struct {
	registry *service.RegistryService
	tokens   *auth.TokenManager
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(registry *service.RegistryService, tokens *auth.TokenManager) *AuthHandler {
	return &AuthHandler{registry: registry, tokens: tokens}
}

// Login handles POST /auth/login. Invalid credentials are an expected
// outcome: 401 with an error envelope, no fault.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return errorutil.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return errorutil.NewValidationError("email and password required", nil)
	}

	user, err := h.registry.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	if user == nil {
		return errorutil.NewUnauthorized("invalid email or password")
	}

	token, exp, err := h.tokens.GenerateToken(user)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user": dto.NewUserResponse(user),
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Signup handles POST /auth/signup (self-service, no caller context).
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return errorutil.NewValidationError("invalid payload", nil)
	}

	user, err := h.registry.Signup(c.Context(), signupInput(req), nil)
	if err != nil {
		return err
	}

	token, exp, err := h.tokens.GenerateToken(user)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"user": dto.NewUserResponse(user),
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

func signupInput(req dto.SignupRequest) service.SignupInput {
	return service.SignupInput{
		Email:         req.Email,
		Password:      req.Password,
		Role:          req.Role,
		Name:          req.Name,
		ContactNumber: req.ContactNumber,
		Address:       req.Address,
		PAN:           req.PAN,
		Aadhaar:       req.Aadhaar,
		CompanyName:   req.CompanyName,
		ProfilePhoto:  req.ProfilePhoto,
		IsAvailable:   req.IsAvailable,
	}
}
