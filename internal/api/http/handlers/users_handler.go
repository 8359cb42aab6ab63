package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/turnkey-platform/turnkey-service/internal/api/dto"
	"github.com/turnkey-platform/turnkey-service/internal/auth"
	"github.com/turnkey-platform/turnkey-service/internal/domain"
	"github.com/turnkey-platform/turnkey-service/internal/service"
	"github.com/turnkey-platform/turnkey-service/pkg/errorutil"
)

// UsersHandler exposes registry operations for authenticated callers.
type UsersHandler struct {
	registry *service.RegistryService
}

// NewUsersHandler constructs the handler.
func NewUsersHandler(registry *service.RegistryService) *UsersHandler {
	return &UsersHandler{registry: registry}
}

// List handles GET /users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.registry.GetUsers(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponses(users)})
}

// Create handles POST /users: the admin-invoked "create user" flow. The
// caller's organization drives the linkage rules.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	caller, ok := auth.CurrentUser(c)
	if !ok {
		return errorutil.NewUnauthorized("authentication required")
	}

	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return errorutil.NewValidationError("invalid payload", nil)
	}

	user, err := h.registry.Signup(c.Context(), signupInput(req), caller)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// Update handles PUT /users/:id: a full replacement of the stored record.
// Non-managers may only update themselves.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	caller, ok := auth.CurrentUser(c)
	if !ok {
		return errorutil.NewUnauthorized("authentication required")
	}
	id := c.Params("id")
	if !caller.Role.IsManager() && caller.ID != id {
		return errorutil.NewForbidden("cannot update another user")
	}

	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return errorutil.NewValidationError("invalid payload", nil)
	}

	user, err := h.registry.UpdateUser(c.Context(), domain.User{
		ID:             id,
		Email:          req.Email,
		Password:       req.Password,
		Role:           req.Role,
		Name:           req.Name,
		ContactNumber:  req.ContactNumber,
		Address:        req.Address,
		PAN:            req.PAN,
		Aadhaar:        req.Aadhaar,
		CompanyName:    req.CompanyName,
		OrganizationID: req.OrganizationID,
		IsAvailable:    req.IsAvailable,
		ProfilePhoto:   req.ProfilePhoto,
	}, caller.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// Delete handles DELETE /users/:id.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	caller, ok := auth.CurrentUser(c)
	if !ok {
		return errorutil.NewUnauthorized("authentication required")
	}

	id, err := h.registry.DeleteUser(c.Context(), c.Params("id"), caller.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"id": id}})
}
