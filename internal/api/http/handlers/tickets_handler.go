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

// TicketsHandler exposes the ticket store and assignment engine.
type TicketsHandler struct {
	tickets     *service.TicketService
	assignments *service.AssignmentService
}

// NewTicketsHandler constructs the handler.
func NewTicketsHandler(tickets *service.TicketService, assignments *service.AssignmentService) *TicketsHandler {
	return &TicketsHandler{tickets: tickets, assignments: assignments}
}

// List handles GET /tickets. Admins see everything; everyone else sees
// their organization's tickets.
func (h *TicketsHandler) List(c *fiber.Ctx) error {
	caller, ok := auth.CurrentUser(c)
	if !ok {
		return errorutil.NewUnauthorized("authentication required")
	}

	tickets, err := h.tickets.GetTickets(c.Context())
	if err != nil {
		return err
	}
	if caller.Role != domain.RoleAdmin {
		scoped := tickets[:0]
		for _, t := range tickets {
			if t.OrganizationID == caller.OrganizationID {
				scoped = append(scoped, t)
			}
		}
		tickets = scoped
	}
	return c.JSON(fiber.Map{"data": tickets})
}

// Get handles GET /tickets/:id.
func (h *TicketsHandler) Get(c *fiber.Ctx) error {
	ticket, err := h.tickets.GetTicket(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticket})
}

// Create handles POST /tickets. The creator must belong to an
// organization; the ticket inherits it.
func (h *TicketsHandler) Create(c *fiber.Ctx) error {
	caller, ok := auth.CurrentUser(c)
	if !ok {
		return errorutil.NewUnauthorized("authentication required")
	}
	if caller.OrganizationID == "" {
		return errorutil.NewValidationError("caller has no organization", map[string]any{"user_id": caller.ID})
	}

	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return errorutil.NewValidationError("invalid payload", nil)
	}

	ticket, err := h.tickets.AddTicket(c.Context(), service.TicketInput{
		Title:           req.Title,
		Category:        req.Category,
		Hierarchy:       req.Hierarchy,
		IssueType:       req.IssueType,
		Description:     req.Description,
		Details:         req.Details,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		Days:            req.Days,
		EmployeesNeeded: req.EmployeesNeeded,
		AssignedTo:      req.AssignedTo,
		RequestType:     req.RequestType,
		EmployeeType:    req.EmployeeType,
		Tenure:          req.Tenure,
		Priority:        req.Priority,
	}, caller.ID, caller.OrganizationID)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": ticket})
}

// UpdateStatus handles PATCH /tickets/:id/status. The Completed
// transition is reserved for the ticket's creator or an organization
// manager.
func (h *TicketsHandler) UpdateStatus(c *fiber.Ctx) error {
	caller, ok := auth.CurrentUser(c)
	if !ok {
		return errorutil.NewUnauthorized("authentication required")
	}

	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return errorutil.NewValidationError("invalid payload", nil)
	}

	ticketID := c.Params("id")
	if req.Status == domain.TicketStatusCompleted && !caller.Role.IsManager() {
		ticket, err := h.tickets.GetTicket(c.Context(), ticketID)
		if err != nil {
			return err
		}
		// State-machine validity takes precedence: an illegal jump fails
		// validation regardless of who asks.
		if domain.CanTransition(ticket.Status, req.Status) && ticket.CreatedBy != caller.ID {
			return errorutil.NewForbidden("only the creator or a manager can complete a ticket")
		}
	}

	ticket, err := h.tickets.UpdateTicketStatus(c.Context(), ticketID, req.Status, caller.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticket})
}

// Assign handles POST /tickets/:id/assign. Managers replace the full
// assignee set; an Employee caller self-assigns instead.
func (h *TicketsHandler) Assign(c *fiber.Ctx) error {
	caller, ok := auth.CurrentUser(c)
	if !ok {
		return errorutil.NewUnauthorized("authentication required")
	}

	ticketID := c.Params("id")
	if caller.Role == domain.RoleEmployee {
		ticket, err := h.assignments.SelfAssign(c.Context(), ticketID, caller)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"data": ticket})
	}

	var req dto.AssignTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return errorutil.NewValidationError("invalid payload", nil)
	}

	ticket, err := h.assignments.AssignTicket(c.Context(), ticketID, req.EmployeeIDs, caller.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticket})
}
