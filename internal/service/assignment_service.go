package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/turnkey-platform/turnkey-service/internal/domain"
	"github.com/turnkey-platform/turnkey-service/internal/events"
	"github.com/turnkey-platform/turnkey-service/internal/repository"
	"github.com/turnkey-platform/turnkey-service/pkg/errorutil"
)

// AssignmentService binds employees to tickets. Every assignee must be an
// Employee in the ticket's organization; availability is advisory and
// never rejected here.
type AssignmentService struct {
	tickets    repository.TicketRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// AssignmentDependencies bundles requirements for the engine.
type AssignmentDependencies struct {
	TicketRepo repository.TicketRepository
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
}

// NewAssignmentService creates the engine.
func NewAssignmentService(deps AssignmentDependencies) *AssignmentService {
	return &AssignmentService{
		tickets:    deps.TicketRepo,
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
	}
}

// AssignTicket replaces the ticket's assignee set with employeeIDs and
// forces status to Assigned, whatever the prior status. Re-assignment of
// an in-progress ticket intentionally resets it.
func (s *AssignmentService) AssignTicket(ctx context.Context, ticketID string, employeeIDs []string, actorID string) (*domain.ServiceTicket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errorutil.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, err
	}
	if err := validateAssignees(ctx, s.users, employeeIDs, ticket.OrganizationID); err != nil {
		return nil, err
	}

	newAssignees := diffAssignees(ticket.AssignedTo, employeeIDs)
	ticket.AssignedTo = append([]string(nil), employeeIDs...)
	ticket.Status = domain.TicketStatusAssigned
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:    events.EventTicketAssigned,
		ActorID: actorID,
		Payload: events.TicketAssignedPayload{
			TicketID:     ticket.ID,
			Title:        ticket.Title,
			Assignees:    append([]string(nil), ticket.AssignedTo...),
			NewAssignees: newAssignees,
		},
	})
	return ticket, nil
}

// SelfAssign adds the employee to the ticket's current assignee set. The
// operation is AssignTicket with the caller appended.
func (s *AssignmentService) SelfAssign(ctx context.Context, ticketID string, employee *domain.User) (*domain.ServiceTicket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errorutil.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, err
	}
	if ticket.HasAssignee(employee.ID) {
		return ticket, nil
	}
	return s.AssignTicket(ctx, ticketID, append(append([]string(nil), ticket.AssignedTo...), employee.ID), employee.ID)
}

// validateAssignees enforces the hard invariant: each id resolves to an
// Employee in the ticket's organization. Shared with ticket creation.
func validateAssignees(ctx context.Context, users repository.UserRepository, employeeIDs []string, organizationID string) error {
	for _, id := range employeeIDs {
		employee, err := users.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return errorutil.NewValidationError("assignee not found", map[string]any{"employee_id": id})
			}
			return err
		}
		if employee.Role != domain.RoleEmployee {
			return errorutil.NewValidationError("assignee is not an employee", map[string]any{"employee_id": id})
		}
		if employee.OrganizationID != organizationID {
			return errorutil.NewValidationError("assignee belongs to another organization", map[string]any{
				"employee_id":     id,
				"organization_id": organizationID,
			})
		}
	}
	return nil
}

// diffAssignees returns ids present in next but not in prev.
func diffAssignees(prev, next []string) []string {
	seen := make(map[string]struct{}, len(prev))
	for _, id := range prev {
		seen[id] = struct{}{}
	}
	var added []string
	for _, id := range next {
		if _, ok := seen[id]; !ok {
			added = append(added, id)
		}
	}
	return added
}

func (s *AssignmentService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
