package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/turnkey-platform/turnkey-service/internal/domain"
	"github.com/turnkey-platform/turnkey-service/internal/events"
	"github.com/turnkey-platform/turnkey-service/internal/repository"
	"github.com/turnkey-platform/turnkey-service/pkg/errorutil"
)

const dateLayout = "2006-01-02"

// TicketInput describes ticket creation payload. Days is derived from the
// date range when not supplied.
type TicketInput struct {
	Title           string
	Category        domain.TicketCategory
	Hierarchy       domain.EmployeeHierarchy
	IssueType       string
	Description     string
	Details         string
	StartDate       string
	EndDate         string
	Days            int
	EmployeesNeeded int
	AssignedTo      []string
	RequestType     domain.RequestType
	EmployeeType    domain.EmployeeType
	Tenure          int
	Priority        domain.TicketPriority
}

// TicketService owns ticket records, SR-id sequencing and status changes.
type TicketService struct {
	tickets    repository.TicketRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
	seq        *sequence
}

// TicketDependencies bundles requirements for the ticket store.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
}

// NewTicketService builds the store, seeding the ticket counter from the
// current ticket count.
func NewTicketService(ctx context.Context, deps TicketDependencies) (*TicketService, error) {
	count, err := deps.TicketRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("seed ticket counter: %w", err)
	}
	return &TicketService{
		tickets:    deps.TicketRepo,
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
		seq:        newSequence(count),
	}, nil
}

// AddTicket creates a ticket on behalf of the creator. Initial status is
// Assigned when assignees are supplied, Pending otherwise.
func (s *TicketService) AddTicket(ctx context.Context, input TicketInput, creatorID, organizationID string) (*domain.ServiceTicket, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, errorutil.NewValidationError("title required", nil)
	}
	days, err := deriveDays(input.StartDate, input.EndDate, input.Days)
	if err != nil {
		return nil, err
	}
	if len(input.AssignedTo) > 0 {
		if err := validateAssignees(ctx, s.users, input.AssignedTo, organizationID); err != nil {
			return nil, err
		}
	}

	status := domain.TicketStatusPending
	if len(input.AssignedTo) > 0 {
		status = domain.TicketStatusAssigned
	}
	priority := input.Priority
	if priority == "" {
		priority = domain.TicketPriorityMedium
	}

	ticket := &domain.ServiceTicket{
		ID:              formatTicketID(s.seq.next()),
		Title:           strings.TrimSpace(input.Title),
		Status:          status,
		Category:        input.Category,
		Hierarchy:       input.Hierarchy,
		IssueType:       input.IssueType,
		Description:     input.Description,
		Details:         input.Details,
		StartDate:       input.StartDate,
		EndDate:         input.EndDate,
		Days:            days,
		EmployeesNeeded: input.EmployeesNeeded,
		AssignedTo:      append([]string(nil), input.AssignedTo...),
		CreatedBy:       creatorID,
		OrganizationID:  organizationID,
		RequestType:     input.RequestType,
		EmployeeType:    input.EmployeeType,
		Tenure:          input.Tenure,
		Priority:        priority,
	}

	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:    events.EventTicketCreated,
		ActorID: creatorID,
		Payload: events.TicketCreatedPayload{
			TicketID:       ticket.ID,
			Title:          ticket.Title,
			Priority:       ticket.Priority,
			OrganizationID: ticket.OrganizationID,
			CreatedBy:      ticket.CreatedBy,
		},
	})
	return ticket, nil
}

// GetTickets returns a full snapshot of the store. Organization scoping
// is the transport layer's concern.
func (s *TicketService) GetTickets(ctx context.Context) ([]domain.ServiceTicket, error) {
	return s.tickets.List(ctx)
}

// GetTicket fetches a single ticket by id.
func (s *TicketService) GetTicket(ctx context.Context, id string) (*domain.ServiceTicket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errorutil.NewNotFound("ticket", map[string]any{"ticket_id": id})
		}
		return nil, err
	}
	return ticket, nil
}

// UpdateTicketStatus applies a status transition. Requesting the current
// status again is a no-op that still notifies. actorID identifies the
// caller so the dispatcher can exclude them from recipient sets.
func (s *TicketService) UpdateTicketStatus(ctx context.Context, ticketID string, status domain.TicketStatus, actorID string) (*domain.ServiceTicket, error) {
	if !domain.ValidStatus(status) {
		return nil, errorutil.NewValidationError("unknown status", map[string]any{"status": status})
	}
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errorutil.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, err
	}
	if !domain.CanTransition(ticket.Status, status) {
		return nil, errorutil.NewValidationError("invalid status transition", map[string]any{
			"from": ticket.Status,
			"to":   status,
		})
	}

	oldStatus := ticket.Status
	ticket.Status = status
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:    events.EventTicketStatusChanged,
		ActorID: actorID,
		Payload: events.TicketStatusChangedPayload{
			TicketID:  ticket.ID,
			Title:     ticket.Title,
			OldStatus: oldStatus,
			NewStatus: status,
			CreatedBy: ticket.CreatedBy,
			Assignees: append([]string(nil), ticket.AssignedTo...),
		},
	})
	return ticket, nil
}

// deriveDays validates the date range and computes the inclusive day
// count: ceil of the difference divided by one day, minimum 1.
func deriveDays(startDate, endDate string, supplied int) (int, error) {
	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return 0, errorutil.NewValidationError("invalid start date", map[string]any{"start_date": startDate})
	}
	end, err := time.Parse(dateLayout, endDate)
	if err != nil {
		return 0, errorutil.NewValidationError("invalid end date", map[string]any{"end_date": endDate})
	}
	if end.Before(start) {
		return 0, errorutil.NewValidationError("end date must be on or after the start date", map[string]any{
			"start_date": startDate,
			"end_date":   endDate,
		})
	}
	if supplied > 0 {
		return supplied, nil
	}
	days := int(math.Ceil(end.Sub(start).Hours() / 24))
	if days < 1 {
		days = 1
	}
	return days, nil
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
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
