package events

import (
	"time"

	"github.com/turnkey-platform/turnkey-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserSignedUp        EventType = "user_signed_up"
	EventUserSignupRejected  EventType = "user_signup_rejected"
	EventUserUpdated         EventType = "user_updated"
	EventUserDeleted         EventType = "user_deleted"
	EventTicketCreated       EventType = "ticket_created"
	EventTicketStatusChanged EventType = "ticket_status_changed"
	EventTicketAssigned      EventType = "ticket_assigned"
)

// Event is the envelope services publish after a mutation. ActorID is the
// user who triggered the mutation, empty when the action is anonymous
// (self-service signup).
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	ActorID   string    `json:"actor_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload"`
}

// UserSignedUpPayload payload.
type UserSignedUpPayload struct {
	UserID         string      `json:"user_id"`
	Name           string      `json:"name"`
	Role           domain.Role `json:"role"`
	OrganizationID string      `json:"organization_id,omitempty"`
}

// UserSignupRejectedPayload payload.
type UserSignupRejectedPayload struct {
	Email  string `json:"email"`
	Reason string `json:"reason"`
}

// UserUpdatedPayload payload.
type UserUpdatedPayload struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
}

// UserDeletedPayload payload.
type UserDeletedPayload struct {
	UserID string `json:"user_id"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	TicketID       string                `json:"ticket_id"`
	Title          string                `json:"title"`
	Priority       domain.TicketPriority `json:"priority"`
	OrganizationID string                `json:"organization_id"`
	CreatedBy      string                `json:"created_by"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	TicketID  string              `json:"ticket_id"`
	Title     string              `json:"title"`
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
	CreatedBy string              `json:"created_by"`
	Assignees []string            `json:"assignees"`
}

// TicketAssignedPayload payload. NewAssignees holds ids present after the
// replacement but not before; Assignees is the full resulting set.
type TicketAssignedPayload struct {
	TicketID     string   `json:"ticket_id"`
	Title        string   `json:"title"`
	Assignees    []string `json:"assignees"`
	NewAssignees []string `json:"new_assignees"`
}
