package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/turnkey-platform/turnkey-service/internal/domain"
	"github.com/turnkey-platform/turnkey-service/internal/events"
	"github.com/turnkey-platform/turnkey-service/internal/mailer"
	"github.com/turnkey-platform/turnkey-service/internal/notify"
	"github.com/turnkey-platform/turnkey-service/internal/repository"
)

// NotificationService translates domain events into the two side-effect
// streams: in-app notifications for the acting session and simulated
// messages for affected external users. Handlers never return delivery
// failures to the dispatcher's caller; sends are best-effort.
type NotificationService struct {
	dispatcher events.Dispatcher
	users      repository.UserRepository
	center     *notify.Center
	mail       mailer.Mailer
	logger     *zap.Logger
}

// NotificationDependencies bundles requirements for the service.
type NotificationDependencies struct {
	Dispatcher events.Dispatcher
	UserRepo   repository.UserRepository
	Center     *notify.Center
	Mailer     mailer.Mailer
}

// NewNotificationService creates the service.
func NewNotificationService(deps NotificationDependencies, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		dispatcher: deps.Dispatcher,
		users:      deps.UserRepo,
		center:     deps.Center,
		mail:       deps.Mailer,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to every event type in the trigger matrix.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventUserSignedUp, n.handleUserSignedUp)
	n.dispatcher.Subscribe(events.EventUserSignupRejected, n.handleUserSignupRejected)
	n.dispatcher.Subscribe(events.EventUserUpdated, n.handleUserUpdated)
	n.dispatcher.Subscribe(events.EventUserDeleted, n.handleUserDeleted)
	n.dispatcher.Subscribe(events.EventTicketCreated, n.handleTicketCreated)
	n.dispatcher.Subscribe(events.EventTicketStatusChanged, n.handleTicketStatusChanged)
	n.dispatcher.Subscribe(events.EventTicketAssigned, n.handleTicketAssigned)
}

func (n *NotificationService) handleUserSignedUp(_ context.Context, _ events.Event) error {
	n.center.Push("Signup successful! Please log in.", domain.NotificationSuccess)
	return nil
}

func (n *NotificationService) handleUserSignupRejected(_ context.Context, _ events.Event) error {
	n.center.Push("Email already exists.", domain.NotificationError)
	return nil
}

func (n *NotificationService) handleUserUpdated(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.UserUpdatedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload for %s", event.Type)
	}
	n.center.Push(fmt.Sprintf("User %s updated.", payload.Name), domain.NotificationSuccess)
	return nil
}

func (n *NotificationService) handleUserDeleted(_ context.Context, _ events.Event) error {
	n.center.Push("User deleted.", domain.NotificationSuccess)
	return nil
}

// handleTicketCreated pushes the success notification and, for
// high-priority tickets, mails every Admin and Supervisor in the
// ticket's organization.
func (n *NotificationService) handleTicketCreated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketCreatedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload for %s", event.Type)
	}
	n.center.Push(fmt.Sprintf("Ticket %s created successfully.", payload.TicketID), domain.NotificationSuccess)

	if payload.Priority != domain.TicketPriorityHigh {
		return nil
	}
	managers, err := n.organizationManagers(ctx, payload.OrganizationID)
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("High Priority Ticket Created: %s", payload.TicketID)
	body := fmt.Sprintf("A new high-priority ticket %q has been created for your organization and requires attention.", payload.Title)
	n.sendAll(ctx, managers, subject, body)
	return nil
}

// handleTicketStatusChanged pushes the info notification and mails the
// creator plus all current assignees, excluding the acting user.
func (n *NotificationService) handleTicketStatusChanged(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketStatusChangedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload for %s", event.Type)
	}
	n.center.Push(fmt.Sprintf("Ticket %s status updated to %s.", payload.TicketID, payload.NewStatus), domain.NotificationInfo)

	subject := fmt.Sprintf("Ticket Status Update: %s is now %s", payload.TicketID, payload.NewStatus)
	body := fmt.Sprintf("The status of the ticket %q has been updated to %q by %s.",
		payload.Title, payload.NewStatus, n.actorName(ctx, event.ActorID))

	recipientIDs := append([]string{payload.CreatedBy}, payload.Assignees...)
	recipients := n.resolveRecipients(ctx, recipientIDs, event.ActorID)
	n.sendAll(ctx, recipients, subject, body)
	return nil
}

// handleTicketAssigned pushes the caller summary and mails each newly
// assigned employee.
func (n *NotificationService) handleTicketAssigned(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketAssignedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload for %s", event.Type)
	}
	n.center.Push(fmt.Sprintf("Ticket %s assigned.", payload.TicketID), domain.NotificationSuccess)

	subject := fmt.Sprintf("New Ticket Assignment: %s", payload.TicketID)
	body := fmt.Sprintf("You have been assigned to a new ticket: %q. Please log in to view details.", payload.Title)
	recipients := n.resolveRecipients(ctx, payload.NewAssignees, "")
	n.sendAll(ctx, recipients, subject, body)
	return nil
}

func (n *NotificationService) organizationManagers(ctx context.Context, organizationID string) ([]domain.User, error) {
	all, err := n.users.List(ctx)
	if err != nil {
		return nil, err
	}
	var managers []domain.User
	for _, user := range all {
		if user.OrganizationID != organizationID {
			continue
		}
		if user.Role == domain.RoleAdmin || user.Role == domain.RoleSupervisor {
			managers = append(managers, user)
		}
	}
	return managers, nil
}

// resolveRecipients maps ids to records, dropping the excluded actor,
// duplicates and dangling ids of deleted users.
func (n *NotificationService) resolveRecipients(ctx context.Context, ids []string, excludeID string) []domain.User {
	var recipients []domain.User
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id == "" || id == excludeID {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		user, err := n.users.GetByID(ctx, id)
		if err != nil {
			continue
		}
		recipients = append(recipients, *user)
	}
	return recipients
}

func (n *NotificationService) actorName(ctx context.Context, actorID string) string {
	if actorID == "" {
		return "the system"
	}
	user, err := n.users.GetByID(ctx, actorID)
	if err != nil {
		return "the system"
	}
	return user.Name
}

// sendAll dispatches fire-and-forget. Failures are logged and swallowed.
func (n *NotificationService) sendAll(ctx context.Context, recipients []domain.User, subject, body string) {
	if n.mail == nil {
		return
	}
	for _, recipient := range recipients {
		if err := n.mail.Send(ctx, recipient, subject, body); err != nil {
			n.logger.Warn("outbound message failed",
				zap.String("recipient", recipient.ID),
				zap.String("subject", subject),
				zap.Error(err))
		}
	}
}
