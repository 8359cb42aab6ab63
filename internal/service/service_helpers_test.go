package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/turnkey-platform/turnkey-service/internal/domain"
	"github.com/turnkey-platform/turnkey-service/internal/events"
	"github.com/turnkey-platform/turnkey-service/internal/repository"
)

// recordingDispatcher captures published events while still delivering
// them to subscribed handlers.
type recordingDispatcher struct {
	events.Dispatcher
	mu        sync.Mutex
	published []events.Event
}

func newRecordingDispatcher() *recordingDispatcher {
	return &recordingDispatcher{Dispatcher: events.NewInMemoryDispatcher(zap.NewNop())}
}

func (d *recordingDispatcher) Publish(ctx context.Context, event events.Event) error {
	d.mu.Lock()
	d.published = append(d.published, event)
	d.mu.Unlock()
	return d.Dispatcher.Publish(ctx, event)
}

func (d *recordingDispatcher) byType(eventType events.EventType) []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	var matched []events.Event
	for _, e := range d.published {
		if e.Type == eventType {
			matched = append(matched, e)
		}
	}
	return matched
}

// sentMail is a captured outbound message.
type sentMail struct {
	To      string
	Subject string
	Body    string
}

// capturingMailer records every send for assertion.
type capturingMailer struct {
	mu   sync.Mutex
	sent []sentMail
}

func (m *capturingMailer) Send(_ context.Context, recipient domain.User, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{To: recipient.ID, Subject: subject, Body: body})
	return nil
}

func (m *capturingMailer) recipients() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, 0, len(m.sent))
	for _, s := range m.sent {
		ids = append(ids, s.To)
	}
	return ids
}

func (m *capturingMailer) reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = nil
}

// fixtures wires the services over in-memory stores.
type fixtures struct {
	users       repository.UserRepository
	tickets     repository.TicketRepository
	dispatcher  *recordingDispatcher
	registry    *RegistryService
	ticketSvc   *TicketService
	assignments *AssignmentService
}

func newFixtures(t *testing.T) *fixtures {
	t.Helper()
	ctx := context.Background()
	users := repository.NewMemoryUserRepository()
	tickets := repository.NewMemoryTicketRepository()
	dispatcher := newRecordingDispatcher()

	registry, err := NewRegistryService(ctx, RegistryDependencies{UserRepo: users, Dispatcher: dispatcher})
	require.NoError(t, err)
	ticketSvc, err := NewTicketService(ctx, TicketDependencies{TicketRepo: tickets, UserRepo: users, Dispatcher: dispatcher})
	require.NoError(t, err)
	assignments := NewAssignmentService(AssignmentDependencies{TicketRepo: tickets, UserRepo: users, Dispatcher: dispatcher})

	return &fixtures{
		users:       users,
		tickets:     tickets,
		dispatcher:  dispatcher,
		registry:    registry,
		ticketSvc:   ticketSvc,
		assignments: assignments,
	}
}

// signup is a shorthand that fails the test on error.
func (f *fixtures) signup(t *testing.T, input SignupInput, caller *domain.User) *domain.User {
	t.Helper()
	user, err := f.registry.Signup(context.Background(), input, caller)
	require.NoError(t, err)
	return user
}

// seedOrganization creates an admin and two employees in one org.
func (f *fixtures) seedOrganization(t *testing.T) (admin, empOne, empTwo *domain.User) {
	t.Helper()
	admin = f.signup(t, SignupInput{Email: "admin@corp.test", Password: "Password1!", Role: domain.RoleAdmin, Name: "Asha Rao"}, nil)
	empOne = f.signup(t, SignupInput{Email: "emp1@corp.test", Password: "Password1!", Role: domain.RoleEmployee, Name: "Ravi Kumar"}, admin)
	empTwo = f.signup(t, SignupInput{Email: "emp2@corp.test", Password: "Password1!", Role: domain.RoleEmployee, Name: "Meena Iyer"}, admin)
	return admin, empOne, empTwo
}

func boolPtr(b bool) *bool { return &b }
