package repository

import (
	"context"
	"sync"

	"github.com/turnkey-platform/turnkey-service/internal/domain"
)

// memoryUserRepository keeps user records in process memory. All access
// runs under one mutex so the email-uniqueness check and the insert form
// a single critical section.
type memoryUserRepository struct {
	mu    sync.RWMutex
	users []domain.User
}

// NewMemoryUserRepository returns the in-memory implementation.
func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{}
}

func (r *memoryUserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.users {
		if r.users[i].Email == user.Email {
			return ErrDuplicateEmail
		}
	}
	r.users = append(r.users, *user)
	return nil
}

func (r *memoryUserRepository) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.users {
		if r.users[i].Email == user.Email && r.users[i].ID != user.ID {
			return ErrDuplicateEmail
		}
	}
	for i := range r.users {
		if r.users[i].ID == user.ID {
			r.users[i] = *user
			return nil
		}
	}
	return ErrNotFound
}

func (r *memoryUserRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.users {
		if r.users[i].ID == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *memoryUserRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.users {
		if r.users[i].ID == id {
			user := r.users[i]
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryUserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.users {
		if r.users[i].Email == email {
			user := r.users[i]
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryUserRepository) List(_ context.Context) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]domain.User, len(r.users))
	copy(result, r.users)
	return result, nil
}

func (r *memoryUserRepository) CountByRole(_ context.Context, role domain.Role) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	count := 0
	for i := range r.users {
		if r.users[i].Role == role {
			count++
		}
	}
	return count, nil
}

// memoryTicketRepository keeps tickets in process memory. Updates replace
// the stored record under the write lock so two concurrent assignment
// calls cannot interleave.
type memoryTicketRepository struct {
	mu      sync.RWMutex
	tickets []domain.ServiceTicket
}

// NewMemoryTicketRepository returns the in-memory implementation.
func NewMemoryTicketRepository() TicketRepository {
	return &memoryTicketRepository{}
}

func (r *memoryTicketRepository) Create(_ context.Context, ticket *domain.ServiceTicket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tickets = append(r.tickets, cloneTicket(ticket))
	return nil
}

func (r *memoryTicketRepository) Update(_ context.Context, ticket *domain.ServiceTicket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.tickets {
		if r.tickets[i].ID == ticket.ID {
			r.tickets[i] = cloneTicket(ticket)
			return nil
		}
	}
	return ErrNotFound
}

func (r *memoryTicketRepository) GetByID(_ context.Context, id string) (*domain.ServiceTicket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.tickets {
		if r.tickets[i].ID == id {
			ticket := cloneTicket(&r.tickets[i])
			return &ticket, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryTicketRepository) List(_ context.Context) ([]domain.ServiceTicket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]domain.ServiceTicket, 0, len(r.tickets))
	for i := range r.tickets {
		result = append(result, cloneTicket(&r.tickets[i]))
	}
	return result, nil
}

func (r *memoryTicketRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tickets), nil
}

func cloneTicket(t *domain.ServiceTicket) domain.ServiceTicket {
	clone := *t
	clone.AssignedTo = append([]string(nil), t.AssignedTo...)
	return clone
}
