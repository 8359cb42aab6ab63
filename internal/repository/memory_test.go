package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/turnkey-platform/turnkey-service/internal/domain"
)

func TestMemoryUserRepositoryDuplicateEmail(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.User{ID: "Org-000001", Email: "a@b.test", Role: domain.RoleAdmin}))
	err := repo.Create(ctx, &domain.User{ID: "Org-000002", Email: "a@b.test", Role: domain.RoleAdmin})
	require.ErrorIs(t, err, ErrDuplicateEmail)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
}

func TestMemoryUserRepositoryUpdateDuplicateEmail(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.User{ID: "Emp-000001", Email: "one@b.test", Role: domain.RoleEmployee}))
	require.NoError(t, repo.Create(ctx, &domain.User{ID: "Emp-000002", Email: "two@b.test", Role: domain.RoleEmployee}))

	err := repo.Update(ctx, &domain.User{ID: "Emp-000002", Email: "one@b.test", Role: domain.RoleEmployee})
	require.ErrorIs(t, err, ErrDuplicateEmail)

	// A record may keep its own email on update.
	require.NoError(t, repo.Update(ctx, &domain.User{ID: "Emp-000002", Email: "two@b.test", Role: domain.RoleEmployee, Name: "Renamed"}))

	stored, err := repo.GetByID(ctx, "Emp-000002")
	require.NoError(t, err)
	require.Equal(t, "two@b.test", stored.Email)
	require.Equal(t, "Renamed", stored.Name)
}

func TestMemoryUserRepositoryNotFound(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	_, err := repo.GetByID(ctx, "Emp-000001")
	require.ErrorIs(t, err, ErrNotFound)
	_, err = repo.GetByEmail(ctx, "ghost@b.test")
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, repo.Delete(ctx, "Emp-000001"), ErrNotFound)
	require.ErrorIs(t, repo.Update(ctx, &domain.User{ID: "Emp-000001"}), ErrNotFound)
}

func TestMemoryUserRepositoryCountByRole(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.User{ID: "Org-000001", Email: "a@b.test", Role: domain.RoleAdmin}))
	require.NoError(t, repo.Create(ctx, &domain.User{ID: "Emp-000001", Email: "e1@b.test", Role: domain.RoleEmployee}))
	require.NoError(t, repo.Create(ctx, &domain.User{ID: "Emp-000002", Email: "e2@b.test", Role: domain.RoleEmployee}))

	count, err := repo.CountByRole(ctx, domain.RoleEmployee)
	require.NoError(t, err)
	require.Equal(t, 2, count)

	count, err = repo.CountByRole(ctx, domain.RoleSupervisor)
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestMemoryTicketRepositoryClonesRecords(t *testing.T) {
	repo := NewMemoryTicketRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.ServiceTicket{
		ID:         "SR-00001",
		Title:      "Original",
		Status:     domain.TicketStatusPending,
		AssignedTo: []string{"Emp-000001"},
	}))

	fetched, err := repo.GetByID(ctx, "SR-00001")
	require.NoError(t, err)
	fetched.Title = "Mutated"
	fetched.AssignedTo[0] = "Emp-000099"

	stored, err := repo.GetByID(ctx, "SR-00001")
	require.NoError(t, err)
	require.Equal(t, "Original", stored.Title)
	require.Equal(t, []string{"Emp-000001"}, stored.AssignedTo)
}

func TestMemoryTicketRepositoryListOrder(t *testing.T) {
	repo := NewMemoryTicketRepository()
	ctx := context.Background()

	for _, id := range []string{"SR-00001", "SR-00002", "SR-00003"} {
		require.NoError(t, repo.Create(ctx, &domain.ServiceTicket{ID: id, Title: id, Status: domain.TicketStatusPending}))
	}

	tickets, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, tickets, 3)
	require.Equal(t, "SR-00001", tickets[0].ID)
	require.Equal(t, "SR-00003", tickets[2].ID)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, count)
}
