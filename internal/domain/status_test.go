package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from    TicketStatus
		to      TicketStatus
		allowed bool
	}{
		{TicketStatusPending, TicketStatusAssigned, true},
		{TicketStatusPending, TicketStatusInProgress, false},
		{TicketStatusPending, TicketStatusSolved, false},
		{TicketStatusAssigned, TicketStatusInProgress, true},
		{TicketStatusAssigned, TicketStatusSolved, false},
		{TicketStatusAssigned, TicketStatusPending, false},
		{TicketStatusInProgress, TicketStatusSolved, true},
		{TicketStatusInProgress, TicketStatusRejected, true},
		{TicketStatusInProgress, TicketStatusCompleted, false},
		{TicketStatusSolved, TicketStatusCompleted, true},
		{TicketStatusSolved, TicketStatusInProgress, false},
		{TicketStatusCompleted, TicketStatusPending, false},
		{TicketStatusCompleted, TicketStatusInProgress, false},
		{TicketStatusRejected, TicketStatusAssigned, false},
		{TicketStatusRejected, TicketStatusCompleted, false},
	}
	for _, tc := range cases {
		require.Equal(t, tc.allowed, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestCanTransitionSameStatus(t *testing.T) {
	for _, status := range []TicketStatus{
		TicketStatusPending,
		TicketStatusAssigned,
		TicketStatusInProgress,
		TicketStatusSolved,
		TicketStatusCompleted,
		TicketStatusRejected,
	} {
		require.True(t, CanTransition(status, status), "%s should be a permitted no-op", status)
	}
}

func TestValidStatus(t *testing.T) {
	require.True(t, ValidStatus(TicketStatusInProgress))
	require.False(t, ValidStatus(TicketStatus("Archived")))
}

func TestValidRole(t *testing.T) {
	require.True(t, ValidRole(RoleAdmin))
	require.True(t, ValidRole(RoleEmployee))
	require.False(t, ValidRole(Role("Manager")))
}

func TestRoleIsManager(t *testing.T) {
	require.True(t, RoleAdmin.IsManager())
	require.True(t, RoleSupervisor.IsManager())
	require.True(t, RoleEmployer.IsManager())
	require.False(t, RoleEmployee.IsManager())
}

func TestHasAssignee(t *testing.T) {
	ticket := ServiceTicket{AssignedTo: []string{"Emp-000001", "Emp-000003"}}
	require.True(t, ticket.HasAssignee("Emp-000003"))
	require.False(t, ticket.HasAssignee("Emp-000002"))
}
