package domain

// allowedTransitions is the hardened status graph. Pending tickets become
// Assigned through assignment, assignees move work through InProgress to
// Solved or Rejected, and the creator or an organization manager verifies
// Solved work as Completed. Completed and Rejected are terminal.
var allowedTransitions = map[TicketStatus][]TicketStatus{
	TicketStatusPending:    {TicketStatusAssigned},
	TicketStatusAssigned:   {TicketStatusInProgress},
	TicketStatusInProgress: {TicketStatusSolved, TicketStatusRejected},
	TicketStatusSolved:     {TicketStatusCompleted},
	TicketStatusCompleted:  {},
	TicketStatusRejected:   {},
}

// ValidStatus reports whether s is a known lifecycle state.
func ValidStatus(s TicketStatus) bool {
	_, ok := allowedTransitions[s]
	return ok
}

// CanTransition reports whether current may move to next. Requesting the
// current status again is an accepted no-op.
func CanTransition(current, next TicketStatus) bool {
	if current == next {
		return true
	}
	for _, candidate := range allowedTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}
