package dto

import "github.com/turnkey-platform/turnkey-service/internal/domain"

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Title           string                   `json:"title"`
	Category        domain.TicketCategory    `json:"category"`
	Hierarchy       domain.EmployeeHierarchy `json:"hierarchy"`
	IssueType       string                   `json:"issueType"`
	Description     string                   `json:"description"`
	Details         string                   `json:"details"`
	StartDate       string                   `json:"startDate"`
	EndDate         string                   `json:"endDate"`
	Days            int                      `json:"days"`
	EmployeesNeeded int                      `json:"employeesNeeded"`
	AssignedTo      []string                 `json:"assignedTo"`
	RequestType     domain.RequestType       `json:"requestType"`
	EmployeeType    domain.EmployeeType      `json:"employeeType"`
	Tenure          int                      `json:"tenure"`
	Priority        domain.TicketPriority    `json:"priority"`
}

// UpdateStatusRequest payload.
type UpdateStatusRequest struct {
	Status domain.TicketStatus `json:"status"`
}

// AssignTicketRequest payload. Employee ids replace the current set.
type AssignTicketRequest struct {
	EmployeeIDs []string `json:"employeeIds"`
}
