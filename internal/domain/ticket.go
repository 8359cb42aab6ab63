package domain

// TicketStatus enumerates lifecycle states for service tickets.
type TicketStatus string

const (
	TicketStatusPending    TicketStatus = "Pending"
	TicketStatusAssigned   TicketStatus = "Assigned"
	TicketStatusInProgress TicketStatus = "In Progress"
	TicketStatusSolved     TicketStatus = "Solved"
	TicketStatusRejected   TicketStatus = "Rejected"
	TicketStatusCompleted  TicketStatus = "Completed"
)

// TicketPriority enumerates urgency levels.
type TicketPriority string

const (
	TicketPriorityHigh   TicketPriority = "High"
	TicketPriorityMedium TicketPriority = "Medium"
	TicketPriorityLow    TicketPriority = "Low"
)

// TicketCategory classifies the trade a ticket belongs to.
type TicketCategory string

const (
	CategoryWelding    TicketCategory = "Welding"
	CategoryPlumbing   TicketCategory = "Plumbing"
	CategoryElectrical TicketCategory = "Electrical Works"
	CategoryHVAC       TicketCategory = "HT and LT line works"
	CategoryMachinery  TicketCategory = "Machinery Service"
	CategoryCivil      TicketCategory = "Civil Works"
	CategoryCabling    TicketCategory = "Cable Laying"
	CategoryTray       TicketCategory = "Tray Laying"
)

// EmployeeHierarchy is the skill tier a ticket requests.
type EmployeeHierarchy string

const (
	HierarchySupervisor       EmployeeHierarchy = "Supervisor"
	HierarchySeniorTechnician EmployeeHierarchy = "Senior Technician"
	HierarchyJuniorTechnician EmployeeHierarchy = "Junior Technician"
	HierarchyHelper           EmployeeHierarchy = "Helper"
)

// RequestType classifies the kind of work requested.
type RequestType string

const (
	RequestMaintenance     RequestType = "Maintenance"
	RequestNewInstallation RequestType = "New Installation"
	RequestService         RequestType = "Service"
	RequestIntegration     RequestType = "Integration"
	RequestDismantle       RequestType = "Dismantle"
)

// EmployeeType differentiates skilled and unskilled labor requests.
type EmployeeType string

const (
	EmployeeTypeSkilled   EmployeeType = "Skilled"
	EmployeeTypeUnskilled EmployeeType = "Unskilled"
)

// ServiceTicket is the aggregate for requested work. Classification
// fields are opaque payload; status, organization and the assignee set
// are governed by the state machine and the assignment engine.
type ServiceTicket struct {
	ID              string            `json:"id"`
	Title           string            `json:"title"`
	Status          TicketStatus      `json:"status"`
	Category        TicketCategory    `json:"category"`
	Hierarchy       EmployeeHierarchy `json:"hierarchy"`
	IssueType       string            `json:"issueType"`
	Description     string            `json:"description"`
	Details         string            `json:"details"`
	StartDate       string            `json:"startDate"`
	EndDate         string            `json:"endDate"`
	Days            int               `json:"days"`
	EmployeesNeeded int               `json:"employeesNeeded"`
	AssignedTo      []string          `json:"assignedTo"`
	CreatedBy       string            `json:"createdBy"`
	OrganizationID  string            `json:"organizationId"`
	RequestType     RequestType       `json:"requestType"`
	EmployeeType    EmployeeType      `json:"employeeType"`
	Tenure          int               `json:"tenure"`
	Priority        TicketPriority    `json:"priority"`
}

// HasAssignee reports whether the given user id is in the assignee set.
func (t *ServiceTicket) HasAssignee(userID string) bool {
	for _, id := range t.AssignedTo {
		if id == userID {
			return true
		}
	}
	return false
}
