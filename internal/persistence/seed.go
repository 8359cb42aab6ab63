package persistence

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/turnkey-platform/turnkey-service/internal/domain"
	"github.com/turnkey-platform/turnkey-service/internal/repository"
)

var seedUsers = []domain.User{
	{
		ID: "Org-000001", Email: "admin@turnkey.com", Password: "Password1!",
		Role: domain.RoleAdmin, Name: "Admin User", ContactNumber: "1234567890",
		Address: "1 Admin Way", PAN: "ABCDE1234F", OrganizationID: "Org-000001",
	},
	{
		ID: "Sup-000001", Email: "supervisor@turnkey.com", Password: "Password1!",
		Role: domain.RoleSupervisor, Name: "Supervisor Sam", ContactNumber: "2345678901",
		Address: "2 Supervisor St", PAN: "BCDEF2345G", Aadhaar: "123456789012",
		OrganizationID: "Org-000001",
	},
	{
		ID: "Emplr-000001", Email: "employer@turnkey.com", Password: "Password1!",
		Role: domain.RoleEmployer, Name: "Employer Emily", ContactNumber: "3456789012",
		Address: "3 Employer Ave", PAN: "CDEFG3456H", CompanyName: "Emily's Enterprises",
		OrganizationID: "Org-000001",
	},
	{
		ID: "Emp-000001", Email: "employee@turnkey.com", Password: "Password1!",
		Role: domain.RoleEmployee, Name: "Employee Eric", ContactNumber: "4567890123",
		Address: "4 Employee Ct", PAN: "DEFGH4567I", IsAvailable: true,
		OrganizationID: "Org-000001",
	},
	{
		ID: "Emp-000002", Email: "employee2@turnkey.com", Password: "Password1!",
		Role: domain.RoleEmployee, Name: "Employee Eve", ContactNumber: "5678901234",
		Address: "5 Employee Ln", PAN: "EFGHI5678J", IsAvailable: false,
		OrganizationID: "Org-000001",
	},
}

var seedTickets = []domain.ServiceTicket{
	{
		ID: "SR-00001", Title: "Fix Leaky Faucet", Status: domain.TicketStatusAssigned,
		Category: domain.CategoryPlumbing, Hierarchy: domain.HierarchyJuniorTechnician,
		IssueType: "Leak", Description: "Kitchen sink faucet is dripping constantly.",
		Details: "Started last night.", StartDate: "2024-07-20", EndDate: "2024-07-20",
		Days: 1, EmployeesNeeded: 1, AssignedTo: []string{"Emp-000001"},
		CreatedBy: "Emplr-000001", OrganizationID: "Org-000001",
		RequestType: domain.RequestService, EmployeeType: domain.EmployeeTypeSkilled,
		Tenure: 5, Priority: domain.TicketPriorityMedium,
	},
	{
		ID: "SR-00002", Title: "Rewire Main Panel", Status: domain.TicketStatusPending,
		Category: domain.CategoryElectrical, Hierarchy: domain.HierarchySeniorTechnician,
		IssueType: "Power Outage", Description: "Main electrical panel needs rewiring.",
		Details: "Safety concern.", StartDate: "2024-07-22", EndDate: "2024-07-24",
		Days: 3, EmployeesNeeded: 2, AssignedTo: []string{},
		CreatedBy: "Sup-000001", OrganizationID: "Org-000001",
		RequestType: domain.RequestNewInstallation, EmployeeType: domain.EmployeeTypeSkilled,
		Tenure: 10, Priority: domain.TicketPriorityHigh,
	},
}

// SeedDemoData loads the demo organization when the stores are empty.
// Must run before the services seed their counters.
func SeedDemoData(ctx context.Context, users repository.UserRepository, tickets repository.TicketRepository, logger *zap.Logger) error {
	existing, err := users.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	for i := range seedUsers {
		user := seedUsers[i]
		if err := users.Create(ctx, &user); err != nil {
			if errors.Is(err, repository.ErrDuplicateEmail) {
				continue
			}
			return err
		}
	}
	for i := range seedTickets {
		ticket := seedTickets[i]
		if err := tickets.Create(ctx, &ticket); err != nil {
			return err
		}
	}

	logger.Info("demo data seeded",
		zap.Int("users", len(seedUsers)),
		zap.Int("tickets", len(seedTickets)))
	return nil
}
