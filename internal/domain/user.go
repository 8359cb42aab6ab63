package domain

// Role enumerates the four account roles.
type Role string

const (
	RoleAdmin      Role = "Admin"
	RoleSupervisor Role = "Supervisor"
	RoleEmployer   Role = "Employer"
	RoleEmployee   Role = "Employee"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleSupervisor, RoleEmployer, RoleEmployee:
		return true
	}
	return false
}

// IsManager reports whether the role may verify tickets and manage staff.
func (r Role) IsManager() bool {
	return r == RoleAdmin || r == RoleSupervisor || r == RoleEmployer
}

// User is the domain model for all account holders. Profile fields are
// opaque to the core; only ID, Email, Role, OrganizationID and
// IsAvailable carry business rules.
type User struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	Password       string `json:"password,omitempty"`
	Role           Role   `json:"role"`
	Name           string `json:"name"`
	ContactNumber  string `json:"contactNumber"`
	Address        string `json:"address"`
	PAN            string `json:"pan"`
	Aadhaar        string `json:"aadhaar,omitempty"`
	CompanyName    string `json:"companyName,omitempty"`
	OrganizationID string `json:"organizationId,omitempty"`
	IsAvailable    bool   `json:"isAvailable"`
	ProfilePhoto   string `json:"profilePhoto,omitempty"`
}
