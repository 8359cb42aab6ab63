package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/turnkey-platform/turnkey-service/internal/domain"
	"github.com/turnkey-platform/turnkey-service/internal/events"
	"github.com/turnkey-platform/turnkey-service/internal/repository"
	"github.com/turnkey-platform/turnkey-service/pkg/errorutil"
)

// roleIDPrefix maps each role to its id prefix. An Admin's id doubles as
// a new organization id.
var roleIDPrefix = map[domain.Role]string{
	domain.RoleAdmin:      "Org",
	domain.RoleSupervisor: "Sup",
	domain.RoleEmployer:   "Emplr",
	domain.RoleEmployee:   "Emp",
}

// SignupInput carries the caller-supplied fields for a new account.
// IsAvailable is a pointer so an explicit false survives the Employee
// default.
type SignupInput struct {
	Email         string
	Password      string
	Role          domain.Role
	Name          string
	ContactNumber string
	Address       string
	PAN           string
	Aadhaar       string
	CompanyName   string
	ProfilePhoto  string
	IsAvailable   *bool
}

// RegistryService owns user records, role-scoped id allocation and
// organization linkage.
type RegistryService struct {
	users      repository.UserRepository
	dispatcher events.Dispatcher
	sequences  map[domain.Role]*sequence
}

// RegistryDependencies bundles requirements for the registry.
type RegistryDependencies struct {
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
}

// NewRegistryService builds the registry, seeding each role counter from
// the count of existing records.
func NewRegistryService(ctx context.Context, deps RegistryDependencies) (*RegistryService, error) {
	sequences := make(map[domain.Role]*sequence, len(roleIDPrefix))
	for role := range roleIDPrefix {
		count, err := deps.UserRepo.CountByRole(ctx, role)
		if err != nil {
			return nil, fmt.Errorf("seed %s counter: %w", role, err)
		}
		sequences[role] = newSequence(count)
	}
	return &RegistryService{
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
		sequences:  sequences,
	}, nil
}

// Signup creates a user, allocating the role-scoped id and organization
// linkage. The caller is the authenticated user invoking an admin-style
// "create user" flow, nil for self-service signup.
func (s *RegistryService) Signup(ctx context.Context, input SignupInput, caller *domain.User) (*domain.User, error) {
	if !domain.ValidRole(input.Role) {
		return nil, errorutil.NewValidationError("unknown role", map[string]any{"role": input.Role})
	}
	email := strings.TrimSpace(input.Email)
	if email == "" || input.Password == "" {
		return nil, errorutil.NewValidationError("email and password required", nil)
	}

	// The email must clear before an id is allocated: a rejected signup
	// never advances the role counter. The repository's atomic check on
	// Create remains as the race backstop.
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		s.publishEvent(ctx, events.Event{
			Type:    events.EventUserSignupRejected,
			ActorID: actorID(caller),
			Payload: events.UserSignupRejectedPayload{Email: email, Reason: "email already exists"},
		})
		return nil, errorutil.NewDuplicateEmail(email)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	user := &domain.User{
		ID:            formatUserID(roleIDPrefix[input.Role], s.sequences[input.Role].next()),
		Email:         email,
		Password:      input.Password,
		Role:          input.Role,
		Name:          input.Name,
		ContactNumber: input.ContactNumber,
		Address:       input.Address,
		PAN:           input.PAN,
		Aadhaar:       input.Aadhaar,
		CompanyName:   input.CompanyName,
		ProfilePhoto:  input.ProfilePhoto,
	}
	user.OrganizationID = s.organizationFor(input.Role, user.ID, caller)
	if input.Role == domain.RoleEmployee {
		user.IsAvailable = true
		if input.IsAvailable != nil {
			user.IsAvailable = *input.IsAvailable
		}
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			s.publishEvent(ctx, events.Event{
				Type:    events.EventUserSignupRejected,
				ActorID: actorID(caller),
				Payload: events.UserSignupRejectedPayload{Email: email, Reason: "email already exists"},
			})
			return nil, errorutil.NewDuplicateEmail(email)
		}
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:    events.EventUserSignedUp,
		ActorID: actorID(caller),
		Payload: events.UserSignedUpPayload{
			UserID:         user.ID,
			Name:           user.Name,
			Role:           user.Role,
			OrganizationID: user.OrganizationID,
		},
	})
	return user, nil
}

// organizationFor applies the per-role linkage rules. An Employer always
// joins the most-recently-created Admin's organization; Supervisors and
// Employees inherit the caller's, with Supervisors falling back to the
// latest Admin's when created without one.
func (s *RegistryService) organizationFor(role domain.Role, newID string, caller *domain.User) string {
	switch role {
	case domain.RoleAdmin:
		return newID
	case domain.RoleEmployer:
		return s.latestAdminOrganization()
	case domain.RoleSupervisor:
		if caller != nil && caller.OrganizationID != "" {
			return caller.OrganizationID
		}
		return s.latestAdminOrganization()
	case domain.RoleEmployee:
		if caller != nil {
			return caller.OrganizationID
		}
	}
	return ""
}

func (s *RegistryService) latestAdminOrganization() string {
	n := s.sequences[domain.RoleAdmin].value()
	if n == 0 {
		return ""
	}
	return formatUserID(roleIDPrefix[domain.RoleAdmin], n)
}

// Login performs the plaintext-equality credential check. A mismatch is
// an expected outcome, not a fault: both user and error are nil.
func (s *RegistryService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if user.Password != password {
		return nil, nil
	}
	return user, nil
}

// GetUsers returns a full snapshot of the registry.
func (s *RegistryService) GetUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// GetUser fetches a single record by id.
func (s *RegistryService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errorutil.NewNotFound("user", map[string]any{"user_id": id})
		}
		return nil, err
	}
	return user, nil
}

// UpdateUser replaces the stored record entirely. ID, role and
// organization are immutable; an update attempting to change them fails
// validation. The replacement email must not collide with another
// user's record.
func (s *RegistryService) UpdateUser(ctx context.Context, user domain.User, actorIDValue string) (*domain.User, error) {
	existing, err := s.users.GetByID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errorutil.NewNotFound("user", map[string]any{"user_id": user.ID})
		}
		return nil, err
	}
	if user.Role != existing.Role {
		return nil, errorutil.NewValidationError("role is immutable", map[string]any{"user_id": user.ID})
	}
	if existing.OrganizationID != "" && user.OrganizationID != existing.OrganizationID {
		return nil, errorutil.NewValidationError("organization cannot be reassigned", map[string]any{"user_id": user.ID})
	}

	if err := s.users.Update(ctx, &user); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errorutil.NewNotFound("user", map[string]any{"user_id": user.ID})
		}
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, errorutil.NewDuplicateEmail(user.Email)
		}
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:    events.EventUserUpdated,
		ActorID: actorIDValue,
		Payload: events.UserUpdatedPayload{UserID: user.ID, Name: user.Name},
	})
	return &user, nil
}

// DeleteUser unconditionally removes the record. Tickets referencing the
// deleted user keep their ids; the registry does not cascade.
func (s *RegistryService) DeleteUser(ctx context.Context, id, actorIDValue string) (string, error) {
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", errorutil.NewNotFound("user", map[string]any{"user_id": id})
		}
		return "", err
	}

	s.publishEvent(ctx, events.Event{
		Type:    events.EventUserDeleted,
		ActorID: actorIDValue,
		Payload: events.UserDeletedPayload{UserID: id},
	})
	return id, nil
}

func (s *RegistryService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func actorID(caller *domain.User) string {
	if caller == nil {
		return ""
	}
	return caller.ID
}
