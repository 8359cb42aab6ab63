package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/turnkey-platform/turnkey-service/internal/domain"
)

// UserRepository defines persistence access for user records. Create and
// Update are atomic with respect to the email-uniqueness check:
// implementations return ErrDuplicateEmail without persisting when the
// email is held by another record.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	CountByRole(ctx context.Context, role domain.Role) (int, error)
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

const userColumns = `id, email, password, role, name, contact_number, address, pan,
	       aadhaar, company_name, organization_id, is_available, profile_photo`

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (id, email, password, role, name, contact_number, address, pan,
                           aadhaar, company_name, organization_id, is_available, profile_photo)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`

	_, err := r.pool.Exec(ctx, query,
		user.ID,
		user.Email,
		user.Password,
		user.Role,
		user.Name,
		user.ContactNumber,
		user.Address,
		user.PAN,
		user.Aadhaar,
		user.CompanyName,
		user.OrganizationID,
		user.IsAvailable,
		user.ProfilePhoto,
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicateEmail
	}
	return err
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	const query = `
        UPDATE users SET email=$1, password=$2, role=$3, name=$4, contact_number=$5,
            address=$6, pan=$7, aadhaar=$8, company_name=$9, organization_id=$10,
            is_available=$11, profile_photo=$12
        WHERE id=$13`

	cmd, err := r.pool.Exec(ctx, query,
		user.Email,
		user.Password,
		user.Role,
		user.Name,
		user.ContactNumber,
		user.Address,
		user.PAN,
		user.Aadhaar,
		user.CompanyName,
		user.OrganizationID,
		user.IsAvailable,
		user.ProfilePhoto,
		user.ID,
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicateEmail
	}
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.fetchSingle(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1`, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.fetchSingle(ctx, `SELECT `+userColumns+` FROM users WHERE email=$1`, email)
}

func (r *userRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.User, error) {
	var user domain.User
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Email,
		&user.Password,
		&user.Role,
		&user.Name,
		&user.ContactNumber,
		&user.Address,
		&user.PAN,
		&user.Aadhaar,
		&user.CompanyName,
		&user.OrganizationID,
		&user.IsAvailable,
		&user.ProfilePhoto,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.User
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(
			&user.ID,
			&user.Email,
			&user.Password,
			&user.Role,
			&user.Name,
			&user.ContactNumber,
			&user.Address,
			&user.PAN,
			&user.Aadhaar,
			&user.CompanyName,
			&user.OrganizationID,
			&user.IsAvailable,
			&user.ProfilePhoto,
		); err != nil {
			return nil, err
		}
		result = append(result, user)
	}
	return result, rows.Err()
}

func (r *userRepository) CountByRole(ctx context.Context, role domain.Role) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE role=$1`, role).Scan(&count)
	return count, err
}
