package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/turnkey-platform/turnkey-service/internal/domain"
)

// TicketRepository encapsulates ticket persistence. Tickets are never
// hard-deleted.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.ServiceTicket) error
	Update(ctx context.Context, ticket *domain.ServiceTicket) error
	GetByID(ctx context.Context, id string) (*domain.ServiceTicket, error)
	List(ctx context.Context) ([]domain.ServiceTicket, error)
	Count(ctx context.Context) (int, error)
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates the Postgres-backed repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

const ticketColumns = `id, title, status, category, hierarchy, issue_type, description,
	       details, start_date, end_date, days, employees_needed, assigned_to,
	       created_by, organization_id, request_type, employee_type, tenure, priority`

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.ServiceTicket) error {
	const query = `
        INSERT INTO tickets (id, title, status, category, hierarchy, issue_type, description,
                             details, start_date, end_date, days, employees_needed, assigned_to,
                             created_by, organization_id, request_type, employee_type, tenure, priority)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)`

	_, err := r.pool.Exec(ctx, query,
		ticket.ID,
		ticket.Title,
		ticket.Status,
		ticket.Category,
		ticket.Hierarchy,
		ticket.IssueType,
		ticket.Description,
		ticket.Details,
		ticket.StartDate,
		ticket.EndDate,
		ticket.Days,
		ticket.EmployeesNeeded,
		ticket.AssignedTo,
		ticket.CreatedBy,
		ticket.OrganizationID,
		ticket.RequestType,
		ticket.EmployeeType,
		ticket.Tenure,
		ticket.Priority,
	)
	return err
}

func (r *ticketRepository) Update(ctx context.Context, ticket *domain.ServiceTicket) error {
	const query = `
        UPDATE tickets SET title=$1, status=$2, category=$3, hierarchy=$4, issue_type=$5,
            description=$6, details=$7, start_date=$8, end_date=$9, days=$10,
            employees_needed=$11, assigned_to=$12, request_type=$13, employee_type=$14,
            tenure=$15, priority=$16
        WHERE id=$17`

	cmd, err := r.pool.Exec(ctx, query,
		ticket.Title,
		ticket.Status,
		ticket.Category,
		ticket.Hierarchy,
		ticket.IssueType,
		ticket.Description,
		ticket.Details,
		ticket.StartDate,
		ticket.EndDate,
		ticket.Days,
		ticket.EmployeesNeeded,
		ticket.AssignedTo,
		ticket.RequestType,
		ticket.EmployeeType,
		ticket.Tenure,
		ticket.Priority,
		ticket.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.ServiceTicket, error) {
	var ticket domain.ServiceTicket
	if err := r.pool.QueryRow(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE id=$1`, id).Scan(
		&ticket.ID,
		&ticket.Title,
		&ticket.Status,
		&ticket.Category,
		&ticket.Hierarchy,
		&ticket.IssueType,
		&ticket.Description,
		&ticket.Details,
		&ticket.StartDate,
		&ticket.EndDate,
		&ticket.Days,
		&ticket.EmployeesNeeded,
		&ticket.AssignedTo,
		&ticket.CreatedBy,
		&ticket.OrganizationID,
		&ticket.RequestType,
		&ticket.EmployeeType,
		&ticket.Tenure,
		&ticket.Priority,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) List(ctx context.Context) ([]domain.ServiceTicket, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+ticketColumns+` FROM tickets ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ServiceTicket
	for rows.Next() {
		var ticket domain.ServiceTicket
		if err := rows.Scan(
			&ticket.ID,
			&ticket.Title,
			&ticket.Status,
			&ticket.Category,
			&ticket.Hierarchy,
			&ticket.IssueType,
			&ticket.Description,
			&ticket.Details,
			&ticket.StartDate,
			&ticket.EndDate,
			&ticket.Days,
			&ticket.EmployeesNeeded,
			&ticket.AssignedTo,
			&ticket.CreatedBy,
			&ticket.OrganizationID,
			&ticket.RequestType,
			&ticket.EmployeeType,
			&ticket.Tenure,
			&ticket.Priority,
		); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}

func (r *ticketRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM tickets`).Scan(&count)
	return count, err
}
