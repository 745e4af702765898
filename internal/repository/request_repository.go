package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/request-tracker/internal/domain"
)

// RequestRepository encapsulates request persistence. Rows are insert-only:
// amendments create new rows, nothing is updated or deleted.
type RequestRepository interface {
	Create(ctx context.Context, request *domain.Request) error
	List(ctx context.Context) ([]domain.Request, error)
	GetByID(ctx context.Context, id int64) (*domain.Request, error)
	CountBySubmitter(ctx context.Context, name string) (int64, error)
	CountByStatus(ctx context.Context) (map[domain.RequestStatus]int64, error)
}

type requestRepository struct {
	pool *pgxpool.Pool
}

// NewRequestRepository instantiates repository.
func NewRequestRepository(pool *pgxpool.Pool) RequestRepository {
	return &requestRepository{pool: pool}
}

func (r *requestRepository) Create(ctx context.Context, request *domain.Request) error {
	const query = `
        INSERT INTO requests (submitter, request_type, priority, status, details, phone, request_title)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, created_at, changed_at`
	return r.pool.QueryRow(ctx, query,
		request.Submitter,
		request.Type,
		request.Priority,
		request.Status,
		request.Details,
		request.Phone,
		request.Title,
	).Scan(&request.ID, &request.CreatedAt, &request.ChangedAt)
}

// List returns all request rows. No ordering is guaranteed; callers sort
// explicitly if they need one.
func (r *requestRepository) List(ctx context.Context) ([]domain.Request, error) {
	const query = `
        SELECT id, submitter, request_type, priority, status, created_at, changed_at, details, phone, request_title
        FROM requests`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRequests(rows)
}

func (r *requestRepository) GetByID(ctx context.Context, id int64) (*domain.Request, error) {
	const query = `
        SELECT id, submitter, request_type, priority, status, created_at, changed_at, details, phone, request_title
        FROM requests WHERE id=$1`

	var request domain.Request
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&request.ID,
		&request.Submitter,
		&request.Type,
		&request.Priority,
		&request.Status,
		&request.CreatedAt,
		&request.ChangedAt,
		&request.Details,
		&request.Phone,
		&request.Title,
	); err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *requestRepository) CountBySubmitter(ctx context.Context, name string) (int64, error) {
	const query = `SELECT COUNT(*) FROM requests WHERE submitter=$1`

	var count int64
	if err := r.pool.QueryRow(ctx, query, name).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *requestRepository) CountByStatus(ctx context.Context) (map[domain.RequestStatus]int64, error) {
	const query = `SELECT status, COUNT(*) FROM requests GROUP BY status`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[domain.RequestStatus]int64)
	for rows.Next() {
		var status domain.RequestStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		result[status] = count
	}
	return result, rows.Err()
}

func scanRequests(rows pgx.Rows) ([]domain.Request, error) {
	var result []domain.Request
	for rows.Next() {
		var request domain.Request
		if err := rows.Scan(
			&request.ID,
			&request.Submitter,
			&request.Type,
			&request.Priority,
			&request.Status,
			&request.CreatedAt,
			&request.ChangedAt,
			&request.Details,
			&request.Phone,
			&request.Title,
		); err != nil {
			return nil, err
		}
		result = append(result, request)
	}
	return result, rows.Err()
}
