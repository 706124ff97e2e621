package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"roofbox-backend/internal/domain"
	"roofbox-backend/internal/logger"
	"roofbox-backend/internal/repository"

	"github.com/google/uuid"
)

type rentalRequestRepository struct {
	db *sql.DB
}

func NewRentalRequestRepository(db *sql.DB) repository.RentalRequestRepository {
	return &rentalRequestRepository{db: db}
}

const rentalRequestColumns = `id, product_id, product_name, price_per_day, start_date::text, end_date::text, days, total_price,
	first_name, last_name, phone, email, privacy_accepted, status, created_at, updated_at`

func scanRentalRequest(row rowScanner) (*domain.RentalRequest, error) {
	rr := &domain.RentalRequest{}
	err := row.Scan(&rr.ID, &rr.ProductID, &rr.ProductName, &rr.PricePerDay, &rr.StartDate, &rr.EndDate, &rr.Days, &rr.TotalPrice,
		&rr.FirstName, &rr.LastName, &rr.Phone, &rr.Email, &rr.PrivacyAccepted, &rr.Status, &rr.CreatedAt, &rr.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return rr, nil
}

func (r *rentalRequestRepository) Create(ctx context.Context, rr *domain.RentalRequest) error {
	logger.EnterMethod("rentalRequestRepository.Create", "productID", rr.ProductID, "days", rr.Days)

	if rr.ID == uuid.Nil {
		rr.ID = uuid.New()
	}
	now := time.Now()
	query := `INSERT INTO rental_requests (id, product_id, product_name, price_per_day, start_date, end_date, days, total_price,
	          first_name, last_name, phone, email, privacy_accepted, status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16) RETURNING created_at`
	logger.DatabaseCall("INSERT", "rental_requests", "id", rr.ID)

	err := r.db.QueryRowContext(ctx, query, rr.ID, rr.ProductID, rr.ProductName, rr.PricePerDay, rr.StartDate, rr.EndDate, rr.Days, rr.TotalPrice,
		rr.FirstName, rr.LastName, rr.Phone, rr.Email, rr.PrivacyAccepted, rr.Status, now, now).Scan(&rr.CreatedAt)
	logger.DatabaseResult("INSERT", 1, err, "id", rr.ID)

	if err != nil {
		logger.ExitMethodWithError("rentalRequestRepository.Create", err, "productID", rr.ProductID)
		return wrapErr("insert rental request", err)
	}
	rr.UpdatedAt = rr.CreatedAt
	logger.ExitMethod("rentalRequestRepository.Create", "id", rr.ID)
	return nil
}

func (r *rentalRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.RentalRequest, error) {
	query := `SELECT ` + rentalRequestColumns + ` FROM rental_requests WHERE id = $1`
	rr, err := scanRentalRequest(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, wrapErr("get rental request", err)
	}
	return rr, nil
}

func (r *rentalRequestRepository) List(ctx context.Context, filter domain.RentalRequestFilter) ([]domain.RentalRequest, int32, error) {
	limit, offset := pageOffset(filter.Page, filter.PageSize)

	where := ""
	args := []interface{}{}
	argIdx := 1
	if filter.Status != "" {
		where = " WHERE status = $1"
		args = append(args, filter.Status)
		argIdx++
	}

	var count int32
	if err := r.db.QueryRowContext(ctx, "SELECT count(*) FROM rental_requests"+where, args...).Scan(&count); err != nil {
		return nil, 0, wrapErr("count rental requests", err)
	}

	query := `SELECT ` + rentalRequestColumns + ` FROM rental_requests` + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, wrapErr("list rental requests", err)
	}
	defer rows.Close()

	var requests []domain.RentalRequest
	for rows.Next() {
		rr, err := scanRentalRequest(rows)
		if err != nil {
			return nil, 0, wrapErr("scan rental request", err)
		}
		requests = append(requests, *rr)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, wrapErr("list rental requests", err)
	}
	return requests, count, nil
}

func (r *rentalRequestRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.RentalStatus) error {
	query := `UPDATE rental_requests SET status = $1, updated_at = $2 WHERE id = $3`
	res, err := r.db.ExecContext(ctx, query, status, time.Now(), id)
	return checkAffected("update rental request status", res, err)
}

func (r *rentalRequestRepository) CountByStatus(ctx context.Context, status domain.RentalStatus) (int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM rental_requests WHERE status = $1`, status).Scan(&count)
	if err != nil {
		return 0, wrapErr("count rental requests", err)
	}
	return count, nil
}
