package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"roofbox-backend/internal/domain"
	"roofbox-backend/internal/logger"
	"roofbox-backend/internal/repository"

	"github.com/google/uuid"
)

type contactMessageRepository struct {
	db *sql.DB
}

func NewContactMessageRepository(db *sql.DB) repository.ContactMessageRepository {
	return &contactMessageRepository{db: db}
}

func (r *contactMessageRepository) Create(ctx context.Context, m *domain.ContactMessage) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.Status == "" {
		m.Status = domain.ContactStatusNew
	}
	query := `INSERT INTO contact_messages (id, name, email, message, status) VALUES ($1, $2, $3, $4, $5) RETURNING created_at`
	logger.DatabaseCall("INSERT", "contact_messages", "id", m.ID)
	err := r.db.QueryRowContext(ctx, query, m.ID, m.Name, m.Email, m.Message, m.Status).Scan(&m.CreatedAt)
	logger.DatabaseResult("INSERT", 1, err, "id", m.ID)
	return wrapErr("insert contact message", err)
}

func (r *contactMessageRepository) List(ctx context.Context, status domain.ContactStatus, page, pageSize int32) ([]domain.ContactMessage, int32, error) {
	limit, offset := pageOffset(page, pageSize)

	where := ""
	args := []interface{}{}
	argIdx := 1
	if status != "" {
		where = " WHERE status = $1"
		args = append(args, status)
		argIdx++
	}

	var count int32
	if err := r.db.QueryRowContext(ctx, "SELECT count(*) FROM contact_messages"+where, args...).Scan(&count); err != nil {
		return nil, 0, wrapErr("count contact messages", err)
	}

	query := `SELECT id, name, email, message, status, created_at FROM contact_messages` + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, wrapErr("list contact messages", err)
	}
	defer rows.Close()

	var messages []domain.ContactMessage
	for rows.Next() {
		var m domain.ContactMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Message, &m.Status, &m.CreatedAt); err != nil {
			return nil, 0, wrapErr("scan contact message", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, wrapErr("list contact messages", err)
	}
	return messages, count, nil
}

func (r *contactMessageRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ContactStatus) error {
	res, err := r.db.ExecContext(ctx, `UPDATE contact_messages SET status = $1 WHERE id = $2`, status, id)
	return checkAffected("update contact message status", res, err)
}

func (r *contactMessageRepository) CountByStatus(ctx context.Context, status domain.ContactStatus) (int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM contact_messages WHERE status = $1`, status).Scan(&count)
	if err != nil {
		return 0, wrapErr("count contact messages", err)
	}
	return count, nil
}
