package repository

import (
	"context"
	"database/sql"
	"fmt"

	"mercadito/internal/domain"
	"mercadito/internal/errors"
)

type MySQLCreditRequestRepository struct {
	db *sql.DB
}

func NewMySQLCreditRequestRepository(db *sql.DB) *MySQLCreditRequestRepository {
	return &MySQLCreditRequestRepository{db: db}
}

const creditColumns = `id, customerName, customerPhone, requestedAmount, reason, status,
		       createdAt, updatedAt`

func (r *MySQLCreditRequestRepository) FindByID(ctx context.Context, id uint) (*domain.CreditRequest, error) {
	query := `SELECT ` + creditColumns + ` FROM CreditRequests WHERE id = ?`

	var req domain.CreditRequest
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&req.ID, &req.CustomerName, &req.CustomerPhone, &req.RequestedAmount,
		&req.Reason, &req.Status, &req.CreatedAt, &req.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("credit request with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying credit request by id: %w", err)
	}

	return &req, nil
}

func (r *MySQLCreditRequestRepository) FindAll(ctx context.Context) ([]domain.CreditRequest, error) {
	query := `SELECT ` + creditColumns + ` FROM CreditRequests ORDER BY createdAt DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying credit requests: %w", err)
	}
	defer rows.Close()

	var requests []domain.CreditRequest
	for rows.Next() {
		var req domain.CreditRequest
		err := rows.Scan(
			&req.ID, &req.CustomerName, &req.CustomerPhone, &req.RequestedAmount,
			&req.Reason, &req.Status, &req.CreatedAt, &req.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning credit request row: %w", err)
		}
		requests = append(requests, req)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating credit request rows: %w", err)
	}

	return requests, nil
}

func (r *MySQLCreditRequestRepository) Insert(ctx context.Context, req domain.CreditRequest) (uint, error) {
	query := `
		INSERT INTO CreditRequests (customerName, customerPhone, requestedAmount, reason, status)
		VALUES (?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		req.CustomerName, req.CustomerPhone, req.RequestedAmount, req.Reason, req.Status,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting credit request: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint(lastInsertID), nil
}

func (r *MySQLCreditRequestRepository) FindByIDForUpdate(ctx context.Context, tx *sql.Tx, id uint) (*domain.CreditRequest, error) {
	query := `SELECT ` + creditColumns + ` FROM CreditRequests WHERE id = ? FOR UPDATE`

	var req domain.CreditRequest
	err := tx.QueryRowContext(ctx, query, id).Scan(
		&req.ID, &req.CustomerName, &req.CustomerPhone, &req.RequestedAmount,
		&req.Reason, &req.Status, &req.CreatedAt, &req.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("credit request with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying credit request for update: %w", err)
	}

	return &req, nil
}

func (r *MySQLCreditRequestRepository) UpdateStatus(ctx context.Context, tx *sql.Tx, id uint, status string) error {
	query := `UPDATE CreditRequests SET status = ? WHERE id = ?`

	result, err := tx.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("updating credit request status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("credit request with id %d not found", id))
	}

	return nil
}
