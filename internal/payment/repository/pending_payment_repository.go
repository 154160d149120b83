package repository

import (
	"context"
	"database/sql"
	"fmt"

	"mercadito/internal/domain"
	"mercadito/internal/errors"
)

type MySQLPendingPaymentRepository struct {
	db *sql.DB
}

func NewMySQLPendingPaymentRepository(db *sql.DB) *MySQLPendingPaymentRepository {
	return &MySQLPendingPaymentRepository{db: db}
}

const paymentColumns = `id, orderId, customerName, customerPhone, totalAmount, paidAmount,
		       pendingAmount, status, dueDate, createdAt, updatedAt`

func scanPayment(row interface{ Scan(...any) error }) (domain.PendingPayment, error) {
	var p domain.PendingPayment
	err := row.Scan(
		&p.ID, &p.OrderID, &p.CustomerName, &p.CustomerPhone,
		&p.TotalAmount, &p.PaidAmount, &p.PendingAmount,
		&p.Status, &p.DueDate, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func (r *MySQLPendingPaymentRepository) FindByID(ctx context.Context, id uint) (*domain.PendingPayment, error) {
	query := `SELECT ` + paymentColumns + ` FROM PendingPayments WHERE id = ?`

	p, err := scanPayment(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("pending payment with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying pending payment by id: %w", err)
	}

	return &p, nil
}

// FindAll returns the full collection ordered by due date, soonest first.
func (r *MySQLPendingPaymentRepository) FindAll(ctx context.Context) ([]domain.PendingPayment, error) {
	query := `SELECT ` + paymentColumns + ` FROM PendingPayments ORDER BY dueDate ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying pending payments: %w", err)
	}
	defer rows.Close()

	var payments []domain.PendingPayment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning pending payment row: %w", err)
		}
		payments = append(payments, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating pending payment rows: %w", err)
	}

	return payments, nil
}

func (r *MySQLPendingPaymentRepository) Insert(ctx context.Context, tx *sql.Tx, p domain.PendingPayment) (uint, error) {
	query := `
		INSERT INTO PendingPayments (orderId, customerName, customerPhone, totalAmount,
		                             paidAmount, pendingAmount, status, dueDate)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := tx.ExecContext(ctx, query,
		p.OrderID, p.CustomerName, p.CustomerPhone, p.TotalAmount,
		p.PaidAmount, p.PendingAmount, p.Status, p.DueDate,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting pending payment: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return uint(lastInsertID), nil
}

func (r *MySQLPendingPaymentRepository) FindByIDForUpdate(ctx context.Context, tx *sql.Tx, id uint) (*domain.PendingPayment, error) {
	query := `SELECT ` + paymentColumns + ` FROM PendingPayments WHERE id = ? FOR UPDATE`

	p, err := scanPayment(tx.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("pending payment with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying pending payment for update: %w", err)
	}

	return &p, nil
}

// UpdateAmounts writes a payment's amounts and status together so the
// pendingAmount = totalAmount - paidAmount invariant holds on every write.
func (r *MySQLPendingPaymentRepository) UpdateAmounts(ctx context.Context, tx *sql.Tx, id uint, paidAmount, pendingAmount float64, status string) error {
	query := `UPDATE PendingPayments SET paidAmount = ?, pendingAmount = ?, status = ? WHERE id = ?`

	result, err := tx.ExecContext(ctx, query, paidAmount, pendingAmount, status, id)
	if err != nil {
		return fmt.Errorf("updating pending payment amounts: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("pending payment with id %d not found", id))
	}

	return nil
}
