package payment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"mercadito/internal/domain"
	apperrors "mercadito/internal/errors"
	"mercadito/internal/payment/repository"
	"mercadito/internal/testutil"
)

type nopFeed struct{}

func (nopFeed) Changed(ctx context.Context, kind, entityID, action string) {}

func TestRecordPayment_Partial(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	res, err := db.Exec(`
		INSERT INTO PendingPayments (customerName, customerPhone, totalAmount, paidAmount,
		                             pendingAmount, status, dueDate)
		VALUES ('Juan Perez', '555-0102', 500.00, 0.00, 500.00, 'pending', ?)
	`, time.Now().Add(30*24*time.Hour))
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)

	svc := NewService(db, repository.NewMySQLPendingPaymentRepository(db), nopFeed{}, zap.NewNop(), 5*time.Second)

	payment, err := svc.RecordPayment(context.Background(), uint(id), 200)
	require.NoError(t, err)

	assert.Equal(t, 200.00, payment.PaidAmount)
	assert.Equal(t, 300.00, payment.PendingAmount)
	assert.Equal(t, domain.PaymentStatusPartial, payment.Status)
}

func TestRecordPayment_SettlesWhenPendingHitsZero(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	res, err := db.Exec(`
		INSERT INTO PendingPayments (customerName, customerPhone, totalAmount, paidAmount,
		                             pendingAmount, status, dueDate)
		VALUES ('Juan Perez', '555-0102', 500.00, 300.00, 200.00, 'partial', ?)
	`, time.Now().Add(30*24*time.Hour))
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)

	svc := NewService(db, repository.NewMySQLPendingPaymentRepository(db), nopFeed{}, zap.NewNop(), 5*time.Second)

	payment, err := svc.RecordPayment(context.Background(), uint(id), 200)
	require.NoError(t, err)

	assert.Equal(t, 500.00, payment.PaidAmount)
	assert.Equal(t, 0.00, payment.PendingAmount)
	assert.Equal(t, domain.PaymentStatusPaid, payment.Status)
}

func TestRecordPayment_RejectsOverpayment(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	res, err := db.Exec(`
		INSERT INTO PendingPayments (customerName, customerPhone, totalAmount, paidAmount,
		                             pendingAmount, status, dueDate)
		VALUES ('Juan Perez', '555-0102', 100.00, 0.00, 100.00, 'pending', ?)
	`, time.Now().Add(30*24*time.Hour))
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)

	svc := NewService(db, repository.NewMySQLPendingPaymentRepository(db), nopFeed{}, zap.NewNop(), 5*time.Second)

	_, err = svc.RecordPayment(context.Background(), uint(id), 150)
	require.Error(t, err)

	_, ok := apperrors.IsValidationError(err)
	assert.True(t, ok)
}

func TestRecordPayment_RejectsNonPositiveAmount(t *testing.T) {
	svc := NewService(nil, nil, nopFeed{}, zap.NewNop(), 5*time.Second)

	_, err := svc.RecordPayment(context.Background(), 1, 0)
	require.Error(t, err)

	_, ok := apperrors.IsValidationError(err)
	assert.True(t, ok)
}

func TestRecordPayment_ConflictWhenAlreadyPaid(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	res, err := db.Exec(`
		INSERT INTO PendingPayments (customerName, customerPhone, totalAmount, paidAmount,
		                             pendingAmount, status, dueDate)
		VALUES ('Juan Perez', '555-0102', 100.00, 100.00, 0.00, 'paid', ?)
	`, time.Now().Add(30*24*time.Hour))
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)

	svc := NewService(db, repository.NewMySQLPendingPaymentRepository(db), nopFeed{}, zap.NewNop(), 5*time.Second)

	_, err = svc.RecordPayment(context.Background(), uint(id), 50)
	require.Error(t, err)

	_, ok := apperrors.IsConflictError(err)
	assert.True(t, ok)
}

func TestMarkPaid_SettlesRemainingBalance(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	res, err := db.Exec(`
		INSERT INTO PendingPayments (customerName, customerPhone, totalAmount, paidAmount,
		                             pendingAmount, status, dueDate)
		VALUES ('Juan Perez', '555-0102', 350.00, 25.00, 325.00, 'partial', ?)
	`, time.Now().Add(30*24*time.Hour))
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)

	svc := NewService(db, repository.NewMySQLPendingPaymentRepository(db), nopFeed{}, zap.NewNop(), 5*time.Second)

	payment, err := svc.MarkPaid(context.Background(), uint(id))
	require.NoError(t, err)

	assert.Equal(t, 350.00, payment.PaidAmount)
	assert.Equal(t, 0.00, payment.PendingAmount)
	assert.Equal(t, domain.PaymentStatusPaid, payment.Status)
}
