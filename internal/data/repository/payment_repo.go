package repository

import (
	"context"
	"fmt"

	"tour-booking/internal/data/entity"
	"tour-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error)
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Payment, error)
	FindBySessionID(ctx context.Context, sessionID string) (*entity.Payment, error)
	FindByTransactionID(ctx context.Context, transactionID string) (*entity.Payment, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Payment, error)
	Count(ctx context.Context) (int64, error)
	UpdateStatus(ctx context.Context, paymentID uuid.UUID, status entity.PaymentStatus, receiptURL *string) error
	UpdateSession(ctx context.Context, paymentID uuid.UUID, gateway entity.PaymentGateway, sessionID *string) error

	// ReleasePayout flips payout_released exactly once for a PAID payment.
	ReleasePayout(ctx context.Context, paymentID uuid.UUID) (bool, error)

	// Dashboard queries
	SumPaid(ctx context.Context) (float64, error)
	SumPaidByTourist(ctx context.Context, touristID uuid.UUID) (float64, error)
}

type paymentRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPaymentRepository(db database.PgxIface, log *zap.Logger) PaymentRepository {
	return &paymentRepository{
		db:  db,
		log: log.With(zap.String("repository", "payment")),
	}
}

const paymentColumns = `id, booking_id, amount, transaction_id, gateway, status, session_id,
		receipt_url, payout_released, payout_released_at, created_at, updated_at`

func scanPayment(row pgx.Row) (*entity.Payment, error) {
	var payment entity.Payment
	err := row.Scan(
		&payment.ID,
		&payment.BookingID,
		&payment.Amount,
		&payment.TransactionID,
		&payment.Gateway,
		&payment.Status,
		&payment.SessionID,
		&payment.ReceiptURL,
		&payment.PayoutReleased,
		&payment.PayoutReleasedAt,
		&payment.CreatedAt,
		&payment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	query := `
		INSERT INTO payments (id, booking_id, amount, transaction_id, gateway, status, session_id,
			receipt_url, payout_released, payout_released_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.Exec(ctx, query,
		payment.ID,
		payment.BookingID,
		payment.Amount,
		payment.TransactionID,
		payment.Gateway,
		payment.Status,
		payment.SessionID,
		payment.ReceiptURL,
		payment.PayoutReleased,
		payment.PayoutReleasedAt,
		payment.CreatedAt,
		payment.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create payment",
			zap.Error(err),
			zap.String("booking_id", payment.BookingID.String()),
		)
		return fmt.Errorf("create payment for booking %s: %w", payment.BookingID.String(), err)
	}

	return nil
}

func (r *paymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`

	payment, err := scanPayment(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find payment by ID",
			zap.Error(err),
			zap.String("payment_id", id.String()),
		)
		return nil, fmt.Errorf("find payment by ID %s: %w", id.String(), err)
	}

	return payment, nil
}

func (r *paymentRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE booking_id = $1`

	payment, err := scanPayment(r.db.QueryRow(ctx, query, bookingID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find payment by booking ID",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("find payment by booking ID %s: %w", bookingID.String(), err)
	}

	return payment, nil
}

func (r *paymentRepository) FindBySessionID(ctx context.Context, sessionID string) (*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE session_id = $1`

	payment, err := scanPayment(r.db.QueryRow(ctx, query, sessionID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find payment by session ID",
			zap.Error(err),
			zap.String("session_id", sessionID),
		)
		return nil, fmt.Errorf("find payment by session ID %s: %w", sessionID, err)
	}

	return payment, nil
}

func (r *paymentRepository) FindByTransactionID(ctx context.Context, transactionID string) (*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE transaction_id = $1`

	payment, err := scanPayment(r.db.QueryRow(ctx, query, transactionID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find payment by transaction ID",
			zap.Error(err),
			zap.String("transaction_id", transactionID),
		)
		return nil, fmt.Errorf("find payment by transaction ID %s: %w", transactionID, err)
	}

	return payment, nil
}

func (r *paymentRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to find payments", zap.Error(err))
		return nil, fmt.Errorf("find payments: %w", err)
	}
	defer rows.Close()

	var payments []*entity.Payment
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			r.log.Error("Failed to scan payment row", zap.Error(err))
			return nil, fmt.Errorf("scan payment row: %w", err)
		}
		payments = append(payments, payment)
	}

	return payments, nil
}

func (r *paymentRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM payments`).Scan(&count); err != nil {
		r.log.Error("Failed to count payments", zap.Error(err))
		return 0, fmt.Errorf("count payments: %w", err)
	}

	return count, nil
}

func (r *paymentRepository) UpdateStatus(ctx context.Context, paymentID uuid.UUID, status entity.PaymentStatus, receiptURL *string) error {
	query := `
		UPDATE payments
		SET status = $2, receipt_url = COALESCE($3, receipt_url), updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, paymentID, status, receiptURL)
	if err != nil {
		r.log.Error("Failed to update payment status",
			zap.Error(err),
			zap.String("payment_id", paymentID.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update payment %s status to %s: %w", paymentID.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("payment %s not found", paymentID.String())
	}

	return nil
}

func (r *paymentRepository) UpdateSession(ctx context.Context, paymentID uuid.UUID, gateway entity.PaymentGateway, sessionID *string) error {
	query := `
		UPDATE payments
		SET gateway = $2, session_id = $3, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, paymentID, gateway, sessionID)
	if err != nil {
		r.log.Error("Failed to update payment session",
			zap.Error(err),
			zap.String("payment_id", paymentID.String()),
		)
		return fmt.Errorf("update payment %s session: %w", paymentID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("payment %s not found", paymentID.String())
	}

	return nil
}

func (r *paymentRepository) ReleasePayout(ctx context.Context, paymentID uuid.UUID) (bool, error) {
	query := `
		UPDATE payments
		SET payout_released = TRUE, payout_released_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND status = 'PAID' AND payout_released = FALSE
	`

	result, err := r.db.Exec(ctx, query, paymentID)
	if err != nil {
		r.log.Error("Failed to release payout",
			zap.Error(err),
			zap.String("payment_id", paymentID.String()),
		)
		return false, fmt.Errorf("release payout for payment %s: %w", paymentID.String(), err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *paymentRepository) SumPaid(ctx context.Context) (float64, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM payments WHERE status = 'PAID'`

	var sum float64
	if err := r.db.QueryRow(ctx, query).Scan(&sum); err != nil {
		r.log.Error("Failed to sum paid payments", zap.Error(err))
		return 0, fmt.Errorf("sum paid payments: %w", err)
	}

	return sum, nil
}

func (r *paymentRepository) SumPaidByTourist(ctx context.Context, touristID uuid.UUID) (float64, error) {
	query := `
		SELECT COALESCE(SUM(p.amount), 0)
		FROM payments p
		JOIN bookings b ON b.id = p.booking_id
		WHERE p.status = 'PAID' AND b.tourist_id = $1
	`

	var sum float64
	if err := r.db.QueryRow(ctx, query, touristID).Scan(&sum); err != nil {
		r.log.Error("Failed to sum paid payments by tourist",
			zap.Error(err),
			zap.String("tourist_id", touristID.String()),
		)
		return 0, fmt.Errorf("sum paid payments for tourist %s: %w", touristID.String(), err)
	}

	return sum, nil
}
