package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tour-booking/internal/data/entity"
	"tour-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// BookingFilter scopes FindAll by role: tourists see their own bookings,
// guides see bookings against their listings, admins see everything.
type BookingFilter struct {
	TouristID *uuid.UUID
	GuideID   *uuid.UUID
	Status    *entity.BookingStatus
}

// SlotUsage is the booked head-count for one slot start.
type SlotUsage struct {
	SlotStart time.Time
	Booked    int
}

type BookingRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindAll(ctx context.Context, filter BookingFilter, limit, offset int, orderBy string) ([]*entity.Booking, error)
	Count(ctx context.Context, filter BookingFilter) (int64, error)
	UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) error

	// Capacity engine: both admission paths are single conditional
	// statements so the read and the write cannot race.
	CreateAdmitted(ctx context.Context, booking *entity.Booking, maxGroupSize int) (bool, error)
	ConfirmAdmitted(ctx context.Context, bookingID uuid.UUID) (bool, error)
	SumOverlapping(ctx context.Context, listingID uuid.UUID, start, end time.Time, statuses []entity.BookingStatus) (int, error)

	// Derived queries
	DistinctBookedDatesByGuide(ctx context.Context, guideID uuid.UUID) ([]time.Time, error)
	SlotUsageByListing(ctx context.Context, listingID uuid.UUID, dayStart, dayEnd time.Time) ([]SlotUsage, error)

	// Dashboard queries
	CountByTourist(ctx context.Context, touristID uuid.UUID, status *entity.BookingStatus) (int64, error)
	CountUpcomingByTourist(ctx context.Context, touristID uuid.UUID) (int64, error)
	CountByGuide(ctx context.Context, guideID uuid.UUID) (int64, error)
	FindCompleted(ctx context.Context, listingID, touristID uuid.UUID) (*entity.Booking, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, order_id, listing_id, tourist_id, slot_start, slot_end, group_size,
		total_price, status, created_at, updated_at`

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var booking entity.Booking
	err := row.Scan(
		&booking.ID,
		&booking.OrderID,
		&booking.ListingID,
		&booking.TouristID,
		&booking.SlotStart,
		&booking.SlotEnd,
		&booking.GroupSize,
		&booking.TotalPrice,
		&booking.Status,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// CreateAdmitted inserts the booking only if the aggregate group size of
// PENDING and CONFIRMED bookings overlapping [slot_start, slot_end) still
// leaves room for it. Returns false when capacity is exhausted.
func (r *bookingRepository) CreateAdmitted(ctx context.Context, booking *entity.Booking, maxGroupSize int) (bool, error) {
	query := `
		INSERT INTO bookings (id, order_id, listing_id, tourist_id, slot_start, slot_end,
			group_size, total_price, status, created_at, updated_at)
		SELECT $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		WHERE (
			SELECT COALESCE(SUM(group_size), 0)
			FROM bookings
			WHERE listing_id = $3
			  AND status IN ('PENDING', 'CONFIRMED')
			  AND slot_start < $6
			  AND slot_end > $5
		) + $7 <= $12
	`

	result, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.OrderID,
		booking.ListingID,
		booking.TouristID,
		booking.SlotStart,
		booking.SlotEnd,
		booking.GroupSize,
		booking.TotalPrice,
		booking.Status,
		booking.CreatedAt,
		booking.UpdatedAt,
		maxGroupSize,
	)

	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("order_id", booking.OrderID),
			zap.String("listing_id", booking.ListingID.String()),
		)
		return false, fmt.Errorf("create booking %s: %w", booking.OrderID, err)
	}

	return result.RowsAffected() > 0, nil
}

// ConfirmAdmitted moves a PENDING booking to CONFIRMED only if admitting it
// against CONFIRMED and COMPLETED bookings in the same slot still fits the
// listing capacity. Returns false when it no longer fits.
func (r *bookingRepository) ConfirmAdmitted(ctx context.Context, bookingID uuid.UUID) (bool, error) {
	query := `
		UPDATE bookings b
		SET status = 'CONFIRMED', updated_at = NOW()
		FROM listings l
		WHERE b.id = $1
		  AND b.status = 'PENDING'
		  AND l.id = b.listing_id
		  AND (
			SELECT COALESCE(SUM(o.group_size), 0)
			FROM bookings o
			WHERE o.listing_id = b.listing_id
			  AND o.id <> b.id
			  AND o.status IN ('CONFIRMED', 'COMPLETED')
			  AND o.slot_start < b.slot_end
			  AND o.slot_end > b.slot_start
		  ) + b.group_size <= l.max_group_size
	`

	result, err := r.db.Exec(ctx, query, bookingID)
	if err != nil {
		r.log.Error("Failed to confirm booking",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return false, fmt.Errorf("confirm booking %s: %w", bookingID.String(), err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *bookingRepository) SumOverlapping(ctx context.Context, listingID uuid.UUID, start, end time.Time, statuses []entity.BookingStatus) (int, error) {
	statusStrs := make([]string, len(statuses))
	for i, s := range statuses {
		statusStrs[i] = string(s)
	}

	query := `
		SELECT COALESCE(SUM(group_size), 0)
		FROM bookings
		WHERE listing_id = $1
		  AND status = ANY($2)
		  AND slot_start < $4
		  AND slot_end > $3
	`

	var sum int
	if err := r.db.QueryRow(ctx, query, listingID, statusStrs, start, end).Scan(&sum); err != nil {
		r.log.Error("Failed to sum overlapping bookings",
			zap.Error(err),
			zap.String("listing_id", listingID.String()),
		)
		return 0, fmt.Errorf("sum overlapping bookings for listing %s: %w", listingID.String(), err)
	}

	return sum, nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func buildBookingWhere(filter BookingFilter) (string, []any) {
	var conditions []string
	var args []any

	if filter.TouristID != nil {
		args = append(args, *filter.TouristID)
		conditions = append(conditions, fmt.Sprintf("b.tourist_id = $%d", len(args)))
	}
	if filter.GuideID != nil {
		args = append(args, *filter.GuideID)
		conditions = append(conditions, fmt.Sprintf("l.guide_id = $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, fmt.Sprintf("b.status = $%d", len(args)))
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

func (r *bookingRepository) FindAll(ctx context.Context, filter BookingFilter, limit, offset int, orderBy string) ([]*entity.Booking, error) {
	where, args := buildBookingWhere(filter)
	if orderBy == "" {
		orderBy = "b.created_at DESC"
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`
		SELECT b.id, b.order_id, b.listing_id, b.tourist_id, b.slot_start, b.slot_end,
			b.group_size, b.total_price, b.status, b.created_at, b.updated_at
		FROM bookings b
		JOIN listings l ON l.id = b.listing_id%s
		ORDER BY %s LIMIT $%d OFFSET $%d`, where, orderBy, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find bookings", zap.Error(err))
		return nil, fmt.Errorf("find bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, nil
}

func (r *bookingRepository) Count(ctx context.Context, filter BookingFilter) (int64, error) {
	where, args := buildBookingWhere(filter)
	query := `SELECT COUNT(*) FROM bookings b JOIN listings l ON l.id = b.listing_id` + where

	var count int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		r.log.Error("Failed to count bookings", zap.Error(err))
		return 0, fmt.Errorf("count bookings: %w", err)
	}

	return count, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) error {
	query := `UPDATE bookings SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, bookingID, status)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update booking %s status to %s: %w", bookingID.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", bookingID.String())
	}

	return nil
}

// DistinctBookedDatesByGuide returns the calendar dates with at least one
// non-cancelled booking against the guide's listings, for calendar blocking.
func (r *bookingRepository) DistinctBookedDatesByGuide(ctx context.Context, guideID uuid.UUID) ([]time.Time, error) {
	query := `
		SELECT DISTINCT DATE(b.slot_start)
		FROM bookings b
		JOIN listings l ON l.id = b.listing_id
		WHERE l.guide_id = $1 AND b.status <> 'CANCELLED'
		ORDER BY 1
	`

	rows, err := r.db.Query(ctx, query, guideID)
	if err != nil {
		r.log.Error("Failed to find booked dates by guide",
			zap.Error(err),
			zap.String("guide_id", guideID.String()),
		)
		return nil, fmt.Errorf("find booked dates by guide %s: %w", guideID.String(), err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var date time.Time
		if err := rows.Scan(&date); err != nil {
			r.log.Error("Failed to scan booked date row", zap.Error(err))
			return nil, fmt.Errorf("scan booked date row: %w", err)
		}
		dates = append(dates, date)
	}

	return dates, nil
}

// SlotUsageByListing returns booked head-counts per slot start within a day,
// counting PENDING and CONFIRMED bookings.
func (r *bookingRepository) SlotUsageByListing(ctx context.Context, listingID uuid.UUID, dayStart, dayEnd time.Time) ([]SlotUsage, error) {
	query := `
		SELECT slot_start, COALESCE(SUM(group_size), 0)
		FROM bookings
		WHERE listing_id = $1
		  AND status IN ('PENDING', 'CONFIRMED')
		  AND slot_start >= $2
		  AND slot_start < $3
		GROUP BY slot_start
		ORDER BY slot_start
	`

	rows, err := r.db.Query(ctx, query, listingID, dayStart, dayEnd)
	if err != nil {
		r.log.Error("Failed to find slot usage",
			zap.Error(err),
			zap.String("listing_id", listingID.String()),
		)
		return nil, fmt.Errorf("find slot usage for listing %s: %w", listingID.String(), err)
	}
	defer rows.Close()

	var usage []SlotUsage
	for rows.Next() {
		var u SlotUsage
		if err := rows.Scan(&u.SlotStart, &u.Booked); err != nil {
			r.log.Error("Failed to scan slot usage row", zap.Error(err))
			return nil, fmt.Errorf("scan slot usage row: %w", err)
		}
		usage = append(usage, u)
	}

	return usage, nil
}

func (r *bookingRepository) CountByTourist(ctx context.Context, touristID uuid.UUID, status *entity.BookingStatus) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE tourist_id = $1`
	args := []any{touristID}

	if status != nil {
		query += ` AND status = $2`
		args = append(args, *status)
	}

	var count int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		r.log.Error("Failed to count bookings by tourist",
			zap.Error(err),
			zap.String("tourist_id", touristID.String()),
		)
		return 0, fmt.Errorf("count bookings by tourist %s: %w", touristID.String(), err)
	}

	return count, nil
}

func (r *bookingRepository) CountUpcomingByTourist(ctx context.Context, touristID uuid.UUID) (int64, error) {
	query := `
		SELECT COUNT(*) FROM bookings
		WHERE tourist_id = $1 AND status = 'CONFIRMED' AND slot_start >= NOW()
	`

	var count int64
	if err := r.db.QueryRow(ctx, query, touristID).Scan(&count); err != nil {
		r.log.Error("Failed to count upcoming bookings",
			zap.Error(err),
			zap.String("tourist_id", touristID.String()),
		)
		return 0, fmt.Errorf("count upcoming bookings for tourist %s: %w", touristID.String(), err)
	}

	return count, nil
}

func (r *bookingRepository) CountByGuide(ctx context.Context, guideID uuid.UUID) (int64, error) {
	query := `
		SELECT COUNT(*) FROM bookings b
		JOIN listings l ON l.id = b.listing_id
		WHERE l.guide_id = $1
	`

	var count int64
	if err := r.db.QueryRow(ctx, query, guideID).Scan(&count); err != nil {
		r.log.Error("Failed to count bookings by guide",
			zap.Error(err),
			zap.String("guide_id", guideID.String()),
		)
		return 0, fmt.Errorf("count bookings by guide %s: %w", guideID.String(), err)
	}

	return count, nil
}

// FindCompleted returns a COMPLETED booking by the tourist for the listing,
// which gates review creation.
func (r *bookingRepository) FindCompleted(ctx context.Context, listingID, touristID uuid.UUID) (*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE listing_id = $1 AND tourist_id = $2 AND status = 'COMPLETED'
		LIMIT 1
	`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, listingID, touristID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find completed booking",
			zap.Error(err),
			zap.String("listing_id", listingID.String()),
			zap.String("tourist_id", touristID.String()),
		)
		return nil, fmt.Errorf("find completed booking for listing %s: %w", listingID.String(), err)
	}

	return booking, nil
}
