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

// AvailabilityFilter narrows FindAll; zero values are ignored.
type AvailabilityFilter struct {
	GuideID     *uuid.UUID
	Date        *time.Time
	IsAvailable *bool
}

type AvailabilityRepository interface {
	Create(ctx context.Context, slot *entity.Availability) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Availability, error)
	FindAll(ctx context.Context, filter AvailabilityFilter, limit, offset int, orderBy string) ([]*entity.Availability, error)
	Count(ctx context.Context, filter AvailabilityFilter) (int64, error)
	Update(ctx context.Context, slot *entity.Availability) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Business queries
	FindOverlapping(ctx context.Context, guideID uuid.UUID, date, start, end time.Time, excludeID *uuid.UUID) (*entity.Availability, error)
	FindCovering(ctx context.Context, guideID uuid.UUID, start, end time.Time) (*entity.Availability, error)
}

type availabilityRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAvailabilityRepository(db database.PgxIface, log *zap.Logger) AvailabilityRepository {
	return &availabilityRepository{
		db:  db,
		log: log.With(zap.String("repository", "availability")),
	}
}

const availabilityColumns = `id, guide_id, date, start_time, end_time, is_available, created_at, updated_at`

func scanAvailability(row pgx.Row) (*entity.Availability, error) {
	var slot entity.Availability
	err := row.Scan(
		&slot.ID,
		&slot.GuideID,
		&slot.Date,
		&slot.StartTime,
		&slot.EndTime,
		&slot.IsAvailable,
		&slot.CreatedAt,
		&slot.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *availabilityRepository) Create(ctx context.Context, slot *entity.Availability) error {
	query := `
		INSERT INTO availability (id, guide_id, date, start_time, end_time, is_available, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		slot.ID,
		slot.GuideID,
		slot.Date,
		slot.StartTime,
		slot.EndTime,
		slot.IsAvailable,
		slot.CreatedAt,
		slot.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create availability slot",
			zap.Error(err),
			zap.String("guide_id", slot.GuideID.String()),
		)
		return fmt.Errorf("create availability for guide %s: %w", slot.GuideID.String(), err)
	}

	return nil
}

func (r *availabilityRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Availability, error) {
	query := `SELECT ` + availabilityColumns + ` FROM availability WHERE id = $1`

	slot, err := scanAvailability(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find availability by ID",
			zap.Error(err),
			zap.String("availability_id", id.String()),
		)
		return nil, fmt.Errorf("find availability by ID %s: %w", id.String(), err)
	}

	return slot, nil
}

func buildAvailabilityWhere(filter AvailabilityFilter) (string, []any) {
	var conditions []string
	var args []any

	if filter.GuideID != nil {
		args = append(args, *filter.GuideID)
		conditions = append(conditions, fmt.Sprintf("guide_id = $%d", len(args)))
	}
	if filter.Date != nil {
		args = append(args, *filter.Date)
		conditions = append(conditions, fmt.Sprintf("date = $%d", len(args)))
	}
	if filter.IsAvailable != nil {
		args = append(args, *filter.IsAvailable)
		conditions = append(conditions, fmt.Sprintf("is_available = $%d", len(args)))
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

func (r *availabilityRepository) FindAll(ctx context.Context, filter AvailabilityFilter, limit, offset int, orderBy string) ([]*entity.Availability, error) {
	where, args := buildAvailabilityWhere(filter)
	if orderBy == "" {
		orderBy = "date ASC, start_time ASC"
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT %s FROM availability%s ORDER BY %s LIMIT $%d OFFSET $%d`,
		availabilityColumns, where, orderBy, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find availability slots", zap.Error(err))
		return nil, fmt.Errorf("find availability slots: %w", err)
	}
	defer rows.Close()

	var slots []*entity.Availability
	for rows.Next() {
		slot, err := scanAvailability(rows)
		if err != nil {
			r.log.Error("Failed to scan availability row", zap.Error(err))
			return nil, fmt.Errorf("scan availability row: %w", err)
		}
		slots = append(slots, slot)
	}

	return slots, nil
}

func (r *availabilityRepository) Count(ctx context.Context, filter AvailabilityFilter) (int64, error) {
	where, args := buildAvailabilityWhere(filter)
	query := `SELECT COUNT(*) FROM availability` + where

	var count int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		r.log.Error("Failed to count availability slots", zap.Error(err))
		return 0, fmt.Errorf("count availability slots: %w", err)
	}

	return count, nil
}

func (r *availabilityRepository) Update(ctx context.Context, slot *entity.Availability) error {
	query := `
		UPDATE availability
		SET date = $2, start_time = $3, end_time = $4, is_available = $5, updated_at = $6
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		slot.ID,
		slot.Date,
		slot.StartTime,
		slot.EndTime,
		slot.IsAvailable,
		slot.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update availability",
			zap.Error(err),
			zap.String("availability_id", slot.ID.String()),
		)
		return fmt.Errorf("update availability %s: %w", slot.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("availability %s not found", slot.ID.String())
	}

	return nil
}

func (r *availabilityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM availability WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete availability",
			zap.Error(err),
			zap.String("availability_id", id.String()),
		)
		return fmt.Errorf("delete availability %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("availability %s not found", id.String())
	}

	return nil
}

// FindOverlapping returns a slot for the same guide and date whose
// [start_time, end_time) window intersects [start, end). Used to keep guide
// calendars free of overlapping slots.
func (r *availabilityRepository) FindOverlapping(ctx context.Context, guideID uuid.UUID, date, start, end time.Time, excludeID *uuid.UUID) (*entity.Availability, error) {
	query := `
		SELECT ` + availabilityColumns + `
		FROM availability
		WHERE guide_id = $1 AND date = $2 AND start_time < $4 AND end_time > $3
	`
	args := []any{guideID, date, start, end}

	if excludeID != nil {
		query += ` AND id <> $5`
		args = append(args, *excludeID)
	}
	query += ` LIMIT 1`

	slot, err := scanAvailability(r.db.QueryRow(ctx, query, args...))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find overlapping availability",
			zap.Error(err),
			zap.String("guide_id", guideID.String()),
		)
		return nil, fmt.Errorf("find overlapping availability for guide %s: %w", guideID.String(), err)
	}

	return slot, nil
}

// FindCovering returns an available slot that fully contains [start, end),
// consulted by the booking admission check.
func (r *availabilityRepository) FindCovering(ctx context.Context, guideID uuid.UUID, start, end time.Time) (*entity.Availability, error) {
	query := `
		SELECT ` + availabilityColumns + `
		FROM availability
		WHERE guide_id = $1 AND is_available = TRUE AND start_time <= $2 AND end_time >= $3
		LIMIT 1
	`

	slot, err := scanAvailability(r.db.QueryRow(ctx, query, guideID, start, end))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find covering availability",
			zap.Error(err),
			zap.String("guide_id", guideID.String()),
		)
		return nil, fmt.Errorf("find covering availability for guide %s: %w", guideID.String(), err)
	}

	return slot, nil
}
