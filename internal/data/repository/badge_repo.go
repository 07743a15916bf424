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

type BadgeRepository interface {
	Create(ctx context.Context, badge *entity.Badge) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Badge, error)
	FindByName(ctx context.Context, name string) (*entity.Badge, error)
	FindAll(ctx context.Context, searchTerm string, limit, offset int) ([]*entity.Badge, error)
	Count(ctx context.Context, searchTerm string) (int64, error)
	Update(ctx context.Context, badge *entity.Badge) error
	Delete(ctx context.Context, id uuid.UUID) error

	// User badge assignment
	FindUserBadge(ctx context.Context, userID, badgeID uuid.UUID) (*entity.UserBadge, error)
	AssignToUser(ctx context.Context, userBadge *entity.UserBadge) error
	RevokeFromUser(ctx context.Context, userID, badgeID uuid.UUID) error
	FindHolders(ctx context.Context, badgeID uuid.UUID) ([]uuid.UUID, error)
}

type badgeRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBadgeRepository(db database.PgxIface, log *zap.Logger) BadgeRepository {
	return &badgeRepository{
		db:  db,
		log: log.With(zap.String("repository", "badge")),
	}
}

const badgeColumns = `id, name, description, icon, criteria, created_at, updated_at`

func scanBadge(row pgx.Row) (*entity.Badge, error) {
	var badge entity.Badge
	err := row.Scan(
		&badge.ID,
		&badge.Name,
		&badge.Description,
		&badge.Icon,
		&badge.Criteria,
		&badge.CreatedAt,
		&badge.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &badge, nil
}

func (r *badgeRepository) Create(ctx context.Context, badge *entity.Badge) error {
	query := `
		INSERT INTO badges (id, name, description, icon, criteria, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		badge.ID,
		badge.Name,
		badge.Description,
		badge.Icon,
		badge.Criteria,
		badge.CreatedAt,
		badge.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create badge",
			zap.Error(err),
			zap.String("name", badge.Name),
		)
		return fmt.Errorf("create badge %s: %w", badge.Name, err)
	}

	return nil
}

func (r *badgeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Badge, error) {
	query := `SELECT ` + badgeColumns + ` FROM badges WHERE id = $1`

	badge, err := scanBadge(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find badge by ID",
			zap.Error(err),
			zap.String("badge_id", id.String()),
		)
		return nil, fmt.Errorf("find badge by ID %s: %w", id.String(), err)
	}

	return badge, nil
}

func (r *badgeRepository) FindByName(ctx context.Context, name string) (*entity.Badge, error) {
	query := `SELECT ` + badgeColumns + ` FROM badges WHERE name = $1`

	badge, err := scanBadge(r.db.QueryRow(ctx, query, name))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find badge by name",
			zap.Error(err),
			zap.String("name", name),
		)
		return nil, fmt.Errorf("find badge by name %s: %w", name, err)
	}

	return badge, nil
}

func (r *badgeRepository) FindAll(ctx context.Context, searchTerm string, limit, offset int) ([]*entity.Badge, error) {
	query := `SELECT ` + badgeColumns + ` FROM badges`
	var args []any

	if searchTerm != "" {
		query += ` WHERE name ILIKE $1 OR description ILIKE $1`
		args = append(args, "%"+searchTerm+"%")
	}

	args = append(args, limit, offset)
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find badges", zap.Error(err))
		return nil, fmt.Errorf("find badges: %w", err)
	}
	defer rows.Close()

	var badges []*entity.Badge
	for rows.Next() {
		badge, err := scanBadge(rows)
		if err != nil {
			r.log.Error("Failed to scan badge row", zap.Error(err))
			return nil, fmt.Errorf("scan badge row: %w", err)
		}
		badges = append(badges, badge)
	}

	return badges, nil
}

func (r *badgeRepository) Count(ctx context.Context, searchTerm string) (int64, error) {
	query := `SELECT COUNT(*) FROM badges`
	var args []any

	if searchTerm != "" {
		query += ` WHERE name ILIKE $1 OR description ILIKE $1`
		args = append(args, "%"+searchTerm+"%")
	}

	var count int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		r.log.Error("Failed to count badges", zap.Error(err))
		return 0, fmt.Errorf("count badges: %w", err)
	}

	return count, nil
}

func (r *badgeRepository) Update(ctx context.Context, badge *entity.Badge) error {
	query := `
		UPDATE badges
		SET name = $2, description = $3, icon = $4, criteria = $5, updated_at = $6
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		badge.ID,
		badge.Name,
		badge.Description,
		badge.Icon,
		badge.Criteria,
		badge.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update badge",
			zap.Error(err),
			zap.String("badge_id", badge.ID.String()),
		)
		return fmt.Errorf("update badge %s: %w", badge.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("badge %s not found", badge.ID.String())
	}

	return nil
}

func (r *badgeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM badges WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete badge",
			zap.Error(err),
			zap.String("badge_id", id.String()),
		)
		return fmt.Errorf("delete badge %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("badge %s not found", id.String())
	}

	return nil
}

func (r *badgeRepository) FindUserBadge(ctx context.Context, userID, badgeID uuid.UUID) (*entity.UserBadge, error) {
	query := `SELECT user_id, badge_id, awarded_at FROM user_badges WHERE user_id = $1 AND badge_id = $2`

	var userBadge entity.UserBadge
	err := r.db.QueryRow(ctx, query, userID, badgeID).Scan(
		&userBadge.UserID,
		&userBadge.BadgeID,
		&userBadge.AwardedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find user badge",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("badge_id", badgeID.String()),
		)
		return nil, fmt.Errorf("find user badge %s/%s: %w", userID.String(), badgeID.String(), err)
	}

	return &userBadge, nil
}

func (r *badgeRepository) AssignToUser(ctx context.Context, userBadge *entity.UserBadge) error {
	query := `
		INSERT INTO user_badges (user_id, badge_id, awarded_at)
		VALUES ($1, $2, $3)
	`

	_, err := r.db.Exec(ctx, query,
		userBadge.UserID,
		userBadge.BadgeID,
		userBadge.AwardedAt,
	)

	if err != nil {
		r.log.Error("Failed to assign badge",
			zap.Error(err),
			zap.String("user_id", userBadge.UserID.String()),
			zap.String("badge_id", userBadge.BadgeID.String()),
		)
		return fmt.Errorf("assign badge %s to user %s: %w",
			userBadge.BadgeID.String(), userBadge.UserID.String(), err)
	}

	return nil
}

func (r *badgeRepository) RevokeFromUser(ctx context.Context, userID, badgeID uuid.UUID) error {
	query := `DELETE FROM user_badges WHERE user_id = $1 AND badge_id = $2`

	result, err := r.db.Exec(ctx, query, userID, badgeID)
	if err != nil {
		r.log.Error("Failed to revoke badge",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("badge_id", badgeID.String()),
		)
		return fmt.Errorf("revoke badge %s from user %s: %w", badgeID.String(), userID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %s does not have badge %s", userID.String(), badgeID.String())
	}

	return nil
}

func (r *badgeRepository) FindHolders(ctx context.Context, badgeID uuid.UUID) ([]uuid.UUID, error) {
	query := `SELECT user_id FROM user_badges WHERE badge_id = $1 ORDER BY awarded_at`

	rows, err := r.db.Query(ctx, query, badgeID)
	if err != nil {
		r.log.Error("Failed to find badge holders",
			zap.Error(err),
			zap.String("badge_id", badgeID.String()),
		)
		return nil, fmt.Errorf("find holders of badge %s: %w", badgeID.String(), err)
	}
	defer rows.Close()

	var holders []uuid.UUID
	for rows.Next() {
		var userID uuid.UUID
		if err := rows.Scan(&userID); err != nil {
			r.log.Error("Failed to scan badge holder row", zap.Error(err))
			return nil, fmt.Errorf("scan badge holder row: %w", err)
		}
		holders = append(holders, userID)
	}

	return holders, nil
}
