package repository

import (
	"context"
	"fmt"
	"strings"

	"tour-booking/internal/data/entity"
	"tour-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// ListingFilter narrows FindAll; zero values are ignored. SearchTerm matches
// title, description, location and category case-insensitively.
type ListingFilter struct {
	SearchTerm string
	Category   string
	Language   string
	Location   string
	MinPrice   *float64
	MaxPrice   *float64
	GuideID    *uuid.UUID
}

// ListingRating aggregates review stats for one listing.
type ListingRating struct {
	AverageRating float64
	TotalReviews  int
}

type ListingRepository interface {
	Create(ctx context.Context, listing *entity.Listing) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Listing, error)
	FindAll(ctx context.Context, filter ListingFilter, limit, offset int, orderBy string) ([]*entity.Listing, error)
	Count(ctx context.Context, filter ListingFilter) (int64, error)
	Update(ctx context.Context, listing *entity.Listing) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Business queries
	Rating(ctx context.Context, listingID uuid.UUID) (*ListingRating, error)
	CountByGuide(ctx context.Context, guideID uuid.UUID) (int64, error)
}

type listingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewListingRepository(db database.PgxIface, log *zap.Logger) ListingRepository {
	return &listingRepository{
		db:  db,
		log: log.With(zap.String("repository", "listing")),
	}
}

const listingColumns = `id, guide_id, title, description, location, latitude, longitude, price,
		duration, max_group_size, category, languages, meeting_point, images, created_at, updated_at`

func scanListing(row pgx.Row) (*entity.Listing, error) {
	var listing entity.Listing
	err := row.Scan(
		&listing.ID,
		&listing.GuideID,
		&listing.Title,
		&listing.Description,
		&listing.Location,
		&listing.Latitude,
		&listing.Longitude,
		&listing.Price,
		&listing.Duration,
		&listing.MaxGroupSize,
		&listing.Category,
		&listing.Languages,
		&listing.MeetingPoint,
		&listing.Images,
		&listing.CreatedAt,
		&listing.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

func (r *listingRepository) Create(ctx context.Context, listing *entity.Listing) error {
	query := `
		INSERT INTO listings (id, guide_id, title, description, location, latitude, longitude, price,
			duration, max_group_size, category, languages, meeting_point, images, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err := r.db.Exec(ctx, query,
		listing.ID,
		listing.GuideID,
		listing.Title,
		listing.Description,
		listing.Location,
		listing.Latitude,
		listing.Longitude,
		listing.Price,
		listing.Duration,
		listing.MaxGroupSize,
		listing.Category,
		listing.Languages,
		listing.MeetingPoint,
		listing.Images,
		listing.CreatedAt,
		listing.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create listing",
			zap.Error(err),
			zap.String("guide_id", listing.GuideID.String()),
			zap.String("title", listing.Title),
		)
		return fmt.Errorf("create listing %s: %w", listing.Title, err)
	}

	return nil
}

func (r *listingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE id = $1`

	listing, err := scanListing(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find listing by ID",
			zap.Error(err),
			zap.String("listing_id", id.String()),
		)
		return nil, fmt.Errorf("find listing by ID %s: %w", id.String(), err)
	}

	return listing, nil
}

func buildListingWhere(filter ListingFilter) (string, []any) {
	var conditions []string
	var args []any

	if filter.SearchTerm != "" {
		args = append(args, "%"+filter.SearchTerm+"%")
		p := fmt.Sprintf("$%d", len(args))
		conditions = append(conditions, fmt.Sprintf(
			"(title ILIKE %s OR description ILIKE %s OR location ILIKE %s OR category ILIKE %s)", p, p, p, p))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		conditions = append(conditions, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.Language != "" {
		args = append(args, filter.Language)
		conditions = append(conditions, fmt.Sprintf("$%d = ANY(languages)", len(args)))
	}
	if filter.Location != "" {
		args = append(args, filter.Location)
		conditions = append(conditions, fmt.Sprintf("location = $%d", len(args)))
	}
	if filter.MinPrice != nil {
		args = append(args, *filter.MinPrice)
		conditions = append(conditions, fmt.Sprintf("price >= $%d", len(args)))
	}
	if filter.MaxPrice != nil {
		args = append(args, *filter.MaxPrice)
		conditions = append(conditions, fmt.Sprintf("price <= $%d", len(args)))
	}
	if filter.GuideID != nil {
		args = append(args, *filter.GuideID)
		conditions = append(conditions, fmt.Sprintf("guide_id = $%d", len(args)))
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

func (r *listingRepository) FindAll(ctx context.Context, filter ListingFilter, limit, offset int, orderBy string) ([]*entity.Listing, error) {
	where, args := buildListingWhere(filter)
	if orderBy == "" {
		orderBy = "created_at DESC"
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT %s FROM listings%s ORDER BY %s LIMIT $%d OFFSET $%d`,
		listingColumns, where, orderBy, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find listings", zap.Error(err))
		return nil, fmt.Errorf("find listings: %w", err)
	}
	defer rows.Close()

	var listings []*entity.Listing
	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			r.log.Error("Failed to scan listing row", zap.Error(err))
			return nil, fmt.Errorf("scan listing row: %w", err)
		}
		listings = append(listings, listing)
	}

	return listings, nil
}

func (r *listingRepository) Count(ctx context.Context, filter ListingFilter) (int64, error) {
	where, args := buildListingWhere(filter)
	query := `SELECT COUNT(*) FROM listings` + where

	var count int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		r.log.Error("Failed to count listings", zap.Error(err))
		return 0, fmt.Errorf("count listings: %w", err)
	}

	return count, nil
}

func (r *listingRepository) Update(ctx context.Context, listing *entity.Listing) error {
	query := `
		UPDATE listings
		SET title = $2, description = $3, location = $4, latitude = $5, longitude = $6,
		    price = $7, duration = $8, max_group_size = $9, category = $10, languages = $11,
		    meeting_point = $12, images = $13, updated_at = $14
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		listing.ID,
		listing.Title,
		listing.Description,
		listing.Location,
		listing.Latitude,
		listing.Longitude,
		listing.Price,
		listing.Duration,
		listing.MaxGroupSize,
		listing.Category,
		listing.Languages,
		listing.MeetingPoint,
		listing.Images,
		listing.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update listing",
			zap.Error(err),
			zap.String("listing_id", listing.ID.String()),
		)
		return fmt.Errorf("update listing %s: %w", listing.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("listing %s not found", listing.ID.String())
	}

	return nil
}

func (r *listingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM listings WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete listing",
			zap.Error(err),
			zap.String("listing_id", id.String()),
		)
		return fmt.Errorf("delete listing %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("listing %s not found", id.String())
	}

	r.log.Info("Listing deleted", zap.String("listing_id", id.String()))
	return nil
}

func (r *listingRepository) Rating(ctx context.Context, listingID uuid.UUID) (*ListingRating, error) {
	query := `
		SELECT COALESCE(AVG(rating), 0), COUNT(*)
		FROM reviews
		WHERE listing_id = $1
	`

	var rating ListingRating
	err := r.db.QueryRow(ctx, query, listingID).Scan(&rating.AverageRating, &rating.TotalReviews)
	if err != nil {
		r.log.Error("Failed to aggregate listing rating",
			zap.Error(err),
			zap.String("listing_id", listingID.String()),
		)
		return nil, fmt.Errorf("aggregate rating for listing %s: %w", listingID.String(), err)
	}

	return &rating, nil
}

func (r *listingRepository) CountByGuide(ctx context.Context, guideID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM listings WHERE guide_id = $1`

	var count int64
	if err := r.db.QueryRow(ctx, query, guideID).Scan(&count); err != nil {
		r.log.Error("Failed to count listings by guide",
			zap.Error(err),
			zap.String("guide_id", guideID.String()),
		)
		return 0, fmt.Errorf("count listings by guide %s: %w", guideID.String(), err)
	}

	return count, nil
}
