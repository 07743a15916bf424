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

// GuideRating aggregates review stats across all of a guide's listings.
type GuideRating struct {
	AverageRating float64
	TotalReviews  int
}

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error)
	FindByListing(ctx context.Context, listingID uuid.UUID) ([]*entity.Review, error)
	FindByListingAndTourist(ctx context.Context, listingID, touristID uuid.UUID) (*entity.Review, error)
	Update(ctx context.Context, review *entity.Review) error

	// Dashboard queries
	RatingByGuide(ctx context.Context, guideID uuid.UUID) (*GuideRating, error)
}

type reviewRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReviewRepository(db database.PgxIface, log *zap.Logger) ReviewRepository {
	return &reviewRepository{
		db:  db,
		log: log.With(zap.String("repository", "review")),
	}
}

const reviewColumns = `id, listing_id, tourist_id, rating, comment, created_at, updated_at`

func scanReview(row pgx.Row) (*entity.Review, error) {
	var review entity.Review
	err := row.Scan(
		&review.ID,
		&review.ListingID,
		&review.TouristID,
		&review.Rating,
		&review.Comment,
		&review.CreatedAt,
		&review.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	query := `
		INSERT INTO reviews (id, listing_id, tourist_id, rating, comment, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		review.ID,
		review.ListingID,
		review.TouristID,
		review.Rating,
		review.Comment,
		review.CreatedAt,
		review.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create review",
			zap.Error(err),
			zap.String("listing_id", review.ListingID.String()),
			zap.String("tourist_id", review.TouristID.String()),
		)
		return fmt.Errorf("create review for listing %s: %w", review.ListingID.String(), err)
	}

	return nil
}

func (r *reviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE id = $1`

	review, err := scanReview(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find review by ID",
			zap.Error(err),
			zap.String("review_id", id.String()),
		)
		return nil, fmt.Errorf("find review by ID %s: %w", id.String(), err)
	}

	return review, nil
}

func (r *reviewRepository) FindByListing(ctx context.Context, listingID uuid.UUID) ([]*entity.Review, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM reviews
		WHERE listing_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, listingID)
	if err != nil {
		r.log.Error("Failed to find reviews by listing",
			zap.Error(err),
			zap.String("listing_id", listingID.String()),
		)
		return nil, fmt.Errorf("find reviews by listing %s: %w", listingID.String(), err)
	}
	defer rows.Close()

	var reviews []*entity.Review
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			r.log.Error("Failed to scan review row", zap.Error(err))
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, review)
	}

	return reviews, nil
}

func (r *reviewRepository) FindByListingAndTourist(ctx context.Context, listingID, touristID uuid.UUID) (*entity.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE listing_id = $1 AND tourist_id = $2`

	review, err := scanReview(r.db.QueryRow(ctx, query, listingID, touristID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find review by listing and tourist",
			zap.Error(err),
			zap.String("listing_id", listingID.String()),
			zap.String("tourist_id", touristID.String()),
		)
		return nil, fmt.Errorf("find review for listing %s by tourist %s: %w",
			listingID.String(), touristID.String(), err)
	}

	return review, nil
}

func (r *reviewRepository) Update(ctx context.Context, review *entity.Review) error {
	query := `
		UPDATE reviews
		SET rating = $2, comment = $3, updated_at = $4
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		review.ID,
		review.Rating,
		review.Comment,
		review.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update review",
			zap.Error(err),
			zap.String("review_id", review.ID.String()),
		)
		return fmt.Errorf("update review %s: %w", review.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("review %s not found", review.ID.String())
	}

	return nil
}

func (r *reviewRepository) RatingByGuide(ctx context.Context, guideID uuid.UUID) (*GuideRating, error) {
	query := `
		SELECT COALESCE(AVG(r.rating), 0), COUNT(*)
		FROM reviews r
		JOIN listings l ON l.id = r.listing_id
		WHERE l.guide_id = $1
	`

	var rating GuideRating
	err := r.db.QueryRow(ctx, query, guideID).Scan(&rating.AverageRating, &rating.TotalReviews)
	if err != nil {
		r.log.Error("Failed to aggregate guide rating",
			zap.Error(err),
			zap.String("guide_id", guideID.String()),
		)
		return nil, fmt.Errorf("aggregate rating for guide %s: %w", guideID.String(), err)
	}

	return &rating, nil
}
