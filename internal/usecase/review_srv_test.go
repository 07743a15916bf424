package usecase

import (
	"context"
	"testing"
	"time"

	"tour-booking/internal/data/entity"
	"tour-booking/internal/data/repository"
	"tour-booking/internal/dto/request"
	"tour-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type reviewFixture struct {
	touristID uuid.UUID
	listing   *entity.Listing
	bookings  *stubBookingRepo
	reviews   *stubReviewRepo
	service   ReviewService
}

func newReviewFixture(t *testing.T) *reviewFixture {
	t.Helper()

	f := &reviewFixture{
		touristID: uuid.New(),
		bookings:  &stubBookingRepo{},
		reviews:   &stubReviewRepo{},
	}
	f.listing = &entity.Listing{
		Base:    entity.Base{ID: uuid.New()},
		GuideID: uuid.New(),
		Title:   "Harbor Kayak Tour",
	}

	repo := &repository.Repository{
		User: &stubUserRepo{},
		Listing: &stubListingRepo{
			findByID: func(ctx context.Context, id uuid.UUID) (*entity.Listing, error) {
				if id == f.listing.ID {
					return f.listing, nil
				}
				return nil, nil
			},
		},
		Booking: f.bookings,
		Review:  f.reviews,
	}
	f.service = NewReviewService(repo, zap.NewNop())
	return f
}

func completedBookingFor(listingID, touristID uuid.UUID) *entity.Booking {
	return &entity.Booking{
		Base:      entity.Base{ID: uuid.New()},
		ListingID: listingID,
		TouristID: touristID,
		SlotEnd:   time.Now().Add(-time.Hour),
		Status:    entity.BookingStatusCompleted,
	}
}

func TestCreateReviewRequiresCompletedTour(t *testing.T) {
	f := newReviewFixture(t)

	_, err := f.service.CreateReview(context.Background(), f.touristID.String(), &request.CreateReviewRequest{
		ListingID: f.listing.ID.String(),
		Rating:    5,
	})
	require.Error(t, err)
	appErr, ok := utils.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.Code)
	assert.Contains(t, appErr.Message, "tour you have completed")
}

func TestCreateReviewRejectsDuplicate(t *testing.T) {
	f := newReviewFixture(t)

	f.bookings.findCompleted = func(ctx context.Context, listingID, touristID uuid.UUID) (*entity.Booking, error) {
		return completedBookingFor(listingID, touristID), nil
	}
	f.reviews.findByListingAndTou = func(ctx context.Context, listingID, touristID uuid.UUID) (*entity.Review, error) {
		return &entity.Review{Base: entity.Base{ID: uuid.New()}}, nil
	}

	_, err := f.service.CreateReview(context.Background(), f.touristID.String(), &request.CreateReviewRequest{
		ListingID: f.listing.ID.String(),
		Rating:    4,
	})
	require.Error(t, err)
	appErr, ok := utils.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 409, appErr.Code)
}

func TestCreateReviewStoresRating(t *testing.T) {
	f := newReviewFixture(t)

	f.bookings.findCompleted = func(ctx context.Context, listingID, touristID uuid.UUID) (*entity.Booking, error) {
		return completedBookingFor(listingID, touristID), nil
	}

	var created *entity.Review
	f.reviews.create = func(ctx context.Context, review *entity.Review) error {
		created = review
		return nil
	}

	comment := "Great afternoon on the water"
	resp, err := f.service.CreateReview(context.Background(), f.touristID.String(), &request.CreateReviewRequest{
		ListingID: f.listing.ID.String(),
		Rating:    5,
		Comment:   &comment,
	})
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.Equal(t, 5, created.Rating)
	assert.Equal(t, f.touristID, created.TouristID)
	assert.Equal(t, f.listing.ID, created.ListingID)
	assert.Equal(t, 5, resp.Rating)
}

func TestUpdateReviewOnlyByAuthorOrAdmin(t *testing.T) {
	f := newReviewFixture(t)

	review := &entity.Review{
		Base:      entity.Base{ID: uuid.New()},
		ListingID: f.listing.ID,
		TouristID: f.touristID,
		Rating:    3,
	}
	f.reviews.findByID = func(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
		return review, nil
	}

	newRating := 4
	_, err := f.service.UpdateReview(context.Background(), uuid.New().String(), entity.RoleTourist,
		review.ID.String(), &request.UpdateReviewRequest{Rating: &newRating})
	require.Error(t, err)
	appErr, ok := utils.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 403, appErr.Code)

	resp, err := f.service.UpdateReview(context.Background(), f.touristID.String(), entity.RoleTourist,
		review.ID.String(), &request.UpdateReviewRequest{Rating: &newRating})
	require.NoError(t, err)
	assert.Equal(t, 4, resp.Rating)

	adminRating := 2
	resp, err = f.service.UpdateReview(context.Background(), uuid.New().String(), entity.RoleAdmin,
		review.ID.String(), &request.UpdateReviewRequest{Rating: &adminRating})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Rating)
}
