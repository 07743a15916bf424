package response

import (
	"time"

	"tour-booking/internal/data/entity"
)

type ReviewResponse struct {
	ID          string    `json:"id"`
	ListingID   string    `json:"listing_id"`
	TouristID   string    `json:"tourist_id"`
	TouristName string    `json:"tourist_name,omitempty"`
	Rating      int       `json:"rating"`
	Comment     *string   `json:"comment,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func ReviewToResponse(review *entity.Review) ReviewResponse {
	return ReviewResponse{
		ID:        review.ID.String(),
		ListingID: review.ListingID.String(),
		TouristID: review.TouristID.String(),
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
	}
}
