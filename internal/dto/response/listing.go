package response

import (
	"time"

	"tour-booking/internal/data/entity"
)

type ListingResponse struct {
	ID            string    `json:"id"`
	GuideID       string    `json:"guide_id"`
	GuideName     string    `json:"guide_name,omitempty"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Location      string    `json:"location"`
	Latitude      *float64  `json:"latitude,omitempty"`
	Longitude     *float64  `json:"longitude,omitempty"`
	Price         float64   `json:"price"`
	Duration      *string   `json:"duration,omitempty"`
	MaxGroupSize  int       `json:"max_group_size"`
	Category      string    `json:"category"`
	Languages     []string  `json:"languages"`
	MeetingPoint  *string   `json:"meeting_point,omitempty"`
	Images        []string  `json:"images,omitempty"`
	AverageRating float64   `json:"average_rating"`
	TotalReviews  int       `json:"total_reviews"`
	CreatedAt     time.Time `json:"created_at"`
}

func ListingToResponse(listing *entity.Listing) ListingResponse {
	return ListingResponse{
		ID:           listing.ID.String(),
		GuideID:      listing.GuideID.String(),
		Title:        listing.Title,
		Description:  listing.Description,
		Location:     listing.Location,
		Latitude:     listing.Latitude,
		Longitude:    listing.Longitude,
		Price:        listing.Price,
		Duration:     listing.Duration,
		MaxGroupSize: listing.MaxGroupSize,
		Category:     listing.Category,
		Languages:    listing.Languages,
		MeetingPoint: listing.MeetingPoint,
		Images:       listing.Images,
		CreatedAt:    listing.CreatedAt,
	}
}
