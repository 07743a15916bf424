package response

import (
	"time"

	"tour-booking/internal/data/entity"
)

type BookingResponse struct {
	ID             string               `json:"id"`
	OrderID        string               `json:"order_id"`
	ListingID      string               `json:"listing_id"`
	ListingTitle   string               `json:"listing_title,omitempty"`
	TouristID      string               `json:"tourist_id"`
	TouristName    string               `json:"tourist_name,omitempty"`
	TouristContact *string              `json:"tourist_contact,omitempty"`
	GuideID        string               `json:"guide_id,omitempty"`
	GuideName      string               `json:"guide_name,omitempty"`
	SlotStart      time.Time            `json:"slot_start"`
	SlotEnd        time.Time            `json:"slot_end"`
	GroupSize      int                  `json:"group_size"`
	TotalPrice     float64              `json:"total_price"`
	Status         entity.BookingStatus `json:"status"`
	Payment        *PaymentResponse     `json:"payment,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`
}

// SlotUsageResponse reports taken capacity per slot for one listing.
type SlotUsageResponse struct {
	SlotStart time.Time `json:"slot_start"`
	SlotEnd   time.Time `json:"slot_end"`
	Taken     int       `json:"taken"`
	Remaining int       `json:"remaining"`
}

type BookedDatesResponse struct {
	GuideID string   `json:"guide_id"`
	Dates   []string `json:"dates"`
}

func BookingToResponse(booking *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:         booking.ID.String(),
		OrderID:    booking.OrderID,
		ListingID:  booking.ListingID.String(),
		TouristID:  booking.TouristID.String(),
		SlotStart:  booking.SlotStart,
		SlotEnd:    booking.SlotEnd,
		GroupSize:  booking.GroupSize,
		TotalPrice: booking.TotalPrice,
		Status:     booking.Status,
		CreatedAt:  booking.CreatedAt,
	}
}
