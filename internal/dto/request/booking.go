package request

// CreateBookingRequest starts a one hour tour at Date, which must land on an
// hour boundary inside the bookable day window.
type CreateBookingRequest struct {
	ListingID string `json:"listing_id" validate:"required,uuid4"`
	Date      string `json:"date" validate:"required"`
	GroupSize *int   `json:"group_size,omitempty" validate:"omitempty,gt=0"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING CONFIRMED CANCELLED COMPLETED"`
}

type ListBookingsRequest struct {
	PaginatedRequest
	Status string `json:"status,omitempty" validate:"omitempty,oneof=PENDING CONFIRMED CANCELLED COMPLETED"`
}
