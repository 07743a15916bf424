package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
	BookingStatusCompleted BookingStatus = "COMPLETED"
)

// Terminal reports whether no further transition is permitted from s.
func (s BookingStatus) Terminal() bool {
	return s == BookingStatusCancelled || s == BookingStatusCompleted
}

// Booking reserves [SlotStart, SlotEnd) against a listing. Capacity is
// enforced per listing by interval overlap on these bounds.
type Booking struct {
	Base
	OrderID    string        `db:"order_id"`
	ListingID  uuid.UUID     `db:"listing_id"`
	TouristID  uuid.UUID     `db:"tourist_id"`
	SlotStart  time.Time     `db:"slot_start"`
	SlotEnd    time.Time     `db:"slot_end"`
	GroupSize  int           `db:"group_size"`
	TotalPrice float64       `db:"total_price"`
	Status     BookingStatus `db:"status"`
}
