package entity

import (
	"github.com/google/uuid"
)

// Review is unique per (listing, tourist); the index in migration 0001
// backs the service-level conflict check.
type Review struct {
	Base
	ListingID uuid.UUID `db:"listing_id"`
	TouristID uuid.UUID `db:"tourist_id"`
	Rating    int       `db:"rating"`
	Comment   *string   `db:"comment"`
}
