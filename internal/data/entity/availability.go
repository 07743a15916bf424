package entity

import (
	"time"

	"github.com/google/uuid"
)

// Availability is a guide-declared window of bookable time. Slots for the
// same guide must not overlap on the same date.
type Availability struct {
	Base
	GuideID     uuid.UUID `db:"guide_id"`
	Date        time.Time `db:"date"`
	StartTime   time.Time `db:"start_time"`
	EndTime     time.Time `db:"end_time"`
	IsAvailable bool      `db:"is_available"`
}
