package usecase

import (
	"fmt"
	"time"

	"tour-booking/internal/data/entity"
	"tour-booking/pkg/utils"
)

// legalTransitions is the status graph. COMPLETED and CANCELLED have no
// outgoing edges, so once reached they absorb every further request.
var legalTransitions = map[entity.BookingStatus][]entity.BookingStatus{
	entity.BookingStatusPending:   {entity.BookingStatusConfirmed, entity.BookingStatusCancelled},
	entity.BookingStatusConfirmed: {entity.BookingStatusCompleted, entity.BookingStatusCancelled},
}

// LegalTransition reports whether from→to is an edge in the status graph.
func LegalTransition(from, to entity.BookingStatus) bool {
	for _, next := range legalTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidateSlotStart checks that start lands on an exact hour boundary inside
// the bookable day window. The window is inclusive of the start hour: with
// the default 07..17 config, 07:00 and 17:00 are valid starts, 07:30 and
// 18:00 are not.
func ValidateSlotStart(cfg utils.BookingConfig, start time.Time) error {
	if start.Minute() != 0 || start.Second() != 0 || start.Nanosecond() != 0 {
		return utils.ErrBadRequest("booking time must start on an exact hour")
	}

	hour := start.Hour()
	if hour < cfg.DayStartHour || hour > cfg.DayEndHour {
		return utils.ErrBadRequest(fmt.Sprintf(
			"booking time must be between %02d:00 and %02d:00",
			cfg.DayStartHour, cfg.DayEndHour,
		))
	}

	return nil
}

// SlotEnd derives the slot's exclusive upper bound from its start.
func SlotEnd(cfg utils.BookingConfig, start time.Time) time.Time {
	hours := cfg.SlotHours
	if hours < 1 {
		hours = 1
	}
	return start.Add(time.Duration(hours) * time.Hour)
}

// transitionActor captures who is asking for a status change relative to the
// booking in question.
type transitionActor struct {
	Role           entity.UserRole
	IsTouristOwner bool
	IsGuideOwner   bool
}

// authorizeTransition enforces actor rules on top of graph legality:
// tourists may only cancel their own pending booking, guides drive the
// lifecycle of bookings against their listings, admins are bounded only by
// the graph. CONFIRMED→COMPLETED additionally requires the slot to be over.
func authorizeTransition(actor transitionActor, booking *entity.Booking, to entity.BookingStatus, now time.Time) error {
	if !LegalTransition(booking.Status, to) {
		return utils.ErrBadRequest(fmt.Sprintf(
			"cannot change booking status from %s to %s", booking.Status, to,
		))
	}

	if actor.Role.IsAdmin() {
		return checkCompletionTime(booking, to, now)
	}

	switch {
	case actor.IsGuideOwner:
		switch {
		case booking.Status == entity.BookingStatusPending && to == entity.BookingStatusConfirmed:
			return nil
		case booking.Status == entity.BookingStatusPending && to == entity.BookingStatusCancelled:
			return nil
		case booking.Status == entity.BookingStatusConfirmed && to == entity.BookingStatusCompleted:
			return checkCompletionTime(booking, to, now)
		}
		return utils.ErrForbidden("you are not allowed to make this status change")

	case actor.IsTouristOwner:
		if booking.Status == entity.BookingStatusPending && to == entity.BookingStatusCancelled {
			return nil
		}
		return utils.ErrForbidden("you are not allowed to make this status change")
	}

	return utils.ErrForbidden("you are not allowed to update this booking")
}

func checkCompletionTime(booking *entity.Booking, to entity.BookingStatus, now time.Time) error {
	if to == entity.BookingStatusCompleted && now.Before(booking.SlotEnd) {
		return utils.ErrBadRequest("booking cannot be completed before the tour ends")
	}
	return nil
}
