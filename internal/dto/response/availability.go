package response

import (
	"time"

	"tour-booking/internal/data/entity"
)

type AvailabilityResponse struct {
	ID          string    `json:"id"`
	GuideID     string    `json:"guide_id"`
	Date        string    `json:"date"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	IsAvailable bool      `json:"is_available"`
	CreatedAt   time.Time `json:"created_at"`
}

func AvailabilityToResponse(slot *entity.Availability) AvailabilityResponse {
	return AvailabilityResponse{
		ID:          slot.ID.String(),
		GuideID:     slot.GuideID.String(),
		Date:        slot.Date.Format("2006-01-02"),
		StartTime:   slot.StartTime,
		EndTime:     slot.EndTime,
		IsAvailable: slot.IsAvailable,
		CreatedAt:   slot.CreatedAt,
	}
}

func AvailabilitiesToResponse(slots []*entity.Availability) []AvailabilityResponse {
	out := make([]AvailabilityResponse, 0, len(slots))
	for _, slot := range slots {
		out = append(out, AvailabilityToResponse(slot))
	}
	return out
}
