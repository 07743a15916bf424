package response

import (
	"time"

	"tour-booking/internal/data/entity"
)

type BadgeResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Icon        *string   `json:"icon,omitempty"`
	Criteria    *string   `json:"criteria,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func BadgeToResponse(badge *entity.Badge) BadgeResponse {
	return BadgeResponse{
		ID:          badge.ID.String(),
		Name:        badge.Name,
		Description: badge.Description,
		Icon:        badge.Icon,
		Criteria:    badge.Criteria,
		CreatedAt:   badge.CreatedAt,
	}
}

func BadgesToResponse(badges []*entity.Badge) []BadgeResponse {
	out := make([]BadgeResponse, 0, len(badges))
	for _, badge := range badges {
		out = append(out, BadgeToResponse(badge))
	}
	return out
}
