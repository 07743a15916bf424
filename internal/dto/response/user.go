package response

import (
	"time"

	"tour-booking/internal/data/entity"
)

type UserResponse struct {
	ID              string            `json:"id"`
	Email           string            `json:"email"`
	Name            string            `json:"name"`
	Role            entity.UserRole   `json:"role"`
	Status          entity.UserStatus `json:"status"`
	ContactNo       *string           `json:"contact_no,omitempty"`
	Photo           *string           `json:"photo,omitempty"`
	Bio             *string           `json:"bio,omitempty"`
	Address         *string           `json:"address,omitempty"`
	LanguagesSpoken []string          `json:"languages_spoken,omitempty"`
	Expertise       []string          `json:"expertise,omitempty"`
	DailyRate       *float64          `json:"daily_rate,omitempty"`
	IsVerified      bool              `json:"is_verified"`
	CreatedAt       time.Time         `json:"created_at"`
}

// Helper converters
func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:              user.ID.String(),
		Email:           user.Email,
		Name:            user.Name,
		Role:            user.Role,
		Status:          user.Status,
		ContactNo:       user.ContactNo,
		Photo:           user.Photo,
		Bio:             user.Bio,
		Address:         user.Address,
		LanguagesSpoken: user.LanguagesSpoken,
		Expertise:       user.Expertise,
		DailyRate:       user.DailyRate,
		IsVerified:      user.IsVerified,
		CreatedAt:       user.CreatedAt,
	}
}

func UsersToResponse(users []*entity.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, user := range users {
		out = append(out, UserToResponse(user))
	}
	return out
}
