package entity

import (
	"time"

	"github.com/google/uuid"
)

type Badge struct {
	Base
	Name        string  `db:"name"`
	Description *string `db:"description"`
	Icon        *string `db:"icon"`
	Criteria    *string `db:"criteria"`
}

type UserBadge struct {
	UserID    uuid.UUID `db:"user_id"`
	BadgeID   uuid.UUID `db:"badge_id"`
	AwardedAt time.Time `db:"awarded_at"`
}
