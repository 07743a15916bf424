package entity

import (
	"github.com/google/uuid"
)

type Listing struct {
	Base
	GuideID      uuid.UUID `db:"guide_id"`
	Title        string    `db:"title"`
	Description  string    `db:"description"`
	Location     string    `db:"location"`
	Latitude     *float64  `db:"latitude"`
	Longitude    *float64  `db:"longitude"`
	Price        float64   `db:"price"`
	Duration     *string   `db:"duration"`
	MaxGroupSize int       `db:"max_group_size"`
	Category     string    `db:"category"`
	Languages    []string  `db:"languages"`
	MeetingPoint *string   `db:"meeting_point"`
	Images       []string  `db:"images"`
}
