package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session backs JWT revocation: the token's jti points at a row here, and
// logout revokes it.
type Session struct {
	ID        uuid.UUID  `db:"id"`
	UserID    uuid.UUID  `db:"user_id"`
	ExpiresAt time.Time  `db:"expires_at"`
	RevokedAt *time.Time `db:"revoked_at"`
	CreatedAt time.Time  `db:"created_at"`
}
