package entity

type UserRole string

const (
	RoleTourist    UserRole = "TOURIST"
	RoleGuide      UserRole = "GUIDE"
	RoleAdmin      UserRole = "ADMIN"
	RoleSuperAdmin UserRole = "SUPER_ADMIN"
)

func (r UserRole) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

type UserStatus string

const (
	UserStatusActive  UserStatus = "ACTIVE"
	UserStatusBlocked UserStatus = "BLOCKED"
)

type User struct {
	Base
	Email           string     `db:"email"`
	Password        string     `db:"password"`
	Name            string     `db:"name"`
	Role            UserRole   `db:"role"`
	Status          UserStatus `db:"status"`
	ContactNo       *string    `db:"contact_no"`
	Photo           *string    `db:"photo"`
	Bio             *string    `db:"bio"`
	Address         *string    `db:"address"`
	LanguagesSpoken []string   `db:"languages_spoken"`
	Expertise       []string   `db:"expertise"`
	DailyRate       *float64   `db:"daily_rate"`
	IsVerified      bool       `db:"is_verified"`
}
