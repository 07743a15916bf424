package request

type UpdateProfileRequest struct {
	Name            *string  `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	ContactNo       *string  `json:"contact_no,omitempty" validate:"omitempty,min=6,max=20"`
	Photo           *string  `json:"photo,omitempty" validate:"omitempty,url"`
	Bio             *string  `json:"bio,omitempty" validate:"omitempty,max=2000"`
	Address         *string  `json:"address,omitempty" validate:"omitempty,max=500"`
	LanguagesSpoken []string `json:"languages_spoken,omitempty"`
	Expertise       []string `json:"expertise,omitempty"`
	DailyRate       *float64 `json:"daily_rate,omitempty" validate:"omitempty,gt=0"`
}

type UpdateUserStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=ACTIVE BLOCKED"`
}

type UpdateUserRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=TOURIST GUIDE ADMIN"`
}

type ListUsersRequest struct {
	PaginatedRequest
	SearchTerm string `json:"search_term,omitempty"`
	Role       string `json:"role,omitempty" validate:"omitempty,oneof=TOURIST GUIDE ADMIN SUPER_ADMIN"`
	Status     string `json:"status,omitempty" validate:"omitempty,oneof=ACTIVE BLOCKED"`
}
