package request

type CreateBadgeRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=1000"`
	Icon        *string `json:"icon,omitempty" validate:"omitempty,url"`
	Criteria    *string `json:"criteria,omitempty" validate:"omitempty,max=1000"`
}

type UpdateBadgeRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=1000"`
	Icon        *string `json:"icon,omitempty" validate:"omitempty,url"`
	Criteria    *string `json:"criteria,omitempty" validate:"omitempty,max=1000"`
}

type AssignBadgeRequest struct {
	UserID string `json:"user_id" validate:"required,uuid4"`
}
