package request

type CreateAvailabilityRequest struct {
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime   string `json:"start_time" validate:"required"`
	EndTime     string `json:"end_time" validate:"required"`
	IsAvailable *bool  `json:"is_available,omitempty"`
}

type UpdateAvailabilityRequest struct {
	Date        *string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	StartTime   *string `json:"start_time,omitempty"`
	EndTime     *string `json:"end_time,omitempty"`
	IsAvailable *bool   `json:"is_available,omitempty"`
}

type ListAvailabilityRequest struct {
	PaginatedRequest
	GuideID     string `json:"guide_id,omitempty" validate:"omitempty,uuid4"`
	Date        string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	IsAvailable *bool  `json:"is_available,omitempty"`
}
