package request

type CreateListingRequest struct {
	Title        string   `json:"title" validate:"required,min=3,max=200"`
	Description  string   `json:"description" validate:"required,min=10"`
	Location     string   `json:"location" validate:"required,min=2,max=200"`
	Latitude     *float64 `json:"latitude,omitempty" validate:"omitempty,gte=-90,lte=90"`
	Longitude    *float64 `json:"longitude,omitempty" validate:"omitempty,gte=-180,lte=180"`
	Price        float64  `json:"price" validate:"required,gt=0"`
	Duration     *string  `json:"duration,omitempty" validate:"omitempty,max=100"`
	MaxGroupSize int      `json:"max_group_size" validate:"required,gt=0"`
	Category     string   `json:"category" validate:"required"`
	Languages    []string `json:"languages" validate:"required,min=1"`
	MeetingPoint *string  `json:"meeting_point,omitempty" validate:"omitempty,max=500"`
	Images       []string `json:"images,omitempty" validate:"omitempty,dive,url"`
}

type UpdateListingRequest struct {
	Title        *string  `json:"title,omitempty" validate:"omitempty,min=3,max=200"`
	Description  *string  `json:"description,omitempty" validate:"omitempty,min=10"`
	Location     *string  `json:"location,omitempty" validate:"omitempty,min=2,max=200"`
	Latitude     *float64 `json:"latitude,omitempty" validate:"omitempty,gte=-90,lte=90"`
	Longitude    *float64 `json:"longitude,omitempty" validate:"omitempty,gte=-180,lte=180"`
	Price        *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
	Duration     *string  `json:"duration,omitempty" validate:"omitempty,max=100"`
	MaxGroupSize *int     `json:"max_group_size,omitempty" validate:"omitempty,gt=0"`
	Category     *string  `json:"category,omitempty"`
	Languages    []string `json:"languages,omitempty"`
	MeetingPoint *string  `json:"meeting_point,omitempty" validate:"omitempty,max=500"`
	Images       []string `json:"images,omitempty" validate:"omitempty,dive,url"`
}

type ListListingsRequest struct {
	PaginatedRequest
	SearchTerm string   `json:"search_term,omitempty"`
	Category   string   `json:"category,omitempty"`
	Language   string   `json:"language,omitempty"`
	Location   string   `json:"location,omitempty"`
	MinPrice   *float64 `json:"min_price,omitempty" validate:"omitempty,gte=0"`
	MaxPrice   *float64 `json:"max_price,omitempty" validate:"omitempty,gte=0"`
	SortBy     string   `json:"sort_by,omitempty" validate:"omitempty,oneof=price created_at title"`
	SortOrder  string   `json:"sort_order,omitempty" validate:"omitempty,oneof=asc desc"`
}
