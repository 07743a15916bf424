package response

// TouristDashboard summarises a tourist's activity.
type TouristDashboard struct {
	TotalBookings    int64   `json:"total_bookings"`
	UpcomingBookings int64   `json:"upcoming_bookings"`
	CompletedTours   int64   `json:"completed_tours"`
	TotalSpent       float64 `json:"total_spent"`
}

// GuideDashboard summarises a guide's listings and bookings.
type GuideDashboard struct {
	TotalListings   int64   `json:"total_listings"`
	TotalBookings   int64   `json:"total_bookings"`
	PendingBookings int64   `json:"pending_bookings"`
	AverageRating   float64 `json:"average_rating"`
	TotalReviews    int     `json:"total_reviews"`
}

// AdminDashboard summarises platform-wide activity.
type AdminDashboard struct {
	TotalUsers    int64   `json:"total_users"`
	TotalGuides   int64   `json:"total_guides"`
	TotalTourists int64   `json:"total_tourists"`
	TotalListings int64   `json:"total_listings"`
	TotalBookings int64   `json:"total_bookings"`
	TotalRevenue  float64 `json:"total_revenue"`
}

// MetaResponse wraps exactly one dashboard depending on the caller's role.
type MetaResponse struct {
	Role    string            `json:"role"`
	Tourist *TouristDashboard `json:"tourist,omitempty"`
	Guide   *GuideDashboard   `json:"guide,omitempty"`
	Admin   *AdminDashboard   `json:"admin,omitempty"`
}

// CatalogResponse lists the configured listing categories and languages.
type CatalogResponse struct {
	Categories []string `json:"categories"`
	Languages  []string `json:"languages"`
}
