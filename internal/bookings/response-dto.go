package bookings

// BookingListResponse wraps a paginated admin listing
type BookingListResponse struct {
	Bookings   []Booking `json:"bookings"`
	TotalCount int64     `json:"total_count"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
}

// ReceiptURLResponse carries a short-lived receipt download link
type ReceiptURLResponse struct {
	URL string `json:"url"`
}
