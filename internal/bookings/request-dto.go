package bookings

// ConfirmBookingForm is the multipart form a shopper submits at payment.
// The receipt file arrives under the "receipt" field.
type ConfirmBookingForm struct {
	Name      string `form:"name" binding:"required,min=2,max=120"`
	Email     string `form:"email" binding:"required,email"`
	ContactNo string `form:"contact_no" binding:"required,min=7,max=20"`
	StudentID string `form:"student_id" binding:"omitempty,max=40"`
}

// RedeemRequest toggles a booking's redeemed flag
type RedeemRequest struct {
	Redeemed *bool `json:"redeemed" binding:"required"`
}
