package cancel_reservation

// CancelReservationRequest HTTP request model
type CancelReservationRequest struct {
	Reason *string `json:"reason,omitempty"`
}
