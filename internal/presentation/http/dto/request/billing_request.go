package request

import "github.com/google/uuid"

// FinalizeLineRequest is one line of a finalize request. Monetary values are
// decimal currency units.
type FinalizeLineRequest struct {
	ItemType      string     `json:"item_type" binding:"required"`
	ItemID        uuid.UUID  `json:"item_id" binding:"required"`
	Quantity      int        `json:"quantity" binding:"required"`
	UnitPrice     float64    `json:"unit_price"`
	Subtotal      float64    `json:"subtotal"`
	AppointmentID *uuid.UUID `json:"appointment_id"`
}

// FinalizeRequest represents a billing finalization request
type FinalizeRequest struct {
	ClientID      uuid.UUID             `json:"client_id" binding:"required"`
	PaymentMethod string                `json:"payment_method" binding:"required"`
	Lines         []FinalizeLineRequest `json:"lines" binding:"required"`
}
