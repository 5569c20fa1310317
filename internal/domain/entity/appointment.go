package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/salonhq/salon-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Appointment represents a scheduled client visit. It is created pending and
// moves to collected when billing finalizes against it, or to canceled by the
// cancellation flow. Both are terminal.
//
// Date and Time are kept as separate "2006-01-02" / "15:04" columns so
// day-window queries compare them directly.
type Appointment struct {
	ID        uuid.UUID             `gorm:"type:uuid;primary_key" json:"id"`
	ClientID  uuid.UUID             `gorm:"type:uuid;not null;index" json:"client_id"`
	ServiceID uuid.UUID             `gorm:"type:uuid;not null;index" json:"service_id"`
	UserID    *uuid.UUID            `gorm:"type:uuid;index" json:"user_id,omitempty"`
	Date      string                `gorm:"size:10;not null;index" json:"date"`
	Time      string                `gorm:"size:5;not null" json:"time"`
	Notes     *string               `gorm:"type:text" json:"notes,omitempty"`
	State     enum.AppointmentState `gorm:"size:20;not null;default:'pending';index" json:"state"`
	InvoiceID *uuid.UUID            `gorm:"type:uuid;index" json:"invoice_id,omitempty"`
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt time.Time             `json:"updated_at"`

	// Relationships
	Client  Client   `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Service Service  `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
	User    *User    `gorm:"foreignKey:UserID" json:"-"`
	Invoice *Invoice `gorm:"foreignKey:InvoiceID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new appointment
func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Appointment model
func (Appointment) TableName() string {
	return "appointments"
}
