package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/salonhq/salon-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Invoice is the immutable record of a finalized sale. It is written once,
// together with its lines, and never updated or deleted; corrections are
// issued as new invoices.
type Invoice struct {
	ID            uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	ClientID      uuid.UUID         `gorm:"type:uuid;not null;index" json:"client_id"`
	State         enum.InvoiceState `gorm:"size:20;not null" json:"state"`
	PaymentMethod string            `gorm:"size:50;not null" json:"payment_method"`
	CreatedAt     time.Time         `gorm:"index" json:"created_at"`

	// Relationships
	Client Client        `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Lines  []InvoiceLine `gorm:"foreignKey:InvoiceID" json:"lines,omitempty"`
}

// BeforeCreate generates a UUID before creating a new invoice
func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoices"
}

// Total returns the sum of line subtotals in cents
func (i *Invoice) Total() int64 {
	var total int64
	for _, line := range i.Lines {
		total += line.Subtotal
	}
	return total
}

// MarshalJSON custom marshaler to expose the total as a decimal
func (i Invoice) MarshalJSON() ([]byte, error) {
	type Alias Invoice
	return json.Marshal(&struct {
		Alias
		Total float64 `json:"total"`
	}{
		Alias: Alias(i),
		Total: float64(i.Total()) / 100,
	})
}

// InvoiceLine is one billed item within an invoice. Subtotal is fixed at
// creation (quantity times unit price) and never recomputed.
type InvoiceLine struct {
	ID        uuid.UUID     `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceID uuid.UUID     `gorm:"type:uuid;not null;index" json:"invoice_id"`
	ItemType  enum.ItemType `gorm:"size:20;not null" json:"item_type"`
	ItemID    uuid.UUID     `gorm:"type:uuid;not null;index" json:"item_id"`
	Quantity  int           `gorm:"not null" json:"quantity"`
	UnitPrice int64         `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	Subtotal  int64         `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	CreatedAt time.Time     `json:"created_at"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (l InvoiceLine) MarshalJSON() ([]byte, error) {
	type Alias InvoiceLine
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unit_price"`
		Subtotal  float64 `json:"subtotal"`
	}{
		Alias:     Alias(l),
		UnitPrice: float64(l.UnitPrice) / 100,
		Subtotal:  float64(l.Subtotal) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new invoice line
func (l *InvoiceLine) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the InvoiceLine model
func (InvoiceLine) TableName() string {
	return "invoice_lines"
}
