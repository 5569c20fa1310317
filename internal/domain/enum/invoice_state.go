package enum

// InvoiceState represents the state of an invoice. Invoices are written
// directly as collected; there is no pending-invoice path.
type InvoiceState string

const (
	InvoiceCollected InvoiceState = "collected"
)
