package enum

// ItemType discriminates what an invoice line bills
type ItemType string

const (
	ItemTypeService ItemType = "service"
	ItemTypeProduct ItemType = "product"
)

// Valid reports whether t is a known item type
func (t ItemType) Valid() bool {
	return t == ItemTypeService || t == ItemTypeProduct
}
