package entity

import "time"

// Estados de proveedor.
const (
	SupplierStatusActive   = "active"
	SupplierStatusInactive = "inactive"
	SupplierStatusPending  = "pending"
)

// Supplier proveedor de mercancía. Los productos lo referencian por Name
// (denormalización heredada del diseño original; ver DESIGN.md).
type Supplier struct {
	ID           string
	UserID       string
	Name         string
	ContactName  string
	Email        string
	Phone        string
	Address      string
	PaymentTerms int    // días
	Status       string // active | inactive | pending
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
