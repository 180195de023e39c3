package dto

import "time"

// CreateSupplierRequest datos para crear un proveedor.
type CreateSupplierRequest struct {
	Name         string `json:"name"`
	ContactName  string `json:"contact_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	PaymentTerms int    `json:"payment_terms"`
	Status       string `json:"status"` // active | inactive | pending
}

// UpdateSupplierRequest campos editables de un proveedor. Renombrar un
// proveedor no se propaga a los productos que lo referencian por nombre.
type UpdateSupplierRequest struct {
	Name         *string `json:"name"`
	ContactName  *string `json:"contact_name"`
	Email        *string `json:"email"`
	Phone        *string `json:"phone"`
	Address      *string `json:"address"`
	PaymentTerms *int    `json:"payment_terms"`
	Status       *string `json:"status"`
}

// SupplierResponse representación de salida de un proveedor.
type SupplierResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	ContactName  string    `json:"contact_name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Address      string    `json:"address"`
	PaymentTerms int       `json:"payment_terms"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SupplierListResponse listado de proveedores.
type SupplierListResponse struct {
	Items []SupplierResponse `json:"items"`
}
