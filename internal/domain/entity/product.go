package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo de un usuario.
// El stock no vive aquí: cada producto tiene exactamente un registro Inventory (1:1).
// Supplier es una referencia por nombre, no una foreign key; renombrar un
// proveedor no se propaga a los productos (limitación documentada en DESIGN.md).
type Product struct {
	ID        string
	UserID    string
	SKU       string // único por usuario; se autogenera de nombre+categoría si falta
	Name      string
	Category  string
	Price     decimal.Decimal // precio de venta
	Cost      decimal.Decimal // costo unitario
	Supplier  string          // nombre del proveedor (sin FK)
	MinStock  int
	MaxStock  int // por defecto MinStock × 5 si no se indica
	CreatedAt time.Time
	UpdatedAt time.Time
}
