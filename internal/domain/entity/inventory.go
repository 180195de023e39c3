package entity

import "time"

// Valores por defecto al sintetizar un inventario faltante (autocorrección de AdjustStock).
const (
	DefaultMinStock = 5
	DefaultMaxStock = 100
	DefaultLocation = "N/A"
)

// Inventory registro de stock 1:1 por producto. Invariantes:
// CurrentStock ≥ 0 siempre; AvailableStock = CurrentStock − ReservedStock,
// recalculado en cada mutación (nunca se escribe de forma independiente).
type Inventory struct {
	ID             string
	ProductID      string
	UserID         string
	CurrentStock   int
	ReservedStock  int
	AvailableStock int
	MinStock       int
	MaxStock       int
	Location       string
	LastMovement   time.Time
	LastUpdated    time.Time
}

// Recompute recalcula AvailableStock a partir de CurrentStock y ReservedStock.
func (i *Inventory) Recompute() {
	i.AvailableStock = i.CurrentStock - i.ReservedStock
}
