package entity

import "time"

// Tipos de ajuste manual de stock.
const (
	MovementTypeAdjustment      = "adjustment"
	MovementTypeQuickAdjustment = "quick_adjustment"
	MovementTypeInitial         = "initial"
)

// StockMovement registro histórico de un ajuste manual de stock.
// Change = NewStock − OldStock (puede ser negativo).
type StockMovement struct {
	ID        string
	UserID    string
	ProductID string
	OldStock  int
	NewStock  int
	Change    int
	Type      string
	Reason    string
	CreatedAt time.Time
}
