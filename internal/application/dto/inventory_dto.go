package dto

import "time"

// AdjustStockRequest ajuste manual de stock: CurrentStock es el valor absoluto
// final, no un delta. Type y Reason quedan en el historial de movimientos.
type AdjustStockRequest struct {
	CurrentStock int    `json:"current_stock"`
	Type         string `json:"type"`   // adjustment | quick_adjustment
	Reason       string `json:"reason"`
}

// StockMovementResponse entrada del historial de ajustes.
type StockMovementResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	OldStock  int       `json:"old_stock"`
	NewStock  int       `json:"new_stock"`
	Change    int       `json:"change"`
	Type      string    `json:"type"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}

// StockMovementListResponse historial de movimientos.
type StockMovementListResponse struct {
	Items []StockMovementResponse `json:"items"`
}
