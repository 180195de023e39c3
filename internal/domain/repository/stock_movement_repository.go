package repository

import "github.com/stockpilot/stockpilot-api/internal/domain/entity"

// StockMovementRepository define el puerto para el historial de ajustes
// manuales de stock (append-only).
type StockMovementRepository interface {
	Create(mov *entity.StockMovement) error
	ListByProduct(productID, userID string, limit int) ([]*entity.StockMovement, error)
	ListByUser(userID string, limit int) ([]*entity.StockMovement, error)
}
