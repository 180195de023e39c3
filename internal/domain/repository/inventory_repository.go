package repository

import "github.com/stockpilot/stockpilot-api/internal/domain/entity"

// InventoryRepository define el puerto para el registro de inventario 1:1 por
// producto. Las mutaciones de stock siempre pasan por GetForUpdate dentro de
// una transacción para cerrar la ventana de carrera lectura-escritura.
type InventoryRepository interface {
	GetByProduct(productID, userID string) (*entity.Inventory, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE). Devuelve
	// nil sin error si el producto no tiene inventario registrado.
	GetForUpdate(productID, userID string) (*entity.Inventory, error)
	Create(inv *entity.Inventory) error
	Update(inv *entity.Inventory) error
	ListByUser(userID string) ([]*entity.Inventory, error)
	DeleteByProduct(productID, userID string) error
}
