package repository

import "github.com/stockpilot/stockpilot-api/internal/domain/entity"

// OrderRepository define el puerto de persistencia para Order y sus líneas.
// Create/Update escriben el pedido y la lista completa de líneas (las líneas
// se reemplazan en bloque, nunca se editan parcialmente).
type OrderRepository interface {
	Create(order *entity.Order) error
	GetByID(id string) (*entity.Order, error)
	// GetForUpdate bloquea la fila del pedido mientras se evalúa la transición
	// de estado. Devuelve nil sin error si no existe.
	GetForUpdate(id string) (*entity.Order, error)
	Update(order *entity.Order) error
	ListByUser(userID string) ([]*entity.Order, error)
	Delete(id string) error
}
