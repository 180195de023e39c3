// Package ledger contiene la aritmética pura de stock: la tabla de efectos de
// transición de estado de pedidos y la aplicación de deltas sobre Inventory.
// No toca persistencia; los casos de uso la ejecutan dentro de una transacción.
package ledger

import (
	"time"

	"github.com/stockpilot/stockpilot-api/internal/domain"
	"github.com/stockpilot/stockpilot-api/internal/domain/entity"
)

// DirectionSign devuelve el signo del efecto de un pedido sobre el stock:
// outbound resta (−1), inbound suma (+1).
func DirectionSign(orderType string) int {
	if orderType == entity.OrderTypeOutbound {
		return -1
	}
	return 1
}

// TransitionDelta evalúa la tabla de efectos por línea de pedido:
//
//	prev ≠ completed → completed : aplicar  (signo × cantidad)
//	completed → prev ≠ completed : revertir (−signo × cantidad)
//	cualquier otra transición    : sin efecto (0)
//
// Un pedido recién creado se evalúa con prevStatus vacío (nunca completed).
func TransitionDelta(prevStatus, newStatus, orderType string, quantity int) int {
	wasApplied := prevStatus == entity.OrderStatusCompleted
	willApply := newStatus == entity.OrderStatusCompleted
	switch {
	case !wasApplied && willApply:
		return DirectionSign(orderType) * quantity
	case wasApplied && !willApply:
		return -DirectionSign(orderType) * quantity
	default:
		return 0
	}
}

// Apply suma delta a CurrentStock validando que nunca quede negativo y
// recalcula AvailableStock. Devuelve ErrInsufficientStock sin mutar nada si
// el delta dejaría el stock por debajo de cero.
func Apply(inv *entity.Inventory, delta int, now time.Time) error {
	next := inv.CurrentStock + delta
	if next < 0 {
		return domain.ErrInsufficientStock
	}
	inv.CurrentStock = next
	inv.Recompute()
	inv.LastMovement = now
	inv.LastUpdated = now
	return nil
}

// AdjustAbsolute fija CurrentStock al valor absoluto indicado (no es un delta),
// recalcula AvailableStock y devuelve el cambio neto aplicado.
func AdjustAbsolute(inv *entity.Inventory, newStock int, now time.Time) (change int, err error) {
	if newStock < 0 {
		return 0, domain.ErrInvalidInput
	}
	change = newStock - inv.CurrentStock
	inv.CurrentStock = newStock
	inv.Recompute()
	inv.LastMovement = now
	inv.LastUpdated = now
	return change, nil
}

// NewDefaultInventory sintetiza un registro de inventario con valores seguros.
// Lo usa la autocorrección de AdjustStock cuando el producto no tiene inventario.
func NewDefaultInventory(productID, userID string, currentStock int, now time.Time) *entity.Inventory {
	inv := &entity.Inventory{
		ProductID:     productID,
		UserID:        userID,
		CurrentStock:  currentStock,
		ReservedStock: 0,
		MinStock:      entity.DefaultMinStock,
		MaxStock:      entity.DefaultMaxStock,
		Location:      entity.DefaultLocation,
		LastMovement:  now,
		LastUpdated:   now,
	}
	inv.Recompute()
	return inv
}
