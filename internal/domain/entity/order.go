package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de pedido (dirección del stock).
const (
	OrderTypeInbound  = "inbound"  // entrada: el stock llega
	OrderTypeOutbound = "outbound" // salida: el stock sale
)

// Estados del pedido. La máquina es permisiva: cualquier transición es válida;
// la única regla dura es que el efecto en stock esté aplicado si y solo si el
// estado actual es completed (ver domain/ledger).
const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// OrderItem línea de pedido. Las líneas son inmutables tras la creación;
// una edición reemplaza la lista completa.
type OrderItem struct {
	ProductID string
	Quantity  int // siempre > 0
	UnitPrice decimal.Decimal
}

// Order pedido de entrada o salida de mercancía.
// TotalAmount se calcula al crear (Σ cantidad×precio) y no se re-deriva en lecturas.
type Order struct {
	ID               string
	UserID           string
	Type             string // inbound | outbound
	Status           string // pending | completed | cancelled
	Items            []OrderItem
	TotalAmount      decimal.Decimal
	CustomerName     string
	CustomerEmail    string
	CustomerPhone    string
	Notes            string
	ExpectedDelivery *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ValidOrderType indica si el tipo de pedido es conocido.
func ValidOrderType(t string) bool {
	return t == OrderTypeInbound || t == OrderTypeOutbound
}

// ValidOrderStatus indica si el estado es conocido.
func ValidOrderStatus(s string) bool {
	return s == OrderStatusPending || s == OrderStatusCompleted || s == OrderStatusCancelled
}
