package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemRequest línea de pedido de entrada.
type OrderItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreateOrderRequest datos para crear un pedido. Status vacío → pending.
// Si se crea directamente como completed, el efecto en stock se aplica en la
// misma transacción que el pedido.
type CreateOrderRequest struct {
	Type             string             `json:"type"` // inbound | outbound
	Status           string             `json:"status"`
	Items            []OrderItemRequest `json:"items"`
	CustomerName     string             `json:"customer_name"`
	CustomerEmail    string             `json:"customer_email"`
	CustomerPhone    string             `json:"customer_phone"`
	Notes            string             `json:"notes"`
	ExpectedDelivery *time.Time         `json:"expected_delivery"`
}

// UpdateOrderRequest campos editables de un pedido. Items, si viene, reemplaza
// la lista completa de líneas. El tipo (inbound/outbound) es inmutable.
type UpdateOrderRequest struct {
	Status           *string             `json:"status"`
	Items            *[]OrderItemRequest `json:"items"`
	CustomerName     *string             `json:"customer_name"`
	CustomerEmail    *string             `json:"customer_email"`
	CustomerPhone    *string             `json:"customer_phone"`
	Notes            *string             `json:"notes"`
	ExpectedDelivery *time.Time          `json:"expected_delivery"`
}

// OrderItemResponse línea de pedido de salida.
type OrderItemResponse struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// OrderResponse representación de salida de un pedido.
type OrderResponse struct {
	ID               string              `json:"id"`
	Type             string              `json:"type"`
	Status           string              `json:"status"`
	Items            []OrderItemResponse `json:"items"`
	TotalAmount      decimal.Decimal     `json:"total_amount"`
	CustomerName     string              `json:"customer_name"`
	CustomerEmail    string              `json:"customer_email"`
	CustomerPhone    string              `json:"customer_phone"`
	Notes            string              `json:"notes"`
	ExpectedDelivery *time.Time          `json:"expected_delivery"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
}

// OrderCounts conteos por estado para las tarjetas del listado.
type OrderCounts struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Completed int `json:"completed"`
	Cancelled int `json:"cancelled"`
}

// OrderListResponse listado de pedidos con conteos por estado.
type OrderListResponse struct {
	Items  []OrderResponse `json:"items"`
	Counts OrderCounts     `json:"counts"`
}
