package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest datos para crear un producto con su inventario inicial.
// SKU vacío → se autogenera de nombre+categoría. MaxStock 0 → MinStock × 5.
type CreateProductRequest struct {
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	Price        decimal.Decimal `json:"price"`
	Cost         decimal.Decimal `json:"cost"`
	Supplier     string          `json:"supplier"`
	MinStock     int             `json:"min_stock"`
	MaxStock     int             `json:"max_stock"`
	InitialStock int             `json:"initial_stock"`
	Location     string          `json:"location"`
}

// UpdateProductRequest campos editables de un producto. Los campos de
// inventario editables desde aquí son MinStock, MaxStock y Location; el stock
// actual solo se mueve por ajustes o pedidos.
type UpdateProductRequest struct {
	Name     *string          `json:"name"`
	Category *string          `json:"category"`
	Price    *decimal.Decimal `json:"price"`
	Cost     *decimal.Decimal `json:"cost"`
	Supplier *string          `json:"supplier"`
	MinStock *int             `json:"min_stock"`
	MaxStock *int             `json:"max_stock"`
	Location *string          `json:"location"`
}

// ProductResponse representación de salida de un producto.
type ProductResponse struct {
	ID        string          `json:"id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Price     decimal.Decimal `json:"price"`
	Cost      decimal.Decimal `json:"cost"`
	Supplier  string          `json:"supplier"`
	MinStock  int             `json:"min_stock"`
	MaxStock  int             `json:"max_stock"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// InventoryResponse estado de inventario de un producto.
type InventoryResponse struct {
	ProductID      string    `json:"product_id"`
	CurrentStock   int       `json:"current_stock"`
	ReservedStock  int       `json:"reserved_stock"`
	AvailableStock int       `json:"available_stock"`
	MinStock       int       `json:"min_stock"`
	MaxStock       int       `json:"max_stock"`
	Location       string    `json:"location"`
	LastMovement   time.Time `json:"last_movement"`
	LastUpdated    time.Time `json:"last_updated"`
}

// ProductWithInventoryResponse producto con su inventario (join del dashboard).
type ProductWithInventoryResponse struct {
	ProductResponse
	Inventory InventoryResponse `json:"inventory"`
}

// ProductListResponse listado de productos con inventario.
type ProductListResponse struct {
	Items []ProductWithInventoryResponse `json:"items"`
	Total int                            `json:"total"`
}
