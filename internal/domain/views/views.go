// Package views calcula los agregados de solo lectura del dashboard como
// funciones puras sobre snapshots de productos e inventarios. No tiene estado
// propio ni acceso a persistencia; se recalcula en cada consulta.
package views

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/stockpilot/stockpilot-api/internal/domain/entity"
)

// ProductWithInventory join de un producto con su registro de inventario.
// Si el producto no tiene inventario se usa un placeholder en cero.
type ProductWithInventory struct {
	Product   entity.Product
	Inventory entity.Inventory
}

// DashboardStats resumen para el dashboard. Los conjuntos low/out son
// disjuntos por construcción de los predicados.
type DashboardStats struct {
	TotalProducts       int
	LowStockCount       int
	OutOfStockCount     int
	TotalInventoryValue decimal.Decimal
}

// IsLowStock: hay stock pero en o por debajo del mínimo (0 < current ≤ min).
func IsLowStock(inv entity.Inventory) bool {
	return inv.CurrentStock > 0 && inv.CurrentStock <= inv.MinStock
}

// IsOutOfStock: stock agotado (current == 0).
func IsOutOfStock(inv entity.Inventory) bool {
	return inv.CurrentStock == 0
}

// Join hace left-join de productos con sus inventarios y ordena por fecha de
// creación descendente (más recientes primero). Un producto sin inventario
// recibe un placeholder con stock cero y ubicación 'N/A'.
func Join(products []*entity.Product, inventories []*entity.Inventory) []ProductWithInventory {
	byProduct := make(map[string]*entity.Inventory, len(inventories))
	for _, inv := range inventories {
		byProduct[inv.ProductID] = inv
	}

	items := make([]ProductWithInventory, 0, len(products))
	for _, p := range products {
		inv := byProduct[p.ID]
		if inv == nil {
			inv = &entity.Inventory{ProductID: p.ID, UserID: p.UserID, Location: entity.DefaultLocation}
		}
		items = append(items, ProductWithInventory{Product: *p, Inventory: *inv})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Product.CreatedAt.After(items[j].Product.CreatedAt)
	})
	return items
}

// Stats calcula el resumen del dashboard sobre el join.
// TotalInventoryValue = Σ currentStock × precio de venta.
func Stats(items []ProductWithInventory) DashboardStats {
	stats := DashboardStats{
		TotalProducts:       len(items),
		TotalInventoryValue: decimal.Zero,
	}
	for _, it := range items {
		switch {
		case IsOutOfStock(it.Inventory):
			stats.OutOfStockCount++
		case IsLowStock(it.Inventory):
			stats.LowStockCount++
		}
		lineValue := it.Product.Price.Mul(decimal.NewFromInt(int64(it.Inventory.CurrentStock)))
		stats.TotalInventoryValue = stats.TotalInventoryValue.Add(lineValue)
	}
	return stats
}

// LowStock filtra los productos con stock bajo (mismo predicado que Stats).
func LowStock(items []ProductWithInventory) []ProductWithInventory {
	out := make([]ProductWithInventory, 0)
	for _, it := range items {
		if IsLowStock(it.Inventory) {
			out = append(out, it)
		}
	}
	return out
}

// OutOfStock filtra los productos agotados.
func OutOfStock(items []ProductWithInventory) []ProductWithInventory {
	out := make([]ProductWithInventory, 0)
	for _, it := range items {
		if IsOutOfStock(it.Inventory) {
			out = append(out, it)
		}
	}
	return out
}
