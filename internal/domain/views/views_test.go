package views_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockpilot/stockpilot-api/internal/domain/entity"
	"github.com/stockpilot/stockpilot-api/internal/domain/views"
)

func producto(id string, price int64, createdAt time.Time) *entity.Product {
	return &entity.Product{
		ID:        id,
		UserID:    "user-1",
		Name:      "Producto " + id,
		Price:     decimal.NewFromInt(price),
		CreatedAt: createdAt,
	}
}

func inventario(productID string, current, min int) *entity.Inventory {
	inv := &entity.Inventory{ProductID: productID, UserID: "user-1", CurrentStock: current, MinStock: min}
	inv.Recompute()
	return inv
}

func TestJoin_PlaceholderYOrden(t *testing.T) {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	products := []*entity.Product{
		producto("viejo", 10, base),
		producto("nuevo", 10, base.Add(48*time.Hour)),
		producto("sin-inventario", 10, base.Add(24*time.Hour)),
	}
	inventories := []*entity.Inventory{
		inventario("viejo", 7, 2),
		inventario("nuevo", 0, 2),
	}

	items := views.Join(products, inventories)

	require.Len(t, items, 3)
	// Orden por creación descendente
	assert.Equal(t, "nuevo", items[0].Product.ID)
	assert.Equal(t, "sin-inventario", items[1].Product.ID)
	assert.Equal(t, "viejo", items[2].Product.ID)

	// El producto sin inventario recibe un placeholder en cero
	ph := items[1].Inventory
	assert.Zero(t, ph.CurrentStock)
	assert.Zero(t, ph.AvailableStock)
	assert.Equal(t, entity.DefaultLocation, ph.Location)
}

func TestStats_PredicadosDisjuntos(t *testing.T) {
	now := time.Now()
	products := []*entity.Product{
		producto("agotado", 100, now),
		producto("bajo", 50, now),
		producto("sano", 20, now),
	}
	inventories := []*entity.Inventory{
		inventario("agotado", 0, 5),
		inventario("bajo", 3, 5), // 0 < 3 ≤ 5
		inventario("sano", 40, 5),
	}

	items := views.Join(products, inventories)
	stats := views.Stats(items)

	assert.Equal(t, 3, stats.TotalProducts)
	assert.Equal(t, 1, stats.LowStockCount)
	assert.Equal(t, 1, stats.OutOfStockCount)
	// 0×100 + 3×50 + 40×20 = 950
	assert.True(t, stats.TotalInventoryValue.Equal(decimal.NewFromInt(950)),
		"valor total esperado 950, obtenido %s", stats.TotalInventoryValue)

	// low y out son disjuntos: un producto agotado nunca cuenta como stock bajo
	low := views.LowStock(items)
	out := views.OutOfStock(items)
	require.Len(t, low, 1)
	require.Len(t, out, 1)
	assert.NotEqual(t, low[0].Product.ID, out[0].Product.ID)
}

// Borde: stock exactamente en el mínimo cuenta como bajo; en cero cuenta como
// agotado aunque el mínimo también sea cero.
func TestPredicados_Bordes(t *testing.T) {
	enMinimo := inventario("a", 5, 5)
	assert.True(t, views.IsLowStock(*enMinimo))
	assert.False(t, views.IsOutOfStock(*enMinimo))

	agotadoSinMinimo := inventario("b", 0, 0)
	assert.True(t, views.IsOutOfStock(*agotadoSinMinimo))
	assert.False(t, views.IsLowStock(*agotadoSinMinimo))
}

// Escenario del flujo completo: producto con minStock=10 y stock 20; un pedido
// outbound de 15 completado lo deja en 5 → aparece en lowStock; al cancelar el
// pedido vuelve a 20 → desaparece.
func TestEscenario_PedidoCompletadoYCancelado(t *testing.T) {
	now := time.Now()
	p := producto("A", 10, now)
	inv := inventario("A", 20, 10)

	// completar pedido outbound de 15
	inv.CurrentStock -= 15
	inv.Recompute()
	items := views.Join([]*entity.Product{p}, []*entity.Inventory{inv})
	assert.Len(t, views.LowStock(items), 1, "con stock 5 y mínimo 10 debe estar en stock bajo")

	// cancelar: revertir el delta
	inv.CurrentStock += 15
	inv.Recompute()
	items = views.Join([]*entity.Product{p}, []*entity.Inventory{inv})
	assert.Empty(t, views.LowStock(items), "con stock 20 ya no está en stock bajo")
}
