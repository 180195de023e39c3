package orders_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockpilot/stockpilot-api/internal/application/apptest"
	"github.com/stockpilot/stockpilot-api/internal/application/dto"
	"github.com/stockpilot/stockpilot-api/internal/application/orders"
	"github.com/stockpilot/stockpilot-api/internal/application/ports"
	"github.com/stockpilot/stockpilot-api/internal/domain"
	"github.com/stockpilot/stockpilot-api/internal/domain/entity"
)

const testUser = "user-1"

func newFixture() (*orders.OrderUseCase, *apptest.Store, *apptest.CapturingBroadcaster) {
	store := apptest.NewStore()
	events := &apptest.CapturingBroadcaster{}
	uc := orders.NewOrderUseCase(&apptest.TxRunner{Store: store}, store.Repos().Orders, events)
	return uc, store, events
}

func seedProduct(store *apptest.Store, productID string, stock int) {
	now := time.Now()
	store.Products[productID] = &entity.Product{
		ID: productID, UserID: testUser, SKU: "SKU-" + productID, Name: "Producto " + productID,
		CreatedAt: now, UpdatedAt: now,
	}
	inv := &entity.Inventory{
		ID: "inv-" + productID, ProductID: productID, UserID: testUser,
		CurrentStock: stock, MinStock: 5, MaxStock: 100, Location: "A1-001",
		LastMovement: now, LastUpdated: now,
	}
	inv.Recompute()
	store.Inventories[productID] = inv
}

func item(productID string, qty int, price float64) dto.OrderItemRequest {
	return dto.OrderItemRequest{ProductID: productID, Quantity: qty, UnitPrice: decimal.NewFromFloat(price)}
}

func TestCreate_PendienteNoMueveStock(t *testing.T) {
	uc, store, events := newFixture()
	seedProduct(store, "p1", 10)

	got, err := uc.Create(context.Background(), testUser, dto.CreateOrderRequest{
		Type:  entity.OrderTypeOutbound,
		Items: []dto.OrderItemRequest{item("p1", 4, 9.99)},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusPending, got.Status)
	assert.True(t, got.TotalAmount.Equal(decimal.NewFromFloat(39.96)))
	assert.Equal(t, 10, store.Inventories["p1"].CurrentStock)
	require.Len(t, events.Events, 1)
	assert.Equal(t, ports.EventOrderCreated, events.Events[0].Type)
}

func TestCreate_CompletadoAplicaEfectoPorLinea(t *testing.T) {
	uc, store, _ := newFixture()
	seedProduct(store, "p1", 10)
	seedProduct(store, "p2", 3)

	_, err := uc.Create(context.Background(), testUser, dto.CreateOrderRequest{
		Type:   entity.OrderTypeOutbound,
		Status: entity.OrderStatusCompleted,
		Items:  []dto.OrderItemRequest{item("p1", 4, 1), item("p2", 3, 1)},
	})
	require.NoError(t, err)

	assert.Equal(t, 6, store.Inventories["p1"].CurrentStock)
	assert.Equal(t, 0, store.Inventories["p2"].CurrentStock)
	assert.Equal(t, 6, store.Inventories["p1"].AvailableStock)
}

func TestCreate_StockInsuficienteAbortaTodo(t *testing.T) {
	uc, store, events := newFixture()
	seedProduct(store, "p1", 10)
	seedProduct(store, "p2", 2)

	_, err := uc.Create(context.Background(), testUser, dto.CreateOrderRequest{
		Type:   entity.OrderTypeOutbound,
		Status: entity.OrderStatusCompleted,
		Items:  []dto.OrderItemRequest{item("p1", 4, 1), item("p2", 5, 1)},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Todo-o-nada: ni el pedido ni el descuento parcial de p1 quedan escritos.
	assert.Empty(t, store.Orders)
	assert.Equal(t, 10, store.Inventories["p1"].CurrentStock)
	assert.Equal(t, 2, store.Inventories["p2"].CurrentStock)
	assert.Empty(t, store.Activities)
	assert.Empty(t, events.Events)
}

func TestCreate_SinInventarioRegistradoFalla(t *testing.T) {
	uc, store, _ := newFixture()
	now := time.Now()
	store.Products["p1"] = &entity.Product{ID: "p1", UserID: testUser, CreatedAt: now, UpdatedAt: now}

	_, err := uc.Create(context.Background(), testUser, dto.CreateOrderRequest{
		Type:  entity.OrderTypeInbound,
		Items: []dto.OrderItemRequest{item("p1", 1, 1)},
	})
	require.ErrorIs(t, err, domain.ErrMissingInventory)
	assert.Empty(t, store.Orders)
}

func TestCreate_Validaciones(t *testing.T) {
	uc, _, _ := newFixture()
	ctx := context.Background()

	_, err := uc.Create(ctx, testUser, dto.CreateOrderRequest{Type: "sideways", Items: []dto.OrderItemRequest{item("p1", 1, 1)}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, testUser, dto.CreateOrderRequest{Type: entity.OrderTypeInbound})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, testUser, dto.CreateOrderRequest{Type: entity.OrderTypeInbound, Items: []dto.OrderItemRequest{item("p1", 0, 1)}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdate_IdaYVueltaRestauraStock(t *testing.T) {
	uc, store, _ := newFixture()
	seedProduct(store, "p1", 20)
	ctx := context.Background()

	created, err := uc.Create(ctx, testUser, dto.CreateOrderRequest{
		Type:  entity.OrderTypeOutbound,
		Items: []dto.OrderItemRequest{item("p1", 15, 2)},
	})
	require.NoError(t, err)

	completed := entity.OrderStatusCompleted
	_, err = uc.Update(ctx, testUser, created.ID, dto.UpdateOrderRequest{Status: &completed})
	require.NoError(t, err)
	assert.Equal(t, 5, store.Inventories["p1"].CurrentStock)

	pending := entity.OrderStatusPending
	_, err = uc.Update(ctx, testUser, created.ID, dto.UpdateOrderRequest{Status: &pending})
	require.NoError(t, err)
	assert.Equal(t, 20, store.Inventories["p1"].CurrentStock)
}

func TestUpdate_CancelarCompletadoRevierte(t *testing.T) {
	uc, store, _ := newFixture()
	seedProduct(store, "p1", 8)
	ctx := context.Background()

	created, err := uc.Create(ctx, testUser, dto.CreateOrderRequest{
		Type:   entity.OrderTypeInbound,
		Status: entity.OrderStatusCompleted,
		Items:  []dto.OrderItemRequest{item("p1", 7, 1)},
	})
	require.NoError(t, err)
	assert.Equal(t, 15, store.Inventories["p1"].CurrentStock)

	cancelled := entity.OrderStatusCancelled
	_, err = uc.Update(ctx, testUser, created.ID, dto.UpdateOrderRequest{Status: &cancelled})
	require.NoError(t, err)
	assert.Equal(t, 8, store.Inventories["p1"].CurrentStock)
}

func TestUpdate_ReemplazoDeLineasEnCompletado(t *testing.T) {
	uc, store, _ := newFixture()
	seedProduct(store, "p1", 10)
	seedProduct(store, "p2", 10)
	ctx := context.Background()

	created, err := uc.Create(ctx, testUser, dto.CreateOrderRequest{
		Type:   entity.OrderTypeOutbound,
		Status: entity.OrderStatusCompleted,
		Items:  []dto.OrderItemRequest{item("p1", 6, 1)},
	})
	require.NoError(t, err)
	assert.Equal(t, 4, store.Inventories["p1"].CurrentStock)

	// Reemplazar las líneas de un pedido aplicado revierte las viejas y aplica
	// las nuevas; p1 vuelve a 10 y p2 baja a 7.
	newItems := []dto.OrderItemRequest{item("p2", 3, 2)}
	got, err := uc.Update(ctx, testUser, created.ID, dto.UpdateOrderRequest{Items: &newItems})
	require.NoError(t, err)

	assert.Equal(t, 10, store.Inventories["p1"].CurrentStock)
	assert.Equal(t, 7, store.Inventories["p2"].CurrentStock)
	assert.True(t, got.TotalAmount.Equal(decimal.NewFromInt(6)))
}

func TestUpdate_StockInsuficienteNoDejaMitades(t *testing.T) {
	uc, store, _ := newFixture()
	seedProduct(store, "p1", 10)
	seedProduct(store, "p2", 1)
	ctx := context.Background()

	created, err := uc.Create(ctx, testUser, dto.CreateOrderRequest{
		Type:  entity.OrderTypeOutbound,
		Items: []dto.OrderItemRequest{item("p1", 4, 1), item("p2", 5, 1)},
	})
	require.NoError(t, err)

	completed := entity.OrderStatusCompleted
	_, err = uc.Update(ctx, testUser, created.ID, dto.UpdateOrderRequest{Status: &completed})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, 10, store.Inventories["p1"].CurrentStock)
	assert.Equal(t, 1, store.Inventories["p2"].CurrentStock)
	assert.Equal(t, entity.OrderStatusPending, store.Orders[created.ID].Status)
}

func TestUpdate_ReemplazoEnPendienteExigeInventario(t *testing.T) {
	uc, store, _ := newFixture()
	seedProduct(store, "p1", 10)
	ctx := context.Background()

	created, err := uc.Create(ctx, testUser, dto.CreateOrderRequest{
		Type:  entity.OrderTypeOutbound,
		Items: []dto.OrderItemRequest{item("p1", 2, 1)},
	})
	require.NoError(t, err)

	// Producto en catálogo pero sin registro de inventario
	store.Products["p2"] = &entity.Product{ID: "p2", UserID: testUser, SKU: "SKU-p2", Name: "Producto p2"}

	newItems := []dto.OrderItemRequest{item("p2", 3, 1)}
	_, err = uc.Update(ctx, testUser, created.ID, dto.UpdateOrderRequest{Items: &newItems})
	require.ErrorIs(t, err, domain.ErrMissingInventory)

	// El pedido queda intacto: las líneas viejas siguen vigentes
	require.Len(t, store.Orders[created.ID].Items, 1)
	assert.Equal(t, "p1", store.Orders[created.ID].Items[0].ProductID)
}

func TestUpdate_PedidoAjeno(t *testing.T) {
	uc, store, _ := newFixture()
	seedProduct(store, "p1", 10)
	ctx := context.Background()

	created, err := uc.Create(ctx, testUser, dto.CreateOrderRequest{
		Type:  entity.OrderTypeOutbound,
		Items: []dto.OrderItemRequest{item("p1", 1, 1)},
	})
	require.NoError(t, err)

	completed := entity.OrderStatusCompleted
	_, err = uc.Update(ctx, "otro-usuario", created.ID, dto.UpdateOrderRequest{Status: &completed})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete_NoRevierteStock(t *testing.T) {
	uc, store, _ := newFixture()
	seedProduct(store, "p1", 10)
	ctx := context.Background()

	created, err := uc.Create(ctx, testUser, dto.CreateOrderRequest{
		Type:   entity.OrderTypeOutbound,
		Status: entity.OrderStatusCompleted,
		Items:  []dto.OrderItemRequest{item("p1", 6, 1)},
	})
	require.NoError(t, err)
	assert.Equal(t, 4, store.Inventories["p1"].CurrentStock)

	// Borrar no es cancelar: el efecto aplicado se queda.
	require.NoError(t, uc.Delete(ctx, testUser, created.ID))
	assert.Empty(t, store.Orders)
	assert.Equal(t, 4, store.Inventories["p1"].CurrentStock)
}

func TestList_ConteosPorEstado(t *testing.T) {
	uc, store, _ := newFixture()
	seedProduct(store, "p1", 100)
	ctx := context.Background()

	for _, status := range []string{
		entity.OrderStatusPending,
		entity.OrderStatusPending,
		entity.OrderStatusCompleted,
		entity.OrderStatusCancelled,
	} {
		_, err := uc.Create(ctx, testUser, dto.CreateOrderRequest{
			Type:   entity.OrderTypeOutbound,
			Status: status,
			Items:  []dto.OrderItemRequest{item("p1", 1, 1)},
		})
		require.NoError(t, err)
	}

	got, err := uc.List(ctx, testUser)
	require.NoError(t, err)

	assert.Equal(t, 4, got.Counts.Total)
	assert.Equal(t, 2, got.Counts.Pending)
	assert.Equal(t, 1, got.Counts.Completed)
	assert.Equal(t, 1, got.Counts.Cancelled)
	assert.Len(t, got.Items, 4)
}
