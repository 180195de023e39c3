package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockpilot/stockpilot-api/internal/application/apptest"
	"github.com/stockpilot/stockpilot-api/internal/application/dto"
	"github.com/stockpilot/stockpilot-api/internal/application/inventory"
	"github.com/stockpilot/stockpilot-api/internal/application/ports"
	"github.com/stockpilot/stockpilot-api/internal/domain"
	"github.com/stockpilot/stockpilot-api/internal/domain/entity"
)

const testUser = "user-1"

func newFixture() (*inventory.AdjustStockUseCase, *apptest.Store, *apptest.CapturingBroadcaster) {
	store := apptest.NewStore()
	events := &apptest.CapturingBroadcaster{}
	uc := inventory.NewAdjustStockUseCase(&apptest.TxRunner{Store: store}, store.Repos().StockMovements, events)
	return uc, store, events
}

func seedProduct(store *apptest.Store, productID string, withInventory bool, stock int) {
	now := time.Now()
	store.Products[productID] = &entity.Product{
		ID: productID, UserID: testUser, Name: "Producto " + productID,
		CreatedAt: now, UpdatedAt: now,
	}
	if withInventory {
		inv := &entity.Inventory{
			ID: "inv-" + productID, ProductID: productID, UserID: testUser,
			CurrentStock: stock, MinStock: 5, MaxStock: 100, Location: "A1-001",
			LastMovement: now, LastUpdated: now,
		}
		inv.Recompute()
		store.Inventories[productID] = inv
	}
}

func TestAdjust_FijaValorAbsolutoYRegistraMovimiento(t *testing.T) {
	uc, store, events := newFixture()
	seedProduct(store, "p1", true, 12)

	got, err := uc.Adjust(context.Background(), testUser, "p1", dto.AdjustStockRequest{
		CurrentStock: 30,
		Reason:       "conteo físico",
	})
	require.NoError(t, err)

	assert.Equal(t, 30, got.CurrentStock)
	assert.Equal(t, 30, got.AvailableStock)
	assert.Equal(t, 30, store.Inventories["p1"].CurrentStock)

	require.Len(t, store.Movements, 1)
	mov := store.Movements[0]
	assert.Equal(t, 12, mov.OldStock)
	assert.Equal(t, 30, mov.NewStock)
	assert.Equal(t, 18, mov.Change)
	assert.Equal(t, entity.MovementTypeAdjustment, mov.Type)
	assert.Equal(t, "conteo físico", mov.Reason)

	require.Len(t, events.Events, 1)
	assert.Equal(t, ports.EventStockAdjusted, events.Events[0].Type)
}

// Producto sin registro de inventario: el ajuste lo sintetiza con valores
// seguros en lugar de fallar.
func TestAdjust_AutocorrigeInventarioFaltante(t *testing.T) {
	uc, store, _ := newFixture()
	seedProduct(store, "p1", false, 0)

	got, err := uc.Adjust(context.Background(), testUser, "p1", dto.AdjustStockRequest{CurrentStock: 25})
	require.NoError(t, err)

	assert.Equal(t, 25, got.CurrentStock)
	assert.Equal(t, entity.DefaultMinStock, got.MinStock)
	assert.Equal(t, entity.DefaultMaxStock, got.MaxStock)
	assert.Equal(t, entity.DefaultLocation, got.Location)

	inv := store.Inventories["p1"]
	require.NotNil(t, inv)
	assert.Equal(t, 25, inv.CurrentStock)
	assert.Equal(t, 25, inv.AvailableStock)

	require.Len(t, store.Movements, 1)
	assert.Equal(t, 0, store.Movements[0].OldStock)
	assert.Equal(t, 25, store.Movements[0].Change)
}

func TestAdjust_NegativoRechazado(t *testing.T) {
	uc, store, _ := newFixture()
	seedProduct(store, "p1", true, 10)

	_, err := uc.Adjust(context.Background(), testUser, "p1", dto.AdjustStockRequest{CurrentStock: -1})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 10, store.Inventories["p1"].CurrentStock)
	assert.Empty(t, store.Movements)
}

func TestAdjust_ProductoInexistente(t *testing.T) {
	uc, _, _ := newFixture()

	_, err := uc.Adjust(context.Background(), testUser, "nope", dto.AdjustStockRequest{CurrentStock: 5})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAdjust_ProductoDeOtroUsuario(t *testing.T) {
	uc, store, _ := newFixture()
	seedProduct(store, "p1", true, 10)

	_, err := uc.Adjust(context.Background(), "intruso", "p1", dto.AdjustStockRequest{CurrentStock: 0})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 10, store.Inventories["p1"].CurrentStock)
}

func TestMovements_HistorialPorProducto(t *testing.T) {
	uc, store, _ := newFixture()
	seedProduct(store, "p1", true, 0)
	seedProduct(store, "p2", true, 0)
	ctx := context.Background()

	for _, v := range []int{5, 9} {
		_, err := uc.Adjust(ctx, testUser, "p1", dto.AdjustStockRequest{CurrentStock: v})
		require.NoError(t, err)
	}
	_, err := uc.Adjust(ctx, testUser, "p2", dto.AdjustStockRequest{CurrentStock: 3})
	require.NoError(t, err)

	got, err := uc.Movements(ctx, testUser, "p1", 0)
	require.NoError(t, err)
	require.Len(t, got.Items, 2)
	// Más reciente primero
	assert.Equal(t, 9, got.Items[0].NewStock)
	assert.Equal(t, 5, got.Items[1].NewStock)

	all, err := uc.Movements(ctx, testUser, "", 0)
	require.NoError(t, err)
	assert.Len(t, all.Items, 3)
}
