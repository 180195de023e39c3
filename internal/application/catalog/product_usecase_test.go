package catalog_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockpilot/stockpilot-api/internal/application/apptest"
	"github.com/stockpilot/stockpilot-api/internal/application/catalog"
	"github.com/stockpilot/stockpilot-api/internal/application/dto"
	"github.com/stockpilot/stockpilot-api/internal/domain"
	"github.com/stockpilot/stockpilot-api/internal/domain/entity"
)

const testUser = "user-1"

func newFixture() (*catalog.ProductUseCase, *apptest.Store, *apptest.CapturingBroadcaster) {
	store := apptest.NewStore()
	events := &apptest.CapturingBroadcaster{}
	return catalog.NewProductUseCase(&apptest.TxRunner{Store: store}, events), store, events
}

func TestCreate_ProductoConInventarioInicial(t *testing.T) {
	uc, store, events := newFixture()

	got, err := uc.Create(context.Background(), testUser, dto.CreateProductRequest{
		Name:         "Monitor LED",
		Category:     "Electrónica",
		Price:        decimal.NewFromFloat(199.90),
		Cost:         decimal.NewFromFloat(120),
		MinStock:     4,
		InitialStock: 12,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, got.SKU, "el SKU debe autogenerarse si no viene")
	assert.Equal(t, 20, got.MaxStock, "MaxStock por defecto es MinStock × 5")
	assert.Equal(t, 12, got.Inventory.CurrentStock)
	assert.Equal(t, 12, got.Inventory.AvailableStock)
	assert.Equal(t, "A1-001", got.Inventory.Location)

	require.Len(t, store.Products, 1)
	require.Len(t, store.Inventories, 1)
	require.Len(t, store.Activities, 1)
	assert.Equal(t, "activity.product.added", store.Activities[0].MessageKey)
	require.Len(t, events.Events, 1)
}

func TestCreate_SKUDuplicadoAbortaTodo(t *testing.T) {
	uc, store, _ := newFixture()
	ctx := context.Background()

	_, err := uc.Create(ctx, testUser, dto.CreateProductRequest{Name: "Uno", SKU: "ABC-123"})
	require.NoError(t, err)

	_, err = uc.Create(ctx, testUser, dto.CreateProductRequest{Name: "Dos", SKU: "ABC-123"})
	require.ErrorIs(t, err, domain.ErrDuplicate)

	assert.Len(t, store.Products, 1)
	assert.Len(t, store.Inventories, 1)
	assert.Len(t, store.Activities, 1)
}

func TestUpdate_NoTocaCurrentStock(t *testing.T) {
	uc, store, _ := newFixture()
	ctx := context.Background()

	created, err := uc.Create(ctx, testUser, dto.CreateProductRequest{Name: "Teclado", MinStock: 2, InitialStock: 7})
	require.NoError(t, err)

	name := "Teclado mecánico"
	minStock := 10
	location := "B2-014"
	got, err := uc.Update(ctx, testUser, created.ID, dto.UpdateProductRequest{
		Name:     &name,
		MinStock: &minStock,
		Location: &location,
	})
	require.NoError(t, err)

	assert.Equal(t, "Teclado mecánico", got.Name)
	assert.Equal(t, 10, got.Inventory.MinStock)
	assert.Equal(t, "B2-014", got.Inventory.Location)
	assert.Equal(t, 7, got.Inventory.CurrentStock, "el stock solo se mueve por ajustes o pedidos")
	assert.Equal(t, 7, store.Inventories[created.ID].CurrentStock)
}

func TestDelete_ArrastraInventario(t *testing.T) {
	uc, store, _ := newFixture()
	ctx := context.Background()

	created, err := uc.Create(ctx, testUser, dto.CreateProductRequest{Name: "Mouse", InitialStock: 3})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, testUser, created.ID))
	assert.Empty(t, store.Products)
	assert.Empty(t, store.Inventories)
}

func TestDelete_InexistenteFallaLimpio(t *testing.T) {
	uc, store, _ := newFixture()

	err := uc.Delete(context.Background(), testUser, "nope")
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, store.Activities)
}

func TestCreate_ProductoDeOtroUsuarioNoChocaSKU(t *testing.T) {
	uc, store, _ := newFixture()
	now := time.Now()
	store.Products["ajeno"] = &entity.Product{ID: "ajeno", UserID: "otro", SKU: "ABC-123", CreatedAt: now, UpdatedAt: now}

	// La unicidad de SKU es por usuario.
	_, err := uc.Create(context.Background(), testUser, dto.CreateProductRequest{Name: "Uno", SKU: "ABC-123"})
	assert.NoError(t, err)
}
