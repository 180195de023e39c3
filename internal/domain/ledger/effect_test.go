package ledger_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockpilot/stockpilot-api/internal/domain"
	"github.com/stockpilot/stockpilot-api/internal/domain/entity"
	"github.com/stockpilot/stockpilot-api/internal/domain/ledger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tabla de efectos de transición: el efecto sobre el stock se aplica si y solo
// si el pedido entra a completed, y se revierte si y solo si sale de completed.
// ──────────────────────────────────────────────────────────────────────────────

func TestTransitionDelta_TablaCompleta(t *testing.T) {
	const qty = 10

	cases := []struct {
		name      string
		prev      string
		next      string
		orderType string
		want      int
	}{
		// Entradas a completed: aplicar delta
		{"pending→completed outbound", entity.OrderStatusPending, entity.OrderStatusCompleted, entity.OrderTypeOutbound, -qty},
		{"pending→completed inbound", entity.OrderStatusPending, entity.OrderStatusCompleted, entity.OrderTypeInbound, +qty},
		{"cancelled→completed outbound", entity.OrderStatusCancelled, entity.OrderStatusCompleted, entity.OrderTypeOutbound, -qty},
		{"creación como completed (prev vacío)", "", entity.OrderStatusCompleted, entity.OrderTypeOutbound, -qty},

		// Salidas de completed: revertir delta
		{"completed→pending outbound", entity.OrderStatusCompleted, entity.OrderStatusPending, entity.OrderTypeOutbound, +qty},
		{"completed→cancelled outbound", entity.OrderStatusCompleted, entity.OrderStatusCancelled, entity.OrderTypeOutbound, +qty},
		{"completed→pending inbound", entity.OrderStatusCompleted, entity.OrderStatusPending, entity.OrderTypeInbound, -qty},

		// Sin efecto
		{"pending→cancelled", entity.OrderStatusPending, entity.OrderStatusCancelled, entity.OrderTypeOutbound, 0},
		{"cancelled→pending", entity.OrderStatusCancelled, entity.OrderStatusPending, entity.OrderTypeInbound, 0},
		{"pending→pending", entity.OrderStatusPending, entity.OrderStatusPending, entity.OrderTypeOutbound, 0},
		{"completed→completed", entity.OrderStatusCompleted, entity.OrderStatusCompleted, entity.OrderTypeOutbound, 0},
		{"creación como pending", "", entity.OrderStatusPending, entity.OrderTypeOutbound, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ledger.TransitionDelta(tc.prev, tc.next, tc.orderType, qty)
			assert.Equal(t, tc.want, got)
		})
	}
}

// La ley de ida y vuelta: pending→completed→pending deja el delta neto en cero,
// tanto para inbound como para outbound.
func TestTransitionDelta_IdaYVuelta(t *testing.T) {
	for _, orderType := range []string{entity.OrderTypeInbound, entity.OrderTypeOutbound} {
		apply := ledger.TransitionDelta(entity.OrderStatusPending, entity.OrderStatusCompleted, orderType, 15)
		reverse := ledger.TransitionDelta(entity.OrderStatusCompleted, entity.OrderStatusPending, orderType, 15)
		assert.Zero(t, apply+reverse, "el neto de aplicar y revertir debe ser cero para %s", orderType)
	}
}

func TestApply_DeltaValido(t *testing.T) {
	now := time.Now()
	inv := &entity.Inventory{CurrentStock: 20, ReservedStock: 3, AvailableStock: 17}

	err := ledger.Apply(inv, -15, now)

	require.NoError(t, err)
	assert.Equal(t, 5, inv.CurrentStock)
	assert.Equal(t, 2, inv.AvailableStock, "AvailableStock siempre es CurrentStock − ReservedStock")
	assert.Equal(t, now, inv.LastMovement)
}

// Un delta que dejaría el stock negativo debe fallar con ErrInsufficientStock
// y no mutar el inventario.
func TestApply_StockInsuficiente_NoMuta(t *testing.T) {
	inv := &entity.Inventory{CurrentStock: 5, AvailableStock: 5}

	err := ledger.Apply(inv, -6, time.Now())

	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 5, inv.CurrentStock, "el stock no debe cambiar tras un fallo")
	assert.Equal(t, 5, inv.AvailableStock)
}

func TestAdjustAbsolute_FijaValorYReportaCambio(t *testing.T) {
	now := time.Now()
	inv := &entity.Inventory{CurrentStock: 8, ReservedStock: 2, AvailableStock: 6}

	change, err := ledger.AdjustAbsolute(inv, 20, now)

	require.NoError(t, err)
	assert.Equal(t, 12, change)
	assert.Equal(t, 20, inv.CurrentStock)
	assert.Equal(t, 18, inv.AvailableStock)
}

func TestAdjustAbsolute_RechazaNegativo(t *testing.T) {
	inv := &entity.Inventory{CurrentStock: 8}

	_, err := ledger.AdjustAbsolute(inv, -1, time.Now())

	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 8, inv.CurrentStock)
}

func TestNewDefaultInventory_ValoresSeguros(t *testing.T) {
	now := time.Now()
	inv := ledger.NewDefaultInventory("prod-1", "user-1", 30, now)

	assert.Equal(t, entity.DefaultMinStock, inv.MinStock)
	assert.Equal(t, entity.DefaultMaxStock, inv.MaxStock)
	assert.Equal(t, entity.DefaultLocation, inv.Location)
	assert.Equal(t, 30, inv.CurrentStock)
	assert.Equal(t, 30, inv.AvailableStock)
	assert.Zero(t, inv.ReservedStock)
}
