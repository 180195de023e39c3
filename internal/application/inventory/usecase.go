// Package inventory contiene el caso de uso de ajuste manual de stock.
// Es el único punto de entrada para fijar CurrentStock desde la UI; los
// pedidos mueven stock a través de application/orders.
package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stockpilot/stockpilot-api/internal/application/activity"
	"github.com/stockpilot/stockpilot-api/internal/application/dto"
	"github.com/stockpilot/stockpilot-api/internal/application/ports"
	"github.com/stockpilot/stockpilot-api/internal/domain"
	"github.com/stockpilot/stockpilot-api/internal/domain/entity"
	"github.com/stockpilot/stockpilot-api/internal/domain/ledger"
	"github.com/stockpilot/stockpilot-api/internal/domain/repository"
)

// AdjustStockUseCase ajuste manual de stock con autocorrección: si el producto
// no tiene inventario, se sintetiza uno con valores seguros en vez de fallar
// (a diferencia de los pedidos, que fallan con ErrMissingInventory; decisión
// registrada en DESIGN.md).
type AdjustStockUseCase struct {
	tx        ports.TxRunner
	movements repository.StockMovementRepository // lecturas del historial
	events    ports.EventBroadcaster
}

// NewAdjustStockUseCase construye el caso de uso.
func NewAdjustStockUseCase(tx ports.TxRunner, movements repository.StockMovementRepository, events ports.EventBroadcaster) *AdjustStockUseCase {
	return &AdjustStockUseCase{tx: tx, movements: movements, events: events}
}

// Adjust fija CurrentStock del producto al valor absoluto solicitado, recalcula
// AvailableStock y deja registro en el historial de movimientos, todo en una
// transacción con la fila de inventario bloqueada (FOR UPDATE).
func (uc *AdjustStockUseCase) Adjust(ctx context.Context, userID, productID string, in dto.AdjustStockRequest) (*dto.InventoryResponse, error) {
	if in.CurrentStock < 0 {
		return nil, domain.ErrInvalidInput
	}
	movType := in.Type
	if movType == "" {
		movType = entity.MovementTypeAdjustment
	}

	now := time.Now()
	var inv *entity.Inventory

	err := uc.tx.Run(ctx, func(r ports.TxRepos) error {
		product, err := r.Products.GetByID(productID)
		if err != nil {
			return err
		}
		if product == nil || product.UserID != userID {
			return domain.ErrNotFound
		}

		inv, err = r.Inventories.GetForUpdate(productID, userID)
		if err != nil {
			return err
		}

		var oldStock, change int
		var messageKey string
		if inv == nil {
			// Autocorrección: inventario faltante se sintetiza con defaults.
			inv = ledger.NewDefaultInventory(productID, userID, in.CurrentStock, now)
			inv.ID = uuid.New().String()
			oldStock = 0
			change = in.CurrentStock
			messageKey = activity.KeyStockCreated
			if err := r.Inventories.Create(inv); err != nil {
				return err
			}
		} else {
			oldStock = inv.CurrentStock
			change, err = ledger.AdjustAbsolute(inv, in.CurrentStock, now)
			if err != nil {
				return err
			}
			messageKey = activity.KeyStockUpdated
			if err := r.Inventories.Update(inv); err != nil {
				return err
			}
		}

		mov := &entity.StockMovement{
			ID:        uuid.New().String(),
			UserID:    userID,
			ProductID: productID,
			OldStock:  oldStock,
			NewStock:  in.CurrentStock,
			Change:    change,
			Type:      movType,
			Reason:    in.Reason,
			CreatedAt: now,
		}
		if err := r.StockMovements.Create(mov); err != nil {
			return err
		}

		return r.Activities.Create(activity.New(
			userID, entity.ActivityTypeStock, messageKey,
			map[string]any{"name": product.Name}, now,
		))
	})
	if err != nil {
		return nil, err
	}

	out := toInventoryResponse(inv)
	uc.events.Publish(ports.Event{Type: ports.EventStockAdjusted, UserID: userID, Payload: out})
	return out, nil
}

// Movements devuelve el historial de ajustes, opcionalmente filtrado por producto.
func (uc *AdjustStockUseCase) Movements(ctx context.Context, userID, productID string, limit int) (*dto.StockMovementListResponse, error) {
	if limit <= 0 {
		limit = 50
	}
	var list []*entity.StockMovement
	var err error
	if productID != "" {
		list, err = uc.movements.ListByProduct(productID, userID, limit)
	} else {
		list, err = uc.movements.ListByUser(userID, limit)
	}
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockMovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, dto.StockMovementResponse{
			ID:        m.ID,
			ProductID: m.ProductID,
			OldStock:  m.OldStock,
			NewStock:  m.NewStock,
			Change:    m.Change,
			Type:      m.Type,
			Reason:    m.Reason,
			CreatedAt: m.CreatedAt,
		})
	}
	return &dto.StockMovementListResponse{Items: items}, nil
}

func toInventoryResponse(inv *entity.Inventory) *dto.InventoryResponse {
	return &dto.InventoryResponse{
		ProductID:      inv.ProductID,
		CurrentStock:   inv.CurrentStock,
		ReservedStock:  inv.ReservedStock,
		AvailableStock: inv.AvailableStock,
		MinStock:       inv.MinStock,
		MaxStock:       inv.MaxStock,
		Location:       inv.Location,
		LastMovement:   inv.LastMovement,
		LastUpdated:    inv.LastUpdated,
	}
}
