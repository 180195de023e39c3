// Package orders implementa el ciclo de vida de pedidos y su acople con el
// ledger de stock. La regla dura: tras cualquier operación, el efecto en stock
// está aplicado si y solo si el pedido está en completed con sus líneas
// actuales. La tabla de efectos vive en domain/ledger y se evalúa por línea.
package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockpilot/stockpilot-api/internal/application/activity"
	"github.com/stockpilot/stockpilot-api/internal/application/dto"
	"github.com/stockpilot/stockpilot-api/internal/application/ports"
	"github.com/stockpilot/stockpilot-api/internal/domain"
	"github.com/stockpilot/stockpilot-api/internal/domain/entity"
	"github.com/stockpilot/stockpilot-api/internal/domain/ledger"
	"github.com/stockpilot/stockpilot-api/internal/domain/repository"
)

// OrderUseCase operaciones de pedido. Toda mutación corre en una transacción
// con las filas de inventario involucradas bloqueadas (FOR UPDATE): o se
// aplican el pedido y todos sus efectos de stock, o no se escribe nada.
type OrderUseCase struct {
	tx     ports.TxRunner
	orders repository.OrderRepository // lecturas fuera de transacción
	events ports.EventBroadcaster
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(tx ports.TxRunner, orders repository.OrderRepository, events ports.EventBroadcaster) *OrderUseCase {
	return &OrderUseCase{tx: tx, orders: orders, events: events}
}

// validateItems revisa la lista de líneas: no vacía, cantidades > 0, precios ≥ 0.
func validateItems(items []dto.OrderItemRequest) ([]entity.OrderItem, error) {
	if len(items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	out := make([]entity.OrderItem, 0, len(items))
	for _, it := range items {
		if it.ProductID == "" || it.Quantity <= 0 || it.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		out = append(out, entity.OrderItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}
	return out, nil
}

// computeTotal calcula Σ cantidad × precio al momento del envío; el total no
// se re-deriva en lecturas posteriores.
func computeTotal(items []entity.OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}

// Create crea un pedido. Si nace como completed, aplica el delta de cada línea
// en la misma transacción; stock insuficiente en cualquier línea aborta todo
// (no se persiste el pedido). Toda línea debe referenciar un producto con
// inventario registrado.
func (uc *OrderUseCase) Create(ctx context.Context, userID string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if !entity.ValidOrderType(in.Type) {
		return nil, domain.ErrInvalidInput
	}
	status := in.Status
	if status == "" {
		status = entity.OrderStatusPending
	}
	if !entity.ValidOrderStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	items, err := validateItems(in.Items)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	order := &entity.Order{
		ID:               uuid.New().String(),
		UserID:           userID,
		Type:             in.Type,
		Status:           status,
		Items:            items,
		TotalAmount:      computeTotal(items),
		CustomerName:     in.CustomerName,
		CustomerEmail:    in.CustomerEmail,
		CustomerPhone:    in.CustomerPhone,
		Notes:            in.Notes,
		ExpectedDelivery: in.ExpectedDelivery,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	err = uc.tx.Run(ctx, func(r ports.TxRepos) error {
		if err := r.Orders.Create(order); err != nil {
			return err
		}
		for _, it := range order.Items {
			inv, err := r.Inventories.GetForUpdate(it.ProductID, userID)
			if err != nil {
				return err
			}
			if inv == nil {
				return domain.ErrMissingInventory
			}
			// prev vacío: el efecto solo se aplica si nace como completed
			delta := ledger.TransitionDelta("", order.Status, order.Type, it.Quantity)
			if delta == 0 {
				continue
			}
			if err := ledger.Apply(inv, delta, now); err != nil {
				return err
			}
			if err := r.Inventories.Update(inv); err != nil {
				return err
			}
		}

		messageKey := activity.KeyOrderOutbound
		if order.Type == entity.OrderTypeInbound {
			messageKey = activity.KeyOrderInbound
		}
		return r.Activities.Create(activity.New(
			userID, entity.ActivityTypeOrder, messageKey,
			map[string]any{"count": len(order.Items)}, now,
		))
	})
	if err != nil {
		return nil, err
	}

	out := toOrderResponse(order)
	uc.events.Publish(ports.Event{Type: ports.EventOrderCreated, UserID: userID, Payload: out})
	return out, nil
}

// Update aplica la tabla de efectos comparando el estado previo con el nuevo.
// Si Items viene en la petición, reemplaza la lista completa; para conservar
// el invariante, un pedido completed revierte las líneas viejas y aplica las
// nuevas dentro de la misma transacción. El tipo del pedido es inmutable.
func (uc *OrderUseCase) Update(ctx context.Context, userID, orderID string, in dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	if in.Status != nil && !entity.ValidOrderStatus(*in.Status) {
		return nil, domain.ErrInvalidInput
	}
	var newItems []entity.OrderItem
	if in.Items != nil {
		var err error
		newItems, err = validateItems(*in.Items)
		if err != nil {
			return nil, err
		}
	}

	now := time.Now()
	var order *entity.Order

	err := uc.tx.Run(ctx, func(r ports.TxRepos) error {
		var err error
		order, err = r.Orders.GetForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil || order.UserID != userID {
			return domain.ErrNotFound
		}

		prevStatus := order.Status
		newStatus := prevStatus
		if in.Status != nil {
			newStatus = *in.Status
		}
		itemsReplaced := in.Items != nil
		wasCompleted := prevStatus == entity.OrderStatusCompleted
		willComplete := newStatus == entity.OrderStatusCompleted

		// Revertir el efecto de las líneas viejas si el pedido estaba aplicado
		// y deja de estarlo, o si sus líneas van a cambiar.
		if wasCompleted && (!willComplete || itemsReplaced) {
			for _, it := range order.Items {
				if err := uc.applyDelta(r, userID, it.ProductID,
					ledger.TransitionDelta(prevStatus, entity.OrderStatusPending, order.Type, it.Quantity), now); err != nil {
					return err
				}
			}
		}

		if itemsReplaced {
			// Misma regla que en Create: toda línea debe referenciar un producto
			// con inventario registrado, aunque el efecto no se aplique todavía.
			if !willComplete {
				for _, it := range newItems {
					inv, err := r.Inventories.GetByProduct(it.ProductID, userID)
					if err != nil {
						return err
					}
					if inv == nil {
						return domain.ErrMissingInventory
					}
				}
			}
			order.Items = newItems
			order.TotalAmount = computeTotal(newItems)
		}

		// Aplicar el efecto de las líneas vigentes si el pedido queda aplicado
		// y no lo estaba, o si sus líneas cambiaron.
		if willComplete && (!wasCompleted || itemsReplaced) {
			for _, it := range order.Items {
				if err := uc.applyDelta(r, userID, it.ProductID,
					ledger.TransitionDelta(entity.OrderStatusPending, newStatus, order.Type, it.Quantity), now); err != nil {
					return err
				}
			}
		}

		order.Status = newStatus
		if in.CustomerName != nil {
			order.CustomerName = *in.CustomerName
		}
		if in.CustomerEmail != nil {
			order.CustomerEmail = *in.CustomerEmail
		}
		if in.CustomerPhone != nil {
			order.CustomerPhone = *in.CustomerPhone
		}
		if in.Notes != nil {
			order.Notes = *in.Notes
		}
		if in.ExpectedDelivery != nil {
			order.ExpectedDelivery = in.ExpectedDelivery
		}
		order.UpdatedAt = now
		if err := r.Orders.Update(order); err != nil {
			return err
		}

		return r.Activities.Create(activity.New(
			userID, entity.ActivityTypeOrder, activity.KeyOrderUpdated,
			map[string]any{"id": order.ID}, now,
		))
	})
	if err != nil {
		return nil, err
	}

	out := toOrderResponse(order)
	uc.events.Publish(ports.Event{Type: ports.EventOrderUpdated, UserID: userID, Payload: out})
	return out, nil
}

// applyDelta bloquea la fila de inventario de un producto y aplica un delta.
func (uc *OrderUseCase) applyDelta(r ports.TxRepos, userID, productID string, delta int, now time.Time) error {
	if delta == 0 {
		return nil
	}
	inv, err := r.Inventories.GetForUpdate(productID, userID)
	if err != nil {
		return err
	}
	if inv == nil {
		return domain.ErrMissingInventory
	}
	if err := ledger.Apply(inv, delta, now); err != nil {
		return err
	}
	return r.Inventories.Update(inv)
}

// Delete elimina el pedido sin revertir ningún efecto de stock ya aplicado.
// Borrar no equivale a cancelar: quien quiera devolver el stock debe pasar el
// pedido a cancelled antes de borrarlo (asimetría deliberada del diseño).
func (uc *OrderUseCase) Delete(ctx context.Context, userID, orderID string) error {
	now := time.Now()

	err := uc.tx.Run(ctx, func(r ports.TxRepos) error {
		order, err := r.Orders.GetByID(orderID)
		if err != nil {
			return err
		}
		if order == nil || order.UserID != userID {
			return domain.ErrNotFound
		}
		if err := r.Orders.Delete(orderID); err != nil {
			return err
		}
		return r.Activities.Create(activity.New(
			userID, entity.ActivityTypeOrder, activity.KeyOrderDeleted,
			map[string]any{"id": orderID}, now,
		))
	})
	if err != nil {
		return err
	}

	uc.events.Publish(ports.Event{Type: ports.EventOrderDeleted, UserID: userID, Payload: map[string]string{"id": orderID}})
	return nil
}

// GetByID obtiene un pedido del usuario.
func (uc *OrderUseCase) GetByID(ctx context.Context, userID, orderID string) (*dto.OrderResponse, error) {
	order, err := uc.orders.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil || order.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return toOrderResponse(order), nil
}

// List lista los pedidos del usuario con conteos por estado.
func (uc *OrderUseCase) List(ctx context.Context, userID string) (*dto.OrderListResponse, error) {
	list, err := uc.orders.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	resp := &dto.OrderListResponse{Items: make([]dto.OrderResponse, 0, len(list))}
	for _, o := range list {
		resp.Items = append(resp.Items, *toOrderResponse(o))
		resp.Counts.Total++
		switch o.Status {
		case entity.OrderStatusPending:
			resp.Counts.Pending++
		case entity.OrderStatusCompleted:
			resp.Counts.Completed++
		case entity.OrderStatusCancelled:
			resp.Counts.Cancelled++
		}
	}
	return resp, nil
}

func toOrderResponse(o *entity.Order) *dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.OrderItemResponse{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}
	return &dto.OrderResponse{
		ID:               o.ID,
		Type:             o.Type,
		Status:           o.Status,
		Items:            items,
		TotalAmount:      o.TotalAmount,
		CustomerName:     o.CustomerName,
		CustomerEmail:    o.CustomerEmail,
		CustomerPhone:    o.CustomerPhone,
		Notes:            o.Notes,
		ExpectedDelivery: o.ExpectedDelivery,
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
	}
}
