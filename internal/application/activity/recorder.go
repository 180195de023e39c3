// Package activity construye y consulta el registro append-only de eventos de
// dominio. Las actividades se escriben en la misma transacción que la mutación
// que describen; este paquete solo arma la entidad y expone el feed de lectura.
package activity

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stockpilot/stockpilot-api/internal/application/dto"
	"github.com/stockpilot/stockpilot-api/internal/domain/entity"
	"github.com/stockpilot/stockpilot-api/internal/domain/repository"
)

// Claves de plantilla de mensajes (la traducción vive en la UI).
const (
	KeyProductAdded    = "activity.product.added"
	KeyProductUpdated  = "activity.product.updated"
	KeyProductDeleted  = "activity.product.deleted"
	KeyOrderInbound    = "activity.order.inbound"
	KeyOrderOutbound   = "activity.order.outbound"
	KeyOrderUpdated    = "activity.order.updated"
	KeyOrderDeleted    = "activity.order.deleted"
	KeySupplierAdded   = "activity.supplier.added"
	KeySupplierUpdated = "activity.supplier.updated"
	KeySupplierDeleted = "activity.supplier.deleted"
	KeyStockCreated    = "activity.stock.created"
	KeyStockUpdated    = "activity.stock.updated"
)

// New arma una actividad lista para persistir dentro de la transacción del caller.
func New(userID, activityType, messageKey string, data map[string]any, now time.Time) *entity.Activity {
	if data == nil {
		data = map[string]any{}
	}
	return &entity.Activity{
		ID:         uuid.New().String(),
		UserID:     userID,
		Type:       activityType,
		MessageKey: messageKey,
		Data:       data,
		Timestamp:  now,
		Read:       false,
	}
}

const defaultFeedLimit = 10

// FeedUseCase feed de actividad reciente (solo lectura).
type FeedUseCase struct {
	repo repository.ActivityRepository
}

// NewFeedUseCase construye el caso de uso.
func NewFeedUseCase(repo repository.ActivityRepository) *FeedUseCase {
	return &FeedUseCase{repo: repo}
}

// Recent devuelve las últimas actividades del usuario, más reciente primero.
func (uc *FeedUseCase) Recent(ctx context.Context, userID string, limit int) (*dto.ActivityListResponse, error) {
	if limit <= 0 {
		limit = defaultFeedLimit
	}
	list, err := uc.repo.ListRecent(userID, limit)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ActivityResponse, 0, len(list))
	for _, a := range list {
		items = append(items, dto.ActivityResponse{
			ID:         a.ID,
			Type:       a.Type,
			MessageKey: a.MessageKey,
			Data:       a.Data,
			Timestamp:  a.Timestamp,
			Read:       a.Read,
		})
	}
	return &dto.ActivityListResponse{Items: items}, nil
}
