package repository

import "github.com/stockpilot/stockpilot-api/internal/domain/entity"

// ActivityRepository define el puerto para el registro de actividades.
// Append-only: no hay Update ni Delete en el flujo normal.
type ActivityRepository interface {
	Create(activity *entity.Activity) error
	ListRecent(userID string, limit int) ([]*entity.Activity, error)
}
