package postgres

import (
	"context"
	"fmt"

	"github.com/stockpilot/stockpilot-api/internal/domain/entity"
	"github.com/stockpilot/stockpilot-api/internal/domain/repository"
)

var _ repository.ActivityRepository = (*ActivityRepo)(nil)

// ActivityRepo implementación del puerto ActivityRepository sobre PostgreSQL.
// El registro es append-only; Data se guarda como JSONB.
type ActivityRepo struct {
	q Querier
}

// NewActivityRepository construye el adaptador. Pasar pool o tx (Querier).
func NewActivityRepository(q Querier) *ActivityRepo {
	return &ActivityRepo{q: q}
}

// Create persiste una actividad.
func (r *ActivityRepo) Create(activity *entity.Activity) error {
	query := `
		INSERT INTO activities (id, user_id, type, message_key, data, ts, read)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		activity.ID, activity.UserID, activity.Type, activity.MessageKey,
		activity.Data, activity.Timestamp, activity.Read,
	)
	if err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

// ListRecent devuelve las últimas actividades del usuario, más reciente primero.
func (r *ActivityRepo) ListRecent(userID string, limit int) ([]*entity.Activity, error) {
	query := `
		SELECT id, user_id, type, message_key, data, ts, read
		FROM activities WHERE user_id = $1 ORDER BY ts DESC LIMIT $2`
	rows, err := r.q.Query(context.Background(), query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	defer rows.Close()
	var list []*entity.Activity
	for rows.Next() {
		var a entity.Activity
		if err := rows.Scan(&a.ID, &a.UserID, &a.Type, &a.MessageKey, &a.Data, &a.Timestamp, &a.Read); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
