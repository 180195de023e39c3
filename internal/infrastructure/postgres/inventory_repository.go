package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/stockpilot/stockpilot-api/internal/domain/entity"
	"github.com/stockpilot/stockpilot-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

const inventoryColumns = `id, product_id, user_id, current_stock, reserved_stock, available_stock, min_stock, max_stock, location, last_movement, last_updated`

// InventoryRepo implementación del puerto InventoryRepository sobre PostgreSQL.
// Las mutaciones de stock pasan por GetForUpdate dentro de una transacción: el
// FOR UPDATE cierra la ventana de carrera entre leer el stock y escribirlo.
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

// GetByProduct obtiene el registro de inventario de un producto (sin lock).
func (r *InventoryRepo) GetByProduct(productID, userID string) (*entity.Inventory, error) {
	return r.get(productID, userID, false)
}

// GetForUpdate obtiene el registro con la fila bloqueada (SELECT ... FOR UPDATE).
// Devuelve nil sin error si el producto no tiene inventario registrado.
func (r *InventoryRepo) GetForUpdate(productID, userID string) (*entity.Inventory, error) {
	return r.get(productID, userID, true)
}

func (r *InventoryRepo) get(productID, userID string, forUpdate bool) (*entity.Inventory, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventories WHERE product_id = $1 AND user_id = $2`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var inv entity.Inventory
	err := r.q.QueryRow(context.Background(), query, productID, userID).Scan(
		&inv.ID, &inv.ProductID, &inv.UserID, &inv.CurrentStock, &inv.ReservedStock,
		&inv.AvailableStock, &inv.MinStock, &inv.MaxStock, &inv.Location,
		&inv.LastMovement, &inv.LastUpdated,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory: %w", err)
	}
	return &inv, nil
}

// Create persiste un registro de inventario nuevo (1:1 con el producto).
func (r *InventoryRepo) Create(inv *entity.Inventory) error {
	query := `
		INSERT INTO inventories (` + inventoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		inv.ID, inv.ProductID, inv.UserID, inv.CurrentStock, inv.ReservedStock,
		inv.AvailableStock, inv.MinStock, inv.MaxStock, inv.Location,
		inv.LastMovement, inv.LastUpdated,
	)
	if err != nil {
		return fmt.Errorf("insert inventory: %w", err)
	}
	return nil
}

// Update sobreescribe el registro completo (stocks, umbrales y ubicación).
func (r *InventoryRepo) Update(inv *entity.Inventory) error {
	query := `
		UPDATE inventories SET current_stock = $2, reserved_stock = $3, available_stock = $4,
			min_stock = $5, max_stock = $6, location = $7, last_movement = $8, last_updated = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		inv.ID, inv.CurrentStock, inv.ReservedStock, inv.AvailableStock,
		inv.MinStock, inv.MaxStock, inv.Location, inv.LastMovement, inv.LastUpdated,
	)
	if err != nil {
		return fmt.Errorf("update inventory: %w", err)
	}
	return nil
}

// ListByUser lista todos los registros de inventario del usuario.
func (r *InventoryRepo) ListByUser(userID string) ([]*entity.Inventory, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventories WHERE user_id = $1`
	rows, err := r.q.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("list inventories: %w", err)
	}
	defer rows.Close()
	var list []*entity.Inventory
	for rows.Next() {
		var inv entity.Inventory
		if err := rows.Scan(&inv.ID, &inv.ProductID, &inv.UserID, &inv.CurrentStock,
			&inv.ReservedStock, &inv.AvailableStock, &inv.MinStock, &inv.MaxStock,
			&inv.Location, &inv.LastMovement, &inv.LastUpdated); err != nil {
			return nil, fmt.Errorf("scan inventory: %w", err)
		}
		list = append(list, &inv)
	}
	return list, rows.Err()
}

// DeleteByProduct elimina el registro de inventario de un producto.
func (r *InventoryRepo) DeleteByProduct(productID, userID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM inventories WHERE product_id = $1 AND user_id = $2`, productID, userID)
	if err != nil {
		return fmt.Errorf("delete inventory: %w", err)
	}
	return nil
}
