package ports

import (
	"context"

	"github.com/stockpilot/stockpilot-api/internal/domain/repository"
)

// TxRepos repositorios atados a una misma transacción de base de datos.
// Todo lo que un caso de uso escriba a través de estos repos se confirma o
// revierte en bloque (el equivalente del batch atómico del diseño original).
type TxRepos struct {
	Products       repository.ProductRepository
	Inventories    repository.InventoryRepository
	Orders         repository.OrderRepository
	Suppliers      repository.SupplierRepository
	Activities     repository.ActivityRepository
	StockMovements repository.StockMovementRepository
}

// TxRunner ejecuta fn dentro de una transacción: Commit si fn retorna nil,
// Rollback si retorna error. Garantiza la atomicidad de las operaciones
// multi-documento del ledger (pedido + inventario + actividad).
type TxRunner interface {
	Run(ctx context.Context, fn func(r TxRepos) error) error
}
