// Package views expone las consultas de solo lectura del dashboard: el listado
// de productos con inventario y los agregados de stock. El cálculo vive en
// domain/views; aquí solo se cargan los snapshots y se mapea a DTOs.
package views

import (
	"context"

	"github.com/stockpilot/stockpilot-api/internal/application/dto"
	"github.com/stockpilot/stockpilot-api/internal/domain"
	"github.com/stockpilot/stockpilot-api/internal/domain/entity"
	"github.com/stockpilot/stockpilot-api/internal/domain/repository"
	domainviews "github.com/stockpilot/stockpilot-api/internal/domain/views"
)

// UseCase consultas derivadas del catálogo y el inventario. No escribe nada.
type UseCase struct {
	products    repository.ProductRepository
	inventories repository.InventoryRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(products repository.ProductRepository, inventories repository.InventoryRepository) *UseCase {
	return &UseCase{products: products, inventories: inventories}
}

func (uc *UseCase) load(userID string) ([]domainviews.ProductWithInventory, error) {
	products, err := uc.products.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	inventories, err := uc.inventories.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	return domainviews.Join(products, inventories), nil
}

// ProductByID obtiene un producto del usuario con su inventario.
func (uc *UseCase) ProductByID(ctx context.Context, userID, productID string) (*dto.ProductWithInventoryResponse, error) {
	product, err := uc.products.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil || product.UserID != userID {
		return nil, domain.ErrNotFound
	}
	inv, err := uc.inventories.GetByProduct(productID, userID)
	if err != nil {
		return nil, err
	}
	joined := domainviews.Join([]*entity.Product{product}, invSlice(inv))
	return &toProductList(joined).Items[0], nil
}

func invSlice(inv *entity.Inventory) []*entity.Inventory {
	if inv == nil {
		return nil
	}
	return []*entity.Inventory{inv}
}

// ProductsWithInventory lista los productos del usuario con su inventario,
// más recientes primero. Un producto sin inventario sale con stock en cero.
func (uc *UseCase) ProductsWithInventory(ctx context.Context, userID string) (*dto.ProductListResponse, error) {
	items, err := uc.load(userID)
	if err != nil {
		return nil, err
	}
	return toProductList(items), nil
}

// DashboardStats calcula el resumen del dashboard.
func (uc *UseCase) DashboardStats(ctx context.Context, userID string) (*dto.DashboardStatsResponse, error) {
	items, err := uc.load(userID)
	if err != nil {
		return nil, err
	}
	stats := domainviews.Stats(items)
	return &dto.DashboardStatsResponse{
		TotalProducts:       stats.TotalProducts,
		LowStockCount:       stats.LowStockCount,
		OutOfStockCount:     stats.OutOfStockCount,
		TotalInventoryValue: stats.TotalInventoryValue.Round(2),
	}, nil
}

// LowStock lista los productos con stock bajo (0 < actual ≤ mínimo).
func (uc *UseCase) LowStock(ctx context.Context, userID string) (*dto.ProductListResponse, error) {
	items, err := uc.load(userID)
	if err != nil {
		return nil, err
	}
	return toProductList(domainviews.LowStock(items)), nil
}

// OutOfStock lista los productos agotados.
func (uc *UseCase) OutOfStock(ctx context.Context, userID string) (*dto.ProductListResponse, error) {
	items, err := uc.load(userID)
	if err != nil {
		return nil, err
	}
	return toProductList(domainviews.OutOfStock(items)), nil
}

func toProductList(items []domainviews.ProductWithInventory) *dto.ProductListResponse {
	resp := &dto.ProductListResponse{Items: make([]dto.ProductWithInventoryResponse, 0, len(items)), Total: len(items)}
	for _, it := range items {
		p, inv := it.Product, it.Inventory
		resp.Items = append(resp.Items, dto.ProductWithInventoryResponse{
			ProductResponse: dto.ProductResponse{
				ID:        p.ID,
				SKU:       p.SKU,
				Name:      p.Name,
				Category:  p.Category,
				Price:     p.Price,
				Cost:      p.Cost,
				Supplier:  p.Supplier,
				MinStock:  p.MinStock,
				MaxStock:  p.MaxStock,
				CreatedAt: p.CreatedAt,
				UpdatedAt: p.UpdatedAt,
			},
			Inventory: dto.InventoryResponse{
				ProductID:      inv.ProductID,
				CurrentStock:   inv.CurrentStock,
				ReservedStock:  inv.ReservedStock,
				AvailableStock: inv.AvailableStock,
				MinStock:       inv.MinStock,
				MaxStock:       inv.MaxStock,
				Location:       inv.Location,
				LastMovement:   inv.LastMovement,
				LastUpdated:    inv.LastUpdated,
			},
		})
	}
	return resp
}
