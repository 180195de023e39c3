// Package catalog contiene los casos de uso CRUD de productos y proveedores.
// La creación y el borrado de un producto arrastran su registro de inventario
// en la misma transacción (nunca queda un producto sin inventario, ni un
// inventario huérfano).
package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stockpilot/stockpilot-api/internal/application/activity"
	"github.com/stockpilot/stockpilot-api/internal/application/dto"
	"github.com/stockpilot/stockpilot-api/internal/application/ports"
	"github.com/stockpilot/stockpilot-api/internal/domain"
	"github.com/stockpilot/stockpilot-api/internal/domain/entity"
	"github.com/stockpilot/stockpilot-api/pkg/sku"
)

// Ubicación por defecto al crear un producto con inventario inicial.
const defaultCreateLocation = "A1-001"

// ProductUseCase casos de uso de producto. El stock actual no se toca desde
// aquí: se mueve solo por ajustes manuales (inventory) o pedidos (orders).
type ProductUseCase struct {
	tx     ports.TxRunner
	events ports.EventBroadcaster
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(tx ports.TxRunner, events ports.EventBroadcaster) *ProductUseCase {
	return &ProductUseCase{tx: tx, events: events}
}

// Create crea el producto, su inventario inicial y la actividad en una sola
// transacción. MaxStock por defecto es MinStock × 5; el SKU se autogenera de
// nombre+categoría si no viene.
func (uc *ProductUseCase) Create(ctx context.Context, userID string, in dto.CreateProductRequest) (*dto.ProductWithInventoryResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Price.IsNegative() || in.Cost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if in.MinStock < 0 || in.MaxStock < 0 || in.InitialStock < 0 {
		return nil, domain.ErrInvalidInput
	}

	maxStock := in.MaxStock
	if maxStock == 0 {
		maxStock = in.MinStock * 5
	}
	code := in.SKU
	if code == "" {
		code = sku.Generate(in.Name, in.Category)
	}
	location := in.Location
	if location == "" {
		location = defaultCreateLocation
	}

	now := time.Now()
	product := &entity.Product{
		ID:        uuid.New().String(),
		UserID:    userID,
		SKU:       code,
		Name:      in.Name,
		Category:  in.Category,
		Price:     in.Price,
		Cost:      in.Cost,
		Supplier:  in.Supplier,
		MinStock:  in.MinStock,
		MaxStock:  maxStock,
		CreatedAt: now,
		UpdatedAt: now,
	}
	inv := &entity.Inventory{
		ID:            uuid.New().String(),
		ProductID:     product.ID,
		UserID:        userID,
		CurrentStock:  in.InitialStock,
		ReservedStock: 0,
		MinStock:      in.MinStock,
		MaxStock:      maxStock,
		Location:      location,
		LastMovement:  now,
		LastUpdated:   now,
	}
	inv.Recompute()

	err := uc.tx.Run(ctx, func(r ports.TxRepos) error {
		existing, err := r.Products.GetByUserAndSKU(userID, code)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicate
		}
		if err := r.Products.Create(product); err != nil {
			return err
		}
		if err := r.Inventories.Create(inv); err != nil {
			return err
		}
		return r.Activities.Create(activity.New(
			userID, entity.ActivityTypeProduct, activity.KeyProductAdded,
			map[string]any{"name": product.Name}, now,
		))
	})
	if err != nil {
		return nil, err
	}

	out := toProductWithInventoryResponse(product, inv)
	uc.events.Publish(ports.Event{Type: ports.EventProductCreated, UserID: userID, Payload: out})
	return out, nil
}

// Update actualiza los campos del producto y los campos de inventario
// editables desde el catálogo (MinStock, MaxStock, Location). No toca
// CurrentStock.
func (uc *ProductUseCase) Update(ctx context.Context, userID, productID string, in dto.UpdateProductRequest) (*dto.ProductWithInventoryResponse, error) {
	if in.Price != nil && in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if in.Cost != nil && in.Cost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if in.MinStock != nil && *in.MinStock < 0 {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var product *entity.Product
	var inv *entity.Inventory

	err := uc.tx.Run(ctx, func(r ports.TxRepos) error {
		var err error
		product, err = r.Products.GetByID(productID)
		if err != nil {
			return err
		}
		if product == nil || product.UserID != userID {
			return domain.ErrNotFound
		}

		if in.Name != nil {
			product.Name = *in.Name
		}
		if in.Category != nil {
			product.Category = *in.Category
		}
		if in.Price != nil {
			product.Price = *in.Price
		}
		if in.Cost != nil {
			product.Cost = *in.Cost
		}
		if in.Supplier != nil {
			product.Supplier = *in.Supplier
		}
		if in.MinStock != nil {
			product.MinStock = *in.MinStock
		}
		if in.MaxStock != nil {
			product.MaxStock = *in.MaxStock
		}
		product.UpdatedAt = now
		if err := r.Products.Update(product); err != nil {
			return err
		}

		inv, err = r.Inventories.GetForUpdate(productID, userID)
		if err != nil {
			return err
		}
		if inv != nil {
			if in.MinStock != nil {
				inv.MinStock = *in.MinStock
			}
			if in.MaxStock != nil {
				inv.MaxStock = *in.MaxStock
			}
			if in.Location != nil {
				inv.Location = *in.Location
			}
			inv.LastUpdated = now
			if err := r.Inventories.Update(inv); err != nil {
				return err
			}
		}

		return r.Activities.Create(activity.New(
			userID, entity.ActivityTypeProduct, activity.KeyProductUpdated,
			map[string]any{"name": product.Name}, now,
		))
	})
	if err != nil {
		return nil, err
	}

	out := toProductWithInventoryResponse(product, inv)
	uc.events.Publish(ports.Event{Type: ports.EventProductUpdated, UserID: userID, Payload: out})
	return out, nil
}

// Delete elimina el producto y su inventario en la misma transacción.
// Falla limpio (sin escrituras) si el producto no existe.
func (uc *ProductUseCase) Delete(ctx context.Context, userID, productID string) error {
	now := time.Now()
	var name string

	err := uc.tx.Run(ctx, func(r ports.TxRepos) error {
		product, err := r.Products.GetByID(productID)
		if err != nil {
			return err
		}
		if product == nil || product.UserID != userID {
			return domain.ErrNotFound
		}
		name = product.Name

		if err := r.Inventories.DeleteByProduct(productID, userID); err != nil {
			return err
		}
		if err := r.Products.Delete(productID); err != nil {
			return err
		}
		return r.Activities.Create(activity.New(
			userID, entity.ActivityTypeProduct, activity.KeyProductDeleted,
			map[string]any{"name": name}, now,
		))
	})
	if err != nil {
		return err
	}

	uc.events.Publish(ports.Event{Type: ports.EventProductDeleted, UserID: userID, Payload: map[string]string{"id": productID, "name": name}})
	return nil
}

func toProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
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
	}
}

func toInventoryResponse(inv *entity.Inventory) dto.InventoryResponse {
	if inv == nil {
		return dto.InventoryResponse{Location: entity.DefaultLocation}
	}
	return dto.InventoryResponse{
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

func toProductWithInventoryResponse(p *entity.Product, inv *entity.Inventory) *dto.ProductWithInventoryResponse {
	return &dto.ProductWithInventoryResponse{
		ProductResponse: toProductResponse(p),
		Inventory:       toInventoryResponse(inv),
	}
}
