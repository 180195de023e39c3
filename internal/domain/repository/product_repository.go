package repository

import "github.com/stockpilot/stockpilot-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByUserAndSKU(userID, sku string) (*entity.Product, error)
	Update(product *entity.Product) error
	ListByUser(userID string) ([]*entity.Product, error)
	Delete(id string) error
}
