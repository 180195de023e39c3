// Package apptest provee un almacén en memoria con semántica transaccional
// (commit/rollback por copia) para probar los casos de uso sin PostgreSQL.
// Los repos devuelven y guardan copias, igual que un driver real: mutar una
// entidad obtenida no toca el almacén hasta llamar Update.
package apptest

import (
	"context"
	"sort"

	"github.com/stockpilot/stockpilot-api/internal/application/ports"
	"github.com/stockpilot/stockpilot-api/internal/domain/entity"
)

// Store almacén en memoria compartido por todos los repos falsos.
type Store struct {
	Products    map[string]*entity.Product
	Inventories map[string]*entity.Inventory // clave: productID
	Orders      map[string]*entity.Order
	Suppliers   map[string]*entity.Supplier
	Activities  []*entity.Activity
	Movements   []*entity.StockMovement
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		Products:    map[string]*entity.Product{},
		Inventories: map[string]*entity.Inventory{},
		Orders:      map[string]*entity.Order{},
		Suppliers:   map[string]*entity.Supplier{},
	}
}

// Repos arma el juego de repositorios sobre el almacén.
func (s *Store) Repos() ports.TxRepos {
	return ports.TxRepos{
		Products:       &productRepo{s},
		Inventories:    &inventoryRepo{s},
		Orders:         &orderRepo{s},
		Suppliers:      &supplierRepo{s},
		Activities:     &activityRepo{s},
		StockMovements: &movementRepo{s},
	}
}

func (s *Store) snapshot() *Store {
	c := NewStore()
	for k, v := range s.Products {
		c.Products[k] = cloneProduct(v)
	}
	for k, v := range s.Inventories {
		c.Inventories[k] = cloneInventory(v)
	}
	for k, v := range s.Orders {
		c.Orders[k] = cloneOrder(v)
	}
	for k, v := range s.Suppliers {
		c.Suppliers[k] = cloneSupplier(v)
	}
	c.Activities = append(c.Activities, s.Activities...)
	c.Movements = append(c.Movements, s.Movements...)
	return c
}

func (s *Store) restore(from *Store) {
	s.Products = from.Products
	s.Inventories = from.Inventories
	s.Orders = from.Orders
	s.Suppliers = from.Suppliers
	s.Activities = from.Activities
	s.Movements = from.Movements
}

// TxRunner ejecuta fn sobre el almacén y lo restaura entero si fn falla,
// reproduciendo la atomicidad todo-o-nada de la transacción real.
type TxRunner struct {
	Store *Store
}

func (t *TxRunner) Run(ctx context.Context, fn func(r ports.TxRepos) error) error {
	snap := t.Store.snapshot()
	if err := fn(t.Store.Repos()); err != nil {
		t.Store.restore(snap)
		return err
	}
	return nil
}

var _ ports.TxRunner = (*TxRunner)(nil)

// CapturingBroadcaster acumula los eventos publicados para las aserciones.
type CapturingBroadcaster struct {
	Events []ports.Event
}

func (b *CapturingBroadcaster) Publish(e ports.Event) { b.Events = append(b.Events, e) }

func cloneProduct(p *entity.Product) *entity.Product {
	c := *p
	return &c
}

func cloneInventory(i *entity.Inventory) *entity.Inventory {
	c := *i
	return &c
}

func cloneOrder(o *entity.Order) *entity.Order {
	c := *o
	c.Items = append([]entity.OrderItem(nil), o.Items...)
	return &c
}

func cloneSupplier(s *entity.Supplier) *entity.Supplier {
	c := *s
	return &c
}

type productRepo struct{ s *Store }

func (r *productRepo) Create(p *entity.Product) error {
	r.s.Products[p.ID] = cloneProduct(p)
	return nil
}

func (r *productRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.s.Products[id]
	if !ok {
		return nil, nil
	}
	return cloneProduct(p), nil
}

func (r *productRepo) GetByUserAndSKU(userID, sku string) (*entity.Product, error) {
	for _, p := range r.s.Products {
		if p.UserID == userID && p.SKU == sku {
			return cloneProduct(p), nil
		}
	}
	return nil, nil
}

func (r *productRepo) Update(p *entity.Product) error {
	r.s.Products[p.ID] = cloneProduct(p)
	return nil
}

func (r *productRepo) ListByUser(userID string) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.s.Products {
		if p.UserID == userID {
			out = append(out, cloneProduct(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *productRepo) Delete(id string) error {
	delete(r.s.Products, id)
	return nil
}

type inventoryRepo struct{ s *Store }

func (r *inventoryRepo) get(productID, userID string) *entity.Inventory {
	inv, ok := r.s.Inventories[productID]
	if !ok || inv.UserID != userID {
		return nil
	}
	return cloneInventory(inv)
}

func (r *inventoryRepo) GetByProduct(productID, userID string) (*entity.Inventory, error) {
	return r.get(productID, userID), nil
}

func (r *inventoryRepo) GetForUpdate(productID, userID string) (*entity.Inventory, error) {
	return r.get(productID, userID), nil
}

func (r *inventoryRepo) Create(inv *entity.Inventory) error {
	r.s.Inventories[inv.ProductID] = cloneInventory(inv)
	return nil
}

func (r *inventoryRepo) Update(inv *entity.Inventory) error {
	r.s.Inventories[inv.ProductID] = cloneInventory(inv)
	return nil
}

func (r *inventoryRepo) ListByUser(userID string) ([]*entity.Inventory, error) {
	var out []*entity.Inventory
	for _, inv := range r.s.Inventories {
		if inv.UserID == userID {
			out = append(out, cloneInventory(inv))
		}
	}
	return out, nil
}

func (r *inventoryRepo) DeleteByProduct(productID, userID string) error {
	if inv, ok := r.s.Inventories[productID]; ok && inv.UserID == userID {
		delete(r.s.Inventories, productID)
	}
	return nil
}

type orderRepo struct{ s *Store }

func (r *orderRepo) Create(o *entity.Order) error {
	r.s.Orders[o.ID] = cloneOrder(o)
	return nil
}

func (r *orderRepo) GetByID(id string) (*entity.Order, error) {
	o, ok := r.s.Orders[id]
	if !ok {
		return nil, nil
	}
	return cloneOrder(o), nil
}

func (r *orderRepo) GetForUpdate(id string) (*entity.Order, error) {
	return r.GetByID(id)
}

func (r *orderRepo) Update(o *entity.Order) error {
	r.s.Orders[o.ID] = cloneOrder(o)
	return nil
}

func (r *orderRepo) ListByUser(userID string) ([]*entity.Order, error) {
	var out []*entity.Order
	for _, o := range r.s.Orders {
		if o.UserID == userID {
			out = append(out, cloneOrder(o))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *orderRepo) Delete(id string) error {
	delete(r.s.Orders, id)
	return nil
}

type supplierRepo struct{ s *Store }

func (r *supplierRepo) Create(sup *entity.Supplier) error {
	r.s.Suppliers[sup.ID] = cloneSupplier(sup)
	return nil
}

func (r *supplierRepo) GetByID(id string) (*entity.Supplier, error) {
	sup, ok := r.s.Suppliers[id]
	if !ok {
		return nil, nil
	}
	return cloneSupplier(sup), nil
}

func (r *supplierRepo) Update(sup *entity.Supplier) error {
	r.s.Suppliers[sup.ID] = cloneSupplier(sup)
	return nil
}

func (r *supplierRepo) ListByUser(userID string) ([]*entity.Supplier, error) {
	var out []*entity.Supplier
	for _, sup := range r.s.Suppliers {
		if sup.UserID == userID {
			out = append(out, cloneSupplier(sup))
		}
	}
	return out, nil
}

func (r *supplierRepo) Delete(id string) error {
	delete(r.s.Suppliers, id)
	return nil
}

type activityRepo struct{ s *Store }

func (r *activityRepo) Create(a *entity.Activity) error {
	r.s.Activities = append(r.s.Activities, a)
	return nil
}

func (r *activityRepo) ListRecent(userID string, limit int) ([]*entity.Activity, error) {
	var out []*entity.Activity
	for i := len(r.s.Activities) - 1; i >= 0 && len(out) < limit; i-- {
		if r.s.Activities[i].UserID == userID {
			out = append(out, r.s.Activities[i])
		}
	}
	return out, nil
}

type movementRepo struct{ s *Store }

func (r *movementRepo) Create(m *entity.StockMovement) error {
	r.s.Movements = append(r.s.Movements, m)
	return nil
}

func (r *movementRepo) ListByProduct(productID, userID string, limit int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for i := len(r.s.Movements) - 1; i >= 0 && len(out) < limit; i-- {
		m := r.s.Movements[i]
		if m.UserID == userID && m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *movementRepo) ListByUser(userID string, limit int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for i := len(r.s.Movements) - 1; i >= 0 && len(out) < limit; i-- {
		if r.s.Movements[i].UserID == userID {
			out = append(out, r.s.Movements[i])
		}
	}
	return out, nil
}
