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
	"github.com/stockpilot/stockpilot-api/internal/domain/repository"
)

// SupplierUseCase CRUD de proveedores. Sin interacción con el ledger: los
// productos referencian al proveedor por nombre y un rename no se propaga
// (limitación documentada en DESIGN.md).
type SupplierUseCase struct {
	tx        ports.TxRunner
	suppliers repository.SupplierRepository // lecturas fuera de transacción
	events    ports.EventBroadcaster
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(tx ports.TxRunner, suppliers repository.SupplierRepository, events ports.EventBroadcaster) *SupplierUseCase {
	return &SupplierUseCase{tx: tx, suppliers: suppliers, events: events}
}

func validSupplierStatus(s string) bool {
	return s == entity.SupplierStatusActive || s == entity.SupplierStatusInactive || s == entity.SupplierStatusPending
}

// Create crea un proveedor y su actividad en una transacción.
func (uc *SupplierUseCase) Create(ctx context.Context, userID string, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	if in.Name == "" || in.PaymentTerms < 0 {
		return nil, domain.ErrInvalidInput
	}
	status := in.Status
	if status == "" {
		status = entity.SupplierStatusActive
	}
	if !validSupplierStatus(status) {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	supplier := &entity.Supplier{
		ID:           uuid.New().String(),
		UserID:       userID,
		Name:         in.Name,
		ContactName:  in.ContactName,
		Email:        in.Email,
		Phone:        in.Phone,
		Address:      in.Address,
		PaymentTerms: in.PaymentTerms,
		Status:       status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err := uc.tx.Run(ctx, func(r ports.TxRepos) error {
		if err := r.Suppliers.Create(supplier); err != nil {
			return err
		}
		return r.Activities.Create(activity.New(
			userID, entity.ActivityTypeSupplier, activity.KeySupplierAdded,
			map[string]any{"name": supplier.Name}, now,
		))
	})
	if err != nil {
		return nil, err
	}

	out := toSupplierResponse(supplier)
	uc.events.Publish(ports.Event{Type: ports.EventSupplierChanged, UserID: userID, Payload: out})
	return out, nil
}

// GetByID obtiene un proveedor del usuario.
func (uc *SupplierUseCase) GetByID(ctx context.Context, userID, id string) (*dto.SupplierResponse, error) {
	supplier, err := uc.suppliers.GetByID(id)
	if err != nil {
		return nil, err
	}
	if supplier == nil || supplier.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return toSupplierResponse(supplier), nil
}

// List lista los proveedores del usuario.
func (uc *SupplierUseCase) List(ctx context.Context, userID string) (*dto.SupplierListResponse, error) {
	list, err := uc.suppliers.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSupplierResponse(s))
	}
	return &dto.SupplierListResponse{Items: items}, nil
}

// Update actualiza un proveedor.
func (uc *SupplierUseCase) Update(ctx context.Context, userID, id string, in dto.UpdateSupplierRequest) (*dto.SupplierResponse, error) {
	if in.Status != nil && !validSupplierStatus(*in.Status) {
		return nil, domain.ErrInvalidInput
	}
	if in.PaymentTerms != nil && *in.PaymentTerms < 0 {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var supplier *entity.Supplier

	err := uc.tx.Run(ctx, func(r ports.TxRepos) error {
		var err error
		supplier, err = r.Suppliers.GetByID(id)
		if err != nil {
			return err
		}
		if supplier == nil || supplier.UserID != userID {
			return domain.ErrNotFound
		}

		if in.Name != nil {
			supplier.Name = *in.Name
		}
		if in.ContactName != nil {
			supplier.ContactName = *in.ContactName
		}
		if in.Email != nil {
			supplier.Email = *in.Email
		}
		if in.Phone != nil {
			supplier.Phone = *in.Phone
		}
		if in.Address != nil {
			supplier.Address = *in.Address
		}
		if in.PaymentTerms != nil {
			supplier.PaymentTerms = *in.PaymentTerms
		}
		if in.Status != nil {
			supplier.Status = *in.Status
		}
		supplier.UpdatedAt = now
		if err := r.Suppliers.Update(supplier); err != nil {
			return err
		}
		return r.Activities.Create(activity.New(
			userID, entity.ActivityTypeSupplier, activity.KeySupplierUpdated,
			map[string]any{"name": supplier.Name}, now,
		))
	})
	if err != nil {
		return nil, err
	}

	out := toSupplierResponse(supplier)
	uc.events.Publish(ports.Event{Type: ports.EventSupplierChanged, UserID: userID, Payload: out})
	return out, nil
}

// Delete elimina un proveedor. Los productos que lo referencian conservan el
// nombre como texto.
func (uc *SupplierUseCase) Delete(ctx context.Context, userID, id string) error {
	now := time.Now()
	var name string

	err := uc.tx.Run(ctx, func(r ports.TxRepos) error {
		supplier, err := r.Suppliers.GetByID(id)
		if err != nil {
			return err
		}
		if supplier == nil || supplier.UserID != userID {
			return domain.ErrNotFound
		}
		name = supplier.Name

		if err := r.Suppliers.Delete(id); err != nil {
			return err
		}
		return r.Activities.Create(activity.New(
			userID, entity.ActivityTypeSupplier, activity.KeySupplierDeleted,
			map[string]any{"name": name}, now,
		))
	})
	if err != nil {
		return err
	}

	uc.events.Publish(ports.Event{Type: ports.EventSupplierChanged, UserID: userID, Payload: map[string]string{"id": id, "name": name}})
	return nil
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{
		ID:           s.ID,
		Name:         s.Name,
		ContactName:  s.ContactName,
		Email:        s.Email,
		Phone:        s.Phone,
		Address:      s.Address,
		PaymentTerms: s.PaymentTerms,
		Status:       s.Status,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}
