package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/portal-asistencia/internal/application/dto"
	"github.com/jhoicas/portal-asistencia/internal/domain"
	"github.com/jhoicas/portal-asistencia/internal/domain/entity"
	"github.com/jhoicas/portal-asistencia/internal/domain/repository"
)

// InventoryUseCase casos de uso de artículos de inventario.
type InventoryUseCase struct {
	store repository.InventoryGateway
}

// NewInventoryUseCase construye el caso de uso.
func NewInventoryUseCase(store repository.InventoryGateway) *InventoryUseCase {
	return &InventoryUseCase{store: store}
}

// List lista los artículos.
func (uc *InventoryUseCase) List(ctx context.Context) ([]dto.InventoryItemResponse, error) {
	items, err := uc.store.FetchInventory(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InventoryItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.NewInventoryItemResponse(it))
	}
	return out, nil
}

// Update actualiza un artículo. Cantidad y precio no pueden ser negativos.
func (uc *InventoryUseCase) Update(ctx context.Context, id string, in dto.UpdateInventoryItemRequest) (*dto.InventoryItemResponse, error) {
	items, err := uc.store.FetchInventory(ctx)
	if err != nil {
		return nil, err
	}
	var item *entity.InventoryItem
	for _, it := range items {
		if it.ID == id {
			item = it
			break
		}
	}
	if item == nil {
		return nil, fmt.Errorf("inventory item %s: %w", id, domain.ErrNotFound)
	}
	in.Apply(item)
	if item.Quantity.IsNegative() || item.UnitPrice.IsNegative() {
		return nil, fmt.Errorf("inventory item %s: cantidad y precio deben ser >= 0: %w", id, domain.ErrInvalidInput)
	}
	updated, err := uc.store.UpdateInventoryItem(ctx, item)
	if err != nil {
		return nil, err
	}
	resp := dto.NewInventoryItemResponse(updated)
	return &resp, nil
}
