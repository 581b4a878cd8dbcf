package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/portal-asistencia/internal/domain/entity"
)

// InventoryItemResponse artículo tal como viaja en GET /inventory.
type InventoryItemResponse struct {
	ID        string          `json:"id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// UpdateInventoryItemRequest body de PUT /inventory/{id}; los campos ausentes no cambian.
type UpdateInventoryItemRequest struct {
	SKU       *string          `json:"sku" validate:"omitempty,min=1,max=100"`
	Name      *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Category  *string          `json:"category" validate:"omitempty,max=100"`
	Quantity  *decimal.Decimal `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unitPrice"`
}

// NewInventoryItemResponse mapea la entidad al formato de transporte.
func NewInventoryItemResponse(it *entity.InventoryItem) InventoryItemResponse {
	return InventoryItemResponse{
		ID:        it.ID,
		SKU:       it.SKU,
		Name:      it.Name,
		Category:  it.Category,
		Quantity:  it.Quantity,
		UnitPrice: it.UnitPrice,
		UpdatedAt: it.UpdatedAt,
	}
}

// ToEntity mapea el formato de transporte a la entidad.
func (r InventoryItemResponse) ToEntity() *entity.InventoryItem {
	return &entity.InventoryItem{
		ID:        r.ID,
		SKU:       r.SKU,
		Name:      r.Name,
		Category:  r.Category,
		Quantity:  r.Quantity,
		UnitPrice: r.UnitPrice,
		UpdatedAt: r.UpdatedAt,
	}
}

// NewUpdateInventoryItemRequest arma el body completo a partir de la entidad.
func NewUpdateInventoryItemRequest(it *entity.InventoryItem) UpdateInventoryItemRequest {
	return UpdateInventoryItemRequest{
		SKU:       &it.SKU,
		Name:      &it.Name,
		Category:  &it.Category,
		Quantity:  &it.Quantity,
		UnitPrice: &it.UnitPrice,
	}
}

// Apply copia sobre it los campos presentes.
func (in UpdateInventoryItemRequest) Apply(it *entity.InventoryItem) {
	if in.SKU != nil {
		it.SKU = *in.SKU
	}
	if in.Name != nil {
		it.Name = *in.Name
	}
	if in.Category != nil {
		it.Category = *in.Category
	}
	if in.Quantity != nil {
		it.Quantity = *in.Quantity
	}
	if in.UnitPrice != nil {
		it.UnitPrice = *in.UnitPrice
	}
}
