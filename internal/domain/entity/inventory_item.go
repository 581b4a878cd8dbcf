package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem representa un artículo del inventario de la empresa.
type InventoryItem struct {
	ID        string
	SKU       string
	Name      string
	Category  string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	UpdatedAt time.Time
}

// IsLowStock informa si la cantidad está en o por debajo del umbral.
func (i *InventoryItem) IsLowStock(threshold decimal.Decimal) bool {
	return i.Quantity.LessThanOrEqual(threshold)
}
