package memory

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/portal-asistencia/internal/domain/entity"
)

// DefaultDataset datos de ejemplo de la variante mock del portal.
func DefaultDataset() Dataset {
	created := time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC)
	return Dataset{
		Users: []*entity.User{
			{ID: "admin-1", Name: "Laura Gómez", Email: "laura.gomez@empresa.co", Position: "Gerente", Role: entity.RoleAdmin, Status: entity.UserStatusActive, CreatedAt: created, UpdatedAt: created},
			{ID: "emp-1", Name: "Andrés Pérez", Email: "andres.perez@empresa.co", Position: "Bodeguero", Role: entity.RoleEmployee, Status: entity.UserStatusActive, CreatedAt: created, UpdatedAt: created},
			{ID: "emp-2", Name: "Camila Ríos", Email: "camila.rios@empresa.co", Position: "Vendedora", Role: entity.RoleEmployee, Status: entity.UserStatusActive, CreatedAt: created, UpdatedAt: created},
			{ID: "emp-3", Name: "Óscar Díaz", Email: "oscar.diaz@empresa.co", Position: "Vendedor", Role: entity.RoleEmployee, Status: entity.UserStatusTerminated, CreatedAt: created, UpdatedAt: created},
		},
		Attendance: []*entity.AttendanceRecord{
			{ID: "att-1", UserID: "emp-1", Date: "2024-07-26", Timestamp: time.Date(2024, 7, 26, 13, 2, 0, 0, time.UTC), Status: entity.AttendanceApproved},
			{ID: "att-2", UserID: "emp-2", Date: "2024-07-26", Timestamp: time.Date(2024, 7, 26, 13, 15, 0, 0, time.UTC), Status: entity.AttendanceRejected},
			{ID: "att-3", UserID: "emp-2", Date: "2024-07-27", Timestamp: time.Date(2024, 7, 27, 12, 58, 0, 0, time.UTC), Status: entity.AttendancePending},
		},
		Inventory: []*entity.InventoryItem{
			{ID: "inv-1", SKU: "PAP-001", Name: "Resma papel carta", Category: "Papelería", Quantity: decimal.NewFromInt(40), UnitPrice: decimal.RequireFromString("18500"), UpdatedAt: created},
			{ID: "inv-2", SKU: "TON-014", Name: "Tóner impresora", Category: "Insumos", Quantity: decimal.NewFromInt(3), UnitPrice: decimal.RequireFromString("215000"), UpdatedAt: created},
			{ID: "inv-3", SKU: "CAF-002", Name: "Café molido 500 g", Category: "Cafetería", Quantity: decimal.NewFromInt(12), UnitPrice: decimal.RequireFromString("24900.50"), UpdatedAt: created},
			{ID: "inv-4", SKU: "GUA-100", Name: "Guantes de nitrilo", Category: "Seguridad", Quantity: decimal.Zero, UnitPrice: decimal.RequireFromString("32000"), UpdatedAt: created},
		},
	}
}
