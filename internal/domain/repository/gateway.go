package repository

import (
	"context"

	"github.com/jhoicas/portal-asistencia/internal/domain/entity"
)

// UserGateway expone las identidades del backend.
type UserGateway interface {
	FetchUsers(ctx context.Context) ([]*entity.User, error)
	UpdateUser(ctx context.Context, user *entity.User) (*entity.User, error)
}

// AttendanceGateway es el contrato de persistencia del que depende el motor de asistencia.
// CreateAttendance recibe el borrador armado por el cliente; UserID es obligatorio y el
// backend completa ID, Date y Timestamp si vienen vacíos. El registro devuelto es el autoritativo.
type AttendanceGateway interface {
	FetchAttendance(ctx context.Context) ([]*entity.AttendanceRecord, error)
	CreateAttendance(ctx context.Context, draft *entity.AttendanceRecord) (*entity.AttendanceRecord, error)
	UpdateAttendanceStatus(ctx context.Context, id, status string) (*entity.AttendanceRecord, error)
}

// InventoryGateway expone el inventario del backend.
type InventoryGateway interface {
	FetchInventory(ctx context.Context) ([]*entity.InventoryItem, error)
	UpdateInventoryItem(ctx context.Context, item *entity.InventoryItem) (*entity.InventoryItem, error)
}

// Gateway agrupa los tres puertos; lo implementan el cliente HTTP, el mock en memoria,
// los datos semilla y el almacenamiento PostgreSQL del servidor.
type Gateway interface {
	UserGateway
	AttendanceGateway
	InventoryGateway
}
