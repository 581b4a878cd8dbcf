package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/portal-asistencia/internal/domain"
	"github.com/jhoicas/portal-asistencia/internal/domain/entity"
	"github.com/jhoicas/portal-asistencia/internal/domain/repository"
	"github.com/jhoicas/portal-asistencia/internal/infrastructure/memory"
)

var _ repository.Gateway = (*Store)(nil)

// DB es lo que Store necesita del pool: consultas y transacciones.
type DB interface {
	Querier
	Beginner
}

// Store expone los repositorios PostgreSQL como repository.Gateway para el servidor API.
type Store struct {
	users      *UserRepo
	attendance *AttendanceRepo
	inventory  *InventoryRepo
	tx         *TxRunner
}

// NewStore construye el Store sobre un pool (o pgxmock en pruebas).
func NewStore(db DB) *Store {
	return &Store{
		users:      NewUserRepository(db),
		attendance: NewAttendanceRepository(db),
		inventory:  NewInventoryRepository(db),
		tx:         NewTxRunner(db),
	}
}

func (s *Store) FetchUsers(ctx context.Context) ([]*entity.User, error) {
	return s.users.List(ctx)
}

func (s *Store) UpdateUser(ctx context.Context, user *entity.User) (*entity.User, error) {
	return s.users.Update(ctx, user)
}

func (s *Store) FetchAttendance(ctx context.Context) ([]*entity.AttendanceRecord, error) {
	return s.attendance.List(ctx)
}

// CreateAttendance completa ID, Timestamp y Date vacíos y fuerza el estado pendiente.
func (s *Store) CreateAttendance(ctx context.Context, draft *entity.AttendanceRecord) (*entity.AttendanceRecord, error) {
	if draft.UserID == "" {
		return nil, fmt.Errorf("attendance sin usuario: %w", domain.ErrInvalidInput)
	}
	rec := *draft
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}
	if rec.Date == "" {
		rec.Date = entity.DayOf(rec.Timestamp, time.Local)
	}
	rec.Status = entity.AttendancePending
	return s.attendance.Create(ctx, &rec)
}

func (s *Store) UpdateAttendanceStatus(ctx context.Context, id, status string) (*entity.AttendanceRecord, error) {
	return s.attendance.UpdateStatus(ctx, id, status)
}

func (s *Store) FetchInventory(ctx context.Context) ([]*entity.InventoryItem, error) {
	return s.inventory.List(ctx)
}

func (s *Store) UpdateInventoryItem(ctx context.Context, item *entity.InventoryItem) (*entity.InventoryItem, error) {
	return s.inventory.Update(ctx, item)
}

// Import carga un dataset completo en una sola transacción; si algo falla no queda nada a medias.
func (s *Store) Import(ctx context.Context, data memory.Dataset) error {
	return s.tx.Run(ctx, func(repos Repos) error {
		for _, u := range data.Users {
			if err := repos.Users.Upsert(ctx, u); err != nil {
				return fmt.Errorf("import user %s: %w", u.ID, err)
			}
		}
		for _, rec := range data.Attendance {
			if err := repos.Attendance.Upsert(ctx, rec); err != nil {
				return fmt.Errorf("import attendance %s: %w", rec.ID, err)
			}
		}
		for _, it := range data.Inventory {
			if err := repos.Inventory.Upsert(ctx, it); err != nil {
				return fmt.Errorf("import inventory item %s: %w", it.ID, err)
			}
		}
		return nil
	})
}
