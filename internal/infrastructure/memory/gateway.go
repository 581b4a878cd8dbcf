package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/portal-asistencia/internal/domain"
	"github.com/jhoicas/portal-asistencia/internal/domain/entity"
	"github.com/jhoicas/portal-asistencia/internal/domain/repository"
	"github.com/jhoicas/portal-asistencia/pkg/logger"
)

var _ repository.Gateway = (*Gateway)(nil)

// Dataset contenido inicial de un Gateway en memoria.
type Dataset struct {
	Users      []*entity.User
	Attendance []*entity.AttendanceRecord
	Inventory  []*entity.InventoryItem
}

// Gateway implementación en memoria del Gateway. Cada instancia es dueña de sus datos;
// el servidor API la comparte entre handlers, por eso protege el estado con un mutex.
type Gateway struct {
	mu         sync.Mutex
	users      []*entity.User
	attendance []*entity.AttendanceRecord
	inventory  []*entity.InventoryItem

	clock   domain.Clock
	loc     *time.Location
	latency time.Duration
	log     *logger.Logger
}

// Option configura un Gateway.
type Option func(*Gateway)

// WithClock fija el reloj usado para fechas y marcas de tiempo.
func WithClock(c domain.Clock) Option { return func(g *Gateway) { g.clock = c } }

// WithLocation fija la zona horaria del día calendario.
func WithLocation(loc *time.Location) Option { return func(g *Gateway) { g.loc = loc } }

// WithLatency simula la demora de red en cada operación.
func WithLatency(d time.Duration) Option { return func(g *Gateway) { g.latency = d } }

// WithLogger inyecta el logger.
func WithLogger(l *logger.Logger) Option { return func(g *Gateway) { g.log = l } }

// NewGateway construye el gateway con una copia profunda de data.
func NewGateway(data Dataset, opts ...Option) *Gateway {
	g := &Gateway{
		clock: domain.SystemClock{},
		loc:   time.Local,
		log:   logger.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.log = g.log.Named("memory_gateway")
	for _, u := range data.Users {
		g.users = append(g.users, cloneUser(u))
	}
	for _, r := range data.Attendance {
		g.attendance = append(g.attendance, cloneRecord(r))
	}
	for _, it := range data.Inventory {
		g.inventory = append(g.inventory, cloneItem(it))
	}
	return g
}

// FetchUsers devuelve copias de todos los usuarios.
func (g *Gateway) FetchUsers(ctx context.Context) ([]*entity.User, error) {
	if err := g.wait(ctx); err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]*entity.User, 0, len(g.users))
	for _, u := range g.users {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

// UpdateUser reemplaza el usuario con el mismo ID.
func (g *Gateway) UpdateUser(ctx context.Context, user *entity.User) (*entity.User, error) {
	if err := g.wait(ctx); err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	for i, u := range g.users {
		if u.ID == user.ID {
			updated := cloneUser(user)
			updated.CreatedAt = u.CreatedAt
			updated.UpdatedAt = g.clock.Now()
			g.users[i] = updated
			return cloneUser(updated), nil
		}
	}
	return nil, fmt.Errorf("usuario %s: %w", user.ID, domain.ErrNotFound)
}

// FetchAttendance devuelve copias de todos los registros en orden de inserción.
func (g *Gateway) FetchAttendance(ctx context.Context) ([]*entity.AttendanceRecord, error) {
	if err := g.wait(ctx); err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]*entity.AttendanceRecord, 0, len(g.attendance))
	for _, r := range g.attendance {
		out = append(out, cloneRecord(r))
	}
	return out, nil
}

// CreateAttendance agrega un registro pendiente. Completa ID, Date y Timestamp si faltan.
// No verifica duplicados: esa regla vive en el motor de asistencia.
func (g *Gateway) CreateAttendance(ctx context.Context, draft *entity.AttendanceRecord) (*entity.AttendanceRecord, error) {
	if draft == nil || draft.UserID == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := g.wait(ctx); err != nil {
		return nil, err
	}
	rec := cloneRecord(draft)
	now := g.clock.Now()
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = now
	}
	if rec.Date == "" {
		rec.Date = entity.DayOf(rec.Timestamp, g.loc)
	}
	rec.Status = entity.AttendancePending

	g.mu.Lock()
	g.attendance = append(g.attendance, rec)
	g.mu.Unlock()

	g.log.Debug().Str("record_id", rec.ID).Str("user_id", rec.UserID).Str("date", rec.Date).Msg("asistencia creada")
	return cloneRecord(rec), nil
}

// UpdateAttendanceStatus cambia el estado de un registro existente.
func (g *Gateway) UpdateAttendanceStatus(ctx context.Context, id, status string) (*entity.AttendanceRecord, error) {
	if !entity.ValidAttendanceStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	if err := g.wait(ctx); err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, r := range g.attendance {
		if r.ID == id {
			r.Status = status
			return cloneRecord(r), nil
		}
	}
	return nil, fmt.Errorf("asistencia %s: %w", id, domain.ErrNotFound)
}

// FetchInventory devuelve copias de todos los artículos.
func (g *Gateway) FetchInventory(ctx context.Context) ([]*entity.InventoryItem, error) {
	if err := g.wait(ctx); err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]*entity.InventoryItem, 0, len(g.inventory))
	for _, it := range g.inventory {
		out = append(out, cloneItem(it))
	}
	return out, nil
}

// UpdateInventoryItem reemplaza el artículo con el mismo ID.
func (g *Gateway) UpdateInventoryItem(ctx context.Context, item *entity.InventoryItem) (*entity.InventoryItem, error) {
	if err := g.wait(ctx); err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	for i, it := range g.inventory {
		if it.ID == item.ID {
			updated := cloneItem(item)
			updated.UpdatedAt = g.clock.Now()
			g.inventory[i] = updated
			return cloneItem(updated), nil
		}
	}
	return nil, fmt.Errorf("artículo %s: %w", item.ID, domain.ErrNotFound)
}

// wait simula la latencia configurada respetando la cancelación del contexto.
func (g *Gateway) wait(ctx context.Context) error {
	if g.latency <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(g.latency)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func cloneUser(u *entity.User) *entity.User {
	c := *u
	return &c
}

func cloneRecord(r *entity.AttendanceRecord) *entity.AttendanceRecord {
	c := *r
	return &c
}

func cloneItem(it *entity.InventoryItem) *entity.InventoryItem {
	c := *it
	return &c
}
