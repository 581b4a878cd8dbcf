package portal

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/portal-asistencia/internal/application/attendance"
	"github.com/jhoicas/portal-asistencia/internal/application/session"
	"github.com/jhoicas/portal-asistencia/internal/domain"
	"github.com/jhoicas/portal-asistencia/internal/domain/entity"
	"github.com/jhoicas/portal-asistencia/internal/domain/repository"
)

// Summary resumen del tablero.
type Summary struct {
	Date             string
	TotalEmployees   int
	ActiveEmployees  int
	PresentToday     int
	PendingApprovals int
	InventoryItems   int
	LowStockItems    int
}

// Panel trabajo en curso propio: la marca de hoy (si existe) y el historial.
type Panel struct {
	User    entity.User
	Today   *entity.AttendanceRecord
	CanMark bool
	History []entity.AttendanceRecord
}

// Dashboard arma el tablero y el panel propio a partir del Store y del gateway.
type Dashboard struct {
	session   *session.Session
	engine    *attendance.Engine
	users     repository.UserGateway
	inventory repository.InventoryGateway
	lowStock  decimal.Decimal
}

// NewDashboard construye el tablero. lowStock es el umbral de existencias bajas (inclusive).
func NewDashboard(sess *session.Session, engine *attendance.Engine, users repository.UserGateway, inventory repository.InventoryGateway, lowStock int) *Dashboard {
	return &Dashboard{
		session:   sess,
		engine:    engine,
		users:     users,
		inventory: inventory,
		lowStock:  decimal.NewFromInt(int64(lowStock)),
	}
}

// Summary requiere CapViewDashboard. La asistencia se toma del Store sin recargar.
func (d *Dashboard) Summary(ctx context.Context) (*Summary, error) {
	if _, err := d.session.Require(session.CapViewDashboard); err != nil {
		return nil, err
	}
	users, err := d.users.FetchUsers(ctx)
	if err != nil {
		return nil, domain.AsGatewayError("fetch users", err)
	}
	items, err := d.inventory.FetchInventory(ctx)
	if err != nil {
		return nil, domain.AsGatewayError("fetch inventory", err)
	}

	store := d.engine.Store()
	today := d.engine.Today()
	out := &Summary{
		Date:             today,
		TotalEmployees:   len(users),
		PresentToday:     store.CountByDate(today),
		PendingApprovals: store.CountByStatus(entity.AttendancePending),
		InventoryItems:   len(items),
	}
	for _, u := range users {
		if u.IsActive() {
			out.ActiveEmployees++
		}
	}
	for _, it := range items {
		if it.IsLowStock(d.lowStock) {
			out.LowStockItems++
		}
	}
	return out, nil
}

// OwnPanel requiere CapViewOwnPanel.
func (d *Dashboard) OwnPanel() (*Panel, error) {
	user, err := d.session.Require(session.CapViewOwnPanel)
	if err != nil {
		return nil, err
	}
	store := d.engine.Store()
	p := &Panel{
		User:    *user,
		History: store.ForOwner(user.ID),
	}
	if rec, ok := store.FindByOwnerAndDate(user.ID, d.engine.Today()); ok {
		p.Today = rec
	}
	p.CanMark = p.Today == nil && d.session.Can(session.CapSubmitOwnAttendance)
	return p, nil
}
