package portal

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/portal-asistencia/internal/application/session"
	"github.com/jhoicas/portal-asistencia/internal/domain"
	"github.com/jhoicas/portal-asistencia/internal/domain/entity"
	"github.com/jhoicas/portal-asistencia/internal/domain/repository"
	"github.com/jhoicas/portal-asistencia/pkg/logger"
)

// InventoryUpdate cambios permitidos sobre un artículo.
type InventoryUpdate struct {
	Name      *string
	Category  *string
	Quantity  *decimal.Decimal
	UnitPrice *decimal.Decimal
}

// InventoryService pantalla de inventario: lista y reemplazo en lista.
type InventoryService struct {
	session *session.Session
	gateway repository.InventoryGateway
	log     *logger.Logger
	list    []*entity.InventoryItem
}

// NewInventoryService construye el servicio.
func NewInventoryService(sess *session.Session, gateway repository.InventoryGateway, log *logger.Logger) *InventoryService {
	if log == nil {
		log = logger.Nop()
	}
	return &InventoryService{session: sess, gateway: gateway, log: log.Named("inventory")}
}

// Refresh recarga el inventario desde el gateway. Requiere sesión.
func (s *InventoryService) Refresh(ctx context.Context) ([]entity.InventoryItem, error) {
	if s.session.Current() == nil {
		return nil, domain.ErrNoSession
	}
	items, err := s.gateway.FetchInventory(ctx)
	if err != nil {
		return nil, domain.AsGatewayError("fetch inventory", err)
	}
	s.list = items
	return s.List(), nil
}

// List copias del último inventario cargado, en el orden del backend.
func (s *InventoryService) List() []entity.InventoryItem {
	out := make([]entity.InventoryItem, 0, len(s.list))
	for _, it := range s.list {
		out = append(out, *it)
	}
	return out
}

// Update aplica cambios a un artículo. Requiere CapManageInventory.
// Cantidad y precio no pueden ser negativos.
func (s *InventoryService) Update(ctx context.Context, id string, in InventoryUpdate) (*entity.InventoryItem, error) {
	acting, err := s.session.Require(session.CapManageInventory)
	if err != nil {
		return nil, err
	}
	idx := -1
	for i, it := range s.list {
		if it.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, domain.ErrNotFound
	}
	next := *s.list[idx]
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		next.Name = *in.Name
	}
	if in.Category != nil {
		next.Category = *in.Category
	}
	if in.Quantity != nil {
		if in.Quantity.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		next.Quantity = *in.Quantity
	}
	if in.UnitPrice != nil {
		if in.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		next.UnitPrice = *in.UnitPrice
	}

	updated, err := s.gateway.UpdateInventoryItem(context.WithoutCancel(ctx), &next)
	if err != nil {
		return nil, domain.AsGatewayError("update inventory", err)
	}
	s.list[idx] = updated
	s.log.Info().Str("item_id", id).Str("by", acting.ID).Str("quantity", updated.Quantity.String()).Msg("artículo actualizado")
	out := *updated
	return &out, nil
}
