package portal

import (
	"context"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/jhoicas/portal-asistencia/internal/application/session"
	"github.com/jhoicas/portal-asistencia/internal/domain"
	"github.com/jhoicas/portal-asistencia/internal/domain/entity"
	"github.com/jhoicas/portal-asistencia/internal/domain/repository"
	"github.com/jhoicas/portal-asistencia/pkg/logger"
)

// EmployeeUpdate cambios permitidos sobre un empleado; nil deja el campo igual.
type EmployeeUpdate struct {
	Name     *string
	Position *string
	Role     *string
	Status   *string
}

// EmployeeService pantalla de empleados: lista y reemplazo en lista tras confirmar el backend.
type EmployeeService struct {
	session *session.Session
	gateway repository.UserGateway
	log     *logger.Logger
	list    []*entity.User
}

// NewEmployeeService construye el servicio.
func NewEmployeeService(sess *session.Session, gateway repository.UserGateway, log *logger.Logger) *EmployeeService {
	if log == nil {
		log = logger.Nop()
	}
	return &EmployeeService{session: sess, gateway: gateway, log: log.Named("employees")}
}

// Refresh recarga la lista desde el gateway. Requiere sesión.
func (s *EmployeeService) Refresh(ctx context.Context) ([]entity.User, error) {
	if s.session.Current() == nil {
		return nil, domain.ErrNoSession
	}
	users, err := s.gateway.FetchUsers(ctx)
	if err != nil {
		return nil, domain.AsGatewayError("fetch users", err)
	}
	s.list = users
	return s.List(), nil
}

// List copias de la última lista cargada, ordenadas por nombre según reglas del español.
func (s *EmployeeService) List() []entity.User {
	out := make([]entity.User, 0, len(s.list))
	for _, u := range s.list {
		out = append(out, *u)
	}
	col := collate.New(language.Spanish, collate.IgnoreCase)
	sort.SliceStable(out, func(i, j int) bool {
		return col.CompareString(out[i].Name, out[j].Name) < 0
	})
	return out
}

// Update aplica cambios a un empleado. Requiere CapManageEmployees. Nadie cambia
// su propio estado ni su propio rol.
func (s *EmployeeService) Update(ctx context.Context, id string, in EmployeeUpdate) (*entity.User, error) {
	acting, err := s.session.Require(session.CapManageEmployees)
	if err != nil {
		return nil, err
	}
	idx := -1
	for i, u := range s.list {
		if u.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, domain.ErrNotFound
	}
	next := *s.list[idx]
	if acting.ID == id && (in.Status != nil || in.Role != nil) {
		return nil, domain.ErrInvalidInput
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		next.Name = *in.Name
	}
	if in.Position != nil {
		next.Position = *in.Position
	}
	if in.Role != nil {
		if !entity.ValidRole(*in.Role) {
			return nil, domain.ErrInvalidInput
		}
		next.Role = *in.Role
	}
	if in.Status != nil {
		if !entity.ValidUserStatus(*in.Status) {
			return nil, domain.ErrInvalidInput
		}
		next.Status = *in.Status
	}

	updated, err := s.gateway.UpdateUser(context.WithoutCancel(ctx), &next)
	if err != nil {
		return nil, domain.AsGatewayError("update user", err)
	}
	s.list[idx] = updated
	s.log.Info().Str("user_id", id).Str("by", acting.ID).Str("status", updated.Status).Msg("empleado actualizado")
	out := *updated
	return &out, nil
}

// Terminate da de baja a un empleado. Un administrador no puede darse de baja a sí mismo.
func (s *EmployeeService) Terminate(ctx context.Context, id string) (*entity.User, error) {
	status := entity.UserStatusTerminated
	return s.Update(ctx, id, EmployeeUpdate{Status: &status})
}
