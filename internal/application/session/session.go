package session

import (
	"context"

	"github.com/jhoicas/portal-asistencia/internal/domain"
	"github.com/jhoicas/portal-asistencia/internal/domain/entity"
	"github.com/jhoicas/portal-asistencia/internal/domain/repository"
	"github.com/jhoicas/portal-asistencia/pkg/logger"
)

// Session representa quién está actuando ahora en el portal.
// No es segura para uso concurrente: el portal tiene un único actor a la vez.
type Session struct {
	users   repository.UserGateway
	log     *logger.Logger
	current *entity.User
}

// New construye una sesión vacía que resuelve identidades a través del gateway.
func New(users repository.UserGateway, log *logger.Logger) *Session {
	if log == nil {
		log = logger.Nop()
	}
	return &Session{users: users, log: log.Named("session")}
}

// Login busca la identidad por ID y la deja como sesión activa.
// Devuelve ErrNotFound si no existe, ErrInactive si está dada de baja y
// *domain.GatewayError si no se pudo consultar el backend. Un login exitoso
// reemplaza la sesión anterior.
func (s *Session) Login(ctx context.Context, userID string) (*entity.User, error) {
	users, err := s.users.FetchUsers(ctx)
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("no se pudo consultar usuarios")
		return nil, domain.AsGatewayError("fetch users", err)
	}
	var found *entity.User
	for _, u := range users {
		if u.ID == userID {
			found = u
			break
		}
	}
	if found == nil {
		return nil, domain.ErrNotFound
	}
	if !found.IsActive() {
		s.log.Info().Str("user_id", userID).Msg("login rechazado: identidad inactiva")
		return nil, domain.ErrInactive
	}
	u := *found
	s.current = &u
	s.log.Info().Str("user_id", u.ID).Str("role", u.Role).Msg("sesión iniciada")
	return s.Current(), nil
}

// Logout cierra la sesión activa. Siempre tiene éxito.
func (s *Session) Logout() {
	if s.current != nil {
		s.log.Info().Str("user_id", s.current.ID).Msg("sesión cerrada")
	}
	s.current = nil
}

// Current devuelve una copia de la identidad activa o nil si no hay sesión.
func (s *Session) Current() *entity.User {
	if s.current == nil {
		return nil
	}
	u := *s.current
	return &u
}

// CurrentCapabilities devuelve las capacidades del rol activo; vacío sin sesión.
func (s *Session) CurrentCapabilities() CapabilitySet {
	if s.current == nil {
		return CapabilitySet{}
	}
	return CapabilitiesFor(s.current.Role)
}

// Can informa si la sesión activa tiene la capacidad c.
func (s *Session) Can(c Capability) bool {
	return s.CurrentCapabilities().Has(c)
}

// IsHolder informa si user es quien tiene la sesión activa.
func (s *Session) IsHolder(user *entity.User) bool {
	return s.current != nil && user != nil && s.current.ID == user.ID
}

// Require verifica que haya sesión y que tenga la capacidad c; devuelve la identidad activa.
func (s *Session) Require(c Capability) (*entity.User, error) {
	if s.current == nil {
		return nil, domain.ErrNoSession
	}
	if !s.Can(c) {
		return nil, domain.ErrForbidden
	}
	return s.Current(), nil
}
