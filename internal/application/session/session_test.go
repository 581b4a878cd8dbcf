package session_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/portal-asistencia/internal/application/session"
	"github.com/jhoicas/portal-asistencia/internal/domain"
	"github.com/jhoicas/portal-asistencia/internal/domain/entity"
	"github.com/jhoicas/portal-asistencia/internal/infrastructure/memory"
)

type failingUsers struct{ err error }

func (f failingUsers) FetchUsers(context.Context) ([]*entity.User, error) { return nil, f.err }
func (f failingUsers) UpdateUser(context.Context, *entity.User) (*entity.User, error) {
	return nil, f.err
}

func newSession() *session.Session {
	return session.New(memory.NewGateway(memory.DefaultDataset()), nil)
}

// login(I) tiene éxito si y solo si I existe y está activo.
func TestLogin_ResultadoSegunIdentidad(t *testing.T) {
	cases := []struct {
		name    string
		userID  string
		wantErr error
	}{
		{"admin activo", "admin-1", nil},
		{"empleado activo", "emp-1", nil},
		{"empleado dado de baja", "emp-3", domain.ErrInactive},
		{"identidad inexistente", "emp-404", domain.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newSession()
			u, err := s.Login(context.Background(), tc.userID)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, u)
				assert.Nil(t, s.Current(), "un login fallido no debe abrir sesión")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.userID, u.ID)
			assert.Equal(t, tc.userID, s.Current().ID)
		})
	}
}

func TestLogin_ReemplazaSesionAnterior(t *testing.T) {
	s := newSession()
	_, err := s.Login(context.Background(), "emp-1")
	require.NoError(t, err)
	_, err = s.Login(context.Background(), "admin-1")
	require.NoError(t, err)

	assert.Equal(t, "admin-1", s.Current().ID)
}

func TestLogin_FalloDelGateway(t *testing.T) {
	s := session.New(failingUsers{err: errors.New("conexión rechazada")}, nil)
	_, err := s.Login(context.Background(), "emp-1")

	assert.ErrorIs(t, err, domain.ErrGateway)
	var ge *domain.GatewayError
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, "fetch users", ge.Op)
}

func TestLogout_LimpiaSesion(t *testing.T) {
	s := newSession()
	_, _ = s.Login(context.Background(), "emp-1")
	s.Logout()

	assert.Nil(t, s.Current())
	assert.Empty(t, s.CurrentCapabilities())
	assert.NotPanics(t, s.Logout, "logout sin sesión siempre tiene éxito")
}

func TestCurrentCapabilities_PorRol(t *testing.T) {
	s := newSession()

	_, err := s.Login(context.Background(), "emp-1")
	require.NoError(t, err)
	caps := s.CurrentCapabilities()
	assert.True(t, caps.Has(session.CapSubmitOwnAttendance))
	assert.True(t, caps.Has(session.CapViewDashboard))
	assert.True(t, caps.Has(session.CapViewOwnPanel))
	assert.False(t, caps.Has(session.CapReviewAttendance))
	assert.False(t, caps.Has(session.CapManageEmployees))
	assert.False(t, caps.Has(session.CapManageInventory))

	_, err = s.Login(context.Background(), "admin-1")
	require.NoError(t, err)
	caps = s.CurrentCapabilities()
	assert.True(t, caps.Has(session.CapReviewAttendance))
	assert.True(t, caps.Has(session.CapManageEmployees))
	assert.True(t, caps.Has(session.CapManageInventory))
	assert.True(t, caps.Has(session.CapViewDashboard))
	assert.True(t, caps.Has(session.CapViewOwnPanel))
	assert.False(t, caps.Has(session.CapSubmitOwnAttendance))
}

func TestCapabilitiesFor_DevuelveCopia(t *testing.T) {
	caps := session.CapabilitiesFor(entity.RoleEmployee)
	caps[0] = session.CapManageInventory

	assert.False(t, session.CapabilitiesFor(entity.RoleEmployee).Has(session.CapManageInventory))
	assert.Empty(t, session.CapabilitiesFor("invitado"))
}

func TestRequire(t *testing.T) {
	s := newSession()
	_, err := s.Require(session.CapViewDashboard)
	assert.ErrorIs(t, err, domain.ErrNoSession)

	_, _ = s.Login(context.Background(), "emp-1")
	_, err = s.Require(session.CapManageInventory)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	u, err := s.Require(session.CapSubmitOwnAttendance)
	require.NoError(t, err)
	assert.Equal(t, "emp-1", u.ID)
}
