package cli_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/portal-asistencia/internal/application/attendance"
	"github.com/jhoicas/portal-asistencia/internal/application/portal"
	"github.com/jhoicas/portal-asistencia/internal/application/session"
	"github.com/jhoicas/portal-asistencia/internal/domain"
	"github.com/jhoicas/portal-asistencia/internal/infrastructure/memory"
	"github.com/jhoicas/portal-asistencia/internal/interfaces/cli"
	"github.com/jhoicas/portal-asistencia/pkg/logger"
)

type stubClock struct{ now time.Time }

func (s stubClock) Now() time.Time { return s.now }

func newShell(input string) (*cli.Shell, *bytes.Buffer) {
	return newShellFrom(strings.NewReader(input))
}

func newShellFrom(in io.Reader) (*cli.Shell, *bytes.Buffer) {
	clock := stubClock{time.Date(2024, 7, 27, 14, 0, 0, 0, time.UTC)}
	gw := memory.NewGateway(memory.DefaultDataset(), memory.WithClock(clock), memory.WithLocation(time.UTC))
	log := logger.Nop()
	sess := session.New(gw, log)
	engine := attendance.NewEngine(sess, attendance.NewStore(), gw,
		attendance.WithClock(clock), attendance.WithLocation(time.UTC), attendance.WithLogger(log))
	out := &bytes.Buffer{}
	sh := cli.New(cli.Deps{
		Session:   sess,
		Engine:    engine,
		Employees: portal.NewEmployeeService(sess, gw, log),
		Inventory: portal.NewInventoryService(sess, gw, log),
		Dashboard: portal.NewDashboard(sess, engine, gw, gw, 5),
		Log:       log,
	}, in, out)
	return sh, out
}

func run(t *testing.T, lines ...string) string {
	t.Helper()
	sh, out := newShell(strings.Join(lines, "\n") + "\n")
	require.NoError(t, sh.Run(context.Background()))
	return out.String()
}

func TestShell_FlujoEmpleado(t *testing.T) {
	out := run(t,
		"mark",
		"login emp-1",
		"mark",
		"mark",
		"review att-3 approve",
		"panel",
		"quit",
	)
	assert.Contains(t, out, "error: no hay sesión iniciada")
	assert.Contains(t, out, "bienvenido, Andrés Pérez (employee)")
	assert.Contains(t, out, "asistencia registrada:")
	assert.Contains(t, out, "2024-07-27 (pending)")
	assert.Contains(t, out, "error: ya registraste tu asistencia hoy")
	assert.Contains(t, out, "error: no tienes permiso para esta operación")
	assert.Contains(t, out, "hoy: pending a las 14:00")
	assert.Contains(t, out, "hasta luego")
}

func TestShell_FlujoAdministrador(t *testing.T) {
	out := run(t,
		"login admin-1",
		"review att-3 approve",
		"review att-3 reject",
		"review att-404 approve",
		"review att-3 maybe",
		"terminate emp-2",
		"terminate admin-1",
		"stock inv-2 10",
		"stock inv-2 mucho",
		"dashboard",
	)
	assert.Contains(t, out, "registro att-3: approved")
	assert.Contains(t, out, "error: el registro ya fue revisado")
	assert.Contains(t, out, "error: no encontrado")
	assert.Contains(t, out, "error: uso incorrecto: review <id> approve|reject")
	assert.Contains(t, out, "Camila Ríos dado de baja")
	assert.Contains(t, out, "error: datos inválidos")
	assert.Contains(t, out, "Tóner impresora: cantidad 10")
	assert.Contains(t, out, "Pendientes de aprobación")
}

func TestShell_LoginFallido(t *testing.T) {
	out := run(t, "login emp-3", "login nadie", "whoami", "caps")
	assert.Contains(t, out, "error: el usuario no está activo")
	assert.Contains(t, out, "error: no encontrado")
	assert.Equal(t, 2, strings.Count(out, "error: no hay sesión iniciada"))
}

func TestShell_ListadosYAyuda(t *testing.T) {
	out := run(t, "help", "login admin-1", "whoami", "caps", "attendance", "employees", "inventory", "logout", "employees", "foo")
	assert.Contains(t, out, "review <id> approve|reject")
	assert.Contains(t, out, "admin-1  Laura Gómez  admin")
	assert.Contains(t, out, string(session.CapReviewAttendance))
	assert.Contains(t, out, "att-3")
	assert.Contains(t, out, "Óscar Díaz")
	assert.Contains(t, out, "PAP-001")
	assert.Contains(t, out, "sesión cerrada")
	assert.Contains(t, out, "error: no hay sesión iniciada")
	assert.Contains(t, out, "comando desconocido: foo")
}

func TestShell_FinDeEntradaSinQuit(t *testing.T) {
	sh, out := newShell("whoami")
	require.NoError(t, sh.Run(context.Background()))
	assert.Contains(t, out.String(), "no hay sesión iniciada")
}

func TestShell_AdministradorNoMarca(t *testing.T) {
	out := run(t, "login admin-1", "mark", "panel", "attendance", "quit")
	assert.Contains(t, out, "error: no tienes permiso para esta operación")
	assert.NotContains(t, out, "asistencia registrada:")
	assert.NotContains(t, out, "hoy: sin marcar")
}

func TestShell_EmpleadoVeSoloSusRegistros(t *testing.T) {
	out := run(t, "login emp-1", "attendance", "quit")
	assert.Contains(t, out, "att-1")
	assert.NotContains(t, out, "att-2")
	assert.NotContains(t, out, "att-3")
	assert.NotContains(t, out, "emp-2")
}

func TestShell_CancelacionMientrasEsperaEntrada(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	sh, out := newShellFrom(pr)
	ctx, cancel := context.WithCancel(context.Background())

	errc := make(chan error, 1)
	go func() { errc <- sh.Run(ctx) }()

	_, err := pw.Write([]byte("login emp-1\n"))
	require.NoError(t, err)
	cancel()

	select {
	case err := <-errc:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Run no terminó tras cancelar el contexto")
	}
	assert.Contains(t, out.String(), "portal> ")
}

func TestMessage_GatewayError(t *testing.T) {
	err := &domain.GatewayError{Op: "create attendance", StatusCode: 409, Message: "la asistencia de hoy ya fue registrada"}
	assert.Equal(t, "la asistencia de hoy ya fue registrada", cli.Message(err))
	assert.Equal(t, "no fue posible comunicarse con el servidor", cli.Message(&domain.GatewayError{Op: "x"}))
	assert.Equal(t, "otro", cli.Message(errors.New("otro")))
}
