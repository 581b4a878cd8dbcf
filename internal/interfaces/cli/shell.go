// Package cli implementa el shell de línea de comandos del portal: un único cliente
// que inicia sesión, marca asistencia y administra empleados e inventario.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/portal-asistencia/internal/application/attendance"
	"github.com/jhoicas/portal-asistencia/internal/application/portal"
	"github.com/jhoicas/portal-asistencia/internal/application/session"
	"github.com/jhoicas/portal-asistencia/internal/domain"
	"github.com/jhoicas/portal-asistencia/internal/domain/entity"
	"github.com/jhoicas/portal-asistencia/pkg/logger"
)

const prompt = "portal> "

// Deps componentes que el shell maneja.
type Deps struct {
	Session   *session.Session
	Engine    *attendance.Engine
	Employees *portal.EmployeeService
	Inventory *portal.InventoryService
	Dashboard *portal.Dashboard
	Log       *logger.Logger
}

// Shell lee comandos línea a línea y escribe las respuestas en out.
type Shell struct {
	deps Deps
	in   io.Reader
	out  io.Writer
	log  *logger.Logger
}

// New construye el shell.
func New(deps Deps, in io.Reader, out io.Writer) *Shell {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	return &Shell{deps: deps, in: in, out: out, log: log.Named("shell")}
}

type command struct {
	usage string
	help  string
	run   func(s *Shell, ctx context.Context, args []string) error
}

var commands map[string]command

// order en que help lista los comandos.
var commandOrder = []string{
	"login", "logout", "whoami", "caps", "mark", "review", "attendance",
	"employees", "terminate", "inventory", "stock", "dashboard", "panel", "help", "quit",
}

func init() {
	commands = map[string]command{
		"login":      {"login <id>", "inicia sesión con la identidad indicada", (*Shell).login},
		"logout":     {"logout", "cierra la sesión", (*Shell).logout},
		"whoami":     {"whoami", "muestra la identidad en sesión", (*Shell).whoami},
		"caps":       {"caps", "lista las capacidades de la sesión", (*Shell).caps},
		"mark":       {"mark", "registra la asistencia de hoy", (*Shell).mark},
		"review":     {"review <id> approve|reject", "revisa un registro pendiente", (*Shell).review},
		"attendance": {"attendance", "lista los registros visibles (más recientes primero)", (*Shell).attendance},
		"employees":  {"employees", "lista los empleados", (*Shell).employees},
		"terminate":  {"terminate <id>", "da de baja a un empleado", (*Shell).terminate},
		"inventory":  {"inventory", "lista el inventario", (*Shell).inventory},
		"stock":      {"stock <id> <cantidad>", "fija la cantidad de un artículo", (*Shell).stock},
		"dashboard":  {"dashboard", "resumen del día", (*Shell).dashboard},
		"panel":      {"panel", "panel propio: marca de hoy e historial", (*Shell).panel},
		"help":       {"help", "muestra esta ayuda", (*Shell).help},
	}
}

// Run procesa comandos hasta quit, fin de entrada o cancelación de ctx. Los errores
// de un comando se informan como mensaje y no terminan el shell.
func (s *Shell) Run(ctx context.Context) error {
	if err := s.deps.Engine.Load(ctx); err != nil {
		s.printErr(err)
	}
	done := make(chan struct{})
	defer close(done)
	lines, readErr := readLines(s.in, done)

	fmt.Fprint(s.out, prompt)
	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(s.out)
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				fmt.Fprintln(s.out)
				return <-readErr
			}
			fields := strings.Fields(line)
			if len(fields) > 0 {
				if fields[0] == "quit" || fields[0] == "exit" {
					fmt.Fprintln(s.out, "hasta luego")
					return nil
				}
				s.Exec(ctx, fields[0], fields[1:])
			}
			fmt.Fprint(s.out, prompt)
		}
	}
}

// readLines entrega las líneas de in por un canal que se cierra al fin de entrada.
// Si done se cierra antes, la goroutine sale tras la lectura en curso.
func readLines(in io.Reader, done <-chan struct{}) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
		errc <- scanner.Err()
	}()
	return lines, errc
}

// Exec ejecuta un comando ya separado en nombre y argumentos.
func (s *Shell) Exec(ctx context.Context, name string, args []string) {
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(s.out, "comando desconocido: %s (escribe help)\n", name)
		return
	}
	if err := cmd.run(s, ctx, args); err != nil {
		s.log.Debug().Err(err).Str("command", name).Msg("comando fallido")
		s.printErr(err)
	}
}

func (s *Shell) printErr(err error) {
	fmt.Fprintf(s.out, "error: %s\n", Message(err))
}

// Message texto para el usuario a partir de un error del portal.
func Message(err error) string {
	var gw *domain.GatewayError
	switch {
	case errors.As(err, &gw):
		if gw.Message != "" {
			return gw.Message
		}
		return "no fue posible comunicarse con el servidor"
	case errors.Is(err, domain.ErrNoSession):
		return "no hay sesión iniciada"
	case errors.Is(err, domain.ErrForbidden):
		return "no tienes permiso para esta operación"
	case errors.Is(err, domain.ErrAlreadyMarked):
		return "ya registraste tu asistencia hoy"
	case errors.Is(err, domain.ErrInvalidTransition):
		return "el registro ya fue revisado"
	case errors.Is(err, domain.ErrInactive):
		return "el usuario no está activo"
	case errors.Is(err, domain.ErrNotFound):
		return "no encontrado"
	case errors.Is(err, domain.ErrInvalidInput):
		return "datos inválidos"
	}
	return err.Error()
}

var errUsage = errors.New("uso incorrecto")

func usage(name string) error {
	return fmt.Errorf("%w: %s", errUsage, commands[name].usage)
}

func (s *Shell) login(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("login")
	}
	u, err := s.deps.Session.Login(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "bienvenido, %s (%s)\n", u.Name, u.Role)
	return s.deps.Engine.Load(ctx)
}

func (s *Shell) logout(context.Context, []string) error {
	s.deps.Session.Logout()
	fmt.Fprintln(s.out, "sesión cerrada")
	return nil
}

func (s *Shell) whoami(context.Context, []string) error {
	u := s.deps.Session.Current()
	if u == nil {
		return domain.ErrNoSession
	}
	fmt.Fprintf(s.out, "%s  %s  %s  %s\n", u.ID, u.Name, u.Role, u.Position)
	return nil
}

func (s *Shell) caps(context.Context, []string) error {
	if s.deps.Session.Current() == nil {
		return domain.ErrNoSession
	}
	for _, c := range s.deps.Session.CurrentCapabilities() {
		fmt.Fprintln(s.out, c)
	}
	return nil
}

func (s *Shell) mark(ctx context.Context, _ []string) error {
	rec, err := s.deps.Engine.MarkPresent(ctx, s.deps.Session.Current())
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "asistencia registrada: %s %s (%s)\n", rec.ID, rec.Date, rec.Status)
	return nil
}

func (s *Shell) review(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usage("review")
	}
	var decision string
	switch args[1] {
	case "approve", entity.AttendanceApproved:
		decision = entity.AttendanceApproved
	case "reject", entity.AttendanceRejected:
		decision = entity.AttendanceRejected
	default:
		return usage("review")
	}
	rec, err := s.deps.Engine.ReviewAttendance(ctx, s.deps.Session.Current(), args[0], decision)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "registro %s: %s\n", rec.ID, rec.Status)
	return nil
}

// attendance lista todos los registros con CapReviewAttendance; sin ella, solo los propios.
func (s *Shell) attendance(context.Context, []string) error {
	current := s.deps.Session.Current()
	if current == nil {
		return domain.ErrNoSession
	}
	store := s.deps.Engine.Store()
	recs := store.ForOwner(current.ID)
	if s.deps.Session.Can(session.CapReviewAttendance) {
		recs = store.ForDisplay()
	}
	if len(recs) == 0 {
		fmt.Fprintln(s.out, "sin registros")
		return nil
	}
	tw := tabwriter.NewWriter(s.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tUSUARIO\tFECHA\tHORA\tESTADO")
	for _, r := range recs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.ID, r.UserID, r.Date, r.Timestamp.Format("15:04"), r.Status)
	}
	return tw.Flush()
}

func (s *Shell) employees(ctx context.Context, _ []string) error {
	list, err := s.deps.Employees.Refresh(ctx)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(s.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNOMBRE\tCARGO\tROL\tESTADO")
	for _, u := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", u.ID, u.Name, u.Position, u.Role, u.Status)
	}
	return tw.Flush()
}

func (s *Shell) terminate(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("terminate")
	}
	if len(s.deps.Employees.List()) == 0 {
		if _, err := s.deps.Employees.Refresh(ctx); err != nil {
			return err
		}
	}
	u, err := s.deps.Employees.Terminate(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "%s dado de baja\n", u.Name)
	return nil
}

func (s *Shell) inventory(ctx context.Context, _ []string) error {
	items, err := s.deps.Inventory.Refresh(ctx)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(s.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSKU\tNOMBRE\tCATEGORÍA\tCANTIDAD\tPRECIO")
	for _, it := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", it.ID, it.SKU, it.Name, it.Category, it.Quantity.String(), it.UnitPrice.StringFixed(2))
	}
	return tw.Flush()
}

func (s *Shell) stock(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usage("stock")
	}
	qty, err := decimal.NewFromString(args[1])
	if err != nil {
		return fmt.Errorf("cantidad %q: %w", args[1], domain.ErrInvalidInput)
	}
	if len(s.deps.Inventory.List()) == 0 {
		if _, err := s.deps.Inventory.Refresh(ctx); err != nil {
			return err
		}
	}
	it, err := s.deps.Inventory.Update(ctx, args[0], portal.InventoryUpdate{Quantity: &qty})
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "%s: cantidad %s\n", it.Name, it.Quantity.String())
	return nil
}

func (s *Shell) dashboard(ctx context.Context, _ []string) error {
	sum, err := s.deps.Dashboard.Summary(ctx)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(s.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Fecha\t%s\n", sum.Date)
	fmt.Fprintf(tw, "Empleados\t%d (%d activos)\n", sum.TotalEmployees, sum.ActiveEmployees)
	fmt.Fprintf(tw, "Presentes hoy\t%d\n", sum.PresentToday)
	fmt.Fprintf(tw, "Pendientes de aprobación\t%d\n", sum.PendingApprovals)
	fmt.Fprintf(tw, "Artículos\t%d (%d con stock bajo)\n", sum.InventoryItems, sum.LowStockItems)
	return tw.Flush()
}

func (s *Shell) panel(context.Context, []string) error {
	p, err := s.deps.Dashboard.OwnPanel()
	if err != nil {
		return err
	}
	switch {
	case p.Today != nil:
		fmt.Fprintf(s.out, "hoy: %s a las %s\n", p.Today.Status, p.Today.Timestamp.Format("15:04"))
	case p.CanMark:
		fmt.Fprintln(s.out, "hoy: sin marcar (usa mark)")
	}
	for _, r := range p.History {
		fmt.Fprintf(s.out, "  %s  %s\n", r.Date, r.Status)
	}
	return nil
}

func (s *Shell) help(context.Context, []string) error {
	tw := tabwriter.NewWriter(s.out, 0, 0, 2, ' ', 0)
	for _, name := range commandOrder {
		if name == "quit" {
			fmt.Fprintln(tw, "quit\tsale del portal")
			continue
		}
		c := commands[name]
		fmt.Fprintf(tw, "%s\t%s\n", c.usage, c.help)
	}
	return tw.Flush()
}
