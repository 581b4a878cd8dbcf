package attendance

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/portal-asistencia/internal/application/session"
	"github.com/jhoicas/portal-asistencia/internal/domain"
	"github.com/jhoicas/portal-asistencia/internal/domain/entity"
	"github.com/jhoicas/portal-asistencia/internal/domain/repository"
	"github.com/jhoicas/portal-asistencia/pkg/logger"
)

// Engine es el único componente que crea registros de asistencia o cambia su estado.
// Valida contra el Store, persiste en el Gateway y solo después actualiza el Store.
type Engine struct {
	session *session.Session
	store   *Store
	gateway repository.AttendanceGateway
	clock   domain.Clock
	loc     *time.Location
	log     *logger.Logger
}

// Option configura el Engine.
type Option func(*Engine)

// WithClock fija el reloj que define "hoy".
func WithClock(c domain.Clock) Option { return func(e *Engine) { e.clock = c } }

// WithLocation fija la zona horaria del día calendario del cliente.
func WithLocation(loc *time.Location) Option { return func(e *Engine) { e.loc = loc } }

// WithLogger inyecta el logger.
func WithLogger(l *logger.Logger) Option { return func(e *Engine) { e.log = l } }

// NewEngine construye el motor con sus dependencias explícitas.
func NewEngine(sess *session.Session, store *Store, gateway repository.AttendanceGateway, opts ...Option) *Engine {
	e := &Engine{
		session: sess,
		store:   store,
		gateway: gateway,
		clock:   domain.SystemClock{},
		loc:     time.Local,
		log:     logger.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.log = e.log.Named("attendance")
	return e
}

// Store devuelve el Store que administra el motor (solo lectura para la vista).
func (e *Engine) Store() *Store { return e.store }

// Today día calendario actual en la zona del cliente.
func (e *Engine) Today() string {
	return entity.DayOf(e.clock.Now(), e.loc)
}

// Load reemplaza el Store con lo que devuelve el Gateway.
func (e *Engine) Load(ctx context.Context) error {
	records, err := e.gateway.FetchAttendance(ctx)
	if err != nil {
		e.log.Warn().Err(err).Msg("no se pudo cargar asistencia")
		return domain.AsGatewayError("fetch attendance", err)
	}
	e.store.Replace(records)
	e.log.Debug().Int("records", e.store.Len()).Msg("asistencia cargada")
	return nil
}

// MarkPresent registra la asistencia de hoy del usuario que actúa, que debe ser quien
// tiene la sesión y tener CapSubmitOwnAttendance. Falla con ErrAlreadyMarked si ya
// existe un registro para ese día.
//
// La llamada al Gateway no se cancela si el llamador abandona ctx: un resultado
// confirmado siempre llega al Store.
func (e *Engine) MarkPresent(ctx context.Context, acting *entity.User) (*entity.AttendanceRecord, error) {
	if e.session.Current() == nil {
		return nil, domain.ErrNoSession
	}
	if !e.session.IsHolder(acting) {
		return nil, domain.ErrForbidden
	}
	if !e.session.Can(session.CapSubmitOwnAttendance) {
		return nil, domain.ErrForbidden
	}

	now := e.clock.Now()
	today := entity.DayOf(now, e.loc)
	if _, exists := e.store.FindByOwnerAndDate(acting.ID, today); exists {
		e.log.Info().Str("user_id", acting.ID).Str("date", today).Msg("asistencia duplicada rechazada")
		return nil, domain.ErrAlreadyMarked
	}

	draft := &entity.AttendanceRecord{
		ID:        uuid.New().String(),
		UserID:    acting.ID,
		Date:      today,
		Timestamp: now,
		Status:    entity.AttendancePending,
	}
	created, err := e.gateway.CreateAttendance(context.WithoutCancel(ctx), draft)
	if err != nil {
		e.log.Warn().Err(err).Str("user_id", acting.ID).Msg("gateway rechazó la asistencia")
		return nil, domain.AsGatewayError("create attendance", err)
	}
	if created == nil {
		return nil, &domain.GatewayError{Op: "create attendance", Message: "respuesta vacía"}
	}

	e.store.append(created)
	e.log.Info().Str("record_id", created.ID).Str("user_id", created.UserID).Str("date", created.Date).Msg("asistencia registrada")
	out := *created
	return &out, nil
}

// ReviewAttendance aprueba o rechaza un registro pendiente. Solo identidades con
// CapReviewAttendance pueden hacerlo; un registro ya decidido no se sobrescribe.
func (e *Engine) ReviewAttendance(ctx context.Context, acting *entity.User, recordID, decision string) (*entity.AttendanceRecord, error) {
	if acting == nil || !session.CapabilitiesFor(acting.Role).Has(session.CapReviewAttendance) {
		return nil, domain.ErrForbidden
	}
	if !e.session.IsHolder(acting) {
		return nil, domain.ErrForbidden
	}
	if !entity.IsReviewDecision(decision) {
		return nil, domain.ErrInvalidInput
	}

	rec := e.store.lookup(recordID)
	if rec == nil {
		return nil, domain.ErrNotFound
	}
	if !rec.CanTransitionTo(decision) {
		e.log.Info().Str("record_id", recordID).Str("status", rec.Status).Str("decision", decision).Msg("transición rechazada")
		return nil, domain.ErrInvalidTransition
	}

	if _, err := e.gateway.UpdateAttendanceStatus(context.WithoutCancel(ctx), recordID, decision); err != nil {
		e.log.Warn().Err(err).Str("record_id", recordID).Msg("gateway rechazó la revisión")
		return nil, domain.AsGatewayError("update attendance", err)
	}

	rec.Status = decision
	e.log.Info().Str("record_id", recordID).Str("status", decision).Str("reviewer_id", acting.ID).Msg("asistencia revisada")
	out := *rec
	return &out, nil
}
