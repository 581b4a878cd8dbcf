package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/portal-asistencia/internal/application/dto"
	"github.com/jhoicas/portal-asistencia/internal/domain"
	"github.com/jhoicas/portal-asistencia/internal/domain/entity"
	"github.com/jhoicas/portal-asistencia/internal/domain/repository"
	"github.com/jhoicas/portal-asistencia/pkg/logger"
)

// AttendanceUseCase reglas del servidor para registros de asistencia.
type AttendanceUseCase struct {
	store repository.Gateway
	clock domain.Clock
	loc   *time.Location
	log   *logger.Logger

	// mu serializa verificación e insert de altas y revisiones.
	mu sync.Mutex
}

// NewAttendanceUseCase construye el caso de uso.
func NewAttendanceUseCase(store repository.Gateway, clock domain.Clock, loc *time.Location, log *logger.Logger) *AttendanceUseCase {
	if clock == nil {
		clock = domain.SystemClock{}
	}
	if loc == nil {
		loc = time.Local
	}
	if log == nil {
		log = logger.Nop()
	}
	return &AttendanceUseCase{store: store, clock: clock, loc: loc, log: log.Named("attendance_usecase")}
}

// List devuelve todos los registros.
func (uc *AttendanceUseCase) List(ctx context.Context) ([]dto.AttendanceResponse, error) {
	recs, err := uc.store.FetchAttendance(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AttendanceResponse, 0, len(recs))
	for _, r := range recs {
		out = append(out, dto.NewAttendanceResponse(r))
	}
	return out, nil
}

// Create registra la asistencia de hoy de in.OwnerID. Fecha y hora las fija el reloj
// del servidor; una fecha enviada distinta de hoy es ErrInvalidInput. El dueño debe
// existir y estar activo, y no puede tener otro registro el mismo día.
func (uc *AttendanceUseCase) Create(ctx context.Context, in dto.CreateAttendanceRequest) (*dto.AttendanceResponse, error) {
	owner, err := findUser(ctx, uc.store, in.OwnerID)
	if err != nil {
		return nil, err
	}
	if !owner.IsActive() {
		return nil, fmt.Errorf("user %s: %w", owner.ID, domain.ErrInactive)
	}

	now := uc.clock.Now()
	today := entity.DayOf(now, uc.loc)
	if in.Date != "" && in.Date != today {
		return nil, fmt.Errorf("date %s is not today (%s): %w", in.Date, today, domain.ErrInvalidInput)
	}

	draft := in.Draft()
	if draft.ID == "" {
		draft.ID = uuid.New().String()
	}
	draft.Timestamp = now
	draft.Date = today

	uc.mu.Lock()
	defer uc.mu.Unlock()

	existing, err := uc.store.FetchAttendance(ctx)
	if err != nil {
		return nil, err
	}
	for _, r := range existing {
		if r.UserID == draft.UserID && r.Date == draft.Date {
			return nil, fmt.Errorf("user %s on %s: %w", draft.UserID, draft.Date, domain.ErrAlreadyMarked)
		}
		if r.ID == draft.ID {
			return nil, fmt.Errorf("attendance id %s already used: %w", draft.ID, domain.ErrInvalidInput)
		}
	}

	created, err := uc.store.CreateAttendance(ctx, draft)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("record_id", created.ID).Str("user_id", created.UserID).Str("date", created.Date).Msg("asistencia registrada")
	resp := dto.NewAttendanceResponse(created)
	return &resp, nil
}

// UpdateStatus aprueba o rechaza un registro pendiente.
func (uc *AttendanceUseCase) UpdateStatus(ctx context.Context, id string, in dto.UpdateAttendanceRequest) (*dto.AttendanceResponse, error) {
	if !entity.IsReviewDecision(in.Status) {
		return nil, fmt.Errorf("status %q: %w", in.Status, domain.ErrInvalidInput)
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	recs, err := uc.store.FetchAttendance(ctx)
	if err != nil {
		return nil, err
	}
	var current *entity.AttendanceRecord
	for _, r := range recs {
		if r.ID == id {
			current = r
			break
		}
	}
	if current == nil {
		return nil, fmt.Errorf("attendance %s: %w", id, domain.ErrNotFound)
	}
	if !current.CanTransitionTo(in.Status) {
		return nil, fmt.Errorf("attendance %s is %s: %w", id, current.Status, domain.ErrInvalidTransition)
	}

	updated, err := uc.store.UpdateAttendanceStatus(ctx, id, in.Status)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("record_id", id).Str("status", updated.Status).Msg("asistencia revisada")
	resp := dto.NewAttendanceResponse(updated)
	return &resp, nil
}
