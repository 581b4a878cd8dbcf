package dto

import (
	"time"

	"github.com/jhoicas/portal-asistencia/internal/domain/entity"
)

// AttendanceResponse registro de asistencia tal como viaja en el API.
type AttendanceResponse struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"ownerId"`
	Date      string    `json:"date"`
	Timestamp time.Time `json:"timestamp"`
	Status    string    `json:"status"`
}

// CreateAttendanceRequest body de POST /attendance. Solo ownerId es obligatorio.
// El servidor genera id si no viene y siempre fija date y timestamp con su reloj;
// date, si viene, debe ser el día de hoy. timestamp se ignora.
type CreateAttendanceRequest struct {
	OwnerID   string     `json:"ownerId" validate:"required,max=64"`
	ID        string     `json:"id,omitempty" validate:"omitempty,max=64"`
	Date      string     `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

// UpdateAttendanceRequest body de PUT /attendance/{id}.
type UpdateAttendanceRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
}

// NewAttendanceResponse mapea la entidad al formato de transporte.
func NewAttendanceResponse(r *entity.AttendanceRecord) AttendanceResponse {
	return AttendanceResponse{
		ID:        r.ID,
		OwnerID:   r.UserID,
		Date:      r.Date,
		Timestamp: r.Timestamp,
		Status:    r.Status,
	}
}

// ToEntity mapea el formato de transporte a la entidad.
func (r AttendanceResponse) ToEntity() *entity.AttendanceRecord {
	return &entity.AttendanceRecord{
		ID:        r.ID,
		UserID:    r.OwnerID,
		Date:      r.Date,
		Timestamp: r.Timestamp,
		Status:    r.Status,
	}
}

// NewCreateAttendanceRequest arma el body a partir del borrador del cliente.
func NewCreateAttendanceRequest(draft *entity.AttendanceRecord) CreateAttendanceRequest {
	in := CreateAttendanceRequest{OwnerID: draft.UserID, ID: draft.ID, Date: draft.Date}
	if !draft.Timestamp.IsZero() {
		ts := draft.Timestamp
		in.Timestamp = &ts
	}
	return in
}

// Draft convierte el body en borrador; el estado siempre es pendiente.
func (in CreateAttendanceRequest) Draft() *entity.AttendanceRecord {
	d := &entity.AttendanceRecord{
		ID:     in.ID,
		UserID: in.OwnerID,
		Date:   in.Date,
		Status: entity.AttendancePending,
	}
	if in.Timestamp != nil {
		d.Timestamp = *in.Timestamp
	}
	return d
}
