package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/portal-asistencia/internal/domain"
	"github.com/jhoicas/portal-asistencia/internal/domain/entity"
)

const attendanceColumns = `id, user_id, to_char(work_date, 'YYYY-MM-DD'), marked_at, status`

// AttendanceRepo persistencia de registros de asistencia.
// El índice único (user_id, work_date) garantiza un registro por usuario y día.
type AttendanceRepo struct {
	q Querier
}

// NewAttendanceRepository construye el adaptador. Acepta pool o tx (Querier).
func NewAttendanceRepository(q Querier) *AttendanceRepo {
	return &AttendanceRepo{q: q}
}

// List devuelve todos los registros en orden de marcación.
func (r *AttendanceRepo) List(ctx context.Context) ([]*entity.AttendanceRecord, error) {
	rows, err := r.q.Query(ctx, `SELECT `+attendanceColumns+` FROM attendance_records ORDER BY marked_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	defer rows.Close()
	var list []*entity.AttendanceRecord
	for rows.Next() {
		rec, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("scan attendance: %w", err)
		}
		list = append(list, rec)
	}
	return list, rows.Err()
}

// Create inserta un registro nuevo. Un segundo registro del mismo usuario y día
// devuelve domain.ErrAlreadyMarked; un usuario inexistente, domain.ErrNotFound.
func (r *AttendanceRepo) Create(ctx context.Context, rec *entity.AttendanceRecord) (*entity.AttendanceRecord, error) {
	query := `
		INSERT INTO attendance_records (id, user_id, work_date, marked_at, status)
		VALUES ($1, $2, $3::date, $4, $5)
		RETURNING ` + attendanceColumns
	out, err := scanAttendance(r.q.QueryRow(ctx, query, rec.ID, rec.UserID, rec.Date, rec.Timestamp, rec.Status))
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return nil, fmt.Errorf("user %s on %s: %w", rec.UserID, rec.Date, domain.ErrAlreadyMarked)
		case isForeignKeyViolation(err):
			return nil, fmt.Errorf("user %s: %w", rec.UserID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("insert attendance: %w", err)
	}
	return out, nil
}

// UpdateStatus cambia el estado de un registro y devuelve la fila resultante.
func (r *AttendanceRepo) UpdateStatus(ctx context.Context, id, status string) (*entity.AttendanceRecord, error) {
	query := `UPDATE attendance_records SET status = $2 WHERE id = $1 RETURNING ` + attendanceColumns
	out, err := scanAttendance(r.q.QueryRow(ctx, query, id, status))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("attendance %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("update attendance status: %w", err)
	}
	return out, nil
}

func scanAttendance(row pgx.Row) (*entity.AttendanceRecord, error) {
	var rec entity.AttendanceRecord
	if err := row.Scan(&rec.ID, &rec.UserID, &rec.Date, &rec.Timestamp, &rec.Status); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Upsert inserta un registro histórico o actualiza su estado si el id ya existe.
func (r *AttendanceRepo) Upsert(ctx context.Context, rec *entity.AttendanceRecord) error {
	query := `
		INSERT INTO attendance_records (id, user_id, work_date, marked_at, status)
		VALUES ($1, $2, $3::date, $4, $5)
		ON CONFLICT (id) DO UPDATE SET status = EXCLUDED.status`
	_, err := r.q.Exec(ctx, query, rec.ID, rec.UserID, rec.Date, rec.Timestamp, rec.Status)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("user %s on %s: %w", rec.UserID, rec.Date, domain.ErrAlreadyMarked)
		}
		return fmt.Errorf("upsert attendance: %w", err)
	}
	return nil
}
