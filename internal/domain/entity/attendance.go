package entity

import "time"

// Estados de AttendanceRecord. Pending es el único estado inicial; Approved y Rejected son terminales.
const (
	AttendancePending  = "pending"
	AttendanceApproved = "approved"
	AttendanceRejected = "rejected"
)

// DateLayout es el formato de día calendario (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// AttendanceRecord es la marca de presencia de un usuario en un día calendario.
// Date se asigna al crear el registro y no cambia nunca.
type AttendanceRecord struct {
	ID        string
	UserID    string
	Date      string
	Timestamp time.Time
	Status    string
}

// IsTerminal informa si el registro ya fue decidido.
func (r *AttendanceRecord) IsTerminal() bool {
	return r.Status == AttendanceApproved || r.Status == AttendanceRejected
}

// CanTransitionTo informa si el paso de r.Status a next está definido.
func (r *AttendanceRecord) CanTransitionTo(next string) bool {
	return r.Status == AttendancePending && IsReviewDecision(next)
}

// IsReviewDecision informa si status es una decisión válida de revisión.
func IsReviewDecision(status string) bool {
	return status == AttendanceApproved || status == AttendanceRejected
}

// ValidAttendanceStatus informa si status es un estado conocido.
func ValidAttendanceStatus(status string) bool {
	return status == AttendancePending || IsReviewDecision(status)
}

// DayOf normaliza t al día calendario en loc.
func DayOf(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(DateLayout)
}
