package attendance

import (
	"sort"

	"github.com/jhoicas/portal-asistencia/internal/domain/entity"
)

// Store es la colección ordenada de registros de asistencia del portal.
// Es dueña exclusiva de los registros: hacia afuera solo entrega copias.
type Store struct {
	records []*entity.AttendanceRecord
}

// NewStore construye un Store vacío.
func NewStore() *Store {
	return &Store{}
}

// Replace sustituye el contenido por una copia de records (resultado de FetchAttendance).
func (s *Store) Replace(records []*entity.AttendanceRecord) {
	s.records = make([]*entity.AttendanceRecord, 0, len(records))
	for _, r := range records {
		if r == nil {
			continue
		}
		c := *r
		s.records = append(s.records, &c)
	}
}

func (s *Store) append(r *entity.AttendanceRecord) {
	c := *r
	s.records = append(s.records, &c)
}

// lookup devuelve el puntero interno; solo lo usa el motor para transiciones.
func (s *Store) lookup(id string) *entity.AttendanceRecord {
	for _, r := range s.records {
		if r.ID == id {
			return r
		}
	}
	return nil
}

// Get devuelve una copia del registro con ese ID.
func (s *Store) Get(id string) (*entity.AttendanceRecord, bool) {
	r := s.lookup(id)
	if r == nil {
		return nil, false
	}
	c := *r
	return &c, true
}

// FindByOwnerAndDate devuelve una copia del registro del usuario para ese día.
func (s *Store) FindByOwnerAndDate(userID, date string) (*entity.AttendanceRecord, bool) {
	for _, r := range s.records {
		if r.UserID == userID && r.Date == date {
			c := *r
			return &c, true
		}
	}
	return nil, false
}

// Len cantidad de registros.
func (s *Store) Len() int { return len(s.records) }

// Snapshot copias en orden de inserción.
func (s *Store) Snapshot() []entity.AttendanceRecord {
	out := make([]entity.AttendanceRecord, 0, len(s.records))
	for _, r := range s.records {
		out = append(out, *r)
	}
	return out
}

// ForDisplay copias ordenadas por Timestamp descendente. El orden es solo de presentación.
func (s *Store) ForDisplay() []entity.AttendanceRecord {
	out := s.Snapshot()
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out
}

// ForOwner copias del usuario, más recientes primero.
func (s *Store) ForOwner(userID string) []entity.AttendanceRecord {
	all := s.ForDisplay()
	out := all[:0]
	for _, r := range all {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out
}

// CountByStatus cantidad de registros con ese estado.
func (s *Store) CountByStatus(status string) int {
	n := 0
	for _, r := range s.records {
		if r.Status == status {
			n++
		}
	}
	return n
}

// CountByDate cantidad de registros de ese día.
func (s *Store) CountByDate(date string) int {
	n := 0
	for _, r := range s.records {
		if r.Date == date {
			n++
		}
	}
	return n
}
