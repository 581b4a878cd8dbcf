package session

import (
	"sort"

	"github.com/jhoicas/portal-asistencia/internal/domain/entity"
)

// Capability es un permiso con nombre otorgado por rol.
type Capability string

const (
	CapSubmitOwnAttendance Capability = "submit_own_attendance"
	CapReviewAttendance    Capability = "review_all_attendance"
	CapManageEmployees     Capability = "manage_employees"
	CapManageInventory     Capability = "manage_inventory"
	CapViewDashboard       Capability = "view_dashboard"
	CapViewOwnPanel        Capability = "view_own_panel"
)

// CapabilitySet conjunto ordenado de capacidades.
type CapabilitySet []Capability

// Has informa si c pertenece al conjunto.
func (s CapabilitySet) Has(c Capability) bool {
	for _, x := range s {
		if x == c {
			return true
		}
	}
	return false
}

// roleCapabilities se arma una sola vez; las capacidades comunes se agregan a todos los roles.
var roleCapabilities = buildCapabilityTable()

func buildCapabilityTable() map[string]CapabilitySet {
	common := []Capability{CapViewDashboard, CapViewOwnPanel}
	byRole := map[string][]Capability{
		entity.RoleEmployee: {CapSubmitOwnAttendance},
		entity.RoleAdmin:    {CapReviewAttendance, CapManageEmployees, CapManageInventory},
	}
	table := make(map[string]CapabilitySet, len(byRole))
	for role, caps := range byRole {
		set := append(append(CapabilitySet{}, caps...), common...)
		sort.Slice(set, func(i, j int) bool { return set[i] < set[j] })
		table[role] = set
	}
	return table
}

// CapabilitiesFor devuelve las capacidades del rol. Un rol desconocido no tiene ninguna.
// El resultado es una copia: modificarlo no altera la tabla.
func CapabilitiesFor(role string) CapabilitySet {
	return append(CapabilitySet{}, roleCapabilities[role]...)
}
