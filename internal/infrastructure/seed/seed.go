package seed

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/jhoicas/portal-asistencia/internal/domain/entity"
	"github.com/jhoicas/portal-asistencia/internal/infrastructure/memory"
)

//go:embed data/seed.yaml
var embedded []byte

type document struct {
	Users      []userDoc       `yaml:"users"`
	Attendance []attendanceDoc `yaml:"attendance"`
	Inventory  []itemDoc       `yaml:"inventory"`
}

type userDoc struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Position string `yaml:"position"`
	Role     string `yaml:"role"`
	Status   string `yaml:"status"`
}

type attendanceDoc struct {
	ID        string    `yaml:"id"`
	OwnerID   string    `yaml:"ownerId"`
	Date      string    `yaml:"date"`
	Timestamp time.Time `yaml:"timestamp"`
	Status    string    `yaml:"status"`
}

type itemDoc struct {
	ID        string `yaml:"id"`
	SKU       string `yaml:"sku"`
	Name      string `yaml:"name"`
	Category  string `yaml:"category"`
	Quantity  string `yaml:"quantity"`
	UnitPrice string `yaml:"unitPrice"`
}

// Load lee el dataset desde path; si path está vacío usa el dataset embebido.
func Load(path string) (memory.Dataset, error) {
	if path == "" {
		return Parse(embedded)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return memory.Dataset{}, fmt.Errorf("seed: leer %s: %w", path, err)
	}
	return Parse(b)
}

// NewGateway construye un gateway en memoria poblado con los datos semilla.
func NewGateway(path string, opts ...memory.Option) (*memory.Gateway, error) {
	data, err := Load(path)
	if err != nil {
		return nil, err
	}
	return memory.NewGateway(data, opts...), nil
}

// Parse decodifica y valida un dataset YAML.
func Parse(b []byte) (memory.Dataset, error) {
	var doc document
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return memory.Dataset{}, fmt.Errorf("seed: parse yaml: %w", err)
	}

	var out memory.Dataset
	users := make(map[string]bool, len(doc.Users))
	for i, u := range doc.Users {
		if u.ID == "" || u.Name == "" {
			return memory.Dataset{}, fmt.Errorf("seed: users[%d]: id y name son requeridos", i)
		}
		if users[u.ID] {
			return memory.Dataset{}, fmt.Errorf("seed: users[%d]: id duplicado %q", i, u.ID)
		}
		if !entity.ValidRole(u.Role) || !entity.ValidUserStatus(u.Status) {
			return memory.Dataset{}, fmt.Errorf("seed: users[%d]: rol %q o estado %q inválido", i, u.Role, u.Status)
		}
		users[u.ID] = true
		out.Users = append(out.Users, &entity.User{
			ID: u.ID, Name: u.Name, Email: u.Email, Position: u.Position, Role: u.Role, Status: u.Status,
		})
	}

	days := make(map[string]bool, len(doc.Attendance))
	for i, a := range doc.Attendance {
		if !users[a.OwnerID] {
			return memory.Dataset{}, fmt.Errorf("seed: attendance[%d]: ownerId %q desconocido", i, a.OwnerID)
		}
		if _, err := time.Parse(entity.DateLayout, a.Date); err != nil {
			return memory.Dataset{}, fmt.Errorf("seed: attendance[%d]: fecha %q inválida", i, a.Date)
		}
		if !entity.ValidAttendanceStatus(a.Status) {
			return memory.Dataset{}, fmt.Errorf("seed: attendance[%d]: estado %q inválido", i, a.Status)
		}
		key := a.OwnerID + "|" + a.Date
		if days[key] {
			return memory.Dataset{}, fmt.Errorf("seed: attendance[%d]: %s ya tiene registro el %s", i, a.OwnerID, a.Date)
		}
		days[key] = true
		out.Attendance = append(out.Attendance, &entity.AttendanceRecord{
			ID: a.ID, UserID: a.OwnerID, Date: a.Date, Timestamp: a.Timestamp, Status: a.Status,
		})
	}

	for i, it := range doc.Inventory {
		qty, err := decimal.NewFromString(it.Quantity)
		if err != nil {
			return memory.Dataset{}, fmt.Errorf("seed: inventory[%d]: quantity: %w", i, err)
		}
		price, err := decimal.NewFromString(it.UnitPrice)
		if err != nil {
			return memory.Dataset{}, fmt.Errorf("seed: inventory[%d]: unitPrice: %w", i, err)
		}
		out.Inventory = append(out.Inventory, &entity.InventoryItem{
			ID: it.ID, SKU: it.SKU, Name: it.Name, Category: it.Category, Quantity: qty, UnitPrice: price,
		})
	}
	return out, nil
}
