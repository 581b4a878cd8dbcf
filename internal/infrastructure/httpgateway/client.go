package httpgateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jhoicas/portal-asistencia/internal/application/dto"
	"github.com/jhoicas/portal-asistencia/internal/domain"
	"github.com/jhoicas/portal-asistencia/internal/domain/entity"
	"github.com/jhoicas/portal-asistencia/internal/domain/repository"
	"github.com/jhoicas/portal-asistencia/pkg/logger"
)

// Verificar en tiempo de compilación que Client implementa Gateway.
var _ repository.Gateway = (*Client)(nil)

// maxErrorBody límite de lectura del cuerpo de una respuesta de error.
const maxErrorBody = 64 << 10

// Client adaptador que implementa Gateway contra el API REST del servidor.
// Usa net/http de la librería estándar; no reintenta: cualquier fallo se devuelve como *domain.GatewayError.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger
}

// New construye el cliente. timeout <= 0 deja el cliente sin timeout propio.
func New(baseURL string, timeout time.Duration, log *logger.Logger) *Client {
	if log == nil {
		log = logger.Nop()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        log.Named("http_gateway"),
	}
}

// FetchUsers GET /users.
func (c *Client) FetchUsers(ctx context.Context) ([]*entity.User, error) {
	var out []dto.UserResponse
	if err := c.do(ctx, "fetch users", http.MethodGet, "/users", nil, &out); err != nil {
		return nil, err
	}
	users := make([]*entity.User, 0, len(out))
	for _, u := range out {
		users = append(users, u.ToEntity())
	}
	return users, nil
}

// UpdateUser PUT /users/{id}.
func (c *Client) UpdateUser(ctx context.Context, user *entity.User) (*entity.User, error) {
	var out dto.UserResponse
	path := "/users/" + url.PathEscape(user.ID)
	if err := c.do(ctx, "update user", http.MethodPut, path, dto.NewUpdateUserRequest(user), &out); err != nil {
		return nil, err
	}
	return out.ToEntity(), nil
}

// FetchAttendance GET /attendance.
func (c *Client) FetchAttendance(ctx context.Context) ([]*entity.AttendanceRecord, error) {
	var out []dto.AttendanceResponse
	if err := c.do(ctx, "fetch attendance", http.MethodGet, "/attendance", nil, &out); err != nil {
		return nil, err
	}
	records := make([]*entity.AttendanceRecord, 0, len(out))
	for _, r := range out {
		records = append(records, r.ToEntity())
	}
	return records, nil
}

// CreateAttendance POST /attendance con {ownerId, id, date, timestamp}.
func (c *Client) CreateAttendance(ctx context.Context, draft *entity.AttendanceRecord) (*entity.AttendanceRecord, error) {
	var out dto.AttendanceResponse
	if err := c.do(ctx, "create attendance", http.MethodPost, "/attendance", dto.NewCreateAttendanceRequest(draft), &out); err != nil {
		return nil, err
	}
	return out.ToEntity(), nil
}

// UpdateAttendanceStatus PUT /attendance/{id} con {status}.
func (c *Client) UpdateAttendanceStatus(ctx context.Context, id, status string) (*entity.AttendanceRecord, error) {
	var out dto.AttendanceResponse
	path := "/attendance/" + url.PathEscape(id)
	if err := c.do(ctx, "update attendance", http.MethodPut, path, dto.UpdateAttendanceRequest{Status: status}, &out); err != nil {
		return nil, err
	}
	return out.ToEntity(), nil
}

// FetchInventory GET /inventory.
func (c *Client) FetchInventory(ctx context.Context) ([]*entity.InventoryItem, error) {
	var out []dto.InventoryItemResponse
	if err := c.do(ctx, "fetch inventory", http.MethodGet, "/inventory", nil, &out); err != nil {
		return nil, err
	}
	items := make([]*entity.InventoryItem, 0, len(out))
	for _, it := range out {
		items = append(items, it.ToEntity())
	}
	return items, nil
}

// UpdateInventoryItem PUT /inventory/{id}.
func (c *Client) UpdateInventoryItem(ctx context.Context, item *entity.InventoryItem) (*entity.InventoryItem, error) {
	var out dto.InventoryItemResponse
	path := "/inventory/" + url.PathEscape(item.ID)
	if err := c.do(ctx, "update inventory", http.MethodPut, path, dto.NewUpdateInventoryItemRequest(item), &out); err != nil {
		return nil, err
	}
	return out.ToEntity(), nil
}

// do ejecuta la petición y decodifica la respuesta en out.
// Una respuesta fuera de 2xx se convierte en *domain.GatewayError con el "message" del cuerpo si existe.
func (c *Client) do(ctx context.Context, op, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return &domain.GatewayError{Op: op, Err: fmt.Errorf("serializar request: %w", err)}
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &domain.GatewayError{Op: op, Err: fmt.Errorf("crear request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("op", op).Str("path", path).Msg("fallo de transporte")
		return &domain.GatewayError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	c.log.Debug().Str("op", op).Str("method", method).Str("path", path).
		Int("status", resp.StatusCode).Dur("elapsed", time.Since(start)).Msg("respuesta del API")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		ge := &domain.GatewayError{Op: op, StatusCode: resp.StatusCode}
		var errBody dto.ErrorResponse
		if json.Unmarshal(raw, &errBody) == nil {
			ge.Message = errBody.Message
		}
		return ge
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &domain.GatewayError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("decodificar respuesta: %w", err)}
	}
	return nil
}
