package dto

import (
	"time"

	"github.com/jhoicas/portal-asistencia/internal/domain/entity"
)

// UserResponse identidad tal como viaja en GET /users.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Position  string    `json:"position"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UpdateUserRequest body de PUT /users/{id}; los campos ausentes no cambian.
type UpdateUserRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=200"`
	Email    *string `json:"email" validate:"omitempty,max=254"`
	Position *string `json:"position" validate:"omitempty,max=100"`
	Role     *string `json:"role" validate:"omitempty,oneof=admin employee"`
	Status   *string `json:"status" validate:"omitempty,oneof=active terminated"`
}

// NewUserResponse mapea la entidad al formato de transporte.
func NewUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Position:  u.Position,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// ToEntity mapea el formato de transporte a la entidad.
func (r UserResponse) ToEntity() *entity.User {
	return &entity.User{
		ID:        r.ID,
		Name:      r.Name,
		Email:     r.Email,
		Position:  r.Position,
		Role:      r.Role,
		Status:    r.Status,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// NewUpdateUserRequest arma el body completo a partir de la entidad.
func NewUpdateUserRequest(u *entity.User) UpdateUserRequest {
	return UpdateUserRequest{
		Name:     &u.Name,
		Email:    &u.Email,
		Position: &u.Position,
		Role:     &u.Role,
		Status:   &u.Status,
	}
}

// Apply copia sobre u los campos presentes.
func (in UpdateUserRequest) Apply(u *entity.User) {
	if in.Name != nil {
		u.Name = *in.Name
	}
	if in.Email != nil {
		u.Email = *in.Email
	}
	if in.Position != nil {
		u.Position = *in.Position
	}
	if in.Role != nil {
		u.Role = *in.Role
	}
	if in.Status != nil {
		u.Status = *in.Status
	}
}
