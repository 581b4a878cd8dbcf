package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/portal-asistencia/internal/application/dto"
	"github.com/jhoicas/portal-asistencia/internal/domain"
	"github.com/jhoicas/portal-asistencia/internal/domain/entity"
	"github.com/jhoicas/portal-asistencia/internal/domain/repository"
)

// UserUseCase aplica reglas de negocio para usuarios.
type UserUseCase struct {
	store repository.UserGateway
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(store repository.UserGateway) *UserUseCase {
	return &UserUseCase{store: store}
}

// List devuelve todas las identidades.
func (uc *UserUseCase) List(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := uc.store.FetchUsers(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, dto.NewUserResponse(u))
	}
	return out, nil
}

// Update aplica los campos presentes de in sobre el usuario id.
func (uc *UserUseCase) Update(ctx context.Context, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := findUser(ctx, uc.store, id)
	if err != nil {
		return nil, err
	}
	in.Apply(user)
	if user.Name == "" || !entity.ValidRole(user.Role) || !entity.ValidUserStatus(user.Status) {
		return nil, fmt.Errorf("user %s: %w", id, domain.ErrInvalidInput)
	}
	updated, err := uc.store.UpdateUser(ctx, user)
	if err != nil {
		return nil, err
	}
	resp := dto.NewUserResponse(updated)
	return &resp, nil
}

func findUser(ctx context.Context, store repository.UserGateway, id string) (*entity.User, error) {
	users, err := store.FetchUsers(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
}
