package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/portal-asistencia/internal/domain"
	"github.com/jhoicas/portal-asistencia/internal/domain/entity"
)

const userColumns = `id, name, email, position, role, status, created_at, updated_at`

// UserRepo persistencia de usuarios sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador. Acepta pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// List devuelve todos los usuarios ordenados por fecha de alta.
func (r *UserRepo) List(ctx context.Context) ([]*entity.User, error) {
	rows, err := r.q.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// GetByID obtiene un usuario; domain.ErrNotFound si no existe.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return u, nil
}

// Update reemplaza los campos editables y devuelve la fila resultante.
func (r *UserRepo) Update(ctx context.Context, user *entity.User) (*entity.User, error) {
	query := `
		UPDATE users SET name = $2, email = $3, position = $4, role = $5, status = $6, updated_at = now()
		WHERE id = $1
		RETURNING ` + userColumns
	u, err := scanUser(r.q.QueryRow(ctx, query,
		user.ID, user.Name, user.Email, user.Position, user.Role, user.Status,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user %s: %w", user.ID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return u, nil
}

// Upsert inserta o reemplaza un usuario conservando su created_at.
func (r *UserRepo) Upsert(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, name, email, position, role, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, email = EXCLUDED.email,
			position = EXCLUDED.position, role = EXCLUDED.role, status = EXCLUDED.status, updated_at = now()`
	_, err := r.q.Exec(ctx, query, user.ID, user.Name, user.Email, user.Position, user.Role, user.Status)
	if err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}
	return nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Position, &u.Role, &u.Status, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}
