package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Beginner abre transacciones; lo cumplen pgxpool.Pool y pgxmock.
type Beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Repos agrupa los repositorios atados a una misma transacción.
type Repos struct {
	Users      *UserRepo
	Attendance *AttendanceRepo
	Inventory  *InventoryRepo
}

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	db Beginner
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(db Beginner) *TxRunner {
	return &TxRunner{db: db}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(repos Repos) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := Repos{
		Users:      NewUserRepository(tx),
		Attendance: NewAttendanceRepository(tx),
		Inventory:  NewInventoryRepository(tx),
	}
	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
