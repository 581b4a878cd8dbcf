package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/portal-asistencia/internal/domain"
	"github.com/jhoicas/portal-asistencia/internal/domain/entity"
)

const inventoryColumns = `id, sku, name, category, quantity, unit_price, updated_at`

// InventoryRepo persistencia de artículos de inventario.
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador. Acepta pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

func (r *InventoryRepo) List(ctx context.Context) ([]*entity.InventoryItem, error) {
	rows, err := r.q.Query(ctx, `SELECT `+inventoryColumns+` FROM inventory_items ORDER BY sku`)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

func (r *InventoryRepo) Update(ctx context.Context, item *entity.InventoryItem) (*entity.InventoryItem, error) {
	query := `
		UPDATE inventory_items SET sku = $2, name = $3, category = $4, quantity = $5, unit_price = $6, updated_at = now()
		WHERE id = $1
		RETURNING ` + inventoryColumns
	out, err := scanItem(r.q.QueryRow(ctx, query, item.ID, item.SKU, item.Name, item.Category, item.Quantity, item.UnitPrice))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("sku %s: %w", item.SKU, domain.ErrInvalidInput)
		}
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("inventory item %s: %w", item.ID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("update inventory item: %w", err)
	}
	return out, nil
}

// Upsert inserta o reemplaza un artículo por id.
func (r *InventoryRepo) Upsert(ctx context.Context, item *entity.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (id, sku, name, category, quantity, unit_price)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET sku = EXCLUDED.sku, name = EXCLUDED.name, category = EXCLUDED.category,
			quantity = EXCLUDED.quantity, unit_price = EXCLUDED.unit_price, updated_at = now()`
	_, err := r.q.Exec(ctx, query, item.ID, item.SKU, item.Name, item.Category, item.Quantity, item.UnitPrice)
	if err != nil {
		return fmt.Errorf("upsert inventory item: %w", err)
	}
	return nil
}

func scanItem(row pgx.Row) (*entity.InventoryItem, error) {
	var it entity.InventoryItem
	if err := row.Scan(&it.ID, &it.SKU, &it.Name, &it.Category, &it.Quantity, &it.UnitPrice, &it.UpdatedAt); err != nil {
		return nil, err
	}
	return &it, nil
}
