package repositories

import (
	"context"
	"errors"

	"invoice-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ItemRepository struct {
	DB *pgxpool.Pool
}

func NewItemRepository(db *pgxpool.Pool) *ItemRepository {
	return &ItemRepository{DB: db}
}

func (r *ItemRepository) Create(ctx context.Context, item *models.Item) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO items(name, sku, price)
         VALUES($1, $2, $3)
         RETURNING id, created_at, updated_at`,
		item.Name, item.SKU, item.Price,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
}

func (r *ItemRepository) Get(ctx context.Context, id int) (*models.Item, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, name, sku, price, created_at, updated_at
         FROM items WHERE id=$1`, id)

	var item models.Item
	err := row.Scan(&item.ID, &item.Name, &item.SKU, &item.Price, &item.CreatedAt, &item.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *ItemRepository) List(ctx context.Context) ([]*models.Item, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, name, sku, price, created_at, updated_at
         FROM items ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.Item
	for rows.Next() {
		var item models.Item
		err := rows.Scan(&item.ID, &item.Name, &item.SKU, &item.Price, &item.CreatedAt, &item.UpdatedAt)
		if err != nil {
			return nil, err
		}
		items = append(items, &item)
	}
	return items, rows.Err()
}

func (r *ItemRepository) Update(ctx context.Context, item *models.Item) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE items SET name=$1, sku=$2, price=$3, updated_at=CURRENT_TIMESTAMP
         WHERE id=$4`,
		item.Name, item.SKU, item.Price, item.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Delete removes an item. Stored invoice lines keep their description and
// price snapshot, so nothing cascades.
func (r *ItemRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM items WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
