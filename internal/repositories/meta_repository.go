package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"invoice-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const sellerKey = "seller"

// MetaRepository persists small key/value records: the seller identity and
// the invoice counter. The counter itself is only read and incremented
// inside the invoice creation transaction (see InvoiceRepository.Create).
type MetaRepository struct {
	DB *pgxpool.Pool
}

func NewMetaRepository(db *pgxpool.Pool) *MetaRepository {
	return &MetaRepository{DB: db}
}

func (r *MetaRepository) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.DB.QueryRow(ctx,
		`SELECT meta_value FROM meta WHERE meta_key=$1`, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", models.ErrNotFound
	}
	return value, err
}

func (r *MetaRepository) Upsert(ctx context.Context, key, value string) error {
	_, err := r.DB.Exec(ctx,
		`INSERT INTO meta (meta_key, meta_value, updated_at)
         VALUES ($1, $2, CURRENT_TIMESTAMP)
         ON CONFLICT (meta_key)
         DO UPDATE SET meta_value = $2, updated_at = CURRENT_TIMESTAMP`,
		key, value)
	return err
}

// GetSeller loads the persisted seller record.
func (r *MetaRepository) GetSeller(ctx context.Context) (*models.Seller, error) {
	value, err := r.Get(ctx, sellerKey)
	if err != nil {
		return nil, err
	}

	var seller models.Seller
	if err := json.Unmarshal([]byte(value), &seller); err != nil {
		return nil, fmt.Errorf("failed to decode seller record: %w", err)
	}
	return &seller, nil
}

// SetSeller stores the seller record. Existing invoices keep their snapshot.
func (r *MetaRepository) SetSeller(ctx context.Context, seller *models.Seller) error {
	data, err := json.Marshal(seller)
	if err != nil {
		return fmt.Errorf("failed to encode seller record: %w", err)
	}
	return r.Upsert(ctx, sellerKey, string(data))
}

// SeedSeller stores the seller record only when none exists yet, so config
// defaults never clobber an operator-edited record.
func (r *MetaRepository) SeedSeller(ctx context.Context, seller *models.Seller) error {
	data, err := json.Marshal(seller)
	if err != nil {
		return fmt.Errorf("failed to encode seller record: %w", err)
	}
	_, err = r.DB.Exec(ctx,
		`INSERT INTO meta (meta_key, meta_value)
         VALUES ($1, $2)
         ON CONFLICT (meta_key) DO NOTHING`,
		sellerKey, string(data))
	return err
}
