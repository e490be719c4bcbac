package store

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/oab26/medusa-colabship/internal/pgerr"
)

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a new PostgreSQL store repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) CreateStore(ctx context.Context, store *Store) error {
	metadata, err := json.Marshal(store.Metadata)
	if err != nil {
		return pgerr.Map("create store", err)
	}
	query := `
		INSERT INTO stores (id, name, default_currency, metadata)
		VALUES ($1, $2, $3, $4)
	`
	_, err = r.db.ExecContext(ctx, query, store.ID, store.Name, store.DefaultCurrency, metadata)
	return pgerr.Map("create store", err)
}

func (r *postgresRepository) DeleteStore(ctx context.Context, id string) error {
	parsedID, err := uuid.Parse(id)
	if err != nil {
		return nil
	}
	_, err = r.db.ExecContext(ctx, `DELETE FROM stores WHERE id = $1`, parsedID)
	return pgerr.Map("delete store", err)
}

func (r *postgresRepository) GetStoreByID(ctx context.Context, id string) (*Store, error) {
	parsedID, err := uuid.Parse(id)
	if err != nil {
		return nil, pgerr.Map("get store", sql.ErrNoRows)
	}
	store := &Store{}
	var metadata []byte
	err = r.db.QueryRowContext(ctx, `
		SELECT id, name, default_currency, metadata, created_at, updated_at
		FROM stores
		WHERE id = $1`, parsedID).Scan(
		&store.ID,
		&store.Name,
		&store.DefaultCurrency,
		&metadata,
		&store.CreatedAt,
		&store.UpdatedAt,
	)
	if err != nil {
		return nil, pgerr.Map("get store", err)
	}
	if err := json.Unmarshal(metadata, &store.Metadata); err != nil {
		return nil, pgerr.Map("get store", err)
	}
	return store, nil
}
