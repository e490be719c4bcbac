package auth

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

// NewPostgresRepository creates a new PostgreSQL identity repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) CreateIdentity(ctx context.Context, identity *Identity) error {
	metadata, err := json.Marshal(identity.AppMetadata)
	if err != nil {
		return pgerr.Map("create identity", err)
	}
	query := `
		INSERT INTO auth_identities (id, provider, entity_id, password_hash, app_metadata)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err = r.db.ExecContext(ctx, query, identity.ID, identity.Provider, identity.EntityID, identity.PasswordHash, metadata)
	return pgerr.Map("create identity", err)
}

func (r *postgresRepository) DeleteIdentity(ctx context.Context, id string) error {
	parsedID, err := uuid.Parse(id)
	if err != nil {
		return pgerr.Map("delete identity", sql.ErrNoRows)
	}
	_, err = r.db.ExecContext(ctx, `DELETE FROM auth_identities WHERE id = $1`, parsedID)
	return pgerr.Map("delete identity", err)
}

func (r *postgresRepository) GetIdentityByEntity(ctx context.Context, provider, entityID string) (*Identity, error) {
	identity := &Identity{}
	var metadata []byte
	query := `
		SELECT id, provider, entity_id, password_hash, app_metadata, created_at, updated_at
		FROM auth_identities
		WHERE provider = $1 AND entity_id = $2
	`
	err := r.db.QueryRowContext(ctx, query, provider, entityID).Scan(
		&identity.ID,
		&identity.Provider,
		&identity.EntityID,
		&identity.PasswordHash,
		&metadata,
		&identity.CreatedAt,
		&identity.UpdatedAt,
	)
	if err != nil {
		return nil, pgerr.Map("get identity", err)
	}
	if err := json.Unmarshal(metadata, &identity.AppMetadata); err != nil {
		return nil, pgerr.Map("get identity", err)
	}
	return identity, nil
}

func (r *postgresRepository) SetAppMetadata(ctx context.Context, id, key, value string) error {
	parsedID, err := uuid.Parse(id)
	if err != nil {
		return pgerr.Map("set app metadata", sql.ErrNoRows)
	}
	query := `
		UPDATE auth_identities
		SET app_metadata = app_metadata || jsonb_build_object($2::text, $3::text), updated_at = NOW()
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query, parsedID, key, value)
	if err != nil {
		return pgerr.Map("set app metadata", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return pgerr.Map("set app metadata", sql.ErrNoRows)
	}
	return nil
}

func (r *postgresRepository) RemoveAppMetadata(ctx context.Context, id, key string) error {
	parsedID, err := uuid.Parse(id)
	if err != nil {
		return pgerr.Map("remove app metadata", sql.ErrNoRows)
	}
	query := `
		UPDATE auth_identities
		SET app_metadata = app_metadata - $2::text, updated_at = NOW()
		WHERE id = $1
	`
	_, err = r.db.ExecContext(ctx, query, parsedID, key)
	return pgerr.Map("remove app metadata", err)
}
