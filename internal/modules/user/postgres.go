package user

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/oab26/medusa-colabship/internal/pgerr"
)

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a new PostgreSQL user repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) CreateUser(ctx context.Context, user *User) error {
	query := `
		INSERT INTO users (id, email, first_name, last_name)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.ExecContext(ctx, query, user.ID, user.Email, user.FirstName, user.LastName)
	return pgerr.Map("create user", err)
}

func (r *postgresRepository) DeleteUser(ctx context.Context, id string) error {
	parsedID, err := uuid.Parse(id)
	if err != nil {
		return nil
	}
	_, err = r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, parsedID)
	return pgerr.Map("delete user", err)
}

func (r *postgresRepository) GetUserByID(ctx context.Context, id string) (*User, error) {
	parsedID, err := uuid.Parse(id)
	if err != nil {
		return nil, pgerr.Map("get user", sql.ErrNoRows)
	}
	return r.scanUser(r.db.QueryRowContext(ctx, `
		SELECT id, email, first_name, last_name, created_at, updated_at
		FROM users
		WHERE id = $1`, parsedID))
}

func (r *postgresRepository) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	return r.scanUser(r.db.QueryRowContext(ctx, `
		SELECT id, email, first_name, last_name, created_at, updated_at
		FROM users
		WHERE email = $1`, email))
}

func (r *postgresRepository) scanUser(row *sql.Row) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, pgerr.Map("get user", err)
	}
	return user, nil
}
