package marketplace

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/oab26/medusa-colabship/internal/pgerr"
)

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a new PostgreSQL marketplace repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) CreateVendor(ctx context.Context, vendor *Vendor) error {
	query := `
		INSERT INTO vendors (id, handle, name, logo_url)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''))
	`
	_, err := r.db.ExecContext(ctx, query, vendor.ID, vendor.Handle, vendor.Name, vendor.LogoURL)
	return pgerr.Map("create vendor", err)
}

func (r *postgresRepository) DeleteVendor(ctx context.Context, id string) error {
	parsedID, err := uuid.Parse(id)
	if err != nil {
		return nil
	}
	_, err = r.db.ExecContext(ctx, `DELETE FROM vendors WHERE id = $1`, parsedID)
	return pgerr.Map("delete vendor", err)
}

func (r *postgresRepository) GetVendorByID(ctx context.Context, id string) (*Vendor, error) {
	parsedID, err := uuid.Parse(id)
	if err != nil {
		return nil, pgerr.Map("get vendor", sql.ErrNoRows)
	}
	return r.scanVendor(r.db.QueryRowContext(ctx, `
		SELECT id, handle, COALESCE(name, ''), COALESCE(logo_url, ''), created_at, updated_at
		FROM vendors
		WHERE id = $1`, parsedID))
}

func (r *postgresRepository) GetVendorByHandle(ctx context.Context, handle string) (*Vendor, error) {
	return r.scanVendor(r.db.QueryRowContext(ctx, `
		SELECT id, handle, COALESCE(name, ''), COALESCE(logo_url, ''), created_at, updated_at
		FROM vendors
		WHERE handle = $1`, handle))
}

func (r *postgresRepository) scanVendor(row *sql.Row) (*Vendor, error) {
	vendor := &Vendor{}
	err := row.Scan(
		&vendor.ID,
		&vendor.Handle,
		&vendor.Name,
		&vendor.LogoURL,
		&vendor.CreatedAt,
		&vendor.UpdatedAt,
	)
	if err != nil {
		return nil, pgerr.Map("get vendor", err)
	}
	return vendor, nil
}

func (r *postgresRepository) CreateVendorAdmin(ctx context.Context, admin *VendorAdmin) error {
	query := `
		INSERT INTO vendor_admins (id, vendor_id, email, first_name, last_name)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query, admin.ID, admin.VendorID, admin.Email, admin.FirstName, admin.LastName)
	return pgerr.Map("create vendor admin", err)
}

func (r *postgresRepository) DeleteVendorAdmin(ctx context.Context, id string) error {
	parsedID, err := uuid.Parse(id)
	if err != nil {
		return nil
	}
	_, err = r.db.ExecContext(ctx, `DELETE FROM vendor_admins WHERE id = $1`, parsedID)
	return pgerr.Map("delete vendor admin", err)
}

func (r *postgresRepository) GetVendorAdminByID(ctx context.Context, id string) (*VendorAdmin, error) {
	parsedID, err := uuid.Parse(id)
	if err != nil {
		return nil, pgerr.Map("get vendor admin", sql.ErrNoRows)
	}
	admin := &VendorAdmin{}
	err = r.db.QueryRowContext(ctx, `
		SELECT id, vendor_id, email, first_name, last_name, created_at, updated_at
		FROM vendor_admins
		WHERE id = $1`, parsedID).Scan(
		&admin.ID,
		&admin.VendorID,
		&admin.Email,
		&admin.FirstName,
		&admin.LastName,
		&admin.CreatedAt,
		&admin.UpdatedAt,
	)
	if err != nil {
		return nil, pgerr.Map("get vendor admin", err)
	}
	return admin, nil
}
