package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/oab26/medusa-colabship/internal/pgerr"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, p *Product) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO products
		  (id, title, description, category, price, currency, sku, image_url, is_active)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		p.ID, p.Title, p.Description, p.Category, p.Price,
		p.Currency, p.SKU, p.ImageURL, p.IsActive)
	return pgerr.Map("create product", err)
}

func scanProduct(scan func(...interface{}) error) (*Product, error) {
	p := &Product{}
	err := scan(&p.ID, &p.Title, &p.Description, &p.Category, &p.Price,
		&p.Currency, &p.SKU, &p.ImageURL, &p.IsActive,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, pgerr.Map("get product", err)
	}
	return p, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Product, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, pgerr.Map("get product", sql.ErrNoRows)
	}
	row := r.db.QueryRowContext(ctx, `
		SELECT id,title,description,category,price,currency,sku,image_url,is_active,created_at,updated_at
		FROM products WHERE id=$1`, uid)
	return scanProduct(row.Scan)
}

func (r *postgresRepo) List(ctx context.Context, category string, activeOnly bool) ([]*Product, error) {
	query := `SELECT id,title,description,category,price,currency,sku,image_url,is_active,created_at,updated_at
	          FROM products WHERE 1=1`
	args := []interface{}{}
	n := 1
	if category != "" {
		query += fmt.Sprintf(` AND category=$%d`, n)
		args = append(args, category)
		n++
	}
	if activeOnly {
		query += ` AND is_active=true`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, pgerr.Map("list products", err)
	}
	defer rows.Close()

	var products []*Product
	for rows.Next() {
		p, err := scanProduct(rows.Scan)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, pgerr.Map("list products", rows.Err())
}

func (r *postgresRepo) AssignToVendor(ctx context.Context, vendorID, productID string) error {
	vid, err := uuid.Parse(vendorID)
	if err != nil {
		return pgerr.Map("assign product", sql.ErrNoRows)
	}
	pid, err := uuid.Parse(productID)
	if err != nil {
		return pgerr.Map("assign product", sql.ErrNoRows)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO vendor_products (vendor_id, product_id)
		VALUES ($1, $2)`, vid, pid)
	return pgerr.Map("assign product", err)
}

func (r *postgresRepo) UnassignFromVendor(ctx context.Context, vendorID, productID string) error {
	vid, err := uuid.Parse(vendorID)
	if err != nil {
		return nil
	}
	pid, err := uuid.Parse(productID)
	if err != nil {
		return nil
	}
	_, err = r.db.ExecContext(ctx, `
		DELETE FROM vendor_products WHERE vendor_id=$1 AND product_id=$2`, vid, pid)
	return pgerr.Map("unassign product", err)
}

func (r *postgresRepo) ListByVendor(ctx context.Context, vendorID string) ([]*Product, error) {
	vid, err := uuid.Parse(vendorID)
	if err != nil {
		return nil, pgerr.Map("list vendor products", sql.ErrNoRows)
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT p.id,p.title,p.description,p.category,p.price,p.currency,p.sku,p.image_url,p.is_active,p.created_at,p.updated_at
		FROM products p
		JOIN vendor_products vp ON vp.product_id = p.id
		WHERE vp.vendor_id = $1
		ORDER BY p.created_at DESC`, vid)
	if err != nil {
		return nil, pgerr.Map("list vendor products", err)
	}
	defer rows.Close()

	var products []*Product
	for rows.Next() {
		p, err := scanProduct(rows.Scan)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, pgerr.Map("list vendor products", rows.Err())
}
