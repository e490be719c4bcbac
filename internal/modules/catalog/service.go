package catalog

import (
	"context"

	"github.com/google/uuid"
)

// Service defines catalog business logic.
type Service interface {
	CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error)
	GetProduct(ctx context.Context, id string) (*Product, error)
	ListProducts(ctx context.Context, category string, activeOnly bool) ([]*Product, error)

	AssignProductToVendor(ctx context.Context, vendorID, productID string) error
	UnassignProductFromVendor(ctx context.Context, vendorID, productID string) error
	ListVendorProducts(ctx context.Context, vendorID string) ([]*Product, error)
}

// CreateProductRequest holds the data for creating a product.
type CreateProductRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Currency    string  `json:"currency"`
	SKU         string  `json:"sku"`
	ImageURL    string  `json:"image_url"`
}

type service struct{ repo Repository }

func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error) {
	currency := req.Currency
	if currency == "" {
		currency = "usd"
	}
	p := &Product{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		Currency:    currency,
		SKU:         req.SKU,
		ImageURL:    req.ImageURL,
		IsActive:    true,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) GetProduct(ctx context.Context, id string) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListProducts(ctx context.Context, category string, activeOnly bool) ([]*Product, error) {
	return s.repo.List(ctx, category, activeOnly)
}

func (s *service) AssignProductToVendor(ctx context.Context, vendorID, productID string) error {
	return s.repo.AssignToVendor(ctx, vendorID, productID)
}

func (s *service) UnassignProductFromVendor(ctx context.Context, vendorID, productID string) error {
	return s.repo.UnassignFromVendor(ctx, vendorID, productID)
}

func (s *service) ListVendorProducts(ctx context.Context, vendorID string) ([]*Product, error) {
	return s.repo.ListByVendor(ctx, vendorID)
}
