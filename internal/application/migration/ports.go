package migration

import (
	"context"

	"github.com/storesync/migrator/internal/domain/catalog"
)

// Catalog is the store API surface the migration consumes, on both the
// source side (listing) and the destination side (creation). The store
// client satisfies it.
type Catalog interface {
	ListBrands(ctx context.Context) ([]catalog.Brand, error)
	ListCategories(ctx context.Context) ([]catalog.Category, error)
	ListProducts(ctx context.Context) ([]catalog.Product, error)
	CreateBrand(ctx context.Context, payload catalog.BrandPayload) (int, error)
	CreateCategory(ctx context.Context, payload catalog.CategoryPayload) (int, error)
	CreateProduct(ctx context.Context, payload catalog.ProductPayload) (int, error)
}

// Notifier dispatches the end-of-run notification.
type Notifier interface {
	Send(ctx context.Context, subject, body string) error
}
