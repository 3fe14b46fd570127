package catalog

import (
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// ProductTypePhysical is the product type every migrated product is
// normalized to. The destination store requires a type classification and
// the source API does not expose one.
const ProductTypePhysical = "physical"

// validate is the shared validator for creation payloads.
var validate = validator.New()

// Brand is a catalog brand as listed by a store API. Identifiers are
// store-assigned and not portable across stores.
type Brand struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Category is a catalog category as listed by a store API. ParentID zero
// means the category sits at the store root.
type Category struct {
	ID       int    `json:"id"`
	ParentID int    `json:"parent_id"`
	Name     string `json:"name"`
}

// IsRoot returns true if the category has no parent.
func (c Category) IsRoot() bool {
	return c.ParentID == 0
}

// Product is a catalog product as listed by a store API. BrandID zero means
// the product carries no brand reference.
type Product struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Weight      decimal.Decimal `json:"weight"`
	BrandID     int             `json:"brand_id"`
	CategoryIDs []int           `json:"categories"`
}

// BrandPayload is the creation request body for a brand.
type BrandPayload struct {
	Name string `json:"name" validate:"required,max=250"`
}

// Validate checks the payload before it is sent to a store.
func (p BrandPayload) Validate() error {
	return validate.Struct(p)
}

// CategoryPayload is the creation request body for a category. ParentID must
// already be a destination identifier; zero attaches the category at the
// destination root.
type CategoryPayload struct {
	Name     string `json:"name" validate:"required,max=250"`
	ParentID int    `json:"parent_id" validate:"gte=0"`
}

// Validate checks the payload before it is sent to a store.
func (p CategoryPayload) Validate() error {
	return validate.Struct(p)
}

// ProductPayload is the creation request body for a product. CategoryIDs and
// BrandID must already be destination identifiers; a nil BrandID creates the
// product without a brand reference.
type ProductPayload struct {
	Name        string          `json:"name" validate:"required,max=250"`
	Type        string          `json:"type" validate:"required,oneof=physical digital"`
	Price       decimal.Decimal `json:"price"`
	Weight      decimal.Decimal `json:"weight"`
	CategoryIDs []int           `json:"categories"`
	BrandID     *int            `json:"brand_id"`
}

// Validate checks the payload before it is sent to a store.
func (p ProductPayload) Validate() error {
	if err := validate.Struct(p); err != nil {
		return err
	}
	if p.Price.IsNegative() {
		return ErrNegativePrice
	}
	if p.Weight.IsNegative() {
		return ErrNegativeWeight
	}
	return nil
}
