package store

import (
	errors "github.com/shivam99392677/anwesha26-sub000/internal"
	"github.com/shivam99392677/anwesha26-sub000/internal/core/common/validation"
)

type CreateProductDTO struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	PricePaise  int64  `json:"price_paise"`
	Stock       int    `json:"stock"`
	ImageURL    string `json:"image_url"`
	IsActive    bool   `json:"is_active"`
}

func (d *CreateProductDTO) Validate() error {
	validator := validation.NewValidator()
	validator.Field("name", d.Name).Required().MaxLength(200)
	validator.Field("price_paise", d.PricePaise).Required().MinInt(1, errors.ErrCodeInvalidAmount)

	if appErr := validator.Validate(); appErr != nil {
		return appErr
	}
	if d.Stock < 0 {
		return errors.NewValidationError("stock cannot be negative", errors.ErrCodeInvalidQuantity)
	}
	return nil
}

type UpdateProductDTO struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	PricePaise  *int64  `json:"price_paise,omitempty"`
	Stock       *int    `json:"stock,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

func (d *UpdateProductDTO) Validate() error {
	if d.PricePaise != nil && *d.PricePaise <= 0 {
		return errors.NewValidationError("price_paise must be positive", errors.ErrCodeInvalidAmount)
	}
	if d.Stock != nil && *d.Stock < 0 {
		return errors.NewValidationError("stock cannot be negative", errors.ErrCodeInvalidQuantity)
	}
	return nil
}

// CheckoutItemDTO is one cart line; the cart itself lives client-side until
// checkout.
type CheckoutItemDTO struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type CheckoutDTO struct {
	Items []CheckoutItemDTO `json:"items"`
}

func (d *CheckoutDTO) Validate() error {
	if len(d.Items) == 0 {
		return errors.NewValidationError("order must contain at least one item", errors.ErrCodeValidationFailed)
	}
	for _, item := range d.Items {
		if item.ProductID <= 0 {
			return errors.NewValidationError("product_id is required for every item", errors.ErrCodeValidationFailed)
		}
		if item.Quantity <= 0 {
			return errors.NewValidationError("quantity must be positive", errors.ErrCodeInvalidQuantity)
		}
	}
	return nil
}
