package event

import (
	"time"

	errors "github.com/shivam99392677/anwesha26-sub000/internal"
	"github.com/shivam99392677/anwesha26-sub000/internal/core/common/validation"
)

type CreateEventDTO struct {
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Venue       string    `json:"venue"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	FeePaise    int64     `json:"fee_paise"`
	IsPublished bool      `json:"is_published"`
}

func (d *CreateEventDTO) Validate() error {
	validator := validation.NewValidator()
	validator.Field("name", d.Name).Required().MaxLength(200)
	validator.Field("slug", d.Slug).Required().MaxLength(100)

	if appErr := validator.Validate(); appErr != nil {
		return appErr
	}
	if d.FeePaise < 0 {
		return errors.NewValidationError("fee_paise cannot be negative", errors.ErrCodeInvalidAmount)
	}
	if !d.EndsAt.IsZero() && d.EndsAt.Before(d.StartsAt) {
		return errors.NewValidationError("ends_at must not be before starts_at", errors.ErrCodeValidationFailed)
	}
	return nil
}

// UpdateEventDTO uses pointers so absent fields stay untouched.
type UpdateEventDTO struct {
	Name        *string    `json:"name,omitempty"`
	Description *string    `json:"description,omitempty"`
	Category    *string    `json:"category,omitempty"`
	Venue       *string    `json:"venue,omitempty"`
	StartsAt    *time.Time `json:"starts_at,omitempty"`
	EndsAt      *time.Time `json:"ends_at,omitempty"`
	FeePaise    *int64     `json:"fee_paise,omitempty"`
	IsPublished *bool      `json:"is_published,omitempty"`
}

func (d *UpdateEventDTO) Validate() error {
	if d.Name != nil && *d.Name == "" {
		return errors.NewValidationError("name cannot be empty", errors.ErrCodeValidationFailed)
	}
	if d.FeePaise != nil && *d.FeePaise < 0 {
		return errors.NewValidationError("fee_paise cannot be negative", errors.ErrCodeInvalidAmount)
	}
	return nil
}
