package user

import (
	"time"

	errors "github.com/shivam99392677/anwesha26-sub000/internal"
	"github.com/shivam99392677/anwesha26-sub000/internal/core/common/validation"
	"github.com/shivam99392677/anwesha26-sub000/internal/credential"
)

// RegisterDTO is step one of registration: the account itself.
type RegisterDTO struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Profile fields end up verbatim inside the credential token, which has no
// delimiter escaping, so the delimiter is banned at the edge.
func (d *RegisterDTO) Validate() error {
	validator := validation.NewValidator()
	validator.Field("email", d.Email).Required().Email().NoDelimiter(credential.Delimiter)
	validator.Field("password", d.Password).Required().MinLength(8)
	validator.Field("first_name", d.FirstName).Required().MaxLength(100).NoDelimiter(credential.Delimiter)
	validator.Field("last_name", d.LastName).MaxLength(100).NoDelimiter(credential.Delimiter)

	if appErr := validator.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

// CompleteProfileDTO is step two: the fields the credential and check-in
// flows need.
type CompleteProfileDTO struct {
	Contact string `json:"contact"`
	College string `json:"college"`
	DOB     string `json:"dob"`
	Gender  string `json:"gender"`
}

func (d *CompleteProfileDTO) Validate() error {
	validator := validation.NewValidator()
	validator.Field("contact", d.Contact).Required().MinLength(10).MaxLength(15).NoDelimiter(credential.Delimiter)
	validator.Field("college", d.College).Required().MaxLength(200).NoDelimiter(credential.Delimiter)
	validator.Field("dob", d.DOB).Required().NoDelimiter(credential.Delimiter)
	validator.Field("gender", d.Gender).Required().NoDelimiter(credential.Delimiter)

	if appErr := validator.Validate(); appErr != nil {
		return appErr
	}

	if _, err := time.Parse("2006-01-02", d.DOB); err != nil {
		return errors.NewValidationFieldError("dob", "dob must be in YYYY-MM-DD format", errors.ErrCodeValidationFailed)
	}
	return nil
}

// CredentialResponse carries the encoded QR credential token.
type CredentialResponse struct {
	Token string `json:"token"`
}
