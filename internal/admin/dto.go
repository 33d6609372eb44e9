package admin

import (
	"github.com/shivam99392677/anwesha26-sub000/internal/core/common/validation"
)

type BroadcastDTO struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func (d *BroadcastDTO) Validate() error {
	validator := validation.NewValidator()
	validator.Field("subject", d.Subject).Required().MaxLength(200)
	validator.Field("body", d.Body).Required()

	if appErr := validator.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

type BroadcastResult struct {
	Recipients int `json:"recipients"`
	Batches    int `json:"batches"`
	Failed     int `json:"failed"`
}
