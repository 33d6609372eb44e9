package checkin

import (
	errors "github.com/shivam99392677/anwesha26-sub000/internal"
	"github.com/shivam99392677/anwesha26-sub000/internal/core/common/validation"
)

type ScanDTO struct {
	EventID int64  `json:"event_id"`
	Token   string `json:"token"`
}

func (d *ScanDTO) Validate() error {
	validator := validation.NewValidator()
	validator.Field("event_id", d.EventID).Required().MinInt(1, errors.ErrCodeValidationFailed)
	validator.Field("token", d.Token).Required()

	if appErr := validator.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

// ScanResult is what the scanner UI shows the operator after a successful
// scan: who just walked in.
type ScanResult struct {
	CheckInID int64  `json:"check_in_id"`
	AnweshaID string `json:"anwesha_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	College   string `json:"college"`
	EventID   int64  `json:"event_id"`
}
