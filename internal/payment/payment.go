package payment

import (
	"encoding/json"

	errors "github.com/shivam99392677/anwesha26-sub000/internal"
	"github.com/shivam99392677/anwesha26-sub000/internal/core/datamodel/payment"
)

// RepositoryAPI defines payment persistence operations.
type RepositoryAPI interface {
	Create(p *payment.Payment) error
	GetByID(id int64) (*payment.Payment, error)
	GetByMerchantTxnID(merchantTxnID string) (*payment.Payment, error)
	ListByUserID(userID int64, limit, offset int) ([]*payment.Payment, error)
	List(limit, offset int) ([]*payment.Payment, error)
	UpdateStatus(id int64, status string, gatewayTxnID, bankTxnID *string, gatewayResponse json.RawMessage, failureReason *string) error
}

// OrderMarker is the slice of the store service the payment flow needs:
// flipping an order to paid once its payment verifies.
type OrderMarker interface {
	MarkOrderPaid(orderID int64) error
}

var (
	ErrPaymentNotFound  = errors.ErrPaymentNotFound
	ErrCallbackRejected = errors.ErrCallbackRejected
)

// CallbackResult tells the HTTP layer where to send the user after a
// gateway callback. The redirect never distinguishes decryption failures
// from signature failures.
type CallbackResult struct {
	Paid          bool
	MerchantTxnID string
}
