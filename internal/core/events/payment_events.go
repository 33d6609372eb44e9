package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	PaymentCompletedEventType = "payment.completed"
	PaymentFailedEventType    = "payment.failed"
	UserRegisteredEventType   = "user.registered"
)

func NewPaymentCompletedEvent(paymentID, merchantTxnID, gateway string, userID, amountPaise int64) BaseEvent {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      PaymentCompletedEventType,
		Timestamp: time.Now().UTC(),
		Data: map[string]interface{}{
			"payment_id":      paymentID,
			"merchant_txn_id": merchantTxnID,
			"gateway":         gateway,
			"user_id":         userID,
			"amount_paise":    amountPaise,
		},
	}
}

func NewPaymentFailedEvent(paymentID, merchantTxnID, gateway, reason string, userID int64) BaseEvent {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      PaymentFailedEventType,
		Timestamp: time.Now().UTC(),
		Data: map[string]interface{}{
			"payment_id":      paymentID,
			"merchant_txn_id": merchantTxnID,
			"gateway":         gateway,
			"reason":          reason,
			"user_id":         userID,
		},
	}
}

func NewUserRegisteredEvent(userID int64, anweshaID, email, verificationToken string) BaseEvent {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      UserRegisteredEventType,
		Timestamp: time.Now().UTC(),
		Data: map[string]interface{}{
			"user_id":            userID,
			"anwesha_id":         anweshaID,
			"email":              email,
			"verification_token": verificationToken,
		},
	}
}
