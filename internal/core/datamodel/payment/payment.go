package payment

import (
	"encoding/json"
	"time"
)

type Payment struct {
	ID              int64           `json:"id" gorm:"primaryKey"`
	OrderID         *int64          `json:"order_id,omitempty" gorm:"column:order_id"`
	EventID         *int64          `json:"event_id,omitempty" gorm:"column:event_id"`
	UserID          int64           `json:"user_id" gorm:"column:user_id;not null"`
	MerchantTxnID   string          `json:"merchant_txn_id" gorm:"column:merchant_txn_id;not null;uniqueIndex"`
	Gateway         string          `json:"gateway" gorm:"column:gateway;not null"`
	AmountPaise     int64           `json:"amount_paise" gorm:"column:amount_paise;not null"`
	Status          string          `json:"status" gorm:"column:status;default:pending"`
	GatewayTxnID    *string         `json:"gateway_txn_id,omitempty" gorm:"column:gateway_txn_id"`
	BankTxnID       *string         `json:"bank_txn_id,omitempty" gorm:"column:bank_txn_id"`
	GatewayResponse json.RawMessage `json:"-" gorm:"column:gateway_response;type:jsonb"`
	FailureReason   *string         `json:"failure_reason,omitempty" gorm:"column:failure_reason"`
	ProcessedAt     *time.Time      `json:"processed_at,omitempty" gorm:"column:processed_at"`
	CreatedAt       time.Time       `json:"created_at" gorm:"column:created_at;default:now()"`
	UpdatedAt       time.Time       `json:"updated_at" gorm:"column:updated_at;default:now()"`
}

const (
	StatusPending = "pending"
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

const (
	GatewayRazorpay = "razorpay"
	GatewayTPSL     = "tpsl"
)
