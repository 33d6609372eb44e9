package postgres

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"github.com/shivam99392677/anwesha26-sub000/internal/core/datamodel/payment"
	paymentpkg "github.com/shivam99392677/anwesha26-sub000/internal/payment"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) paymentpkg.RepositoryAPI {
	return &PaymentRepository{
		db: db,
	}
}

func (r *PaymentRepository) Create(p *payment.Payment) error {
	return r.db.Create(p).Error
}

func (r *PaymentRepository) GetByID(id int64) (*payment.Payment, error) {
	var p payment.Payment
	err := r.db.First(&p, id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepository) GetByMerchantTxnID(merchantTxnID string) (*payment.Payment, error) {
	var p payment.Payment
	err := r.db.Where("merchant_txn_id = ?", merchantTxnID).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepository) ListByUserID(userID int64, limit, offset int) ([]*payment.Payment, error) {
	var payments []*payment.Payment
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&payments).Error
	return payments, err
}

func (r *PaymentRepository) List(limit, offset int) ([]*payment.Payment, error) {
	var payments []*payment.Payment
	err := r.db.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&payments).Error
	return payments, err
}

func (r *PaymentRepository) UpdateStatus(id int64, status string, gatewayTxnID, bankTxnID *string, gatewayResponse json.RawMessage, failureReason *string) error {
	updates := map[string]interface{}{
		"status":       status,
		"processed_at": time.Now(),
	}

	if gatewayTxnID != nil {
		updates["gateway_txn_id"] = *gatewayTxnID
	}

	if bankTxnID != nil {
		updates["bank_txn_id"] = *bankTxnID
	}

	if gatewayResponse != nil {
		updates["gateway_response"] = gatewayResponse
	}

	if failureReason != nil {
		updates["failure_reason"] = *failureReason
	}

	return r.db.Model(&payment.Payment{}).Where("id = ?", id).Updates(updates).Error
}
