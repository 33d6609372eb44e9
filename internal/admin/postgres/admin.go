package postgres

import (
	"gorm.io/gorm"

	adminpkg "github.com/shivam99392677/anwesha26-sub000/internal/admin"
	paymentDatamodel "github.com/shivam99392677/anwesha26-sub000/internal/core/datamodel/payment"
	userDatamodel "github.com/shivam99392677/anwesha26-sub000/internal/core/datamodel/user"
)

type AdminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) adminpkg.RepositoryAPI {
	return &AdminRepository{
		db: db,
	}
}

func (r *AdminRepository) ListUsers() ([]*userDatamodel.User, error) {
	var users []*userDatamodel.User
	err := r.db.Order("id ASC").Find(&users).Error
	return users, err
}

func (r *AdminRepository) ListPayments(status string) ([]*paymentDatamodel.Payment, error) {
	var payments []*paymentDatamodel.Payment
	q := r.db.Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Find(&payments).Error
	return payments, err
}

func (r *AdminRepository) ListVerifiedEmails() ([]string, error) {
	var emails []string
	err := r.db.Model(&userDatamodel.User{}).
		Where("is_verified = ?", true).
		Order("id ASC").
		Pluck("email", &emails).Error
	return emails, err
}
