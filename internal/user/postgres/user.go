package postgres

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	userDatamodel "github.com/shivam99392677/anwesha26-sub000/internal/core/datamodel/user"
	userpkg "github.com/shivam99392677/anwesha26-sub000/internal/user"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) userpkg.RepositoryAPI {
	return &UserRepository{
		db: db,
	}
}

// Create inserts the account and assigns its anwesha id from the row id in
// the same transaction. The placeholder keeps the unique index satisfied
// until the real id is known.
func (r *UserRepository) Create(u *userDatamodel.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		u.AnweshaID = "pending-" + uuid.NewString()
		if err := tx.Create(u).Error; err != nil {
			return err
		}

		u.AnweshaID = fmt.Sprintf("ANW-%06d", u.ID)
		return tx.Model(u).Update("anwesha_id", u.AnweshaID).Error
	})
}

func (r *UserRepository) GetByID(userID int64) (*userDatamodel.User, error) {
	var u userDatamodel.User
	if err := r.db.First(&u, userID).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(email string) (*userDatamodel.User, error) {
	var u userDatamodel.User
	if err := r.db.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByVerifyToken(token string) (*userDatamodel.User, error) {
	var u userDatamodel.User
	if err := r.db.Where("verify_token = ?", token).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) UpdateProfile(userID int64, contact, college, dob, gender string) error {
	return r.db.Model(&userDatamodel.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"contact":      contact,
		"college":      college,
		"dob":          dob,
		"gender":       gender,
		"profile_done": true,
		"updated_at":   time.Now(),
	}).Error
}

func (r *UserRepository) MarkVerified(userID int64) error {
	now := time.Now()
	return r.db.Model(&userDatamodel.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"is_verified":  true,
		"verified_at":  now,
		"verify_token": nil,
		"updated_at":   now,
	}).Error
}
