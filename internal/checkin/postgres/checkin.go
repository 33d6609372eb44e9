package postgres

import (
	"gorm.io/gorm"

	checkinpkg "github.com/shivam99392677/anwesha26-sub000/internal/checkin"
	checkinDatamodel "github.com/shivam99392677/anwesha26-sub000/internal/core/datamodel/checkin"
	userDatamodel "github.com/shivam99392677/anwesha26-sub000/internal/core/datamodel/user"
)

type CheckInRepository struct {
	db *gorm.DB
}

func NewCheckInRepository(db *gorm.DB) checkinpkg.RepositoryAPI {
	return &CheckInRepository{
		db: db,
	}
}

func (r *CheckInRepository) GetUserByAnweshaID(anweshaID string) (*userDatamodel.User, error) {
	var u userDatamodel.User
	if err := r.db.Where("anwesha_id = ?", anweshaID).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *CheckInRepository) GetCheckIn(eventID, userID int64) (*checkinDatamodel.CheckIn, error) {
	var c checkinDatamodel.CheckIn
	if err := r.db.Where("event_id = ? AND user_id = ?", eventID, userID).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CheckInRepository) CreateCheckIn(c *checkinDatamodel.CheckIn) error {
	return r.db.Create(c).Error
}

func (r *CheckInRepository) ListByEvent(eventID int64) ([]*checkinDatamodel.CheckIn, error) {
	var checkIns []*checkinDatamodel.CheckIn
	err := r.db.Where("event_id = ?", eventID).Order("scanned_at ASC").Find(&checkIns).Error
	return checkIns, err
}
