package user

import (
	"errors"
	"time"

	userDatamodel "github.com/shivam99392677/anwesha26-sub000/internal/core/datamodel/user"
)

// User is the profile view returned over the API. The credential token is
// derived from these fields on demand and never stored.
type User struct {
	ID          int64     `json:"id"`
	AnweshaID   string    `json:"anwesha_id"`
	Email       string    `json:"email"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Contact     string    `json:"contact,omitempty"`
	College     string    `json:"college,omitempty"`
	DOB         string    `json:"dob,omitempty"`
	Gender      string    `json:"gender,omitempty"`
	Role        string    `json:"role"`
	IsVerified  bool      `json:"is_verified"`
	ProfileDone bool      `json:"profile_done"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

var ErrNotFound = errors.New("user not found")

type RepositoryAPI interface {
	Create(u *userDatamodel.User) error
	GetByID(userID int64) (*userDatamodel.User, error)
	GetByEmail(email string) (*userDatamodel.User, error)
	GetByVerifyToken(token string) (*userDatamodel.User, error)
	UpdateProfile(userID int64, contact, college, dob, gender string) error
	MarkVerified(userID int64) error
}

func FromDataModel(u *userDatamodel.User) *User {
	return &User{
		ID:          u.ID,
		AnweshaID:   u.AnweshaID,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Contact:     u.Contact,
		College:     u.College,
		DOB:         u.DOB,
		Gender:      u.Gender,
		Role:        u.Role,
		IsVerified:  u.IsVerified,
		ProfileDone: u.ProfileDone,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
