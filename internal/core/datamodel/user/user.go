package user

import "time"

type User struct {
	ID           int64      `gorm:"primaryKey"`
	AnweshaID    string     `gorm:"column:anwesha_id;not null;uniqueIndex"`
	FirstName    string     `gorm:"column:first_name;not null"`
	LastName     string     `gorm:"column:last_name"`
	Email        string     `gorm:"column:email;not null;uniqueIndex"`
	PasswordHash string     `gorm:"column:password_hash;not null"`
	Contact      string     `gorm:"column:contact"`
	College      string     `gorm:"column:college"`
	DOB          string     `gorm:"column:dob"`
	Gender       string     `gorm:"column:gender"`
	Role         string     `gorm:"column:role;default:participant"`
	IsVerified   bool       `gorm:"column:is_verified;default:false"`
	ProfileDone  bool       `gorm:"column:profile_done;default:false"`
	VerifiedAt   *time.Time `gorm:"column:verified_at"`
	VerifyToken  *string    `gorm:"column:verify_token;index"`
	CreatedAt    time.Time  `gorm:"column:created_at;default:now()"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;default:now()"`
}

const (
	RoleParticipant = "participant"
	RoleOperator    = "operator"
	RoleAdmin       = "admin"
)
