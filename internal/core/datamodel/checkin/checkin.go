package checkin

import "time"

type CheckIn struct {
	ID         int64     `gorm:"primaryKey"`
	EventID    int64     `gorm:"column:event_id;not null;index"`
	UserID     int64     `gorm:"column:user_id;not null;index"`
	AnweshaID  string    `gorm:"column:anwesha_id;not null"`
	OperatorID int64     `gorm:"column:operator_id;not null"`
	ScannedAt  time.Time `gorm:"column:scanned_at;default:now()"`
}

func (CheckIn) TableName() string {
	return "check_ins"
}
