package event

import "time"

type Event struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"column:name;not null"`
	Slug        string    `json:"slug" gorm:"column:slug;not null;uniqueIndex"`
	Description string    `json:"description,omitempty" gorm:"column:description"`
	Category    string    `json:"category,omitempty" gorm:"column:category"`
	Venue       string    `json:"venue,omitempty" gorm:"column:venue"`
	StartsAt    time.Time `json:"starts_at" gorm:"column:starts_at"`
	EndsAt      time.Time `json:"ends_at" gorm:"column:ends_at"`
	FeePaise    int64     `json:"fee_paise" gorm:"column:fee_paise;default:0"`
	IsPublished bool      `json:"is_published" gorm:"column:is_published;default:false"`
	CreatedAt   time.Time `json:"created_at" gorm:"column:created_at;default:now()"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"column:updated_at;default:now()"`
}

type Registration struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	EventID      int64     `json:"event_id" gorm:"column:event_id;not null;uniqueIndex:idx_event_user"`
	UserID       int64     `json:"user_id" gorm:"column:user_id;not null;uniqueIndex:idx_event_user"`
	RegisteredAt time.Time `json:"registered_at" gorm:"column:registered_at;default:now()"`
}

func (Registration) TableName() string {
	return "event_registrations"
}
