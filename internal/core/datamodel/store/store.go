package store

import "time"

type Product struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"column:name;not null"`
	Description string    `json:"description,omitempty" gorm:"column:description"`
	PricePaise  int64     `json:"price_paise" gorm:"column:price_paise;not null"`
	Stock       int       `json:"stock" gorm:"column:stock;default:0"`
	ImageURL    string    `json:"image_url,omitempty" gorm:"column:image_url"`
	IsActive    bool      `json:"is_active" gorm:"column:is_active;default:true"`
	CreatedAt   time.Time `json:"created_at" gorm:"column:created_at;default:now()"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"column:updated_at;default:now()"`
}

type Order struct {
	ID         int64       `json:"id" gorm:"primaryKey"`
	UserID     int64       `json:"user_id" gorm:"column:user_id;not null"`
	TotalPaise int64       `json:"total_paise" gorm:"column:total_paise;not null"`
	Status     string      `json:"status" gorm:"column:status;default:pending"`
	PlacedAt   time.Time   `json:"placed_at" gorm:"column:placed_at;default:now()"`
	CreatedAt  time.Time   `json:"created_at" gorm:"column:created_at;default:now()"`
	UpdatedAt  time.Time   `json:"updated_at" gorm:"column:updated_at;default:now()"`
	Items      []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
}

type OrderItem struct {
	ID         int64 `json:"id" gorm:"primaryKey"`
	OrderID    int64 `json:"order_id" gorm:"column:order_id;not null;index"`
	ProductID  int64 `json:"product_id" gorm:"column:product_id;not null"`
	Quantity   int   `json:"quantity" gorm:"column:quantity;not null"`
	PricePaise int64 `json:"price_paise" gorm:"column:price_paise;not null"`
}

const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusCancelled = "cancelled"
)
