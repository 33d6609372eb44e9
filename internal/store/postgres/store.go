package postgres

import (
	"gorm.io/gorm"

	storeDatamodel "github.com/shivam99392677/anwesha26-sub000/internal/core/datamodel/store"
	storepkg "github.com/shivam99392677/anwesha26-sub000/internal/store"
)

type StoreRepository struct {
	db *gorm.DB
}

func NewStoreRepository(db *gorm.DB) storepkg.RepositoryAPI {
	return &StoreRepository{
		db: db,
	}
}

func (r *StoreRepository) CreateProduct(p *storeDatamodel.Product) error {
	return r.db.Create(p).Error
}

func (r *StoreRepository) GetProductByID(id int64) (*storeDatamodel.Product, error) {
	var p storeDatamodel.Product
	if err := r.db.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *StoreRepository) ListActiveProducts(limit, offset int) ([]*storeDatamodel.Product, error) {
	var products []*storeDatamodel.Product
	err := r.db.Where("is_active = ?", true).
		Order("id ASC").
		Limit(limit).
		Offset(offset).
		Find(&products).Error
	return products, err
}

func (r *StoreRepository) ListAllProducts(limit, offset int) ([]*storeDatamodel.Product, error) {
	var products []*storeDatamodel.Product
	err := r.db.Order("id ASC").
		Limit(limit).
		Offset(offset).
		Find(&products).Error
	return products, err
}

func (r *StoreRepository) UpdateProduct(p *storeDatamodel.Product) error {
	return r.db.Save(p).Error
}

// CreateOrder inserts the order with its items and decrements stock in one
// transaction. The guarded UPDATE keeps two concurrent checkouts from
// overselling the same product.
func (r *StoreRepository) CreateOrder(o *storeDatamodel.Order) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, item := range o.Items {
			res := tx.Model(&storeDatamodel.Product{}).
				Where("id = ? AND stock >= ?", item.ProductID, item.Quantity).
				Update("stock", gorm.Expr("stock - ?", item.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return storepkg.ErrOutOfStock
			}
		}

		return tx.Create(o).Error
	})
}

func (r *StoreRepository) GetOrderByID(id int64) (*storeDatamodel.Order, error) {
	var o storeDatamodel.Order
	if err := r.db.Preload("Items").First(&o, id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *StoreRepository) ListOrdersByUser(userID int64, limit, offset int) ([]*storeDatamodel.Order, error) {
	var orders []*storeDatamodel.Order
	err := r.db.Preload("Items").
		Where("user_id = ?", userID).
		Order("placed_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&orders).Error
	return orders, err
}

func (r *StoreRepository) UpdateOrderStatus(id int64, status string) error {
	res := r.db.Model(&storeDatamodel.Order{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
