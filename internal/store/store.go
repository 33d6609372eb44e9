package store

import (
	errors "github.com/shivam99392677/anwesha26-sub000/internal"
	storeDatamodel "github.com/shivam99392677/anwesha26-sub000/internal/core/datamodel/store"
)

type RepositoryAPI interface {
	CreateProduct(p *storeDatamodel.Product) error
	GetProductByID(id int64) (*storeDatamodel.Product, error)
	ListActiveProducts(limit, offset int) ([]*storeDatamodel.Product, error)
	ListAllProducts(limit, offset int) ([]*storeDatamodel.Product, error)
	UpdateProduct(p *storeDatamodel.Product) error

	// CreateOrder inserts the order with its items and decrements stock for
	// every line atomically; insufficient stock fails the whole order.
	CreateOrder(o *storeDatamodel.Order) error
	GetOrderByID(id int64) (*storeDatamodel.Order, error)
	ListOrdersByUser(userID int64, limit, offset int) ([]*storeDatamodel.Order, error)
	UpdateOrderStatus(id int64, status string) error
}

var (
	ErrProductNotFound = errors.ErrProductNotFound
	ErrOrderNotFound   = errors.ErrOrderNotFound
	ErrOutOfStock      = errors.ErrOutOfStock
)
