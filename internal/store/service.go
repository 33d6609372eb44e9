package store

import (
	"fmt"
	"log/slog"

	storeDatamodel "github.com/shivam99392677/anwesha26-sub000/internal/core/datamodel/store"
)

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) CreateProduct(dto *CreateProductDTO) (*storeDatamodel.Product, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	p := &storeDatamodel.Product{
		Name:        dto.Name,
		Description: dto.Description,
		PricePaise:  dto.PricePaise,
		Stock:       dto.Stock,
		ImageURL:    dto.ImageURL,
		IsActive:    dto.IsActive,
	}
	if err := s.repo.CreateProduct(p); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	s.logger.Info("product created", "product_id", p.ID, "name", p.Name, "price_paise", p.PricePaise)
	return p, nil
}

func (s *Service) UpdateProduct(id int64, dto *UpdateProductDTO) (*storeDatamodel.Product, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	p, err := s.repo.GetProductByID(id)
	if err != nil {
		return nil, ErrProductNotFound
	}

	if dto.Name != nil {
		p.Name = *dto.Name
	}
	if dto.Description != nil {
		p.Description = *dto.Description
	}
	if dto.PricePaise != nil {
		p.PricePaise = *dto.PricePaise
	}
	if dto.Stock != nil {
		p.Stock = *dto.Stock
	}
	if dto.ImageURL != nil {
		p.ImageURL = *dto.ImageURL
	}
	if dto.IsActive != nil {
		p.IsActive = *dto.IsActive
	}

	if err := s.repo.UpdateProduct(p); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}

	s.logger.Info("product updated", "product_id", p.ID)
	return p, nil
}

func (s *Service) ListProducts(limit, offset int) ([]*storeDatamodel.Product, error) {
	return s.repo.ListActiveProducts(limit, offset)
}

func (s *Service) ListAllProducts(limit, offset int) ([]*storeDatamodel.Product, error) {
	return s.repo.ListAllProducts(limit, offset)
}

func (s *Service) GetProduct(id int64) (*storeDatamodel.Product, error) {
	p, err := s.repo.GetProductByID(id)
	if err != nil {
		return nil, ErrProductNotFound
	}
	return p, nil
}

// Checkout creates a pending order from the submitted cart. Prices come
// from the catalogue at checkout time, never from the client; stock is
// checked and reserved atomically by the repository.
func (s *Service) Checkout(userID int64, dto *CheckoutDTO) (*storeDatamodel.Order, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	var total int64
	items := make([]storeDatamodel.OrderItem, 0, len(dto.Items))
	for _, line := range dto.Items {
		p, err := s.repo.GetProductByID(line.ProductID)
		if err != nil || !p.IsActive {
			return nil, ErrProductNotFound
		}
		if p.Stock < line.Quantity {
			return nil, ErrOutOfStock
		}

		items = append(items, storeDatamodel.OrderItem{
			ProductID:  p.ID,
			Quantity:   line.Quantity,
			PricePaise: p.PricePaise,
		})
		total += p.PricePaise * int64(line.Quantity)
	}

	order := &storeDatamodel.Order{
		UserID:     userID,
		TotalPaise: total,
		Status:     storeDatamodel.OrderStatusPending,
		Items:      items,
	}
	if err := s.repo.CreateOrder(order); err != nil {
		return nil, err
	}

	s.logger.Info("order placed",
		"order_id", order.ID,
		"user_id", userID,
		"total_paise", total,
		"items", len(items))
	return order, nil
}

func (s *Service) GetOrder(id, userID int64) (*storeDatamodel.Order, error) {
	o, err := s.repo.GetOrderByID(id)
	if err != nil {
		return nil, ErrOrderNotFound
	}
	if o.UserID != userID {
		return nil, ErrOrderNotFound
	}
	return o, nil
}

func (s *Service) ListUserOrders(userID int64, limit, offset int) ([]*storeDatamodel.Order, error) {
	return s.repo.ListOrdersByUser(userID, limit, offset)
}

// MarkOrderPaid flips a pending order to paid. The payment service calls
// this after a verified payment; it is not reachable from any handler.
func (s *Service) MarkOrderPaid(orderID int64) error {
	o, err := s.repo.GetOrderByID(orderID)
	if err != nil {
		return ErrOrderNotFound
	}
	if o.Status == storeDatamodel.OrderStatusPaid {
		return nil
	}

	if err := s.repo.UpdateOrderStatus(orderID, storeDatamodel.OrderStatusPaid); err != nil {
		return fmt.Errorf("mark order paid: %w", err)
	}

	s.logger.Info("order marked paid", "order_id", orderID)
	return nil
}
