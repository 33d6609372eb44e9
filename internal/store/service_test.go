package store_test

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	storeDatamodel "github.com/shivam99392677/anwesha26-sub000/internal/core/datamodel/store"
	storePkg "github.com/shivam99392677/anwesha26-sub000/internal/store"
)

func TestStoreService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Store Service Suite")
}

type mockStoreRepository struct {
	products         map[int64]*storeDatamodel.Product
	orders           map[int64]*storeDatamodel.Order
	nextID           int64
	createOrderError error
}

func newMockStoreRepository() *mockStoreRepository {
	return &mockStoreRepository{
		products: make(map[int64]*storeDatamodel.Product),
		orders:   make(map[int64]*storeDatamodel.Order),
		nextID:   1,
	}
}

func (m *mockStoreRepository) CreateProduct(p *storeDatamodel.Product) error {
	p.ID = m.nextID
	m.nextID++
	m.products[p.ID] = p
	return nil
}

func (m *mockStoreRepository) GetProductByID(id int64) (*storeDatamodel.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, errors.New("product not found")
	}
	return p, nil
}

func (m *mockStoreRepository) ListActiveProducts(limit, offset int) ([]*storeDatamodel.Product, error) {
	var out []*storeDatamodel.Product
	for _, p := range m.products {
		if p.IsActive {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockStoreRepository) ListAllProducts(limit, offset int) ([]*storeDatamodel.Product, error) {
	var out []*storeDatamodel.Product
	for _, p := range m.products {
		out = append(out, p)
	}
	return out, nil
}

func (m *mockStoreRepository) UpdateProduct(p *storeDatamodel.Product) error {
	m.products[p.ID] = p
	return nil
}

func (m *mockStoreRepository) CreateOrder(o *storeDatamodel.Order) error {
	if m.createOrderError != nil {
		return m.createOrderError
	}
	for _, item := range o.Items {
		p, ok := m.products[item.ProductID]
		if !ok || p.Stock < item.Quantity {
			return storePkg.ErrOutOfStock
		}
		p.Stock -= item.Quantity
	}
	o.ID = m.nextID
	m.nextID++
	m.orders[o.ID] = o
	return nil
}

func (m *mockStoreRepository) GetOrderByID(id int64) (*storeDatamodel.Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, errors.New("order not found")
	}
	return o, nil
}

func (m *mockStoreRepository) ListOrdersByUser(userID int64, limit, offset int) ([]*storeDatamodel.Order, error) {
	var out []*storeDatamodel.Order
	for _, o := range m.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *mockStoreRepository) UpdateOrderStatus(id int64, status string) error {
	o, ok := m.orders[id]
	if !ok {
		return errors.New("order not found")
	}
	o.Status = status
	return nil
}

var _ = Describe("Store Service", func() {
	var (
		repo    *mockStoreRepository
		service *storePkg.Service
	)

	BeforeEach(func() {
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		repo = newMockStoreRepository()
		service = storePkg.NewService(repo, logger)
	})

	createProduct := func(name string, pricePaise int64, stock int, active bool) *storeDatamodel.Product {
		p, err := service.CreateProduct(&storePkg.CreateProductDTO{
			Name:       name,
			PricePaise: pricePaise,
			Stock:      stock,
			IsActive:   active,
		})
		Expect(err).ToNot(HaveOccurred())
		return p
	}

	Describe("CreateProduct", func() {
		It("should create and return the product", func() {
			p := createProduct("Fest Hoodie", 79900, 50, true)

			Expect(p.ID).To(BeNumerically(">", 0))
			Expect(p.PricePaise).To(Equal(int64(79900)))
			Expect(p.Stock).To(Equal(50))
		})

		It("should reject a zero price", func() {
			_, err := service.CreateProduct(&storePkg.CreateProductDTO{
				Name:       "Free Hoodie",
				PricePaise: 0,
			})

			Expect(err).To(HaveOccurred())
		})

		It("should reject negative stock", func() {
			_, err := service.CreateProduct(&storePkg.CreateProductDTO{
				Name:       "Fest Hoodie",
				PricePaise: 79900,
				Stock:      -1,
			})

			Expect(err).To(HaveOccurred())
		})
	})

	Describe("UpdateProduct", func() {
		It("should apply only the provided fields", func() {
			p := createProduct("Fest Hoodie", 79900, 50, true)

			newPrice := int64(69900)
			inactive := false
			updated, err := service.UpdateProduct(p.ID, &storePkg.UpdateProductDTO{
				PricePaise: &newPrice,
				IsActive:   &inactive,
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(updated.PricePaise).To(Equal(int64(69900)))
			Expect(updated.IsActive).To(BeFalse())
			Expect(updated.Name).To(Equal("Fest Hoodie"))
			Expect(updated.Stock).To(Equal(50))
		})

		It("should return not found for an unknown product", func() {
			_, err := service.UpdateProduct(999, &storePkg.UpdateProductDTO{})

			Expect(err).To(MatchError(storePkg.ErrProductNotFound))
		})
	})

	Describe("ListProducts", func() {
		It("should only return active products", func() {
			createProduct("Fest Hoodie", 79900, 50, true)
			createProduct("Retired Tee", 29900, 10, false)

			products, err := service.ListProducts(20, 0)

			Expect(err).ToNot(HaveOccurred())
			Expect(products).To(HaveLen(1))
			Expect(products[0].Name).To(Equal("Fest Hoodie"))
		})
	})

	Describe("Checkout", func() {
		It("should place a pending order priced from the catalogue", func() {
			hoodie := createProduct("Fest Hoodie", 79900, 50, true)
			tee := createProduct("Fest Tee", 29900, 100, true)

			order, err := service.Checkout(7, &storePkg.CheckoutDTO{
				Items: []storePkg.CheckoutItemDTO{
					{ProductID: hoodie.ID, Quantity: 2},
					{ProductID: tee.ID, Quantity: 1},
				},
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(order.UserID).To(Equal(int64(7)))
			Expect(order.Status).To(Equal(storeDatamodel.OrderStatusPending))
			Expect(order.TotalPaise).To(Equal(int64(2*79900 + 29900)))
			Expect(order.Items).To(HaveLen(2))
			Expect(order.Items[0].PricePaise).To(Equal(int64(79900)))
		})

		It("should decrement stock when the order is placed", func() {
			hoodie := createProduct("Fest Hoodie", 79900, 5, true)

			_, err := service.Checkout(7, &storePkg.CheckoutDTO{
				Items: []storePkg.CheckoutItemDTO{{ProductID: hoodie.ID, Quantity: 2}},
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(repo.products[hoodie.ID].Stock).To(Equal(3))
		})

		It("should reject an order exceeding available stock", func() {
			hoodie := createProduct("Fest Hoodie", 79900, 1, true)

			_, err := service.Checkout(7, &storePkg.CheckoutDTO{
				Items: []storePkg.CheckoutItemDTO{{ProductID: hoodie.ID, Quantity: 2}},
			})

			Expect(err).To(MatchError(storePkg.ErrOutOfStock))
			Expect(repo.orders).To(BeEmpty())
		})

		It("should refuse an inactive product", func() {
			retired := createProduct("Retired Tee", 29900, 10, false)

			_, err := service.Checkout(7, &storePkg.CheckoutDTO{
				Items: []storePkg.CheckoutItemDTO{{ProductID: retired.ID, Quantity: 1}},
			})

			Expect(err).To(MatchError(storePkg.ErrProductNotFound))
		})

		It("should refuse an unknown product", func() {
			_, err := service.Checkout(7, &storePkg.CheckoutDTO{
				Items: []storePkg.CheckoutItemDTO{{ProductID: 999, Quantity: 1}},
			})

			Expect(err).To(MatchError(storePkg.ErrProductNotFound))
		})

		It("should reject an empty cart", func() {
			_, err := service.Checkout(7, &storePkg.CheckoutDTO{})

			Expect(err).To(HaveOccurred())
		})
	})

	Describe("GetOrder", func() {
		It("should not return another user's order", func() {
			hoodie := createProduct("Fest Hoodie", 79900, 5, true)
			order, err := service.Checkout(7, &storePkg.CheckoutDTO{
				Items: []storePkg.CheckoutItemDTO{{ProductID: hoodie.ID, Quantity: 1}},
			})
			Expect(err).ToNot(HaveOccurred())

			_, err = service.GetOrder(order.ID, 8)

			Expect(err).To(MatchError(storePkg.ErrOrderNotFound))
		})
	})

	Describe("MarkOrderPaid", func() {
		It("should flip a pending order to paid", func() {
			hoodie := createProduct("Fest Hoodie", 79900, 5, true)
			order, err := service.Checkout(7, &storePkg.CheckoutDTO{
				Items: []storePkg.CheckoutItemDTO{{ProductID: hoodie.ID, Quantity: 1}},
			})
			Expect(err).ToNot(HaveOccurred())

			Expect(service.MarkOrderPaid(order.ID)).To(Succeed())
			Expect(repo.orders[order.ID].Status).To(Equal(storeDatamodel.OrderStatusPaid))
		})

		It("should be idempotent for an already paid order", func() {
			hoodie := createProduct("Fest Hoodie", 79900, 5, true)
			order, err := service.Checkout(7, &storePkg.CheckoutDTO{
				Items: []storePkg.CheckoutItemDTO{{ProductID: hoodie.ID, Quantity: 1}},
			})
			Expect(err).ToNot(HaveOccurred())

			Expect(service.MarkOrderPaid(order.ID)).To(Succeed())
			Expect(service.MarkOrderPaid(order.ID)).To(Succeed())
		})

		It("should return not found for an unknown order", func() {
			Expect(service.MarkOrderPaid(999)).To(MatchError(storePkg.ErrOrderNotFound))
		})
	})
})
