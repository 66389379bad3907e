package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/chadandhabale/Ecommerce-Microservices/internal/contract"
	"github.com/chadandhabale/Ecommerce-Microservices/internal/domain/order/model"
	productModel "github.com/chadandhabale/Ecommerce-Microservices/internal/domain/product/model"
	userModel "github.com/chadandhabale/Ecommerce-Microservices/internal/domain/user/model"
	"github.com/chadandhabale/Ecommerce-Microservices/pkg/apperr"
	baseModel "github.com/chadandhabale/Ecommerce-Microservices/pkg/model"
)

// MockOrderRepository is a mock of OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(order *model.Order) error {
	args := m.Called(order)
	return args.Error(0)
}

func (m *MockOrderRepository) GetByID(id uint) (*model.Order, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAll() ([]model.Order, error) {
	args := m.Called()
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByUserID(userID uint) ([]model.Order, error) {
	args := m.Called(userID)
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByStatus(status model.OrderStatus) ([]model.Order, error) {
	args := m.Called(status)
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *MockOrderRepository) GetRecent(since time.Time) ([]model.Order, error) {
	args := m.Called(since)
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(orderID uint, status model.OrderStatus) error {
	args := m.Called(orderID, status)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdatePaymentLink(orderID uint, paymentID, paymentStatus, keyID string, state model.PaymentLinkState) error {
	args := m.Called(orderID, paymentID, paymentStatus, keyID, state)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateLinkState(orderID uint, state model.PaymentLinkState) error {
	args := m.Called(orderID, state)
	return args.Error(0)
}

func (m *MockOrderRepository) IncrementPaymentAttempts(orderID uint) error {
	args := m.Called(orderID)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdatePaymentStatus(orderID uint, paymentStatus string) error {
	args := m.Called(orderID, paymentStatus)
	return args.Error(0)
}

func (m *MockOrderRepository) GetByLinkState(state model.PaymentLinkState, maxAttempts int) ([]model.Order, error) {
	args := m.Called(state, maxAttempts)
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *MockOrderRepository) GetLinkedNonTerminal() ([]model.Order, error) {
	args := m.Called()
	return args.Get(0).([]model.Order), args.Error(1)
}

// MockProductRepository is a mock of ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(product *productModel.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) GetByID(id uint) (*productModel.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*productModel.Product), args.Error(1)
}

func (m *MockProductRepository) GetAll() ([]productModel.Product, error) {
	args := m.Called()
	return args.Get(0).([]productModel.Product), args.Error(1)
}

func (m *MockProductRepository) GetByCategory(category string) ([]productModel.Product, error) {
	args := m.Called(category)
	return args.Get(0).([]productModel.Product), args.Error(1)
}

func (m *MockProductRepository) Search(keyword string) ([]productModel.Product, error) {
	args := m.Called(keyword)
	return args.Get(0).([]productModel.Product), args.Error(1)
}

func (m *MockProductRepository) Update(product *productModel.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockUserRepository is a mock of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *userModel.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(id uint) (*userModel.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userModel.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*userModel.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userModel.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(email string) (bool, error) {
	args := m.Called(email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) GetAll() ([]userModel.User, error) {
	args := m.Called()
	return args.Get(0).([]userModel.User), args.Error(1)
}

func (m *MockUserRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockPaymentClient is a mock of PaymentClient
type MockPaymentClient struct {
	mock.Mock
}

func (m *MockPaymentClient) CreatePayment(ctx context.Context, req *contract.PaymentRequest) (*contract.PaymentResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*contract.PaymentResponse), args.Error(1)
}

func (m *MockPaymentClient) VerifyPayment(ctx context.Context, req *contract.PaymentVerification) (bool, error) {
	args := m.Called(ctx, req)
	return args.Bool(0), args.Error(1)
}

func (m *MockPaymentClient) GetPayment(ctx context.Context, razorpayOrderID string) (*contract.PaymentResponse, error) {
	args := m.Called(ctx, razorpayOrderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*contract.PaymentResponse), args.Error(1)
}

func (m *MockPaymentClient) UpdatePaymentStatus(ctx context.Context, razorpayOrderID, status string) (*contract.PaymentResponse, error) {
	args := m.Called(ctx, razorpayOrderID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*contract.PaymentResponse), args.Error(1)
}

func (m *MockPaymentClient) Health(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func createTestUser(id uint) *userModel.User {
	return &userModel.User{
		BaseModel: baseModel.BaseModel{ID: id},
		Name:      "Test User",
		Email:     "test@example.com",
	}
}

func createTestProduct(id uint, price string) *productModel.Product {
	return &productModel.Product{
		BaseModel: baseModel.BaseModel{ID: id},
		Name:      "Test Product",
		Price:     decimal.RequireFromString(price),
	}
}

func createTestOrder(id uint, status model.OrderStatus) *model.Order {
	return &model.Order{
		BaseModel:   baseModel.BaseModel{ID: id},
		OrderDate:   time.Now(),
		TotalAmount: decimal.RequireFromString("100.00"),
		Status:      status,
		UserID:      1,
		User:        createTestUser(1),
	}
}

func newTestService(orders *MockOrderRepository, products *MockProductRepository, users *MockUserRepository, payments *MockPaymentClient) OrderService {
	return NewOrderService(orders, products, users, payments, 5)
}

func TestPlaceOrder(t *testing.T) {
	t.Run("Successful placement links payment", func(t *testing.T) {
		mockOrders := new(MockOrderRepository)
		mockProducts := new(MockProductRepository)
		mockUsers := new(MockUserRepository)
		mockPayments := new(MockPaymentClient)
		service := newTestService(mockOrders, mockProducts, mockUsers, mockPayments)

		user := createTestUser(1)
		product := createTestProduct(10, "25.50")

		mockUsers.On("GetByID", uint(1)).Return(user, nil)
		mockProducts.On("GetByID", uint(10)).Return(product, nil)
		mockOrders.On("Create", mock.AnythingOfType("*model.Order")).Run(func(args mock.Arguments) {
			args.Get(0).(*model.Order).ID = 42
		}).Return(nil)
		mockOrders.On("UpdateLinkState", uint(42), model.LinkRequested).Return(nil)
		mockOrders.On("IncrementPaymentAttempts", uint(42)).Return(nil)
		mockPayments.On("CreatePayment", mock.Anything, mock.MatchedBy(func(req *contract.PaymentRequest) bool {
			return req.OrderID == 42 && req.Amount.Equal(decimal.RequireFromString("51.00"))
		})).Return(&contract.PaymentResponse{
			RazorpayOrderID: "order_test123",
			Status:          "PENDING",
			KeyID:           "rzp_test_key",
		}, nil)
		mockOrders.On("UpdatePaymentLink", uint(42), "order_test123", "PENDING", "rzp_test_key", model.LinkLinked).Return(nil)

		paymentID := "order_test123"
		hydrated := createTestOrder(42, model.StatusPending)
		hydrated.PaymentID = &paymentID
		mockOrders.On("GetByID", uint(42)).Return(hydrated, nil)

		view, err := service.PlaceOrder(context.Background(), 1, map[uint]int{10: 2}, decimal.Zero)

		assert.NoError(t, err)
		assert.Equal(t, uint(42), view.ID)
		assert.Equal(t, "order_test123", *view.PaymentID)
		mockOrders.AssertExpectations(t)
		mockPayments.AssertExpectations(t)
	})

	t.Run("Line item snapshots product price", func(t *testing.T) {
		mockOrders := new(MockOrderRepository)
		mockProducts := new(MockProductRepository)
		mockUsers := new(MockUserRepository)
		mockPayments := new(MockPaymentClient)
		service := newTestService(mockOrders, mockProducts, mockUsers, mockPayments)

		user := createTestUser(1)
		product := createTestProduct(10, "19.99")

		var captured *model.Order
		mockUsers.On("GetByID", uint(1)).Return(user, nil)
		mockProducts.On("GetByID", uint(10)).Return(product, nil)
		mockOrders.On("Create", mock.AnythingOfType("*model.Order")).Run(func(args mock.Arguments) {
			captured = args.Get(0).(*model.Order)
			captured.ID = 7
		}).Return(nil)
		mockOrders.On("UpdateLinkState", uint(7), model.LinkRequested).Return(nil)
		mockOrders.On("IncrementPaymentAttempts", uint(7)).Return(nil)
		mockPayments.On("CreatePayment", mock.Anything, mock.Anything).Return(&contract.PaymentResponse{
			RazorpayOrderID: "order_x", Status: "PENDING", KeyID: "k",
		}, nil)
		mockOrders.On("UpdatePaymentLink", uint(7), "order_x", "PENDING", "k", model.LinkLinked).Return(nil)
		mockOrders.On("GetByID", uint(7)).Return(createTestOrder(7, model.StatusPending), nil)

		_, err := service.PlaceOrder(context.Background(), 1, map[uint]int{10: 3}, decimal.Zero)

		assert.NoError(t, err)
		assert.Len(t, captured.OrderItems, 1)
		assert.True(t, captured.OrderItems[0].Price.Equal(decimal.RequireFromString("19.99")))
		assert.Equal(t, 3, captured.OrderItems[0].Quantity)
		assert.True(t, captured.TotalAmount.Equal(decimal.RequireFromString("59.97")))
	})

	t.Run("Missing product fails whole placement", func(t *testing.T) {
		mockOrders := new(MockOrderRepository)
		mockProducts := new(MockProductRepository)
		mockUsers := new(MockUserRepository)
		mockPayments := new(MockPaymentClient)
		service := newTestService(mockOrders, mockProducts, mockUsers, mockPayments)

		mockUsers.On("GetByID", uint(1)).Return(createTestUser(1), nil)
		mockProducts.On("GetByID", mock.AnythingOfType("uint")).Return(nil, gorm.ErrRecordNotFound)

		view, err := service.PlaceOrder(context.Background(), 1, map[uint]int{99: 1}, decimal.Zero)

		assert.Error(t, err)
		assert.Nil(t, view)
		assert.True(t, errors.Is(err, apperr.ErrNotFound))
		mockOrders.AssertNotCalled(t, "Create", mock.Anything)
	})

	t.Run("Unknown user is rejected", func(t *testing.T) {
		mockOrders := new(MockOrderRepository)
		mockProducts := new(MockProductRepository)
		mockUsers := new(MockUserRepository)
		mockPayments := new(MockPaymentClient)
		service := newTestService(mockOrders, mockProducts, mockUsers, mockPayments)

		mockUsers.On("GetByID", uint(5)).Return(nil, gorm.ErrRecordNotFound)

		_, err := service.PlaceOrder(context.Background(), 5, map[uint]int{10: 1}, decimal.Zero)

		assert.Error(t, err)
		assert.True(t, errors.Is(err, apperr.ErrNotFound))
	})

	t.Run("Empty order is rejected", func(t *testing.T) {
		mockOrders := new(MockOrderRepository)
		mockProducts := new(MockProductRepository)
		mockUsers := new(MockUserRepository)
		mockPayments := new(MockPaymentClient)
		service := newTestService(mockOrders, mockProducts, mockUsers, mockPayments)

		_, err := service.PlaceOrder(context.Background(), 1, map[uint]int{}, decimal.Zero)

		assert.Error(t, err)
		assert.True(t, errors.Is(err, apperr.ErrValidation))
	})

	t.Run("Disagreeing declared total is rejected", func(t *testing.T) {
		mockOrders := new(MockOrderRepository)
		mockProducts := new(MockProductRepository)
		mockUsers := new(MockUserRepository)
		mockPayments := new(MockPaymentClient)
		service := newTestService(mockOrders, mockProducts, mockUsers, mockPayments)

		mockUsers.On("GetByID", uint(1)).Return(createTestUser(1), nil)
		mockProducts.On("GetByID", uint(10)).Return(createTestProduct(10, "25.00"), nil)

		_, err := service.PlaceOrder(context.Background(), 1, map[uint]int{10: 2}, decimal.RequireFromString("99.99"))

		assert.Error(t, err)
		assert.True(t, errors.Is(err, apperr.ErrValidation))
		mockOrders.AssertNotCalled(t, "Create", mock.Anything)
	})

	t.Run("Payment failure leaves order with failed link state", func(t *testing.T) {
		mockOrders := new(MockOrderRepository)
		mockProducts := new(MockProductRepository)
		mockUsers := new(MockUserRepository)
		mockPayments := new(MockPaymentClient)
		service := newTestService(mockOrders, mockProducts, mockUsers, mockPayments)

		mockUsers.On("GetByID", uint(1)).Return(createTestUser(1), nil)
		mockProducts.On("GetByID", uint(10)).Return(createTestProduct(10, "25.00"), nil)
		mockOrders.On("Create", mock.AnythingOfType("*model.Order")).Run(func(args mock.Arguments) {
			args.Get(0).(*model.Order).ID = 8
		}).Return(nil)
		mockOrders.On("UpdateLinkState", uint(8), model.LinkRequested).Return(nil)
		mockOrders.On("IncrementPaymentAttempts", uint(8)).Return(nil)
		mockPayments.On("CreatePayment", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))
		mockOrders.On("UpdateLinkState", uint(8), model.LinkFailed).Return(nil)

		_, err := service.PlaceOrder(context.Background(), 1, map[uint]int{10: 1}, decimal.Zero)

		assert.Error(t, err)
		mockOrders.AssertCalled(t, "UpdateLinkState", uint(8), model.LinkFailed)
	})
}

func TestRelinkFailedPayments(t *testing.T) {
	t.Run("Relinks failed orders", func(t *testing.T) {
		mockOrders := new(MockOrderRepository)
		mockProducts := new(MockProductRepository)
		mockUsers := new(MockUserRepository)
		mockPayments := new(MockPaymentClient)
		service := newTestService(mockOrders, mockProducts, mockUsers, mockPayments)

		order := createTestOrder(3, model.StatusPending)
		order.PaymentLinkState = model.LinkFailed

		mockOrders.On("GetByLinkState", model.LinkFailed, 5).Return([]model.Order{*order}, nil)
		mockOrders.On("UpdateLinkState", uint(3), model.LinkRequested).Return(nil)
		mockOrders.On("IncrementPaymentAttempts", uint(3)).Return(nil)
		mockPayments.On("CreatePayment", mock.Anything, mock.Anything).Return(&contract.PaymentResponse{
			RazorpayOrderID: "order_retry", Status: "PENDING", KeyID: "k",
		}, nil)
		mockOrders.On("UpdatePaymentLink", uint(3), "order_retry", "PENDING", "k", model.LinkLinked).Return(nil)

		relinked, err := service.RelinkFailedPayments(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, 1, relinked)
		mockOrders.AssertExpectations(t)
	})

	t.Run("Failed retry counts nothing", func(t *testing.T) {
		mockOrders := new(MockOrderRepository)
		mockProducts := new(MockProductRepository)
		mockUsers := new(MockUserRepository)
		mockPayments := new(MockPaymentClient)
		service := newTestService(mockOrders, mockProducts, mockUsers, mockPayments)

		order := createTestOrder(4, model.StatusPending)
		order.PaymentLinkState = model.LinkFailed

		mockOrders.On("GetByLinkState", model.LinkFailed, 5).Return([]model.Order{*order}, nil)
		mockOrders.On("UpdateLinkState", uint(4), model.LinkRequested).Return(nil)
		mockOrders.On("IncrementPaymentAttempts", uint(4)).Return(nil)
		mockPayments.On("CreatePayment", mock.Anything, mock.Anything).Return(nil, errors.New("still down"))
		mockOrders.On("UpdateLinkState", uint(4), model.LinkFailed).Return(nil)

		relinked, err := service.RelinkFailedPayments(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, 0, relinked)
	})
}

func TestRefreshPaymentStatuses(t *testing.T) {
	t.Run("Verified payment moves the mirror to SUCCESS", func(t *testing.T) {
		mockOrders := new(MockOrderRepository)
		mockPayments := new(MockPaymentClient)
		service := newTestService(mockOrders, new(MockProductRepository), new(MockUserRepository), mockPayments)

		paymentID := "order_linked1"
		pending := "PENDING"
		order := createTestOrder(6, model.StatusPending)
		order.PaymentID = &paymentID
		order.PaymentStatus = &pending
		order.PaymentLinkState = model.LinkLinked

		mockOrders.On("GetLinkedNonTerminal").Return([]model.Order{*order}, nil)
		mockPayments.On("GetPayment", mock.Anything, "order_linked1").Return(&contract.PaymentResponse{
			RazorpayOrderID: "order_linked1",
			Status:          "SUCCESS",
		}, nil)
		mockOrders.On("UpdatePaymentStatus", uint(6), "SUCCESS").Return(nil)

		refreshed, err := service.RefreshPaymentStatuses(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, 1, refreshed)
		mockOrders.AssertExpectations(t)
		mockPayments.AssertExpectations(t)
	})

	t.Run("Unchanged ledger status writes nothing", func(t *testing.T) {
		mockOrders := new(MockOrderRepository)
		mockPayments := new(MockPaymentClient)
		service := newTestService(mockOrders, new(MockProductRepository), new(MockUserRepository), mockPayments)

		paymentID := "order_linked2"
		pending := "PENDING"
		order := createTestOrder(7, model.StatusPending)
		order.PaymentID = &paymentID
		order.PaymentStatus = &pending
		order.PaymentLinkState = model.LinkLinked

		mockOrders.On("GetLinkedNonTerminal").Return([]model.Order{*order}, nil)
		mockPayments.On("GetPayment", mock.Anything, "order_linked2").Return(&contract.PaymentResponse{
			RazorpayOrderID: "order_linked2",
			Status:          "PENDING",
		}, nil)

		refreshed, err := service.RefreshPaymentStatuses(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, 0, refreshed)
		mockOrders.AssertNotCalled(t, "UpdatePaymentStatus", mock.Anything, mock.Anything)
	})

	t.Run("Unreachable ledger skips the order", func(t *testing.T) {
		mockOrders := new(MockOrderRepository)
		mockPayments := new(MockPaymentClient)
		service := newTestService(mockOrders, new(MockProductRepository), new(MockUserRepository), mockPayments)

		paymentID := "order_linked3"
		order := createTestOrder(8, model.StatusPending)
		order.PaymentID = &paymentID
		order.PaymentLinkState = model.LinkLinked

		mockOrders.On("GetLinkedNonTerminal").Return([]model.Order{*order}, nil)
		mockPayments.On("GetPayment", mock.Anything, "order_linked3").Return(nil, errors.New("connection refused"))

		refreshed, err := service.RefreshPaymentStatuses(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, 0, refreshed)
		mockOrders.AssertNotCalled(t, "UpdatePaymentStatus", mock.Anything, mock.Anything)
	})
}

func TestReconcilePayments(t *testing.T) {
	t.Run("Runs relink then status refresh", func(t *testing.T) {
		mockOrders := new(MockOrderRepository)
		mockPayments := new(MockPaymentClient)
		service := newTestService(mockOrders, new(MockProductRepository), new(MockUserRepository), mockPayments)

		mockOrders.On("GetByLinkState", model.LinkFailed, 5).Return([]model.Order{}, nil)
		mockOrders.On("GetLinkedNonTerminal").Return([]model.Order{}, nil)

		acted, err := service.ReconcilePayments(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, 0, acted)
		mockOrders.AssertExpectations(t)
	})
}

func TestUpdateOrderStatus(t *testing.T) {
	t.Run("Valid transition", func(t *testing.T) {
		mockOrders := new(MockOrderRepository)
		service := newTestService(mockOrders, new(MockProductRepository), new(MockUserRepository), new(MockPaymentClient))

		mockOrders.On("GetByID", uint(1)).Return(createTestOrder(1, model.StatusPending), nil)
		mockOrders.On("UpdateStatus", uint(1), model.StatusShipped).Return(nil)

		view, err := service.UpdateStatus(1, "shipped")

		assert.NoError(t, err)
		assert.Equal(t, model.StatusShipped, view.Status)
	})

	t.Run("Unknown status token is rejected", func(t *testing.T) {
		mockOrders := new(MockOrderRepository)
		service := newTestService(mockOrders, new(MockProductRepository), new(MockUserRepository), new(MockPaymentClient))

		_, err := service.UpdateStatus(1, "TELEPORTED")

		assert.Error(t, err)
		assert.True(t, errors.Is(err, apperr.ErrValidation))
		mockOrders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything)
	})

	t.Run("Unknown order", func(t *testing.T) {
		mockOrders := new(MockOrderRepository)
		service := newTestService(mockOrders, new(MockProductRepository), new(MockUserRepository), new(MockPaymentClient))

		mockOrders.On("GetByID", uint(9)).Return(nil, gorm.ErrRecordNotFound)

		_, err := service.UpdateStatus(9, "SHIPPED")

		assert.Error(t, err)
		assert.True(t, errors.Is(err, apperr.ErrNotFound))
	})
}

func TestCancelOrder(t *testing.T) {
	t.Run("Pending order can be cancelled", func(t *testing.T) {
		mockOrders := new(MockOrderRepository)
		service := newTestService(mockOrders, new(MockProductRepository), new(MockUserRepository), new(MockPaymentClient))

		mockOrders.On("GetByID", uint(1)).Return(createTestOrder(1, model.StatusPending), nil)
		mockOrders.On("UpdateStatus", uint(1), model.StatusCancelled).Return(nil)

		view, err := service.Cancel(1)

		assert.NoError(t, err)
		assert.Equal(t, model.StatusCancelled, view.Status)
	})

	t.Run("Delivered order cannot be cancelled", func(t *testing.T) {
		mockOrders := new(MockOrderRepository)
		service := newTestService(mockOrders, new(MockProductRepository), new(MockUserRepository), new(MockPaymentClient))

		mockOrders.On("GetByID", uint(2)).Return(createTestOrder(2, model.StatusDelivered), nil)

		_, err := service.Cancel(2)

		assert.Error(t, err)
		assert.True(t, errors.Is(err, apperr.ErrConflict))
		mockOrders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything)
	})

	t.Run("Cancelled order stays cancelled", func(t *testing.T) {
		mockOrders := new(MockOrderRepository)
		service := newTestService(mockOrders, new(MockProductRepository), new(MockUserRepository), new(MockPaymentClient))

		mockOrders.On("GetByID", uint(3)).Return(createTestOrder(3, model.StatusCancelled), nil)

		_, err := service.Cancel(3)

		assert.Error(t, err)
		assert.True(t, errors.Is(err, apperr.ErrConflict))
	})
}

func TestGetRecentOrders(t *testing.T) {
	t.Run("Rejects non-positive days", func(t *testing.T) {
		service := newTestService(new(MockOrderRepository), new(MockProductRepository), new(MockUserRepository), new(MockPaymentClient))

		_, err := service.GetRecent(0)

		assert.Error(t, err)
		assert.True(t, errors.Is(err, apperr.ErrValidation))
	})
}
