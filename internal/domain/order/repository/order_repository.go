package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/chadandhabale/Ecommerce-Microservices/internal/domain/order/model"
)

type OrderRepository interface {
	// Create persists the order and its line items in one transaction.
	Create(order *model.Order) error
	GetByID(id uint) (*model.Order, error)
	GetAll() ([]model.Order, error)
	GetByUserID(userID uint) ([]model.Order, error)
	GetByStatus(status model.OrderStatus) ([]model.Order, error)
	GetRecent(since time.Time) ([]model.Order, error)
	UpdateStatus(orderID uint, status model.OrderStatus) error
	// UpdatePaymentLink is the reconciliation write: it attaches the
	// payment reference and advances the link state in one update.
	UpdatePaymentLink(orderID uint, paymentID, paymentStatus, keyID string, state model.PaymentLinkState) error
	UpdateLinkState(orderID uint, state model.PaymentLinkState) error
	// UpdatePaymentStatus refreshes the locally mirrored ledger status
	// without touching the link state.
	UpdatePaymentStatus(orderID uint, paymentStatus string) error
	IncrementPaymentAttempts(orderID uint) error
	GetByLinkState(state model.PaymentLinkState, maxAttempts int) ([]model.Order, error)
	// GetLinkedNonTerminal lists linked orders whose mirrored status is
	// still PENDING on the ledger side.
	GetLinkedNonTerminal() ([]model.Order, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// preload pulls the user and line-item products needed by the order view.
func (r *orderRepository) preload() *gorm.DB {
	return r.db.Preload("User").Preload("OrderItems").Preload("OrderItems.Product")
}

func (r *orderRepository) Create(order *model.Order) error {
	// gorm saves the items association inside the same transaction as the
	// order row; a missing item fails the whole insert.
	return r.db.Create(order).Error
}

func (r *orderRepository) GetByID(id uint) (*model.Order, error) {
	var order model.Order
	if err := r.preload().First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetAll() ([]model.Order, error) {
	var orders []model.Order
	if err := r.preload().Order("order_date DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) GetByUserID(userID uint) ([]model.Order, error) {
	var orders []model.Order
	if err := r.preload().Where("user_id = ?", userID).
		Order("order_date DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) GetByStatus(status model.OrderStatus) ([]model.Order, error) {
	var orders []model.Order
	if err := r.preload().Where("status = ?", status).
		Order("order_date DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) GetRecent(since time.Time) ([]model.Order, error) {
	var orders []model.Order
	if err := r.preload().Where("order_date >= ?", since).
		Order("order_date DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) UpdateStatus(orderID uint, status model.OrderStatus) error {
	return r.db.Model(&model.Order{}).Where("id = ?", orderID).
		Update("status", status).Error
}

func (r *orderRepository) UpdatePaymentLink(orderID uint, paymentID, paymentStatus, keyID string, state model.PaymentLinkState) error {
	return r.db.Model(&model.Order{}).Where("id = ?", orderID).
		Updates(map[string]interface{}{
			"payment_id":         paymentID,
			"payment_status":     paymentStatus,
			"razorpay_key_id":    keyID,
			"payment_link_state": state,
		}).Error
}

func (r *orderRepository) UpdateLinkState(orderID uint, state model.PaymentLinkState) error {
	return r.db.Model(&model.Order{}).Where("id = ?", orderID).
		Update("payment_link_state", state).Error
}

func (r *orderRepository) UpdatePaymentStatus(orderID uint, paymentStatus string) error {
	return r.db.Model(&model.Order{}).Where("id = ?", orderID).
		Update("payment_status", paymentStatus).Error
}

func (r *orderRepository) IncrementPaymentAttempts(orderID uint) error {
	return r.db.Model(&model.Order{}).Where("id = ?", orderID).
		UpdateColumn("payment_attempts", gorm.Expr("payment_attempts + 1")).Error
}

func (r *orderRepository) GetByLinkState(state model.PaymentLinkState, maxAttempts int) ([]model.Order, error) {
	var orders []model.Order
	if err := r.preload().
		Where("payment_link_state = ? AND payment_attempts < ?", state, maxAttempts).
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) GetLinkedNonTerminal() ([]model.Order, error) {
	var orders []model.Order
	if err := r.db.
		Where("payment_link_state = ? AND payment_status = ?", model.LinkLinked, "PENDING").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
