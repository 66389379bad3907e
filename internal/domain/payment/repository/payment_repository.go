package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/chadandhabale/Ecommerce-Microservices/internal/domain/payment/model"
)

type PaymentRepository interface {
	Create(payment *model.Payment) error
	GetByRazorpayOrderID(razorpayOrderID string) (*model.Payment, error)
	GetByOrderID(orderID uint) ([]model.Payment, error)
	GetByUserID(userID uint) ([]model.Payment, error)
	GetByStatus(status model.PaymentStatus) ([]model.Payment, error)
	GetBetween(start, end time.Time) ([]model.Payment, error)
	Update(payment *model.Payment) error

	Count() (int64, error)
	CountByStatus(status model.PaymentStatus) (int64, error)
	// TotalSuccessfulAmount sums SUCCESS amounts; empty set yields zero.
	TotalSuccessfulAmount() (decimal.Decimal, error)
	RevenueBetween(start, end time.Time) (decimal.Decimal, error)
}

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(payment *model.Payment) error {
	return r.db.Create(payment).Error
}

func (r *paymentRepository) GetByRazorpayOrderID(razorpayOrderID string) (*model.Payment, error) {
	var payment model.Payment
	if err := r.db.Where("razorpay_order_id = ?", razorpayOrderID).First(&payment).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) GetByOrderID(orderID uint) ([]model.Payment, error) {
	var payments []model.Payment
	if err := r.db.Where("order_id = ?", orderID).Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *paymentRepository) GetByUserID(userID uint) ([]model.Payment, error) {
	var payments []model.Payment
	if err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *paymentRepository) GetByStatus(status model.PaymentStatus) ([]model.Payment, error) {
	var payments []model.Payment
	if err := r.db.Where("status = ?", status).
		Order("created_at DESC").Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *paymentRepository) GetBetween(start, end time.Time) ([]model.Payment, error) {
	var payments []model.Payment
	if err := r.db.Where("created_at BETWEEN ? AND ?", start, end).
		Order("created_at DESC").Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *paymentRepository) Update(payment *model.Payment) error {
	return r.db.Save(payment).Error
}

func (r *paymentRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Payment{}).Count(&count).Error
	return count, err
}

func (r *paymentRepository) CountByStatus(status model.PaymentStatus) (int64, error) {
	var count int64
	err := r.db.Model(&model.Payment{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

func (r *paymentRepository) TotalSuccessfulAmount() (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.db.Model(&model.Payment{}).
		Where("status = ?", model.StatusSuccess).
		Select("SUM(amount)").Scan(&total).Error
	if err != nil || !total.Valid {
		return decimal.Zero, err
	}
	return total.Decimal, nil
}

func (r *paymentRepository) RevenueBetween(start, end time.Time) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.db.Model(&model.Payment{}).
		Where("status = ? AND created_at BETWEEN ? AND ?", model.StatusSuccess, start, end).
		Select("SUM(amount)").Scan(&total).Error
	if err != nil || !total.Valid {
		return decimal.Zero, err
	}
	return total.Decimal, nil
}
