package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/chadandhabale/Ecommerce-Microservices/pkg/apperr"
	baseModel "github.com/chadandhabale/Ecommerce-Microservices/pkg/model"
)

// PaymentStatus is a closed set. Status transitions go PENDING→SUCCESS or
// PENDING→FAILED through verification; the admin update endpoint may set
// any parsed status directly.
type PaymentStatus string

const (
	StatusPending PaymentStatus = "PENDING"
	StatusSuccess PaymentStatus = "SUCCESS"
	StatusFailed  PaymentStatus = "FAILED"
)

// ParsePaymentStatus validates a wire status token.
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	switch status := PaymentStatus(strings.ToUpper(s)); status {
	case StatusPending, StatusSuccess, StatusFailed:
		return status, nil
	default:
		return "", fmt.Errorf("invalid payment status: %s: %w", s, apperr.ErrValidation)
	}
}

// Payment is one row per attempted payment, keyed by the Razorpay order id.
// RazorpayPaymentID and RazorpaySignature stay nil until verification.
// OrderID points into the order service's database; it is a soft reference
// with no foreign key.
type Payment struct {
	baseModel.BaseModel
	RazorpayOrderID   string  `gorm:"uniqueIndex;not null;size:50" json:"razorpayOrderId"`
	RazorpayPaymentID *string `gorm:"size:50" json:"razorpayPaymentId"`
	RazorpaySignature *string `gorm:"size:255" json:"razorpaySignature"`

	Amount   decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"amount"`
	Currency string          `gorm:"not null;size:10;default:'INR'" json:"currency"`
	Status   PaymentStatus   `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`

	UserID  uint `gorm:"not null;index" json:"userId"`
	OrderID uint `gorm:"not null;index" json:"orderId"`

	CustomerEmail string `gorm:"size:150" json:"customerEmail"`
	CustomerName  string `gorm:"size:100" json:"customerName"`
	Description   string `gorm:"size:500" json:"description"`
	Receipt       string `gorm:"size:50" json:"receipt"`
}
