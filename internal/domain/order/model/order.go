package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	productModel "github.com/chadandhabale/Ecommerce-Microservices/internal/domain/product/model"
	userModel "github.com/chadandhabale/Ecommerce-Microservices/internal/domain/user/model"
	"github.com/chadandhabale/Ecommerce-Microservices/pkg/apperr"
	baseModel "github.com/chadandhabale/Ecommerce-Microservices/pkg/model"
)

// OrderStatus is a closed set; unrecognized tokens are rejected at parse
// time, never stored.
type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusConfirmed OrderStatus = "CONFIRMED"
	StatusShipped   OrderStatus = "SHIPPED"
	StatusDelivered OrderStatus = "DELIVERED"
	StatusCancelled OrderStatus = "CANCELLED"
)

// ParseOrderStatus validates a wire status token.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch status := OrderStatus(strings.ToUpper(s)); status {
	case StatusPending, StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled:
		return status, nil
	default:
		return "", fmt.Errorf("invalid order status: %s: %w", s, apperr.ErrValidation)
	}
}

// Payment link states. The order row records how far the cross-service
// payment handshake got, so a failed reconciliation write is visible and
// retryable instead of leaving a silently payment-less PENDING order.
type PaymentLinkState string

const (
	LinkCreated   PaymentLinkState = "CREATED"
	LinkRequested PaymentLinkState = "PAYMENT_REQUESTED"
	LinkLinked    PaymentLinkState = "PAYMENT_LINKED"
	LinkFailed    PaymentLinkState = "PAYMENT_LINK_FAILED"
)

// Order is the aggregate root; line items are created and deleted with it.
// PaymentID holds the Razorpay order id issued by the payment service. It is
// a soft reference with no cross-service integrity, reconciled only by the
// orchestration flow.
type Order struct {
	baseModel.BaseModel
	OrderDate   time.Time       `gorm:"not null" json:"orderDate"`
	TotalAmount decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"totalAmount"`
	Status      OrderStatus     `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	UserID      uint            `gorm:"not null;index" json:"userId"`
	User        *userModel.User `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	OrderItems  []OrderItem     `gorm:"constraint:OnDelete:CASCADE" json:"orderItems"`

	// Payment linkage, nil until the payment service responds.
	PaymentID     *string `gorm:"size:50" json:"paymentId"`
	PaymentStatus *string `gorm:"size:20" json:"paymentStatus"`
	RazorpayKeyID *string `gorm:"size:50" json:"razorpayKeyId"`

	PaymentLinkState PaymentLinkState `gorm:"type:varchar(30);not null;default:'CREATED'" json:"-"`
	PaymentAttempts  int              `gorm:"not null;default:0" json:"-"`
}

// OrderItem snapshots quantity and unit price at order time. Price never
// tracks later product price changes.
type OrderItem struct {
	baseModel.BaseModel
	Quantity  int                   `gorm:"not null" json:"quantity"`
	Price     decimal.Decimal       `gorm:"type:numeric(10,2);not null" json:"price"`
	ProductID uint                  `gorm:"not null" json:"productId"`
	Product   *productModel.Product `json:"-"`
	OrderID   uint                  `gorm:"not null;index" json:"-"`
}
