// Package contract holds the DTOs exchanged between the order and payment
// services. The two services are deployed independently; these shapes are
// the wire contract and must not change incompatibly.
package contract

import (
	"github.com/shopspring/decimal"
)

// PaymentRequest is the body of POST /api/payments/create.
type PaymentRequest struct {
	UserID        uint            `json:"userId" binding:"required"`
	OrderID       uint            `json:"orderId" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	CustomerEmail string          `json:"customerEmail"`
	CustomerName  string          `json:"customerName"`
	Description   string          `json:"description"`
}

// PaymentResponse is returned by create and update-status. KeyID is the
// gateway public key the frontend needs to open the checkout.
type PaymentResponse struct {
	RazorpayOrderID string          `json:"razorpayOrderId"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency"`
	Status          string          `json:"status"`
	OrderID         uint            `json:"orderId"`
	UserID          uint            `json:"userId"`
	KeyID           string          `json:"keyId"`
	CustomerEmail   string          `json:"customerEmail"`
}

// PaymentVerification is the body of POST /api/payments/verify.
type PaymentVerification struct {
	RazorpayOrderID   string `json:"razorpayOrderId" binding:"required"`
	RazorpayPaymentID string `json:"razorpayPaymentId" binding:"required"`
	RazorpaySignature string `json:"razorpaySignature" binding:"required"`
}

// PaymentStatistics is the aggregate view served by GET /api/payments/statistics.
type PaymentStatistics struct {
	TotalPayments      int64           `json:"totalPayments"`
	SuccessfulPayments int64           `json:"successfulPayments"`
	PendingPayments    int64           `json:"pendingPayments"`
	FailedPayments     int64           `json:"failedPayments"`
	TotalRevenue       decimal.Decimal `json:"totalRevenue"`
	TodayRevenue       decimal.Decimal `json:"todayRevenue"`
}
