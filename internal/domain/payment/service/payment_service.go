package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/chadandhabale/Ecommerce-Microservices/internal/contract"
	"github.com/chadandhabale/Ecommerce-Microservices/internal/domain/payment/gateway"
	"github.com/chadandhabale/Ecommerce-Microservices/internal/domain/payment/model"
	"github.com/chadandhabale/Ecommerce-Microservices/internal/domain/payment/repository"
	"github.com/chadandhabale/Ecommerce-Microservices/internal/pkg/email"
	"github.com/chadandhabale/Ecommerce-Microservices/pkg/apperr"
	"github.com/chadandhabale/Ecommerce-Microservices/pkg/cache"
	"github.com/chadandhabale/Ecommerce-Microservices/pkg/logger"
)

const (
	statisticsCacheKey = "statistics"
	statisticsCacheTTL = 5 * time.Minute
	recentCacheTTL     = time.Minute
)

type PaymentService interface {
	CreatePayment(ctx context.Context, req *contract.PaymentRequest) (*contract.PaymentResponse, error)
	VerifyPayment(ctx context.Context, req *contract.PaymentVerification) (bool, error)
	UpdatePaymentStatus(ctx context.Context, razorpayOrderID, statusToken string) (*contract.PaymentResponse, error)

	GetByRazorpayOrderID(razorpayOrderID string) (*model.Payment, error)
	GetByOrderID(orderID uint) ([]model.Payment, error)
	GetByUserID(userID uint) ([]model.Payment, error)
	GetByStatus(statusToken string) ([]model.Payment, error)
	GetRecent(ctx context.Context, days int) ([]model.Payment, error)
	GetStatistics(ctx context.Context) (*contract.PaymentStatistics, error)
	IsPaymentValid(razorpayOrderID string) bool

	Refund(razorpayOrderID string, amount decimal.Decimal) (*model.Payment, error)
}

type paymentService struct {
	repo     repository.PaymentRepository
	gateway  gateway.Gateway
	emails   email.Sender
	cache    cache.CacheService
	currency string
}

func NewPaymentService(
	repo repository.PaymentRepository,
	gw gateway.Gateway,
	emails email.Sender,
	cacheService cache.CacheService,
	currency string,
) PaymentService {
	return &paymentService{
		repo:     repo,
		gateway:  gw,
		emails:   emails,
		cache:    cacheService,
		currency: currency,
	}
}

// CreatePayment opens a gateway order and records it as a PENDING ledger
// row. The gateway call comes first: a failure there leaves no local state.
func (s *paymentService) CreatePayment(ctx context.Context, req *contract.PaymentRequest) (*contract.PaymentResponse, error) {
	logger.Log.Info("Creating payment order",
		zap.Uint("user_id", req.UserID), zap.Uint("order_id", req.OrderID),
		zap.String("amount", req.Amount.StringFixed(2)))

	if req.Amount.IsNegative() || req.Amount.IsZero() {
		return nil, fmt.Errorf("payment amount must be positive: %w", apperr.ErrValidation)
	}

	// Smallest currency unit, truncated: 25.00 INR -> 2500 paise.
	amountMinor := req.Amount.Mul(decimal.NewFromInt(100)).IntPart()
	receipt := "txn_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:8]

	notes := map[string]interface{}{}
	if req.CustomerEmail != "" {
		notes["customer_email"] = req.CustomerEmail
	}
	if req.CustomerName != "" {
		notes["customer_name"] = req.CustomerName
	}
	if req.Description != "" {
		notes["description"] = req.Description
	}

	razorpayOrderID, err := s.gateway.CreateOrder(amountMinor, s.currency, receipt, notes)
	if err != nil {
		return nil, fmt.Errorf("payment creation failed: %w", err)
	}

	payment := &model.Payment{
		RazorpayOrderID: razorpayOrderID,
		Amount:          req.Amount,
		Currency:        s.currency,
		Status:          model.StatusPending,
		UserID:          req.UserID,
		OrderID:         req.OrderID,
		CustomerEmail:   req.CustomerEmail,
		CustomerName:    req.CustomerName,
		Description:     req.Description,
		Receipt:         receipt,
	}
	if err := s.repo.Create(payment); err != nil {
		return nil, fmt.Errorf("payment creation failed: %w", err)
	}
	s.invalidateCaches(ctx)
	paymentsCreatedTotal.Inc()

	logger.Log.Info("Payment order created", zap.String("razorpay_order_id", razorpayOrderID))
	return s.toResponse(payment), nil
}

// VerifyPayment checks the checkout signature and settles the ledger row.
// A failed check transitions an existing row to FAILED best-effort; a
// missing row on the failure path is not an error.
func (s *paymentService) VerifyPayment(ctx context.Context, req *contract.PaymentVerification) (bool, error) {
	logger.Log.Info("Verifying payment", zap.String("razorpay_order_id", req.RazorpayOrderID))

	valid := s.gateway.VerifySignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature)
	if !valid {
		logger.Log.Warn("Payment verification failed", zap.String("razorpay_order_id", req.RazorpayOrderID))
		paymentVerificationsTotal.WithLabelValues("failed").Inc()
		s.markFailed(ctx, req.RazorpayOrderID)
		return false, nil
	}

	payment, err := s.repo.GetByRazorpayOrderID(req.RazorpayOrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, fmt.Errorf("payment not found: %s: %w", req.RazorpayOrderID, apperr.ErrNotFound)
		}
		return false, fmt.Errorf("payment verification error: %w", err)
	}

	payment.RazorpayPaymentID = &req.RazorpayPaymentID
	payment.RazorpaySignature = &req.RazorpaySignature
	payment.Status = model.StatusSuccess
	if err := s.repo.Update(payment); err != nil {
		return false, fmt.Errorf("payment verification error: %w", err)
	}
	s.invalidateCaches(ctx)

	// Fire-and-forget; a mail failure must never fail verification.
	if payment.CustomerEmail != "" {
		go s.sendSuccessEmail(payment)
	}

	paymentVerificationsTotal.WithLabelValues("verified").Inc()
	logger.Log.Info("Payment verified", zap.String("razorpay_order_id", req.RazorpayOrderID))
	return true, nil
}

func (s *paymentService) sendSuccessEmail(payment *model.Payment) {
	name := payment.CustomerName
	if name == "" {
		name = "Customer"
	}
	if err := s.emails.SendPaymentSuccessEmail(payment.CustomerEmail, name, payment.Amount, payment.OrderID); err != nil {
		logger.Log.Error("Failed to send payment success email",
			zap.String("to", payment.CustomerEmail), zap.Error(err))
	}
}

// markFailed flips the row to FAILED if it exists.
func (s *paymentService) markFailed(ctx context.Context, razorpayOrderID string) {
	payment, err := s.repo.GetByRazorpayOrderID(razorpayOrderID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Log.Error("Failed to load payment for failure transition",
				zap.String("razorpay_order_id", razorpayOrderID), zap.Error(err))
		}
		return
	}

	payment.Status = model.StatusFailed
	if err := s.repo.Update(payment); err != nil {
		logger.Log.Error("Failed to mark payment as failed",
			zap.String("razorpay_order_id", razorpayOrderID), zap.Error(err))
		return
	}
	s.invalidateCaches(ctx)

	if payment.CustomerEmail != "" {
		go func() {
			name := payment.CustomerName
			if name == "" {
				name = "Customer"
			}
			if err := s.emails.SendPaymentFailureEmail(payment.CustomerEmail, name, payment.OrderID); err != nil {
				logger.Log.Error("Failed to send payment failure email",
					zap.String("to", payment.CustomerEmail), zap.Error(err))
			}
		}()
	}
}

// UpdatePaymentStatus is the administrative override: it sets the status
// directly, bypassing verification.
func (s *paymentService) UpdatePaymentStatus(ctx context.Context, razorpayOrderID, statusToken string) (*contract.PaymentResponse, error) {
	status, err := model.ParsePaymentStatus(statusToken)
	if err != nil {
		return nil, err
	}

	payment, err := s.GetByRazorpayOrderID(razorpayOrderID)
	if err != nil {
		return nil, err
	}

	payment.Status = status
	if err := s.repo.Update(payment); err != nil {
		return nil, fmt.Errorf("failed to update payment status: %w", err)
	}
	s.invalidateCaches(ctx)

	logger.Log.Info("Payment status updated",
		zap.String("razorpay_order_id", razorpayOrderID), zap.String("status", string(status)))
	return s.toResponse(payment), nil
}

func (s *paymentService) GetByRazorpayOrderID(razorpayOrderID string) (*model.Payment, error) {
	payment, err := s.repo.GetByRazorpayOrderID(razorpayOrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("payment not found: %s: %w", razorpayOrderID, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch payment: %w", err)
	}
	return payment, nil
}

func (s *paymentService) GetByOrderID(orderID uint) ([]model.Payment, error) {
	return s.repo.GetByOrderID(orderID)
}

func (s *paymentService) GetByUserID(userID uint) ([]model.Payment, error) {
	return s.repo.GetByUserID(userID)
}

func (s *paymentService) GetByStatus(statusToken string) ([]model.Payment, error) {
	status, err := model.ParsePaymentStatus(statusToken)
	if err != nil {
		return nil, err
	}
	return s.repo.GetByStatus(status)
}

// GetRecent serves the recent window through the cache; ledger writes
// invalidate it.
func (s *paymentService) GetRecent(ctx context.Context, days int) ([]model.Payment, error) {
	if days <= 0 {
		return nil, fmt.Errorf("days must be positive: %w", apperr.ErrValidation)
	}

	key := fmt.Sprintf("recent:%d", days)
	var cached []model.Payment
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return cached, nil
	}

	end := time.Now()
	payments, err := s.repo.GetBetween(end.AddDate(0, 0, -days), end)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, payments, recentCacheTTL); err != nil {
		logger.Log.Warn("Failed to cache recent payments", zap.Error(err))
	}
	return payments, nil
}

// GetStatistics aggregates the ledger, served through the cache.
func (s *paymentService) GetStatistics(ctx context.Context) (*contract.PaymentStatistics, error) {
	var cached contract.PaymentStatistics
	if err := s.cache.Get(ctx, statisticsCacheKey, &cached); err == nil {
		return &cached, nil
	}

	stats := &contract.PaymentStatistics{}
	var err error

	if stats.TotalPayments, err = s.repo.Count(); err != nil {
		return nil, fmt.Errorf("failed to compute payment statistics: %w", err)
	}
	if stats.SuccessfulPayments, err = s.repo.CountByStatus(model.StatusSuccess); err != nil {
		return nil, fmt.Errorf("failed to compute payment statistics: %w", err)
	}
	if stats.PendingPayments, err = s.repo.CountByStatus(model.StatusPending); err != nil {
		return nil, fmt.Errorf("failed to compute payment statistics: %w", err)
	}
	if stats.FailedPayments, err = s.repo.CountByStatus(model.StatusFailed); err != nil {
		return nil, fmt.Errorf("failed to compute payment statistics: %w", err)
	}
	if stats.TotalRevenue, err = s.repo.TotalSuccessfulAmount(); err != nil {
		return nil, fmt.Errorf("failed to compute payment statistics: %w", err)
	}

	startOfDay, endOfDay := dayBounds(time.Now())
	if stats.TodayRevenue, err = s.repo.RevenueBetween(startOfDay, endOfDay); err != nil {
		return nil, fmt.Errorf("failed to compute payment statistics: %w", err)
	}

	if err := s.cache.Set(ctx, statisticsCacheKey, stats, statisticsCacheTTL); err != nil {
		logger.Log.Warn("Failed to cache payment statistics", zap.Error(err))
	}
	return stats, nil
}

// dayBounds returns the calendar day containing now in now's own zone.
// Truncating against the UTC epoch would shift the window by the zone
// offset and misattribute revenue around local midnight.
func dayBounds(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return start, start.Add(24*time.Hour - time.Second)
}

func (s *paymentService) IsPaymentValid(razorpayOrderID string) bool {
	payment, err := s.repo.GetByRazorpayOrderID(razorpayOrderID)
	if err != nil {
		return false
	}
	return payment.Status == model.StatusSuccess
}

// Refund is not available; callers must treat this as a permanent condition,
// not a transient failure.
func (s *paymentService) Refund(razorpayOrderID string, amount decimal.Decimal) (*model.Payment, error) {
	logger.Log.Info("Refund requested",
		zap.String("razorpay_order_id", razorpayOrderID), zap.String("amount", amount.StringFixed(2)))
	return nil, fmt.Errorf("refund functionality is not available: %w", apperr.ErrUnimplemented)
}

// invalidateCaches drops the aggregates after any ledger write.
func (s *paymentService) invalidateCaches(ctx context.Context) {
	if err := s.cache.Delete(ctx, statisticsCacheKey); err != nil {
		logger.Log.Warn("Failed to invalidate statistics cache", zap.Error(err))
	}
	if err := s.cache.InvalidatePattern(ctx, "recent:*"); err != nil {
		logger.Log.Warn("Failed to invalidate recent payments cache", zap.Error(err))
	}
}

func (s *paymentService) toResponse(payment *model.Payment) *contract.PaymentResponse {
	return &contract.PaymentResponse{
		RazorpayOrderID: payment.RazorpayOrderID,
		Amount:          payment.Amount,
		Currency:        payment.Currency,
		Status:          string(payment.Status),
		OrderID:         payment.OrderID,
		UserID:          payment.UserID,
		KeyID:           s.gateway.KeyID(),
		CustomerEmail:   payment.CustomerEmail,
	}
}
