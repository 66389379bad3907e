package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/chadandhabale/Ecommerce-Microservices/internal/contract"
	"github.com/chadandhabale/Ecommerce-Microservices/internal/domain/order/client"
	"github.com/chadandhabale/Ecommerce-Microservices/internal/domain/order/model"
	"github.com/chadandhabale/Ecommerce-Microservices/internal/domain/order/repository"
	productRepo "github.com/chadandhabale/Ecommerce-Microservices/internal/domain/product/repository"
	userModel "github.com/chadandhabale/Ecommerce-Microservices/internal/domain/user/model"
	userRepo "github.com/chadandhabale/Ecommerce-Microservices/internal/domain/user/repository"
	"github.com/chadandhabale/Ecommerce-Microservices/pkg/apperr"
	"github.com/chadandhabale/Ecommerce-Microservices/pkg/logger"
)

type OrderService interface {
	PlaceOrder(ctx context.Context, userID uint, productQuantities map[uint]int, declaredTotal decimal.Decimal) (*OrderView, error)
	GetAll() ([]OrderView, error)
	GetByUserID(userID uint) ([]OrderView, error)
	GetByStatus(statusToken string) ([]OrderView, error)
	GetRecent(days int) ([]OrderView, error)
	UpdateStatus(orderID uint, statusToken string) (*OrderView, error)
	Cancel(orderID uint) (*OrderView, error)

	// RelinkFailedPayments retries the create-payment handshake for orders
	// whose reconciliation write previously failed. Run by the background
	// sweep, never on the request path.
	RelinkFailedPayments(ctx context.Context) (int, error)

	// RefreshPaymentStatuses re-reads the ledger for linked orders whose
	// mirrored status is still PENDING and writes back any change, so a
	// verified payment eventually shows as SUCCESS on the order too.
	RefreshPaymentStatuses(ctx context.Context) (int, error)

	// ReconcilePayments is the full background pass: relink failed
	// handshakes, then refresh stale status mirrors.
	ReconcilePayments(ctx context.Context) (int, error)
}

type orderService struct {
	orders        repository.OrderRepository
	products      productRepo.ProductRepository
	users         userRepo.UserRepository
	paymentClient client.PaymentClient
	maxAttempts   int
}

func NewOrderService(
	orders repository.OrderRepository,
	products productRepo.ProductRepository,
	users userRepo.UserRepository,
	paymentClient client.PaymentClient,
	maxAttempts int,
) OrderService {
	return &orderService{
		orders:        orders,
		products:      products,
		users:         users,
		paymentClient: paymentClient,
		maxAttempts:   maxAttempts,
	}
}

// PlaceOrder runs the cross-service placement flow: resolve user and
// products, persist the order with its line items in one transaction, then
// open a payment on the payment service and write the returned reference
// back onto the order. There is no distributed transaction; if the remote
// call or the reconciliation write fails the order stays PENDING with link
// state PAYMENT_LINK_FAILED and the sweep retries it.
func (s *orderService) PlaceOrder(ctx context.Context, userID uint, productQuantities map[uint]int, declaredTotal decimal.Decimal) (*OrderView, error) {
	view, err := s.placeOrder(ctx, userID, productQuantities, declaredTotal)
	if err != nil {
		logger.Log.Error("Failed to place order",
			zap.Uint("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("order placement failed: %w", err)
	}
	return view, nil
}

func (s *orderService) placeOrder(ctx context.Context, userID uint, productQuantities map[uint]int, declaredTotal decimal.Decimal) (*OrderView, error) {
	if len(productQuantities) == 0 {
		return nil, fmt.Errorf("order must contain at least one product: %w", apperr.ErrValidation)
	}

	user, err := s.users.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user not found with ID %d: %w", userID, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}

	// Resolve every product before creating anything: a single missing
	// product fails the whole placement with no partial line items.
	items := make([]model.OrderItem, 0, len(productQuantities))
	total := decimal.Zero
	for productID, qty := range productQuantities {
		if qty <= 0 {
			return nil, fmt.Errorf("quantity for product %d must be positive: %w", productID, apperr.ErrValidation)
		}

		product, err := s.products.GetByID(productID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("product not found with ID %d: %w", productID, apperr.ErrNotFound)
			}
			return nil, fmt.Errorf("failed to resolve product %d: %w", productID, err)
		}

		items = append(items, model.OrderItem{
			ProductID: product.ID,
			Quantity:  qty,
			Price:     product.Price,
		})
		total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(qty))))
	}

	// The total is derived from server-known prices; a disagreeing
	// client-declared total is a client bug, not an input.
	if !declaredTotal.IsZero() && !declaredTotal.Equal(total) {
		return nil, fmt.Errorf("declared total %s does not match computed total %s: %w",
			declaredTotal.StringFixed(2), total.StringFixed(2), apperr.ErrValidation)
	}

	order := &model.Order{
		OrderDate:        time.Now(),
		TotalAmount:      total,
		Status:           model.StatusPending,
		UserID:           user.ID,
		OrderItems:       items,
		PaymentLinkState: model.LinkCreated,
	}
	if err := s.orders.Create(order); err != nil {
		return nil, fmt.Errorf("failed to save order: %w", err)
	}
	logger.Log.Info("Order saved", zap.Uint("order_id", order.ID), zap.Uint("user_id", user.ID))

	if err := s.linkPayment(ctx, order, user); err != nil {
		// The order row is already committed; surface the failure but
		// leave the row for the reconciliation sweep.
		return nil, err
	}

	hydrated, err := s.orders.GetByID(order.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload order: %w", err)
	}
	ordersPlacedTotal.Inc()
	return toView(hydrated), nil
}

// linkPayment performs the remote create-payment call and the reconciliation
// write, tracking the handshake in the order's link state.
func (s *orderService) linkPayment(ctx context.Context, order *model.Order, user *userModel.User) error {
	if err := s.orders.UpdateLinkState(order.ID, model.LinkRequested); err != nil {
		return fmt.Errorf("failed to record payment request: %w", err)
	}
	if err := s.orders.IncrementPaymentAttempts(order.ID); err != nil {
		return fmt.Errorf("failed to record payment attempt: %w", err)
	}

	paymentReq := &contract.PaymentRequest{
		UserID:        user.ID,
		OrderID:       order.ID,
		Amount:        order.TotalAmount,
		CustomerEmail: user.Email,
		CustomerName:  user.Name,
		Description:   fmt.Sprintf("Payment for Order #%d", order.ID),
	}

	logger.Log.Info("Calling payment service", zap.Uint("order_id", order.ID))
	paymentResp, err := s.paymentClient.CreatePayment(ctx, paymentReq)
	if err != nil {
		s.markLinkFailed(order.ID)
		return fmt.Errorf("payment creation failed for order %d: %w", order.ID, err)
	}

	if err := s.orders.UpdatePaymentLink(order.ID,
		paymentResp.RazorpayOrderID, paymentResp.Status, paymentResp.KeyID, model.LinkLinked); err != nil {
		// Payment exists remotely but the local link write failed; the
		// sweep will re-request and the ledger's unique gateway order id
		// keeps the remote side consistent.
		s.markLinkFailed(order.ID)
		return fmt.Errorf("failed to attach payment %s to order %d: %w",
			paymentResp.RazorpayOrderID, order.ID, err)
	}

	logger.Log.Info("Payment linked",
		zap.Uint("order_id", order.ID),
		zap.String("razorpay_order_id", paymentResp.RazorpayOrderID))
	return nil
}

func (s *orderService) markLinkFailed(orderID uint) {
	if err := s.orders.UpdateLinkState(orderID, model.LinkFailed); err != nil {
		logger.Log.Error("Failed to mark payment link as failed",
			zap.Uint("order_id", orderID), zap.Error(err))
	}
}

// RelinkFailedPayments re-runs the payment handshake for failed links with
// remaining attempts. Returns how many orders were successfully relinked.
func (s *orderService) RelinkFailedPayments(ctx context.Context) (int, error) {
	orders, err := s.orders.GetByLinkState(model.LinkFailed, s.maxAttempts)
	if err != nil {
		return 0, fmt.Errorf("failed to list unlinked orders: %w", err)
	}

	relinked := 0
	for i := range orders {
		order := &orders[i]
		if order.User == nil {
			logger.Log.Warn("Skipping unlinked order without user", zap.Uint("order_id", order.ID))
			continue
		}
		if err := s.linkPayment(ctx, order, order.User); err != nil {
			logger.Log.Warn("Payment relink attempt failed",
				zap.Uint("order_id", order.ID), zap.Error(err))
			paymentRelinksTotal.WithLabelValues("failed").Inc()
			continue
		}
		paymentRelinksTotal.WithLabelValues("relinked").Inc()
		relinked++
	}
	return relinked, nil
}

// RefreshPaymentStatuses propagates verification results back onto orders.
// The mirror is written once at link time with the ledger's initial PENDING;
// verification happens on the payment service without the order service in
// the loop, so only this pass moves the mirror to SUCCESS or FAILED.
func (s *orderService) RefreshPaymentStatuses(ctx context.Context) (int, error) {
	orders, err := s.orders.GetLinkedNonTerminal()
	if err != nil {
		return 0, fmt.Errorf("failed to list orders with stale payment status: %w", err)
	}

	refreshed := 0
	for i := range orders {
		order := &orders[i]
		if order.PaymentID == nil || *order.PaymentID == "" {
			continue
		}

		payment, err := s.paymentClient.GetPayment(ctx, *order.PaymentID)
		if err != nil {
			logger.Log.Warn("Failed to read payment for status refresh",
				zap.Uint("order_id", order.ID), zap.Error(err))
			continue
		}
		if payment.Status == "" || (order.PaymentStatus != nil && payment.Status == *order.PaymentStatus) {
			continue
		}

		if err := s.orders.UpdatePaymentStatus(order.ID, payment.Status); err != nil {
			logger.Log.Error("Failed to refresh mirrored payment status",
				zap.Uint("order_id", order.ID), zap.Error(err))
			continue
		}
		logger.Log.Info("Payment status refreshed",
			zap.Uint("order_id", order.ID), zap.String("status", payment.Status))
		paymentStatusRefreshesTotal.Inc()
		refreshed++
	}
	return refreshed, nil
}

func (s *orderService) ReconcilePayments(ctx context.Context) (int, error) {
	relinked, err := s.RelinkFailedPayments(ctx)
	if err != nil {
		return relinked, err
	}
	refreshed, err := s.RefreshPaymentStatuses(ctx)
	return relinked + refreshed, err
}

func (s *orderService) GetAll() ([]OrderView, error) {
	orders, err := s.orders.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}
	return toViews(orders), nil
}

func (s *orderService) GetByUserID(userID uint) ([]OrderView, error) {
	if _, err := s.users.GetByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user not found with ID %d: %w", userID, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}

	orders, err := s.orders.GetByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user orders: %w", err)
	}
	return toViews(orders), nil
}

func (s *orderService) GetByStatus(statusToken string) ([]OrderView, error) {
	status, err := model.ParseOrderStatus(statusToken)
	if err != nil {
		return nil, err
	}

	orders, err := s.orders.GetByStatus(status)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch orders by status: %w", err)
	}
	return toViews(orders), nil
}

func (s *orderService) GetRecent(days int) ([]OrderView, error) {
	if days <= 0 {
		return nil, fmt.Errorf("days must be positive: %w", apperr.ErrValidation)
	}

	since := time.Now().AddDate(0, 0, -days)
	orders, err := s.orders.GetRecent(since)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recent orders: %w", err)
	}
	return toViews(orders), nil
}

func (s *orderService) UpdateStatus(orderID uint, statusToken string) (*OrderView, error) {
	status, err := model.ParseOrderStatus(statusToken)
	if err != nil {
		return nil, err
	}

	order, err := s.getOrder(orderID)
	if err != nil {
		return nil, err
	}

	if err := s.orders.UpdateStatus(order.ID, status); err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	order.Status = status

	logger.Log.Info("Order status updated",
		zap.Uint("order_id", orderID), zap.String("status", string(status)))
	return toView(order), nil
}

// Cancel refuses terminal orders and leaves their state unchanged.
func (s *orderService) Cancel(orderID uint) (*OrderView, error) {
	order, err := s.getOrder(orderID)
	if err != nil {
		return nil, err
	}

	if order.Status == model.StatusDelivered || order.Status == model.StatusCancelled {
		return nil, fmt.Errorf("order %d cannot be cancelled (status: %s): %w",
			orderID, order.Status, apperr.ErrConflict)
	}

	if err := s.orders.UpdateStatus(order.ID, model.StatusCancelled); err != nil {
		return nil, fmt.Errorf("failed to cancel order: %w", err)
	}
	order.Status = model.StatusCancelled

	logger.Log.Info("Order cancelled", zap.Uint("order_id", orderID))
	return toView(order), nil
}

func (s *orderService) getOrder(orderID uint) (*model.Order, error) {
	order, err := s.orders.GetByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order not found with ID %d: %w", orderID, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch order: %w", err)
	}
	return order, nil
}
