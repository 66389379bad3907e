package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/chadandhabale/Ecommerce-Microservices/internal/contract"
	"github.com/chadandhabale/Ecommerce-Microservices/internal/domain/payment/model"
	"github.com/chadandhabale/Ecommerce-Microservices/pkg/apperr"
	"github.com/chadandhabale/Ecommerce-Microservices/pkg/response"
)

// MockPaymentService is a mock of service.PaymentService
type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) CreatePayment(ctx context.Context, req *contract.PaymentRequest) (*contract.PaymentResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*contract.PaymentResponse), args.Error(1)
}

func (m *MockPaymentService) VerifyPayment(ctx context.Context, req *contract.PaymentVerification) (bool, error) {
	args := m.Called(ctx, req)
	return args.Bool(0), args.Error(1)
}

func (m *MockPaymentService) UpdatePaymentStatus(ctx context.Context, razorpayOrderID, statusToken string) (*contract.PaymentResponse, error) {
	args := m.Called(ctx, razorpayOrderID, statusToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*contract.PaymentResponse), args.Error(1)
}

func (m *MockPaymentService) GetByRazorpayOrderID(razorpayOrderID string) (*model.Payment, error) {
	args := m.Called(razorpayOrderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Payment), args.Error(1)
}

func (m *MockPaymentService) GetByOrderID(orderID uint) ([]model.Payment, error) {
	args := m.Called(orderID)
	return args.Get(0).([]model.Payment), args.Error(1)
}

func (m *MockPaymentService) GetByUserID(userID uint) ([]model.Payment, error) {
	args := m.Called(userID)
	return args.Get(0).([]model.Payment), args.Error(1)
}

func (m *MockPaymentService) GetByStatus(statusToken string) ([]model.Payment, error) {
	args := m.Called(statusToken)
	return args.Get(0).([]model.Payment), args.Error(1)
}

func (m *MockPaymentService) GetRecent(ctx context.Context, days int) ([]model.Payment, error) {
	args := m.Called(ctx, days)
	return args.Get(0).([]model.Payment), args.Error(1)
}

func (m *MockPaymentService) GetStatistics(ctx context.Context) (*contract.PaymentStatistics, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*contract.PaymentStatistics), args.Error(1)
}

func (m *MockPaymentService) IsPaymentValid(razorpayOrderID string) bool {
	args := m.Called(razorpayOrderID)
	return args.Bool(0)
}

func (m *MockPaymentService) Refund(razorpayOrderID string, amount decimal.Decimal) (*model.Payment, error) {
	args := m.Called(razorpayOrderID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Payment), args.Error(1)
}

func newTestRouter(svc *MockPaymentService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewPaymentHandler(svc)
	g := r.Group("/api/payments")
	g.POST("/verify", h.Verify)
	g.PUT("/update-status/:razorpayOrderId", h.UpdateStatus)
	g.GET("/health", h.Health)
	g.POST("/refund/:razorpayOrderId", h.Refund)
	return r
}

func TestVerifyEndpoint(t *testing.T) {
	body := func() *bytes.Buffer {
		b, _ := json.Marshal(contract.PaymentVerification{
			RazorpayOrderID:   "order_abc",
			RazorpayPaymentID: "pay_1",
			RazorpaySignature: "sig",
		})
		return bytes.NewBuffer(b)
	}

	t.Run("Verified payment answers 200 plain text", func(t *testing.T) {
		svc := new(MockPaymentService)
		svc.On("VerifyPayment", mock.Anything, mock.Anything).Return(true, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/payments/verify", body())
		newTestRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Payment verified successfully", w.Body.String())
	})

	t.Run("Failed verification answers 400 plain text", func(t *testing.T) {
		svc := new(MockPaymentService)
		svc.On("VerifyPayment", mock.Anything, mock.Anything).Return(false, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/payments/verify", body())
		newTestRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Payment verification failed", w.Body.String())
	})

	t.Run("Missing fields answer the error payload", func(t *testing.T) {
		svc := new(MockPaymentService)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/payments/verify", bytes.NewBufferString(`{}`))
		newTestRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var errResp response.ErrorResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
		assert.Equal(t, http.StatusBadRequest, errResp.Status)
		assert.Equal(t, "/api/payments/verify", errResp.Path)
		svc.AssertNotCalled(t, "VerifyPayment", mock.Anything, mock.Anything)
	})
}

func TestUpdateStatusEndpoint(t *testing.T) {
	svc := new(MockPaymentService)
	svc.On("UpdatePaymentStatus", mock.Anything, "order_abc", "SUCCESS").Return(&contract.PaymentResponse{
		RazorpayOrderID: "order_abc",
		Status:          "SUCCESS",
	}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/payments/update-status/order_abc?status=SUCCESS", nil)
	newTestRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp contract.PaymentResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "SUCCESS", resp.Status)
}

func TestHealthEndpoint(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/payments/health", nil)
	newTestRouter(new(MockPaymentService)).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Payment Service Connected - ")
}

func TestRefundEndpoint(t *testing.T) {
	svc := new(MockPaymentService)
	svc.On("Refund", "order_abc", mock.Anything).
		Return(nil, fmt.Errorf("refund functionality is not available: %w", apperr.ErrUnimplemented))

	w := httptest.NewRecorder()
	b, _ := json.Marshal(map[string]string{"amount": "50.00"})
	req := httptest.NewRequest(http.MethodPost, "/api/payments/refund/order_abc", bytes.NewBuffer(b))
	newTestRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotImplemented, w.Code)
}
