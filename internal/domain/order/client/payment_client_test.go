package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/chadandhabale/Ecommerce-Microservices/internal/contract"
	"github.com/chadandhabale/Ecommerce-Microservices/internal/pkg/config"
	"github.com/chadandhabale/Ecommerce-Microservices/pkg/apperr"
	"github.com/chadandhabale/Ecommerce-Microservices/pkg/response"
)

func newTestClient(url string) PaymentClient {
	return NewHTTPPaymentClient(config.PaymentServiceConfig{
		BaseURL:        url,
		TimeoutSeconds: 2,
	})
}

func TestCreatePayment(t *testing.T) {
	t.Run("Posts request and decodes response", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/payments/create", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var req contract.PaymentRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, uint(42), req.OrderID)

			json.NewEncoder(w).Encode(contract.PaymentResponse{
				RazorpayOrderID: "order_wire1",
				Status:          "PENDING",
				KeyID:           "rzp_test_key",
				OrderID:         req.OrderID,
			})
		}))
		defer srv.Close()

		resp, err := newTestClient(srv.URL).CreatePayment(context.Background(), &contract.PaymentRequest{
			UserID:  1,
			OrderID: 42,
			Amount:  decimal.RequireFromString("99.00"),
		})

		assert.NoError(t, err)
		assert.Equal(t, "order_wire1", resp.RazorpayOrderID)
		assert.Equal(t, "rzp_test_key", resp.KeyID)
	})

	t.Run("Remote error payload surfaces as gateway error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(response.ErrorResponse{
				Status:  http.StatusInternalServerError,
				Message: "gateway order creation failed",
			})
		}))
		defer srv.Close()

		_, err := newTestClient(srv.URL).CreatePayment(context.Background(), &contract.PaymentRequest{
			UserID: 1, OrderID: 42, Amount: decimal.RequireFromString("99.00"),
		})

		assert.Error(t, err)
		assert.True(t, errors.Is(err, apperr.ErrGateway))
		assert.Contains(t, err.Error(), "gateway order creation failed")
	})

	t.Run("Unreachable service is a gateway error", func(t *testing.T) {
		_, err := newTestClient("http://127.0.0.1:1").CreatePayment(context.Background(), &contract.PaymentRequest{
			UserID: 1, OrderID: 42, Amount: decimal.RequireFromString("99.00"),
		})

		assert.Error(t, err)
		assert.True(t, errors.Is(err, apperr.ErrGateway))
	})
}

func TestVerifyPayment(t *testing.T) {
	t.Run("200 means verified", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("Payment verified successfully"))
		}))
		defer srv.Close()

		ok, err := newTestClient(srv.URL).VerifyPayment(context.Background(), &contract.PaymentVerification{
			RazorpayOrderID: "order_x", RazorpayPaymentID: "pay_x", RazorpaySignature: "sig",
		})

		assert.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("400 means failed verification, not an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("Payment verification failed"))
		}))
		defer srv.Close()

		ok, err := newTestClient(srv.URL).VerifyPayment(context.Background(), &contract.PaymentVerification{
			RazorpayOrderID: "order_x", RazorpayPaymentID: "pay_x", RazorpaySignature: "forged",
		})

		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("5xx is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		_, err := newTestClient(srv.URL).VerifyPayment(context.Background(), &contract.PaymentVerification{
			RazorpayOrderID: "order_x", RazorpayPaymentID: "pay_x", RazorpaySignature: "sig",
		})

		assert.Error(t, err)
		assert.True(t, errors.Is(err, apperr.ErrGateway))
	})
}

func TestGetPayment(t *testing.T) {
	t.Run("Fetches the ledger row by gateway order id", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/api/payments/order/order_g1", r.URL.Path)

			json.NewEncoder(w).Encode(contract.PaymentResponse{
				RazorpayOrderID: "order_g1",
				Status:          "SUCCESS",
				OrderID:         42,
			})
		}))
		defer srv.Close()

		resp, err := newTestClient(srv.URL).GetPayment(context.Background(), "order_g1")

		assert.NoError(t, err)
		assert.Equal(t, "SUCCESS", resp.Status)
		assert.Equal(t, uint(42), resp.OrderID)
	})

	t.Run("Missing ledger row is a gateway error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(response.ErrorResponse{
				Status:  http.StatusNotFound,
				Message: "payment not found",
			})
		}))
		defer srv.Close()

		_, err := newTestClient(srv.URL).GetPayment(context.Background(), "order_gone")

		assert.Error(t, err)
		assert.True(t, errors.Is(err, apperr.ErrGateway))
	})
}

func TestUpdatePaymentStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/payments/update-status/order_u1", r.URL.Path)
		assert.Equal(t, "SUCCESS", r.URL.Query().Get("status"))

		json.NewEncoder(w).Encode(contract.PaymentResponse{
			RazorpayOrderID: "order_u1",
			Status:          "SUCCESS",
		})
	}))
	defer srv.Close()

	resp, err := newTestClient(srv.URL).UpdatePaymentStatus(context.Background(), "order_u1", "SUCCESS")

	assert.NoError(t, err)
	assert.Equal(t, "SUCCESS", resp.Status)
}

func TestHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/payments/health", r.URL.Path)
		w.Write([]byte("Payment Service Connected - 1700000000000"))
	}))
	defer srv.Close()

	assert.NoError(t, newTestClient(srv.URL).Health(context.Background()))
}

func TestContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := newTestClient(srv.URL).Health(ctx)
	assert.Error(t, err)
}
