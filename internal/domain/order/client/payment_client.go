package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/chadandhabale/Ecommerce-Microservices/internal/contract"
	"github.com/chadandhabale/Ecommerce-Microservices/internal/pkg/config"
	"github.com/chadandhabale/Ecommerce-Microservices/pkg/apperr"
	"github.com/chadandhabale/Ecommerce-Microservices/pkg/response"
)

// PaymentClient mirrors the payment service HTTP surface used by the order
// service. All calls are bounded by the client timeout; a hung payment
// service fails the call instead of blocking the request thread forever.
type PaymentClient interface {
	CreatePayment(ctx context.Context, req *contract.PaymentRequest) (*contract.PaymentResponse, error)
	VerifyPayment(ctx context.Context, req *contract.PaymentVerification) (bool, error)
	GetPayment(ctx context.Context, razorpayOrderID string) (*contract.PaymentResponse, error)
	UpdatePaymentStatus(ctx context.Context, razorpayOrderID, status string) (*contract.PaymentResponse, error)
	Health(ctx context.Context) error
}

type httpPaymentClient struct {
	baseURL string
	client  *http.Client
}

func NewHTTPPaymentClient(cfg config.PaymentServiceConfig) PaymentClient {
	return &httpPaymentClient{
		baseURL: cfg.BaseURL,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
	}
}

func (c *httpPaymentClient) CreatePayment(ctx context.Context, req *contract.PaymentRequest) (*contract.PaymentResponse, error) {
	var resp contract.PaymentResponse
	if err := c.do(ctx, http.MethodPost, "/api/payments/create", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *httpPaymentClient) VerifyPayment(ctx context.Context, req *contract.PaymentVerification) (bool, error) {
	httpReq, err := c.newRequest(ctx, http.MethodPost, "/api/payments/verify", req)
	if err != nil {
		return false, err
	}

	res, err := c.client.Do(httpReq)
	if err != nil {
		return false, fmt.Errorf("payment service unreachable: %v: %w", err, apperr.ErrGateway)
	}
	defer res.Body.Close()

	// The verify endpoint answers plain text: 200 on success, 400 on a
	// failed verification.
	switch res.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusBadRequest:
		return false, nil
	default:
		return false, c.asError(res)
	}
}

func (c *httpPaymentClient) GetPayment(ctx context.Context, razorpayOrderID string) (*contract.PaymentResponse, error) {
	path := "/api/payments/order/" + url.PathEscape(razorpayOrderID)

	var resp contract.PaymentResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *httpPaymentClient) UpdatePaymentStatus(ctx context.Context, razorpayOrderID, status string) (*contract.PaymentResponse, error) {
	path := fmt.Sprintf("/api/payments/update-status/%s?status=%s",
		url.PathEscape(razorpayOrderID), url.QueryEscape(status))

	var resp contract.PaymentResponse
	if err := c.do(ctx, http.MethodPut, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *httpPaymentClient) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/payments/health", nil, nil)
}

func (c *httpPaymentClient) newRequest(ctx context.Context, method, path string, body interface{}) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

func (c *httpPaymentClient) do(ctx context.Context, method, path string, body, dest interface{}) error {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}

	res, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("payment service unreachable: %v: %w", err, apperr.ErrGateway)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return c.asError(res)
	}

	if dest != nil {
		if err := json.NewDecoder(res.Body).Decode(dest); err != nil {
			return fmt.Errorf("failed to decode payment service response: %v: %w", err, apperr.ErrGateway)
		}
	}
	return nil
}

// asError converts a non-2xx reply into a gateway error, surfacing the
// remote message when the body carries the standard error payload.
func (c *httpPaymentClient) asError(res *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(res.Body, 4096))

	var remote response.ErrorResponse
	if err := json.Unmarshal(data, &remote); err == nil && remote.Message != "" {
		return fmt.Errorf("payment service error (%d): %s: %w", res.StatusCode, remote.Message, apperr.ErrGateway)
	}
	return fmt.Errorf("payment service error (%d): %s: %w", res.StatusCode, string(data), apperr.ErrGateway)
}
