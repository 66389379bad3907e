package gateway

import (
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
	"github.com/razorpay/razorpay-go/utils"

	"github.com/chadandhabale/Ecommerce-Microservices/internal/pkg/config"
	"github.com/chadandhabale/Ecommerce-Microservices/pkg/apperr"
)

// RazorpayGateway drives the real Razorpay API. Credentials are injected
// once at construction.
type RazorpayGateway struct {
	client    *razorpay.Client
	keyID     string
	keySecret string
}

func NewRazorpayGateway(cfg config.RazorpayConfig) *RazorpayGateway {
	return &RazorpayGateway{
		client:    razorpay.NewClient(cfg.KeyID, cfg.KeySecret),
		keyID:     cfg.KeyID,
		keySecret: cfg.KeySecret,
	}
}

func (g *RazorpayGateway) CreateOrder(amountMinor int64, currency, receipt string, notes map[string]interface{}) (string, error) {
	data := map[string]interface{}{
		"amount":          amountMinor,
		"currency":        currency,
		"receipt":         receipt,
		"payment_capture": 1,
	}
	if len(notes) > 0 {
		data["notes"] = notes
	}

	body, err := g.client.Order.Create(data, nil)
	if err != nil {
		return "", fmt.Errorf("razorpay order creation failed: %v: %w", err, apperr.ErrGateway)
	}

	orderID, ok := body["id"].(string)
	if !ok || orderID == "" {
		return "", fmt.Errorf("razorpay returned no order id: %w", apperr.ErrGateway)
	}
	return orderID, nil
}

func (g *RazorpayGateway) VerifySignature(razorpayOrderID, razorpayPaymentID, signature string) bool {
	params := map[string]interface{}{
		"razorpay_order_id":   razorpayOrderID,
		"razorpay_payment_id": razorpayPaymentID,
	}
	return utils.VerifyPaymentSignature(params, signature, g.keySecret)
}

func (g *RazorpayGateway) KeyID() string {
	return g.keyID
}

var _ Gateway = (*RazorpayGateway)(nil)
