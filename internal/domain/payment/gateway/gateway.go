package gateway

import (
	"github.com/chadandhabale/Ecommerce-Microservices/internal/pkg/config"
)

// Gateway isolates the external payment processor. The orchestration layer
// only ever sees these two operations and the generic gateway error kind;
// processor-specific errors never cross this boundary.
type Gateway interface {
	// CreateOrder opens a payment intent for amount in minor currency
	// units and returns the gateway-issued order id.
	CreateOrder(amountMinor int64, currency, receipt string, notes map[string]interface{}) (string, error)

	// VerifySignature checks the checkout callback signature.
	VerifySignature(razorpayOrderID, razorpayPaymentID, signature string) bool

	// KeyID is the public key the frontend needs to open the checkout.
	KeyID() string
}

// New picks the gateway implementation from config.
func New(cfg config.RazorpayConfig) Gateway {
	if cfg.Mock {
		return NewMockGateway(cfg.KeyID)
	}
	return NewRazorpayGateway(cfg)
}
