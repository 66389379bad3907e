package gateway

import (
	"strings"

	"github.com/google/uuid"
)

// MockGateway fabricates Razorpay-shaped order ids and accepts every
// signature. Enabled by razorpay.mock in config; startup validation
// refuses it in the production profile.
type MockGateway struct {
	keyID string
}

func NewMockGateway(keyID string) *MockGateway {
	if keyID == "" {
		keyID = "rzp_test_mock"
	}
	return &MockGateway{keyID: keyID}
}

func (g *MockGateway) CreateOrder(amountMinor int64, currency, receipt string, notes map[string]interface{}) (string, error) {
	token := strings.ReplaceAll(uuid.New().String(), "-", "")
	return "order_" + token[:14], nil
}

func (g *MockGateway) VerifySignature(razorpayOrderID, razorpayPaymentID, signature string) bool {
	return true
}

func (g *MockGateway) KeyID() string {
	return g.keyID
}

var _ Gateway = (*MockGateway)(nil)
