package email

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/chadandhabale/Ecommerce-Microservices/internal/pkg/config"
	"github.com/chadandhabale/Ecommerce-Microservices/pkg/logger"
)

// Sender delivers payment notification mails. Callers fire it from a
// goroutine; a delivery failure must never fail the triggering operation.
type Sender interface {
	SendPaymentSuccessEmail(to, customerName string, amount decimal.Decimal, orderID uint) error
	SendPaymentFailureEmail(to, customerName string, orderID uint) error
}

type smtpSender struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPSender builds a gomail-backed sender from the email config section.
func NewSMTPSender(cfg config.EmailConfig) Sender {
	return &smtpSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (s *smtpSender) send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)
	return s.dialer.DialAndSend(m)
}

func (s *smtpSender) SendPaymentSuccessEmail(to, customerName string, amount decimal.Decimal, orderID uint) error {
	subject := fmt.Sprintf("Payment Successful - Order #%d", orderID)
	body := fmt.Sprintf(
		"<h2>Payment Received</h2>"+
			"<p>Dear %s,</p>"+
			"<p>Your payment of <b>₹%s</b> for order <b>#%d</b> was successful.</p>"+
			"<p>Thank you for shopping with us!</p>",
		customerName, amount.StringFixed(2), orderID)
	return s.send(to, subject, body)
}

func (s *smtpSender) SendPaymentFailureEmail(to, customerName string, orderID uint) error {
	subject := fmt.Sprintf("Payment Failed - Order #%d", orderID)
	body := fmt.Sprintf(
		"<h2>Payment Failed</h2>"+
			"<p>Dear %s,</p>"+
			"<p>We could not verify your payment for order <b>#%d</b>. "+
			"Please retry from your orders page.</p>",
		customerName, orderID)
	return s.send(to, subject, body)
}

// noopSender is used when no SMTP host is configured (dev profiles).
type noopSender struct{}

func (noopSender) SendPaymentSuccessEmail(to, customerName string, amount decimal.Decimal, orderID uint) error {
	logger.Log.Info("Email disabled, skipping payment success mail",
		zap.String("to", to), zap.Uint("order_id", orderID))
	return nil
}

func (noopSender) SendPaymentFailureEmail(to, customerName string, orderID uint) error {
	logger.Log.Info("Email disabled, skipping payment failure mail",
		zap.String("to", to), zap.Uint("order_id", orderID))
	return nil
}

// NewSender returns the SMTP sender, or a no-op when email is unconfigured.
func NewSender(cfg config.EmailConfig) Sender {
	if cfg.Host == "" {
		return noopSender{}
	}
	return NewSMTPSender(cfg)
}
