package payment

import (
	"github.com/gin-gonic/gin"

	"github.com/chadandhabale/Ecommerce-Microservices/internal/domain/payment/gateway"
	"github.com/chadandhabale/Ecommerce-Microservices/internal/domain/payment/handler"
	"github.com/chadandhabale/Ecommerce-Microservices/internal/domain/payment/repository"
	"github.com/chadandhabale/Ecommerce-Microservices/internal/domain/payment/service"
	"github.com/chadandhabale/Ecommerce-Microservices/internal/pkg/config"
	"github.com/chadandhabale/Ecommerce-Microservices/internal/pkg/email"
	"github.com/chadandhabale/Ecommerce-Microservices/internal/pkg/registry"
	"github.com/chadandhabale/Ecommerce-Microservices/pkg/cache"
)

// PaymentModule owns the payment ledger and the gateway integration.
type PaymentModule struct{}

func init() {
	registry.Register(&PaymentModule{})
}

func (m *PaymentModule) Name() string {
	return "payment"
}

func (m *PaymentModule) Priority() int {
	return 1
}

func (m *PaymentModule) Init(ctx *registry.ModuleContext) error {
	cfg := config.GlobalConfig

	paymentService := service.NewPaymentService(
		repository.NewPaymentRepository(ctx.DB),
		gateway.New(cfg.Razorpay),
		email.NewSender(cfg.Email),
		cache.NewRedisCache(ctx.Redis, "payments:"),
		cfg.Razorpay.Currency,
	)
	paymentHandler := handler.NewPaymentHandler(paymentService)

	setupRoutes(ctx.Router, paymentHandler)
	return nil
}

func setupRoutes(r *gin.Engine, h *handler.PaymentHandler) {
	g := r.Group("/api/payments")
	{
		g.POST("/create", h.Create)
		g.POST("/verify", h.Verify)
		g.PUT("/update-status/:razorpayOrderId", h.UpdateStatus)
		g.GET("/order/:razorpayOrderId", h.GetByOrder)
		g.GET("/by-order/:orderId", h.GetByOrderRef)
		g.GET("/user/:userId", h.GetByUser)
		g.GET("/status/:status", h.GetByStatus)
		g.GET("/recent/:days", h.GetRecent)
		g.GET("/statistics", h.GetStatistics)
		g.GET("/health", h.Health)
		g.POST("/refund/:razorpayOrderId", h.Refund)
	}
}
