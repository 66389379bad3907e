package order

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/chadandhabale/Ecommerce-Microservices/internal/domain/order/client"
	"github.com/chadandhabale/Ecommerce-Microservices/internal/domain/order/handler"
	"github.com/chadandhabale/Ecommerce-Microservices/internal/domain/order/repository"
	"github.com/chadandhabale/Ecommerce-Microservices/internal/domain/order/service"
	productRepo "github.com/chadandhabale/Ecommerce-Microservices/internal/domain/product/repository"
	userRepo "github.com/chadandhabale/Ecommerce-Microservices/internal/domain/user/repository"
	"github.com/chadandhabale/Ecommerce-Microservices/internal/pkg/config"
	"github.com/chadandhabale/Ecommerce-Microservices/internal/pkg/registry"
	"github.com/chadandhabale/Ecommerce-Microservices/internal/pkg/worker"
)

// OrderModule wires order placement and the payment-link reconciliation
// sweep. It talks to the payment service over HTTP.
type OrderModule struct {
	reconciler *worker.Reconciler
}

func init() {
	registry.Register(&OrderModule{})
}

func (m *OrderModule) Name() string {
	return "order"
}

func (m *OrderModule) Priority() int {
	// Depends on the user and product modules.
	return 20
}

func (m *OrderModule) Init(ctx *registry.ModuleContext) error {
	cfg := config.GlobalConfig

	orderRepository := repository.NewOrderRepository(ctx.DB)
	paymentClient := client.NewHTTPPaymentClient(cfg.PaymentService)

	orderService := service.NewOrderService(
		orderRepository,
		productRepo.NewProductRepository(ctx.DB),
		userRepo.NewUserRepository(ctx.DB),
		paymentClient,
		cfg.Reconciler.MaxAttempts,
	)
	orderHandler := handler.NewOrderHandler(orderService)

	setupRoutes(ctx.Router, orderHandler)

	m.reconciler = worker.NewReconciler(
		"payment-link",
		time.Duration(cfg.Reconciler.IntervalSeconds)*time.Second,
		orderService.ReconcilePayments,
	)
	m.reconciler.Start()

	return nil
}

// Close stops the reconciliation sweep and waits for an in-flight pass to
// finish.
func (m *OrderModule) Close() error {
	if m.reconciler != nil {
		m.reconciler.Stop()
	}
	return nil
}

func setupRoutes(r *gin.Engine, h *handler.OrderHandler) {
	g := r.Group("/api/orders")
	{
		g.POST("", h.PlaceOrder)
		g.GET("", h.GetAll)
		g.GET("/user/:userId", h.GetByUser)
		g.GET("/status/:status", h.GetByStatus)
		g.GET("/recent/:days", h.GetRecent)
		g.PUT("/:id/status", h.UpdateStatus)
		g.PUT("/:id/cancel", h.Cancel)
	}
}
