package product

import (
	"github.com/gin-gonic/gin"

	"github.com/chadandhabale/Ecommerce-Microservices/internal/domain/product/handler"
	"github.com/chadandhabale/Ecommerce-Microservices/internal/domain/product/repository"
	"github.com/chadandhabale/Ecommerce-Microservices/internal/domain/product/service"
	"github.com/chadandhabale/Ecommerce-Microservices/internal/pkg/middleware"
	"github.com/chadandhabale/Ecommerce-Microservices/internal/pkg/registry"
)

// ProductModule wires the product catalog.
type ProductModule struct{}

func init() {
	registry.Register(&ProductModule{})
}

func (m *ProductModule) Name() string {
	return "product"
}

func (m *ProductModule) Priority() int {
	return 10
}

func (m *ProductModule) Init(ctx *registry.ModuleContext) error {
	productRepo := repository.NewProductRepository(ctx.DB)
	productService := service.NewProductService(productRepo)
	productHandler := handler.NewProductHandler(productService)

	setupRoutes(ctx.Router, productHandler)
	return nil
}

func setupRoutes(r *gin.Engine, h *handler.ProductHandler) {
	g := r.Group("/api/products")
	{
		g.GET("", h.GetAll)
		g.GET("/:id", h.GetByID)
		g.GET("/category/:category", h.GetByCategory)
		g.GET("/search", h.Search)
	}

	admin := r.Group("/api/products")
	admin.Use(middleware.AuthMiddleware())
	{
		admin.POST("", h.Add)
		admin.PUT("/:id", h.Update)
		admin.DELETE("/:id", h.Delete)
	}
}
