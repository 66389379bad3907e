package user

import (
	"github.com/gin-gonic/gin"

	"github.com/chadandhabale/Ecommerce-Microservices/internal/domain/user/handler"
	"github.com/chadandhabale/Ecommerce-Microservices/internal/domain/user/repository"
	"github.com/chadandhabale/Ecommerce-Microservices/internal/domain/user/service"
	"github.com/chadandhabale/Ecommerce-Microservices/internal/pkg/middleware"
	"github.com/chadandhabale/Ecommerce-Microservices/internal/pkg/registry"
)

// UserModule wires user registration, login and admin user management.
type UserModule struct{}

func init() {
	registry.Register(&UserModule{})
}

func (m *UserModule) Name() string {
	return "user"
}

func (m *UserModule) Priority() int {
	// Other modules resolve users, so this initializes first.
	return 1
}

func (m *UserModule) Init(ctx *registry.ModuleContext) error {
	userRepo := repository.NewUserRepository(ctx.DB)
	userService := service.NewUserService(userRepo)
	userHandler := handler.NewUserHandler(userService)

	setupRoutes(ctx.Router, userHandler)
	return nil
}

func setupRoutes(r *gin.Engine, h *handler.UserHandler) {
	g := r.Group("/api/users")
	{
		g.POST("/register", h.Register)
		g.POST("/login", h.Login)
	}

	protected := r.Group("/api/users")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.GET("", h.GetUsers)
		protected.GET("/email/:email", h.GetUserByEmail)
		protected.DELETE("/:id", h.DeleteUser)
	}
}
