package main

import (
	"github.com/chadandhabale/Ecommerce-Microservices/internal/pkg/server"

	_ "github.com/chadandhabale/Ecommerce-Microservices/internal/domain/order"
	_ "github.com/chadandhabale/Ecommerce-Microservices/internal/domain/product"
	_ "github.com/chadandhabale/Ecommerce-Microservices/internal/domain/user"
)

func main() {
	server.Run("order-service")
}
