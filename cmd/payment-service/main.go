package main

import (
	"github.com/chadandhabale/Ecommerce-Microservices/internal/pkg/server"

	_ "github.com/chadandhabale/Ecommerce-Microservices/internal/domain/payment"
)

func main() {
	server.Run("payment-service")
}
