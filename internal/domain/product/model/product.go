package model

import (
	"github.com/shopspring/decimal"

	baseModel "github.com/chadandhabale/Ecommerce-Microservices/pkg/model"
)

// Product is the catalog entry. Its price is copied onto order line items at
// order time; later price changes never touch existing orders.
type Product struct {
	baseModel.BaseModel
	Name        string          `gorm:"not null;size:150" json:"name"`
	Description string          `gorm:"size:500" json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	Category    string          `gorm:"size:100;index" json:"category"`
}
