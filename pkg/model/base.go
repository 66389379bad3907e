package model

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Amounts travel as JSON numbers on the wire, matching the legacy
	// contract. Precision is bounded by the numeric(10,2) columns.
	decimal.MarshalJSONWithoutQuotes = true
}

// BaseModel replaces gorm.Model with bigserial primary keys. CreatedAt is
// immutable after insert; UpdatedAt refreshes on every save.
type BaseModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"<-:create" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
