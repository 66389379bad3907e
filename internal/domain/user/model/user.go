package model

import (
	baseModel "github.com/chadandhabale/Ecommerce-Microservices/pkg/model"
)

// User owns orders; deleting a user cascades to them at the schema level.
type User struct {
	baseModel.BaseModel
	Name     string `gorm:"not null;size:100" json:"name"`
	Email    string `gorm:"unique;not null;size:150" json:"email"`
	Password string `gorm:"not null" json:"-"`
	Phone    string `gorm:"size:15" json:"phone,omitempty"`
}
