package models

import "time"

// Product represents a product record. Same ownership rules as Patent, plus
// price and stock.
type Product struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string    `json:"name" gorm:"type:varchar(255)" validate:"required,min=1,max=255"`
	Description string    `json:"description" gorm:"type:text" validate:"required"`
	Category    string    `json:"category" gorm:"index;type:varchar(100)" validate:"required,min=1,max=100"`
	Price       float64   `json:"price" validate:"gte=0"`
	Stock       int       `json:"stock" validate:"gte=0"`
	CreatedBy   string    `json:"createdBy" gorm:"index;type:varchar(36)"`
	CreatedAt   time.Time `json:"createdAt"`
}
