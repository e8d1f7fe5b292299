package models

import "time"

// Patent represents a patent record. CreatedBy is set from the authenticated
// caller on creation and never changes afterwards.
type Patent struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string    `json:"name" gorm:"type:varchar(255)" validate:"required,min=1,max=255"`
	Description string    `json:"description" gorm:"type:text" validate:"required"`
	Category    string    `json:"category" gorm:"index;type:varchar(100)" validate:"required,min=1,max=100"`
	CreatedBy   string    `json:"createdBy" gorm:"index;type:varchar(36)"`
	CreatedAt   time.Time `json:"createdAt"`
}
