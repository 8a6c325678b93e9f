package models

import (
	"time"

	"gorm.io/gorm"
)

type Feedback struct {
	ID                 string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	RestaurantID       string    `gorm:"type:varchar(36);not null;index" json:"restaurant_id"`
	TableID            *string   `gorm:"type:varchar(36)" json:"table_id"`
	Table              *Table    `gorm:"foreignKey:TableID" json:"table,omitempty"`
	OrderID            *string   `gorm:"type:varchar(36)" json:"order_id"`
	Order              *Order    `gorm:"foreignKey:OrderID" json:"order,omitempty"`
	Rating             int       `gorm:"not null" json:"rating"`
	Comment            *string   `gorm:"type:text" json:"comment"`
	RedirectedToGoogle bool      `gorm:"not null;default:false" json:"redirected_to_google"`
	CreatedAt          time.Time `gorm:"not null" json:"created_at"`
}

// TableName keeps the singular resource name used by the rest of the platform.
func (Feedback) TableName() string {
	return "feedback"
}

func (f *Feedback) BeforeCreate(tx *gorm.DB) error {
	assignID(&f.ID)
	return nil
}
