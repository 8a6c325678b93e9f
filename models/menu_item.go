package models

import (
	"time"

	"gorm.io/gorm"
)

type MenuItem struct {
	ID              string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	RestaurantID    string    `gorm:"type:varchar(36);not null;index" json:"restaurant_id"`
	CategoryID      *string   `gorm:"type:varchar(36);index" json:"category_id"`
	Category        *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Name            string    `gorm:"type:varchar(255);not null" json:"name"`
	Description     *string   `gorm:"type:text" json:"description"`
	Price           float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	ImageURL        *string   `gorm:"type:varchar(512)" json:"image_url"`
	IsAvailable     bool      `gorm:"not null" json:"is_available"`
	IsVegetarian    bool      `gorm:"not null;default:false" json:"is_vegetarian"`
	IsVegan         bool      `gorm:"not null;default:false" json:"is_vegan"`
	IsPopular       bool      `gorm:"not null;default:false" json:"is_popular"`
	SpicyLevel      *int      `json:"spicy_level"`
	PrepTimeMinutes *int      `json:"prep_time_minutes"`
	DisplayOrder    int       `gorm:"not null;default:0" json:"display_order"`
	CreatedAt       time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time `gorm:"not null" json:"updated_at"`
}

func (m *MenuItem) BeforeCreate(tx *gorm.DB) error {
	assignID(&m.ID)
	return nil
}
