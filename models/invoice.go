package models

import (
	"time"

	"gorm.io/gorm"
)

type Invoice struct {
	ID             string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	RestaurantID   string    `gorm:"type:varchar(36);not null;index" json:"restaurant_id"`
	OrderID        *string   `gorm:"type:varchar(36)" json:"order_id"`
	InvoiceNumber  string    `gorm:"type:varchar(50);not null" json:"invoice_number"`
	CustomerName   *string   `gorm:"type:varchar(255)" json:"customer_name"`
	PaymentMethod  string    `gorm:"type:varchar(30);not null" json:"payment_method"`
	PaymentStatus  string    `gorm:"type:varchar(20);not null" json:"payment_status"`
	Subtotal       float64   `gorm:"type:decimal(12,2);not null" json:"subtotal"`
	TaxAmount      float64   `gorm:"type:decimal(12,2);not null" json:"tax_amount"`
	ServiceCharge  float64   `gorm:"type:decimal(12,2);not null" json:"service_charge"`
	DiscountAmount *float64  `gorm:"type:decimal(12,2)" json:"discount_amount"`
	TotalAmount    float64   `gorm:"type:decimal(12,2);not null" json:"total_amount"`
	CreatedAt      time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time `gorm:"not null" json:"updated_at"`
}

func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	assignID(&i.ID)
	return nil
}
