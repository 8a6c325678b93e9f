package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type Order struct {
	ID                 string      `gorm:"type:varchar(36);primaryKey" json:"id"`
	RestaurantID       string      `gorm:"type:varchar(36);not null;index" json:"restaurant_id"`
	TableID            *string     `gorm:"type:varchar(36);index" json:"table_id"`
	Table              *Table      `gorm:"foreignKey:TableID" json:"table,omitempty"`
	OrderNumber        string      `gorm:"type:varchar(32);not null" json:"order_number"`
	Status             OrderStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	PaymentStatus      string      `gorm:"type:varchar(20);not null;default:'pending'" json:"payment_status"`
	PaymentMethod      *string     `gorm:"type:varchar(30)" json:"payment_method"`
	CustomerName       *string     `gorm:"type:varchar(255)" json:"customer_name"`
	CustomerPhone      *string     `gorm:"type:varchar(30)" json:"customer_phone"`
	Subtotal           float64     `gorm:"type:decimal(10,2);not null;default:0" json:"subtotal"`
	TaxAmount          float64     `gorm:"type:decimal(10,2);not null;default:0" json:"tax_amount"`
	ServiceCharge      float64     `gorm:"type:decimal(10,2);not null;default:0" json:"service_charge"`
	TotalAmount        float64     `gorm:"type:decimal(10,2);not null;default:0" json:"total_amount"`
	StartedPreparingAt *time.Time  `json:"started_preparing_at,omitempty"`
	ReadyAt            *time.Time  `json:"ready_at,omitempty"`
	CreatedAt          time.Time   `gorm:"not null;index" json:"created_at"`
	UpdatedAt          time.Time   `gorm:"not null" json:"updated_at"`
	OrderItems         []OrderItem `gorm:"foreignKey:OrderID" json:"order_items"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	assignID(&o.ID)
	if o.OrderNumber == "" {
		o.OrderNumber = o.generateOrderNumber()
	}
	return nil
}

// generateOrderNumber derives a short human-facing number from the id.
func (o *Order) generateOrderNumber() string {
	return fmt.Sprintf("ORD-%s", o.ID[:8])
}

// IsRevenueEligible reports whether the order counts toward revenue totals.
func (o *Order) IsRevenueEligible() bool {
	return o.Status == StatusCompleted || o.PaymentStatus == PaymentPaid
}
