package models

import (
	"time"

	"gorm.io/gorm"
)

// Waiter call statuses
const (
	CallPending      = "pending"
	CallAcknowledged = "acknowledged"
	CallResolved     = "resolved"
)

type WaiterCall struct {
	ID           string     `gorm:"type:varchar(36);primaryKey" json:"id"`
	RestaurantID string     `gorm:"type:varchar(36);not null;index" json:"restaurant_id"`
	TableID      string     `gorm:"type:varchar(36);not null" json:"table_id"`
	Table        *Table     `gorm:"foreignKey:TableID" json:"table,omitempty"`
	Status       string     `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Reason       *string    `gorm:"type:varchar(100)" json:"reason"`
	RespondedBy  *string    `gorm:"type:varchar(36)" json:"responded_by"`
	RespondedAt  *time.Time `json:"responded_at"`
	CreatedAt    time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"not null" json:"updated_at"`
}

func (w *WaiterCall) BeforeCreate(tx *gorm.DB) error {
	assignID(&w.ID)
	return nil
}
