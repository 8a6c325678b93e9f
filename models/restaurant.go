package models

import (
	"time"

	"gorm.io/gorm"
)

// Subscription tiers
const (
	TierFree       = "free"
	TierPro        = "pro"
	TierEnterprise = "enterprise"
)

// Restaurant is a tenant, the unit of data isolation.
type Restaurant struct {
	ID               string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name             string    `gorm:"type:varchar(255);not null" json:"name"`
	Slug             string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"slug"`
	SubscriptionTier string    `gorm:"type:varchar(20);not null;default:'free'" json:"subscription_tier"`
	IsActive         bool      `gorm:"not null" json:"is_active"`
	CurrencySymbol   string    `gorm:"type:varchar(8);not null;default:'₹'" json:"currency_symbol"`
	LogoURL          *string   `gorm:"type:varchar(512)" json:"logo_url"`
	PrimaryColor     *string   `gorm:"type:varchar(16)" json:"primary_color"`
	GoogleReviewURL  *string   `gorm:"type:varchar(512)" json:"google_review_url"`
	CreatedAt        time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time `gorm:"not null" json:"updated_at"`
}

func (r *Restaurant) BeforeCreate(tx *gorm.DB) error {
	assignID(&r.ID)
	return nil
}
