package models

import (
	"time"
)

// Change actions recorded by change capture.
const (
	ActionInsert = "INSERT"
	ActionUpdate = "UPDATE"
	ActionDelete = "DELETE"
)

type DBChange struct {
	ID           uint      `gorm:"primaryKey"`
	Table        string    `gorm:"column:table_name;type:varchar(50);not null;index:idx_table_action"`
	RecordID     string    `gorm:"type:varchar(36);not null"`
	RestaurantID string    `gorm:"type:varchar(36);index"`
	ActionType   string    `gorm:"type:varchar(10);not null;index:idx_table_action"`
	ChangedAt    time.Time `gorm:"not null"`
	Processed    bool      `gorm:"default:false;index:idx_processed"`
}

func (DBChange) TableName() string {
	return "db_changes"
}
