package services

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/restaurant-console/models"
	"github.com/yeremiapane/restaurant-console/realtime"
	"github.com/yeremiapane/restaurant-console/utils"
	"gorm.io/gorm"
)

// Publisher receives captured row changes.
type Publisher interface {
	Publish(evt realtime.ChangeEvent)
}

// ChangeMonitor turns db_changes rows into realtime change events.
type ChangeMonitor struct {
	DB        *gorm.DB
	Publisher Publisher
	StopChan  chan struct{}
	Interval  time.Duration
	BatchSize int
}

func NewChangeMonitor(db *gorm.DB, pub Publisher, interval time.Duration) *ChangeMonitor {
	if interval <= 0 {
		interval = time.Second
	}
	return &ChangeMonitor{
		DB:        db,
		Publisher: pub,
		StopChan:  make(chan struct{}),
		Interval:  interval,
		BatchSize: 100,
	}
}

func (cm *ChangeMonitor) Start() {
	go func() {
		ticker := time.NewTicker(cm.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if _, err := cm.CheckChanges(); err != nil {
					utils.ErrorLogger.Printf("Error checking changes: %v", err)
				}
			case <-cm.StopChan:
				return
			}
		}
	}()
}

func (cm *ChangeMonitor) Stop() {
	close(cm.StopChan)
}

// CheckChanges publishes one batch of unprocessed changes in capture order
// and marks them processed. It returns the number of changes published.
func (cm *ChangeMonitor) CheckChanges() (int, error) {
	var changes []models.DBChange

	err := cm.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("processed = ?", false).
			Order("id ASC").
			Limit(cm.BatchSize).
			Find(&changes).Error; err != nil {
			return err
		}
		if len(changes) == 0 {
			return nil
		}

		ids := make([]uint, len(changes))
		for i, c := range changes {
			ids[i] = c.ID
		}
		return tx.Model(&models.DBChange{}).
			Where("id IN ?", ids).
			Update("processed", true).Error
	})
	if err != nil {
		return 0, err
	}

	// publish after commit so subscribers that refetch see the row
	for _, change := range changes {
		cm.Publisher.Publish(toEvent(change))
	}

	if len(changes) > 0 {
		utils.InfoLogger.WithFields(logrus.Fields{
			"count": len(changes),
		}).Debug("Processed changes")
	}
	return len(changes), nil
}

func toEvent(c models.DBChange) realtime.ChangeEvent {
	return realtime.ChangeEvent{
		Schema:          "public",
		Table:           c.Table,
		Action:          c.ActionType,
		RecordID:        c.RecordID,
		RestaurantID:    c.RestaurantID,
		CommitTimestamp: c.ChangedAt,
	}
}
