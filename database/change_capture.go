package database

import (
	"reflect"
	"time"

	"github.com/yeremiapane/restaurant-console/models"
	"github.com/yeremiapane/restaurant-console/utils"
	"gorm.io/gorm"
)

// TrackedTables are the tables whose row changes feed the realtime channel.
var TrackedTables = map[string]bool{
	"restaurants":  true,
	"tables":       true,
	"categories":   true,
	"menu_items":   true,
	"orders":       true,
	"order_items":  true,
	"waiter_calls": true,
	"feedback":     true,
	"invoices":     true,
}

// RegisterChangeCapture installs gorm callbacks that write a db_changes row
// for every create, update and delete on a tracked table. The row is written
// in the same transaction as the change itself.
func RegisterChangeCapture(db *gorm.DB) error {
	if err := db.Callback().Create().After("gorm:create").
		Register("capture:create", captureFor(models.ActionInsert)); err != nil {
		return err
	}
	if err := db.Callback().Update().After("gorm:update").
		Register("capture:update", captureFor(models.ActionUpdate)); err != nil {
		return err
	}
	return db.Callback().Delete().After("gorm:delete").
		Register("capture:delete", captureFor(models.ActionDelete))
}

func captureFor(action string) func(*gorm.DB) {
	return func(tx *gorm.DB) {
		if tx.Error != nil || tx.RowsAffected == 0 || tx.Statement.Schema == nil {
			return
		}
		table := tx.Statement.Schema.Table
		if !TrackedTables[table] {
			return
		}

		changes := collectChanges(tx, table, action)
		if len(changes) == 0 {
			return
		}

		if err := tx.Session(&gorm.Session{NewDB: true}).Create(&changes).Error; err != nil {
			utils.ErrorLogger.Printf("Error recording %s change on %s: %v", action, table, err)
			_ = tx.AddError(err)
		}
	}
}

func collectChanges(tx *gorm.DB, table, action string) []models.DBChange {
	sch := tx.Statement.Schema
	pk := sch.PrioritizedPrimaryField
	if pk == nil {
		return nil
	}
	tenantField := sch.LookUpField("RestaurantID")
	orderField := sch.LookUpField("OrderID")
	now := time.Now()
	orderTenants := map[string]string{}

	var changes []models.DBChange
	record := func(rv reflect.Value) {
		id, zero := pk.ValueOf(tx.Statement.Context, rv)
		if zero {
			return
		}
		change := models.DBChange{
			Table:      table,
			RecordID:   toString(id),
			ActionType: action,
			ChangedAt:  now,
		}
		switch {
		case table == "restaurants":
			change.RestaurantID = change.RecordID
		case tenantField != nil:
			if v, isZero := tenantField.ValueOf(tx.Statement.Context, rv); !isZero {
				change.RestaurantID = toString(v)
			}
		case orderField != nil:
			if v, isZero := orderField.ValueOf(tx.Statement.Context, rv); !isZero {
				change.RestaurantID = orderTenant(tx, orderTenants, toString(v))
			}
		}
		changes = append(changes, change)
	}

	rv := reflect.Indirect(tx.Statement.ReflectValue)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			record(reflect.Indirect(rv.Index(i)))
		}
	case reflect.Struct:
		record(rv)
	}
	return changes
}

// orderTenant resolves the restaurant of a child row through its order,
// inside the transaction that wrote the row.
func orderTenant(tx *gorm.DB, seen map[string]string, orderID string) string {
	if orderID == "" {
		return ""
	}
	if rid, ok := seen[orderID]; ok {
		return rid
	}
	var ids []string
	if err := tx.Session(&gorm.Session{NewDB: true}).Table("orders").
		Where("id = ?", orderID).Pluck("restaurant_id", &ids).Error; err != nil {
		utils.ErrorLogger.Printf("Error resolving restaurant of order %s: %v", orderID, err)
	}
	rid := ""
	if len(ids) > 0 {
		rid = ids[0]
	}
	seen[orderID] = rid
	return rid
}

func toString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case *string:
		if t == nil {
			return ""
		}
		return *t
	default:
		return ""
	}
}
