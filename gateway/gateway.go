package gateway

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/yeremiapane/restaurant-console/realtime"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound is returned when a lookup or mutation by id matches no row.
var ErrNotFound = errors.New("record not found")

// Resources the gateway serves.
const (
	Restaurants = "restaurants"
	Tables      = "tables"
	Categories  = "categories"
	MenuItems   = "menu_items"
	Orders      = "orders"
	OrderItems  = "order_items"
	WaiterCalls = "waiter_calls"
	Feedback    = "feedback"
	Invoices    = "invoices"
)

type Op string

const (
	OpEq  Op = "eq"
	OpIn  Op = "in"
	OpGte Op = "gte"
	OpLte Op = "lte"
)

// Filter is a single column predicate.
type Filter struct {
	Column string
	Op     Op
	Value  interface{}
}

func Eq(column string, value interface{}) Filter {
	return Filter{Column: column, Op: OpEq, Value: value}
}

// In matches any of values. Values must be a slice.
func In[T any](column string, values []T) Filter {
	vs := make([]interface{}, len(values))
	for i, v := range values {
		vs[i] = v
	}
	return Filter{Column: column, Op: OpIn, Value: vs}
}

func Gte(column string, value interface{}) Filter {
	return Filter{Column: column, Op: OpGte, Value: value}
}

func Lte(column string, value interface{}) Filter {
	return Filter{Column: column, Op: OpLte, Value: value}
}

type OrderBy struct {
	Column string
	Desc   bool
}

// Query selects rows of one resource.
type Query struct {
	Resource string
	Filters  []Filter
	Order    []OrderBy
	// Expand lists related records to embed, e.g. "OrderItems" or "Table".
	Expand []string
	Limit  int
}

func (q Query) Where(f ...Filter) Query {
	q.Filters = append(append([]Filter(nil), q.Filters...), f...)
	return q
}

func (q Query) OrderBy(column string, desc bool) Query {
	q.Order = append(append([]OrderBy(nil), q.Order...), OrderBy{Column: column, Desc: desc})
	return q
}

// Gateway is the data access surface the services talk to: filtered
// queries, mutations by id and change channels.
type Gateway struct {
	db  *gorm.DB
	hub *realtime.Hub

	mu       sync.Mutex
	channels map[*Channel]struct{}
}

func New(db *gorm.DB, hub *realtime.Hub) *Gateway {
	return &Gateway{
		db:       db,
		hub:      hub,
		channels: make(map[*Channel]struct{}),
	}
}

func (g *Gateway) build(ctx context.Context, q Query) (*gorm.DB, error) {
	if q.Resource == "" {
		return nil, errors.New("query without resource")
	}
	tx := g.db.WithContext(ctx).Table(q.Resource)

	for _, f := range q.Filters {
		col := clause.Column{Name: f.Column}
		switch f.Op {
		case OpEq:
			tx = tx.Where(clause.Eq{Column: col, Value: f.Value})
		case OpIn:
			vs, _ := f.Value.([]interface{})
			tx = tx.Where(clause.IN{Column: col, Values: vs})
		case OpGte:
			tx = tx.Where(clause.Gte{Column: col, Value: utcValue(f.Value)})
		case OpLte:
			tx = tx.Where(clause.Lte{Column: col, Value: utcValue(f.Value)})
		default:
			return nil, fmt.Errorf("unsupported filter operator %q", f.Op)
		}
	}
	for _, o := range q.Order {
		tx = tx.Order(clause.OrderByColumn{Column: clause.Column{Name: o.Column}, Desc: o.Desc})
	}
	for _, rel := range q.Expand {
		tx = tx.Preload(rel)
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}
	return tx, nil
}

// utcValue moves timestamps to UTC, the zone rows are written in. SQLite
// compares timestamps as text, so mixed offsets would misorder.
func utcValue(v interface{}) interface{} {
	if t, ok := v.(time.Time); ok {
		return t.UTC()
	}
	return v
}

// Select loads every row matching q into dest, a pointer to a slice.
func (g *Gateway) Select(ctx context.Context, q Query, dest interface{}) error {
	tx, err := g.build(ctx, q)
	if err != nil {
		return err
	}
	if err := tx.Find(dest).Error; err != nil {
		return fmt.Errorf("select %s: %w", q.Resource, err)
	}
	return nil
}

// First loads the first row matching q into dest, a pointer to a struct.
func (g *Gateway) First(ctx context.Context, q Query, dest interface{}) error {
	tx, err := g.build(ctx, q)
	if err != nil {
		return err
	}
	if err := tx.Take(dest).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("select %s: %w", q.Resource, err)
	}
	return nil
}

func (g *Gateway) Count(ctx context.Context, q Query) (int64, error) {
	q.Order, q.Expand, q.Limit = nil, nil, 0
	tx, err := g.build(ctx, q)
	if err != nil {
		return 0, err
	}
	var n int64
	if err := tx.Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count %s: %w", q.Resource, err)
	}
	return n, nil
}

// Insert creates value, a pointer to a model or a slice of models.
func (g *Gateway) Insert(ctx context.Context, value interface{}) error {
	if err := g.db.WithContext(ctx).Create(value).Error; err != nil {
		return fmt.Errorf("insert: %w", err)
	}
	return nil
}

// Update applies values to the row with the given id and reloads it into
// dest, a pointer to the model struct.
func (g *Gateway) Update(ctx context.Context, id string, values map[string]interface{}, dest interface{}) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Take(dest, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("update %s: %w", id, err)
		}
		if err := tx.Model(dest).Updates(values).Error; err != nil {
			return fmt.Errorf("update %s: %w", id, err)
		}
		if err := tx.Take(dest, "id = ?", id).Error; err != nil {
			return fmt.Errorf("reload %s: %w", id, err)
		}
		return nil
	})
}

// Delete removes the row with the given id. model is a pointer to the
// model struct and receives the deleted row.
func (g *Gateway) Delete(ctx context.Context, id string, model interface{}) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Take(model, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("delete %s: %w", id, err)
		}
		if err := tx.Delete(model).Error; err != nil {
			return fmt.Errorf("delete %s: %w", id, err)
		}
		return nil
	})
}

// Transaction runs fn with a gateway bound to a single database transaction.
// Channels opened on the inner gateway are not supported.
func (g *Gateway) Transaction(ctx context.Context, fn func(tx *Gateway) error) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Gateway{db: tx, hub: g.hub, channels: make(map[*Channel]struct{})})
	})
}
