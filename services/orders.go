package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/restaurant-console/gateway"
	"github.com/yeremiapane/restaurant-console/models"
	"github.com/yeremiapane/restaurant-console/querycache"
	"github.com/yeremiapane/restaurant-console/utils"
)

type OrderItemInput struct {
	MenuItemID *string `json:"menu_item_id"`
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	Price      float64 `json:"price"`
	Notes      string  `json:"notes"`
}

type CreateOrderInput struct {
	RestaurantID  string           `json:"restaurant_id"`
	TableID       *string          `json:"table_id"`
	CustomerName  *string          `json:"customer_name"`
	CustomerPhone *string          `json:"customer_phone"`
	Subtotal      float64          `json:"subtotal"`
	TaxAmount     float64          `json:"tax_amount"`
	ServiceCharge float64          `json:"service_charge"`
	TotalAmount   float64          `json:"total_amount"`
	Items         []OrderItemInput `json:"items"`
}

func (in CreateOrderInput) validate() error {
	var c check
	c.require(in.RestaurantID != "", "restaurant_id")
	c.require(len(in.Items) > 0, "items")
	for i, it := range in.Items {
		c.require(it.Name != "", fmt.Sprintf("items[%d].name", i))
		c.require(it.Quantity > 0, fmt.Sprintf("items[%d].quantity", i))
		c.require(it.Price >= 0, fmt.Sprintf("items[%d].price", i))
	}
	c.require(in.TotalAmount >= 0, "total_amount")
	return c.err()
}

// OrderService is the order lifecycle: live lists, lookups and the
// customer and billing mutations.
type OrderService struct {
	gw    *gateway.Gateway
	cache *querycache.Cache
	loc   *time.Location
	now   func() time.Time
}

func NewOrderService(gw *gateway.Gateway, cache *querycache.Cache, loc *time.Location) *OrderService {
	if loc == nil {
		loc = time.Local
	}
	return &OrderService{gw: gw, cache: cache, loc: loc, now: time.Now}
}

func ordersQuery(tenant string, statuses []models.OrderStatus) gateway.Query {
	q := gateway.Query{
		Resource: gateway.Orders,
		Expand:   []string{"OrderItems", "Table"},
	}.Where(gateway.Eq("restaurant_id", tenant))

	switch len(statuses) {
	case 0:
	case 1:
		q = q.Where(gateway.Eq("status", statuses[0]))
	default:
		q = q.Where(gateway.In("status", statuses))
	}
	return q.OrderBy("created_at", true)
}

// Watch opens a live order list for tenant, newest first. No statuses means
// all orders, one means equality and several mean set membership.
func (s *OrderService) Watch(tenant string, statuses ...models.OrderStatus) *LiveQuery[[]models.Order] {
	statuses = append([]models.OrderStatus(nil), statuses...)
	return newLiveQuery(s.gw, s.cache, tenant, liveConfig[[]models.Order]{
		channel: func(t string) string { return "orders-" + t },
		bindings: func(t string) []gateway.Binding {
			return []gateway.Binding{
				{Schema: "public", Table: gateway.Orders, Event: "*", Filter: "restaurant_id=eq." + t},
				{Schema: "public", Table: gateway.OrderItems, Event: "*"},
			}
		},
		prefix:    ordersPrefix,
		key:       func(t string) querycache.Key { return ordersKey(t, statuses) },
		staleTime: ordersStaleTime,
		empty:     func() []models.Order { return []models.Order{} },
		fetch: func(ctx context.Context, t string) ([]models.Order, error) {
			return s.fetchOrders(ctx, t, statuses)
		},
	})
}

// List is the cached order list without a subscription of its own.
func (s *OrderService) List(ctx context.Context, tenant string, statuses ...models.OrderStatus) ([]models.Order, error) {
	if tenant == "" {
		return []models.Order{}, nil
	}
	return querycache.Fetch(ctx, s.cache, ordersKey(tenant, statuses), ordersStaleTime, func(ctx context.Context) ([]models.Order, error) {
		return s.fetchOrders(ctx, tenant, statuses)
	})
}

func (s *OrderService) fetchOrders(ctx context.Context, tenant string, statuses []models.OrderStatus) ([]models.Order, error) {
	orders := []models.Order{}
	if err := s.gw.Select(ctx, ordersQuery(tenant, statuses), &orders); err != nil {
		return nil, fmt.Errorf("fetch orders: %w", err)
	}
	return orders, nil
}

// Order returns one order with its items and table.
func (s *OrderService) Order(ctx context.Context, id string) (*models.Order, error) {
	return querycache.Fetch(ctx, s.cache, orderKey(id), 0, func(ctx context.Context) (*models.Order, error) {
		var o models.Order
		q := gateway.Query{Resource: gateway.Orders, Expand: []string{"OrderItems", "Table"}}.
			Where(gateway.Eq("id", id))
		if err := s.gw.First(ctx, q, &o); err != nil {
			return nil, err
		}
		return &o, nil
	})
}

// Today returns the tenant's orders since local midnight, newest first.
func (s *OrderService) Today(ctx context.Context, tenant string) ([]models.Order, error) {
	if tenant == "" {
		return []models.Order{}, nil
	}
	now := s.now().In(s.loc)
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)

	return querycache.Fetch(ctx, s.cache, todayOrdersKey(tenant, midnight), ordersStaleTime, func(ctx context.Context) ([]models.Order, error) {
		orders := []models.Order{}
		q := gateway.Query{Resource: gateway.Orders, Expand: []string{"OrderItems"}}.
			Where(gateway.Eq("restaurant_id", tenant), gateway.Gte("created_at", midnight)).
			OrderBy("created_at", true)
		if err := s.gw.Select(ctx, q, &orders); err != nil {
			return nil, fmt.Errorf("fetch today's orders: %w", err)
		}
		return orders, nil
	})
}

// Create inserts the order, then its items.
func (s *OrderService) Create(ctx context.Context, in CreateOrderInput) (*models.Order, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	order := models.Order{
		RestaurantID:  in.RestaurantID,
		TableID:       in.TableID,
		Status:        models.StatusPending,
		PaymentStatus: models.PaymentPending,
		CustomerName:  in.CustomerName,
		CustomerPhone: in.CustomerPhone,
		Subtotal:      in.Subtotal,
		TaxAmount:     in.TaxAmount,
		ServiceCharge: in.ServiceCharge,
		TotalAmount:   in.TotalAmount,
	}

	err := s.gw.Transaction(ctx, func(tx *gateway.Gateway) error {
		if err := tx.Insert(ctx, &order); err != nil {
			return err
		}
		items := make([]models.OrderItem, len(in.Items))
		for i, it := range in.Items {
			items[i] = models.OrderItem{
				OrderID:    order.ID,
				MenuItemID: it.MenuItemID,
				Name:       it.Name,
				Quantity:   it.Quantity,
				Price:      it.Price,
				Notes:      it.Notes,
			}
		}
		if err := tx.Insert(ctx, &items); err != nil {
			return err
		}
		order.OrderItems = items
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	s.cache.Invalidate(ordersPrefix(order.RestaurantID))
	utils.InfoLogger.WithFields(logrus.Fields{
		"order":      order.OrderNumber,
		"restaurant": order.RestaurantID,
		"items":      len(order.OrderItems),
	}).Info("Order created")
	return &order, nil
}

// UpdateStatus sets the order status. Transitions are not checked.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, status models.OrderStatus) (*models.Order, error) {
	if !status.Valid() {
		return nil, &ValidationError{Fields: []string{"status"}}
	}
	return s.update(ctx, id, map[string]interface{}{"status": status})
}

// UpdatePayment records the payment and completes the order.
func (s *OrderService) UpdatePayment(ctx context.Context, id, method, paymentStatus string) (*models.Order, error) {
	var c check
	c.require(method != "", "payment_method")
	c.require(validPaymentStatus(paymentStatus), "payment_status")
	if err := c.err(); err != nil {
		return nil, err
	}
	return s.update(ctx, id, map[string]interface{}{
		"payment_method": method,
		"payment_status": paymentStatus,
		"status":         models.StatusCompleted,
	})
}

func (s *OrderService) update(ctx context.Context, id string, values map[string]interface{}) (*models.Order, error) {
	var o models.Order
	if err := s.gw.Update(ctx, id, values, &o); err != nil {
		return nil, fmt.Errorf("update order %s: %w", id, err)
	}

	s.cache.Invalidate(ordersPrefix(o.RestaurantID))
	s.cache.Invalidate(orderKey(o.ID))
	utils.InfoLogger.WithFields(logrus.Fields{
		"order":  o.OrderNumber,
		"status": o.Status,
	}).Info("Order updated")
	return &o, nil
}

func validPaymentStatus(s string) bool {
	switch s {
	case models.PaymentPending, models.PaymentPaid, models.PaymentRefunded, models.PaymentFailed:
		return true
	}
	return false
}
