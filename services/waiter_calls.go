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

type CreateWaiterCallInput struct {
	RestaurantID string  `json:"restaurant_id"`
	TableID      string  `json:"table_id"`
	Reason       *string `json:"reason"`
}

type WaiterCallService struct {
	gw    *gateway.Gateway
	cache *querycache.Cache
	now   func() time.Time
}

func NewWaiterCallService(gw *gateway.Gateway, cache *querycache.Cache) *WaiterCallService {
	return &WaiterCallService{gw: gw, cache: cache, now: time.Now}
}

func (s *WaiterCallService) fetch(ctx context.Context, tenant, status string) ([]models.WaiterCall, error) {
	calls := []models.WaiterCall{}
	q := gateway.Query{Resource: gateway.WaiterCalls, Expand: []string{"Table"}}.
		Where(gateway.Eq("restaurant_id", tenant)).
		OrderBy("created_at", true)
	if status != "" && status != allFilter {
		q = q.Where(gateway.Eq("status", status))
	}
	if err := s.gw.Select(ctx, q, &calls); err != nil {
		return nil, fmt.Errorf("fetch waiter calls: %w", err)
	}
	return calls, nil
}

// Watch opens a live list of the tenant's waiter calls, newest first,
// optionally narrowed to one status.
func (s *WaiterCallService) Watch(tenant, status string) *LiveQuery[[]models.WaiterCall] {
	return newLiveQuery(s.gw, s.cache, tenant, liveConfig[[]models.WaiterCall]{
		channel: func(t string) string { return "waiter-calls-" + t },
		bindings: func(t string) []gateway.Binding {
			return []gateway.Binding{
				{Schema: "public", Table: gateway.WaiterCalls, Event: "*", Filter: "restaurant_id=eq." + t},
			}
		},
		prefix:    waiterCallsPrefix,
		key:       func(t string) querycache.Key { return waiterCallsKey(t, status) },
		staleTime: waiterCallsStaleTime,
		empty:     func() []models.WaiterCall { return []models.WaiterCall{} },
		fetch: func(ctx context.Context, t string) ([]models.WaiterCall, error) {
			return s.fetch(ctx, t, status)
		},
	})
}

func (s *WaiterCallService) List(ctx context.Context, tenant, status string) ([]models.WaiterCall, error) {
	if tenant == "" {
		return []models.WaiterCall{}, nil
	}
	return querycache.Fetch(ctx, s.cache, waiterCallsKey(tenant, status), waiterCallsStaleTime, func(ctx context.Context) ([]models.WaiterCall, error) {
		return s.fetch(ctx, tenant, status)
	})
}

// Pending lists calls nobody has acknowledged yet.
func (s *WaiterCallService) Pending(ctx context.Context, tenant string) ([]models.WaiterCall, error) {
	return s.List(ctx, tenant, models.CallPending)
}

func (s *WaiterCallService) Create(ctx context.Context, in CreateWaiterCallInput) (*models.WaiterCall, error) {
	var c check
	c.require(in.RestaurantID != "", "restaurant_id")
	c.require(in.TableID != "", "table_id")
	if err := c.err(); err != nil {
		return nil, err
	}

	call := models.WaiterCall{
		RestaurantID: in.RestaurantID,
		TableID:      in.TableID,
		Status:       models.CallPending,
		Reason:       in.Reason,
	}
	if err := s.gw.Insert(ctx, &call); err != nil {
		return nil, fmt.Errorf("create waiter call: %w", err)
	}

	s.cache.Invalidate(waiterCallsPrefix(call.RestaurantID))
	utils.InfoLogger.WithFields(logrus.Fields{
		"restaurant": call.RestaurantID,
		"table":      call.TableID,
	}).Info("Waiter called")
	return &call, nil
}

func (s *WaiterCallService) Get(ctx context.Context, id string) (*models.WaiterCall, error) {
	var call models.WaiterCall
	if err := s.gw.First(ctx, gateway.Query{Resource: gateway.WaiterCalls}.Where(gateway.Eq("id", id)), &call); err != nil {
		return nil, err
	}
	return &call, nil
}

// Acknowledge records that userID is handling the call.
func (s *WaiterCallService) Acknowledge(ctx context.Context, id, userID string) (*models.WaiterCall, error) {
	return s.update(ctx, id, map[string]interface{}{
		"status":       models.CallAcknowledged,
		"responded_by": userID,
		"responded_at": s.now().UTC(),
	})
}

func (s *WaiterCallService) Resolve(ctx context.Context, id string) (*models.WaiterCall, error) {
	return s.update(ctx, id, map[string]interface{}{
		"status":       models.CallResolved,
		"responded_at": s.now().UTC(),
	})
}

func (s *WaiterCallService) update(ctx context.Context, id string, values map[string]interface{}) (*models.WaiterCall, error) {
	var call models.WaiterCall
	if err := s.gw.Update(ctx, id, values, &call); err != nil {
		return nil, fmt.Errorf("update waiter call %s: %w", id, err)
	}
	s.cache.Invalidate(waiterCallsPrefix(call.RestaurantID))
	utils.InfoLogger.WithFields(logrus.Fields{
		"call":   call.ID,
		"status": call.Status,
	}).Info("Waiter call updated")
	return &call, nil
}
