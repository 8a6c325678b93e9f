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

// KitchenService moves orders through preparation. Each action is a single
// update; concurrent actions on one order resolve as last write wins.
type KitchenService struct {
	gw    *gateway.Gateway
	cache *querycache.Cache
	now   func() time.Time
}

func NewKitchenService(gw *gateway.Gateway, cache *querycache.Cache) *KitchenService {
	return &KitchenService{gw: gw, cache: cache, now: time.Now}
}

func (s *KitchenService) StartPreparing(ctx context.Context, orderID string) (*models.Order, error) {
	return s.apply(ctx, orderID, map[string]interface{}{
		"status":               models.StatusPreparing,
		"started_preparing_at": s.now().UTC(),
	})
}

func (s *KitchenService) MarkReady(ctx context.Context, orderID string) (*models.Order, error) {
	return s.apply(ctx, orderID, map[string]interface{}{
		"status":   models.StatusReady,
		"ready_at": s.now().UTC(),
	})
}

func (s *KitchenService) MarkServed(ctx context.Context, orderID string) (*models.Order, error) {
	return s.apply(ctx, orderID, map[string]interface{}{
		"status": models.StatusServed,
	})
}

func (s *KitchenService) apply(ctx context.Context, orderID string, values map[string]interface{}) (*models.Order, error) {
	var o models.Order
	if err := s.gw.Update(ctx, orderID, values, &o); err != nil {
		return nil, fmt.Errorf("kitchen update %s: %w", orderID, err)
	}

	s.cache.Invalidate(ordersPrefix(o.RestaurantID))
	s.cache.Invalidate(orderKey(orderID))
	utils.InfoLogger.WithFields(logrus.Fields{
		"order":  o.OrderNumber,
		"status": o.Status,
	}).Info("Kitchen status change")
	return &o, nil
}
