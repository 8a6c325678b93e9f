package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/yeremiapane/restaurant-console/analytics"
	"github.com/yeremiapane/restaurant-console/gateway"
	"github.com/yeremiapane/restaurant-console/models"
	"github.com/yeremiapane/restaurant-console/querycache"
)

// AnalyticsService recomputes dashboards from freshly fetched rows on each
// request.
type AnalyticsService struct {
	gw          *gateway.Gateway
	cache       *querycache.Cache
	restaurants *RestaurantService
	loc         *time.Location
	now         func() time.Time
}

func NewAnalyticsService(gw *gateway.Gateway, cache *querycache.Cache, restaurants *RestaurantService, loc *time.Location) *AnalyticsService {
	if loc == nil {
		loc = time.Local
	}
	return &AnalyticsService{gw: gw, cache: cache, restaurants: restaurants, loc: loc, now: time.Now}
}

// ordersSince fetches every order of tenant created on or after the start
// of the day days-1 days ago.
func (s *AnalyticsService) ordersSince(ctx context.Context, tenant string, days int) ([]models.Order, time.Time, error) {
	now := s.now().In(s.loc)
	if days <= 0 {
		days = analytics.DefaultDays
	}
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc).AddDate(0, 0, -(days - 1))

	key := querycache.K("orders", tenant, "since", start.Format(time.DateOnly))
	orders, err := querycache.Fetch(ctx, s.cache, key, ordersStaleTime, func(ctx context.Context) ([]models.Order, error) {
		out := []models.Order{}
		q := gateway.Query{Resource: gateway.Orders}.
			Where(gateway.Eq("restaurant_id", tenant), gateway.Gte("created_at", start))
		if err := s.gw.Select(ctx, q, &out); err != nil {
			return nil, fmt.Errorf("fetch orders for analytics: %w", err)
		}
		return out, nil
	})
	return orders, now, err
}

func (s *AnalyticsService) RevenueTrends(ctx context.Context, tenant string, days int) ([]analytics.DayRevenue, error) {
	if tenant == "" {
		return []analytics.DayRevenue{}, nil
	}
	orders, now, err := s.ordersSince(ctx, tenant, days)
	if err != nil {
		return nil, err
	}
	return analytics.RevenueTrends(orders, days, now, s.loc), nil
}

func (s *AnalyticsService) RevenueSeries(ctx context.Context, tenant string, days int) ([]analytics.SeriesPoint, error) {
	if tenant == "" {
		return []analytics.SeriesPoint{}, nil
	}
	orders, now, err := s.ordersSince(ctx, tenant, days)
	if err != nil {
		return nil, err
	}
	return analytics.RevenueSeries(orders, days, now, s.loc), nil
}

// RevenueChart renders the tenant's revenue series as PNG.
func (s *AnalyticsService) RevenueChart(ctx context.Context, tenant string, days int) ([]byte, error) {
	if tenant == "" {
		return nil, &ValidationError{Fields: []string{"restaurant_id"}}
	}
	r, err := s.restaurants.Get(ctx, tenant)
	if err != nil {
		return nil, err
	}
	points, err := s.RevenueSeries(ctx, tenant, days)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := analytics.RenderRevenueChart(&buf, "Revenue Trend", r.CurrencySymbol, points); err != nil {
		return nil, fmt.Errorf("render revenue chart: %w", err)
	}
	return buf.Bytes(), nil
}

type PlatformOverview struct {
	Stats   analytics.TenantSummary `json:"stats"`
	Monthly []analytics.MonthPoint  `json:"monthly"`
}

// Platform summarises all tenants for the super admin dashboard.
func (s *AnalyticsService) Platform(ctx context.Context, months int) (*PlatformOverview, error) {
	rs, err := s.restaurants.List(ctx)
	if err != nil {
		return nil, err
	}
	return &PlatformOverview{
		Stats:   analytics.TenantStats(rs),
		Monthly: analytics.MonthlyTrend(rs, months, s.now(), s.loc),
	}, nil
}
