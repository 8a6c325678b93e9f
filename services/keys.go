package services

import (
	"strconv"
	"strings"
	"time"

	"github.com/yeremiapane/restaurant-console/models"
	"github.com/yeremiapane/restaurant-console/querycache"
)

// Stale times per resource.
const (
	ordersStaleTime      = 30 * time.Second
	waiterCallsStaleTime = 30 * time.Second
	tablesStaleTime      = 2 * time.Minute
	menuItemsStaleTime   = 2 * time.Minute
	categoriesStaleTime  = 5 * time.Minute
	feedbackStaleTime    = 2 * time.Minute
	feedbackStatsStale   = 5 * time.Minute
	recentFeedbackStale  = time.Minute
	restaurantsStaleTime = 5 * time.Minute
)

const allFilter = "all"

func ordersPrefix(tenant string) querycache.Key {
	return querycache.K("orders", tenant)
}

func ordersKey(tenant string, statuses []models.OrderStatus) querycache.Key {
	if len(statuses) == 0 {
		return querycache.K("orders", tenant, allFilter)
	}
	parts := make([]string, len(statuses))
	for i, s := range statuses {
		parts[i] = string(s)
	}
	return querycache.K("orders", tenant, strings.Join(parts, ","))
}

func todayOrdersKey(tenant string, day time.Time) querycache.Key {
	return querycache.K("orders", tenant, "today", day.Format("2006-01-02"))
}

func orderKey(id string) querycache.Key {
	return querycache.K("order", id)
}

func tablesPrefix(tenant string) querycache.Key {
	return querycache.K("tables", tenant)
}

func tableKey(id string) querycache.Key {
	return querycache.K("table", id)
}

func waiterCallsPrefix(tenant string) querycache.Key {
	return querycache.K("waiter_calls", tenant)
}

func waiterCallsKey(tenant, status string) querycache.Key {
	if status == "" {
		status = allFilter
	}
	return querycache.K("waiter_calls", tenant, status)
}

func menuItemsKey(tenant string) querycache.Key {
	return querycache.K("menu_items", tenant)
}

func categoriesKey(tenant string) querycache.Key {
	return querycache.K("categories", tenant)
}

func feedbackPrefix(tenant string) querycache.Key {
	return querycache.K("feedback", tenant)
}

func feedbackStatsKey(tenant string) querycache.Key {
	return querycache.K("feedback", tenant, "stats")
}

func recentFeedbackKey(tenant string, limit int) querycache.Key {
	return querycache.K("feedback", tenant, "recent", strconv.Itoa(limit))
}

func restaurantKey(id string) querycache.Key {
	return querycache.K("restaurant", id)
}

func restaurantSlugKey(slug string) querycache.Key {
	return querycache.K("restaurant", "slug", slug)
}

func restaurantsKey() querycache.Key {
	return querycache.K("restaurants")
}

// scoped returns the resource key narrowed to tenant when one is known.
func scoped(resource, tenant string) querycache.Key {
	if tenant == "" {
		return querycache.K(resource)
	}
	return querycache.K(resource, tenant)
}
