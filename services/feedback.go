package services

import (
	"context"
	"fmt"

	"github.com/yeremiapane/restaurant-console/analytics"
	"github.com/yeremiapane/restaurant-console/gateway"
	"github.com/yeremiapane/restaurant-console/models"
	"github.com/yeremiapane/restaurant-console/querycache"
)

const defaultRecentFeedback = 10

type CreateFeedbackInput struct {
	RestaurantID       string  `json:"restaurant_id"`
	TableID            *string `json:"table_id"`
	OrderID            *string `json:"order_id"`
	Rating             int     `json:"rating"`
	Comment            *string `json:"comment"`
	RedirectedToGoogle bool    `json:"redirected_to_google"`
}

type FeedbackService struct {
	gw    *gateway.Gateway
	cache *querycache.Cache
}

func NewFeedbackService(gw *gateway.Gateway, cache *querycache.Cache) *FeedbackService {
	return &FeedbackService{gw: gw, cache: cache}
}

func feedbackQuery(tenant string) gateway.Query {
	return gateway.Query{Resource: gateway.Feedback, Expand: []string{"Table", "Order"}}.
		Where(gateway.Eq("restaurant_id", tenant)).
		OrderBy("created_at", true)
}

// List returns all feedback for tenant, newest first.
func (s *FeedbackService) List(ctx context.Context, tenant string) ([]models.Feedback, error) {
	if tenant == "" {
		return []models.Feedback{}, nil
	}
	return querycache.Fetch(ctx, s.cache, querycache.K("feedback", tenant, allFilter), feedbackStaleTime, func(ctx context.Context) ([]models.Feedback, error) {
		out := []models.Feedback{}
		if err := s.gw.Select(ctx, feedbackQuery(tenant), &out); err != nil {
			return nil, fmt.Errorf("fetch feedback: %w", err)
		}
		return out, nil
	})
}

// Recent returns the newest limit entries. A non-positive limit means 10.
func (s *FeedbackService) Recent(ctx context.Context, tenant string, limit int) ([]models.Feedback, error) {
	if tenant == "" {
		return []models.Feedback{}, nil
	}
	if limit <= 0 {
		limit = defaultRecentFeedback
	}
	return querycache.Fetch(ctx, s.cache, recentFeedbackKey(tenant, limit), recentFeedbackStale, func(ctx context.Context) ([]models.Feedback, error) {
		out := []models.Feedback{}
		q := feedbackQuery(tenant)
		q.Limit = limit
		if err := s.gw.Select(ctx, q, &out); err != nil {
			return nil, fmt.Errorf("fetch recent feedback: %w", err)
		}
		return out, nil
	})
}

// Stats summarises ratings. An empty tenant yields nil.
func (s *FeedbackService) Stats(ctx context.Context, tenant string) (*analytics.FeedbackSummary, error) {
	if tenant == "" {
		return nil, nil
	}
	return querycache.Fetch(ctx, s.cache, feedbackStatsKey(tenant), feedbackStatsStale, func(ctx context.Context) (*analytics.FeedbackSummary, error) {
		rows := []models.Feedback{}
		q := gateway.Query{Resource: gateway.Feedback}.Where(gateway.Eq("restaurant_id", tenant))
		if err := s.gw.Select(ctx, q, &rows); err != nil {
			return nil, fmt.Errorf("fetch feedback stats: %w", err)
		}
		sum := analytics.FeedbackStats(rows)
		return &sum, nil
	})
}

func (s *FeedbackService) Create(ctx context.Context, in CreateFeedbackInput) (*models.Feedback, error) {
	var c check
	c.require(in.RestaurantID != "", "restaurant_id")
	c.require(in.Rating >= 1 && in.Rating <= 5, "rating")
	if err := c.err(); err != nil {
		return nil, err
	}

	fb := models.Feedback{
		RestaurantID:       in.RestaurantID,
		TableID:            in.TableID,
		OrderID:            in.OrderID,
		Rating:             in.Rating,
		Comment:            in.Comment,
		RedirectedToGoogle: in.RedirectedToGoogle,
	}
	if err := s.gw.Insert(ctx, &fb); err != nil {
		return nil, fmt.Errorf("create feedback: %w", err)
	}
	s.cache.Invalidate(feedbackPrefix(fb.RestaurantID))
	return &fb, nil
}
