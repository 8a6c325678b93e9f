package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/yeremiapane/restaurant-console/gateway"
	"github.com/yeremiapane/restaurant-console/models"
	"github.com/yeremiapane/restaurant-console/querycache"
	"github.com/yeremiapane/restaurant-console/utils"
)

var slugInvalid = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases name and joins its words with hyphens.
func Slugify(name string) string {
	return strings.Trim(slugInvalid.ReplaceAllString(strings.ToLower(name), "-"), "-")
}

type RestaurantInput struct {
	Name             string  `json:"name"`
	Slug             string  `json:"slug"`
	SubscriptionTier string  `json:"subscription_tier"`
	IsActive         *bool   `json:"is_active"`
	CurrencySymbol   string  `json:"currency_symbol"`
	PrimaryColor     *string `json:"primary_color"`
	GoogleReviewURL  *string `json:"google_review_url"`
}

type RestaurantService struct {
	gw    *gateway.Gateway
	cache *querycache.Cache
}

func NewRestaurantService(gw *gateway.Gateway, cache *querycache.Cache) *RestaurantService {
	return &RestaurantService{gw: gw, cache: cache}
}

func (s *RestaurantService) Get(ctx context.Context, id string) (*models.Restaurant, error) {
	if id == "" {
		return nil, nil
	}
	return s.first(ctx, restaurantKey(id), gateway.Eq("id", id))
}

func (s *RestaurantService) BySlug(ctx context.Context, slug string) (*models.Restaurant, error) {
	if slug == "" {
		return nil, nil
	}
	return s.first(ctx, restaurantSlugKey(slug), gateway.Eq("slug", slug))
}

func (s *RestaurantService) first(ctx context.Context, key querycache.Key, f gateway.Filter) (*models.Restaurant, error) {
	return querycache.Fetch(ctx, s.cache, key, restaurantsStaleTime, func(ctx context.Context) (*models.Restaurant, error) {
		var r models.Restaurant
		if err := s.gw.First(ctx, gateway.Query{Resource: gateway.Restaurants}.Where(f), &r); err != nil {
			return nil, err
		}
		return &r, nil
	})
}

// List returns every tenant ordered by name.
func (s *RestaurantService) List(ctx context.Context) ([]models.Restaurant, error) {
	return querycache.Fetch(ctx, s.cache, restaurantsKey(), restaurantsStaleTime, func(ctx context.Context) ([]models.Restaurant, error) {
		out := []models.Restaurant{}
		if err := s.gw.Select(ctx, gateway.Query{Resource: gateway.Restaurants}.OrderBy("name", false), &out); err != nil {
			return nil, fmt.Errorf("fetch restaurants: %w", err)
		}
		return out, nil
	})
}

func (s *RestaurantService) Create(ctx context.Context, in RestaurantInput) (*models.Restaurant, error) {
	if in.Slug == "" {
		in.Slug = Slugify(in.Name)
	}
	if in.SubscriptionTier == "" {
		in.SubscriptionTier = models.TierFree
	}
	var c check
	c.require(in.Name != "", "name")
	c.require(in.Slug != "", "slug")
	c.require(validTier(in.SubscriptionTier), "subscription_tier")
	if err := c.err(); err != nil {
		return nil, err
	}

	r := models.Restaurant{
		Name:             in.Name,
		Slug:             in.Slug,
		SubscriptionTier: in.SubscriptionTier,
		IsActive:         boolOr(in.IsActive, true),
		CurrencySymbol:   in.CurrencySymbol,
		PrimaryColor:     in.PrimaryColor,
		GoogleReviewURL:  in.GoogleReviewURL,
	}
	if err := s.gw.Insert(ctx, &r); err != nil {
		return nil, fmt.Errorf("create restaurant: %w", err)
	}
	s.invalidate()
	utils.InfoLogger.Printf("Restaurant %s created (tier=%s)", r.Slug, r.SubscriptionTier)
	return &r, nil
}

// Update applies the set fields of in.
func (s *RestaurantService) Update(ctx context.Context, id string, in RestaurantInput) (*models.Restaurant, error) {
	values := map[string]interface{}{}
	if in.Name != "" {
		values["name"] = in.Name
	}
	if in.Slug != "" {
		values["slug"] = in.Slug
	}
	if in.SubscriptionTier != "" {
		if !validTier(in.SubscriptionTier) {
			return nil, &ValidationError{Fields: []string{"subscription_tier"}}
		}
		values["subscription_tier"] = in.SubscriptionTier
	}
	if in.IsActive != nil {
		values["is_active"] = *in.IsActive
	}
	if in.CurrencySymbol != "" {
		values["currency_symbol"] = in.CurrencySymbol
	}
	if in.PrimaryColor != nil {
		values["primary_color"] = *in.PrimaryColor
	}
	if in.GoogleReviewURL != nil {
		values["google_review_url"] = *in.GoogleReviewURL
	}
	if len(values) == 0 {
		return nil, &ValidationError{Fields: []string{"updates"}}
	}
	return s.update(ctx, id, values)
}

func (s *RestaurantService) update(ctx context.Context, id string, values map[string]interface{}) (*models.Restaurant, error) {
	var r models.Restaurant
	if err := s.gw.Update(ctx, id, values, &r); err != nil {
		return nil, fmt.Errorf("update restaurant %s: %w", id, err)
	}
	s.invalidate()
	return &r, nil
}

func (s *RestaurantService) invalidate() {
	s.cache.Invalidate(querycache.K("restaurant"))
	s.cache.Invalidate(restaurantsKey())
}

func validTier(t string) bool {
	switch t {
	case models.TierFree, models.TierPro, models.TierEnterprise:
		return true
	}
	return false
}
