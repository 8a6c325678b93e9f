package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/restaurant-console/gateway"
	"github.com/yeremiapane/restaurant-console/models"
	"github.com/yeremiapane/restaurant-console/querycache"
	"github.com/yeremiapane/restaurant-console/utils"
)

type MenuItemInput struct {
	RestaurantID    string   `json:"restaurant_id"`
	CategoryID      *string  `json:"category_id"`
	Name            string   `json:"name"`
	Description     *string  `json:"description"`
	Price           *float64 `json:"price"`
	ImageURL        *string  `json:"image_url"`
	IsAvailable     *bool    `json:"is_available"`
	IsVegetarian    *bool    `json:"is_vegetarian"`
	IsVegan         *bool    `json:"is_vegan"`
	IsPopular       *bool    `json:"is_popular"`
	SpicyLevel      *int     `json:"spicy_level"`
	PrepTimeMinutes *int     `json:"prep_time_minutes"`
	DisplayOrder    *int     `json:"display_order"`
}

// updates returns the columns set in the input.
func (in MenuItemInput) updates() map[string]interface{} {
	v := map[string]interface{}{}
	if in.CategoryID != nil {
		v["category_id"] = *in.CategoryID
	}
	if in.Name != "" {
		v["name"] = in.Name
	}
	if in.Description != nil {
		v["description"] = *in.Description
	}
	if in.Price != nil {
		v["price"] = *in.Price
	}
	if in.ImageURL != nil {
		v["image_url"] = *in.ImageURL
	}
	if in.IsAvailable != nil {
		v["is_available"] = *in.IsAvailable
	}
	if in.IsVegetarian != nil {
		v["is_vegetarian"] = *in.IsVegetarian
	}
	if in.IsVegan != nil {
		v["is_vegan"] = *in.IsVegan
	}
	if in.IsPopular != nil {
		v["is_popular"] = *in.IsPopular
	}
	if in.SpicyLevel != nil {
		v["spicy_level"] = *in.SpicyLevel
	}
	if in.PrepTimeMinutes != nil {
		v["prep_time_minutes"] = *in.PrepTimeMinutes
	}
	if in.DisplayOrder != nil {
		v["display_order"] = *in.DisplayOrder
	}
	return v
}

type CategoryInput struct {
	RestaurantID string `json:"restaurant_id"`
	Name         string `json:"name"`
	DisplayOrder int    `json:"display_order"`
}

type MenuService struct {
	gw    *gateway.Gateway
	cache *querycache.Cache
}

func NewMenuService(gw *gateway.Gateway, cache *querycache.Cache) *MenuService {
	return &MenuService{gw: gw, cache: cache}
}

// Items lists the tenant's menu items by display order with their category.
func (s *MenuService) Items(ctx context.Context, tenant string) ([]models.MenuItem, error) {
	if tenant == "" {
		return []models.MenuItem{}, nil
	}
	return querycache.Fetch(ctx, s.cache, menuItemsKey(tenant), menuItemsStaleTime, func(ctx context.Context) ([]models.MenuItem, error) {
		items := []models.MenuItem{}
		q := gateway.Query{Resource: gateway.MenuItems, Expand: []string{"Category"}}.
			Where(gateway.Eq("restaurant_id", tenant)).
			OrderBy("display_order", false)
		if err := s.gw.Select(ctx, q, &items); err != nil {
			return nil, fmt.Errorf("fetch menu items: %w", err)
		}
		return items, nil
	})
}

// Categories lists the tenant's active categories by display order.
func (s *MenuService) Categories(ctx context.Context, tenant string) ([]models.Category, error) {
	if tenant == "" {
		return []models.Category{}, nil
	}
	return querycache.Fetch(ctx, s.cache, categoriesKey(tenant), categoriesStaleTime, func(ctx context.Context) ([]models.Category, error) {
		cats := []models.Category{}
		q := gateway.Query{Resource: gateway.Categories}.
			Where(gateway.Eq("restaurant_id", tenant), gateway.Eq("is_active", true)).
			OrderBy("display_order", false)
		if err := s.gw.Select(ctx, q, &cats); err != nil {
			return nil, fmt.Errorf("fetch categories: %w", err)
		}
		return cats, nil
	})
}

func (s *MenuService) CreateCategory(ctx context.Context, in CategoryInput) (*models.Category, error) {
	var c check
	c.require(in.RestaurantID != "", "restaurant_id")
	c.require(in.Name != "", "name")
	if err := c.err(); err != nil {
		return nil, err
	}
	cat := models.Category{
		RestaurantID: in.RestaurantID,
		Name:         in.Name,
		DisplayOrder: in.DisplayOrder,
		IsActive:     true,
	}
	if err := s.gw.Insert(ctx, &cat); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	s.cache.Invalidate(categoriesKey(cat.RestaurantID))
	return &cat, nil
}

func (s *MenuService) CreateItem(ctx context.Context, in MenuItemInput) (*models.MenuItem, error) {
	var c check
	c.require(in.RestaurantID != "", "restaurant_id")
	c.require(in.Name != "", "name")
	c.require(in.Price != nil && *in.Price >= 0, "price")
	if err := c.err(); err != nil {
		return nil, err
	}

	item := models.MenuItem{
		RestaurantID:    in.RestaurantID,
		CategoryID:      in.CategoryID,
		Name:            in.Name,
		Description:     in.Description,
		Price:           *in.Price,
		ImageURL:        in.ImageURL,
		IsAvailable:     boolOr(in.IsAvailable, true),
		IsVegetarian:    boolOr(in.IsVegetarian, false),
		IsVegan:         boolOr(in.IsVegan, false),
		IsPopular:       boolOr(in.IsPopular, false),
		SpicyLevel:      in.SpicyLevel,
		PrepTimeMinutes: in.PrepTimeMinutes,
	}
	if in.DisplayOrder != nil {
		item.DisplayOrder = *in.DisplayOrder
	}
	if err := s.gw.Insert(ctx, &item); err != nil {
		return nil, fmt.Errorf("create menu item: %w", err)
	}

	s.cache.Invalidate(menuItemsKey(item.RestaurantID))
	utils.InfoLogger.WithFields(logrus.Fields{
		"item":       item.Name,
		"restaurant": item.RestaurantID,
	}).Info("Menu item created")
	return &item, nil
}

func (s *MenuService) UpdateItem(ctx context.Context, id string, in MenuItemInput) (*models.MenuItem, error) {
	values := in.updates()
	if len(values) == 0 {
		return nil, &ValidationError{Fields: []string{"updates"}}
	}
	if in.Price != nil && *in.Price < 0 {
		return nil, &ValidationError{Fields: []string{"price"}}
	}
	return s.updateItem(ctx, id, values)
}

func (s *MenuService) ToggleAvailability(ctx context.Context, id string, available bool) (*models.MenuItem, error) {
	return s.updateItem(ctx, id, map[string]interface{}{"is_available": available})
}

func (s *MenuService) updateItem(ctx context.Context, id string, values map[string]interface{}) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := s.gw.Update(ctx, id, values, &item); err != nil {
		return nil, fmt.Errorf("update menu item %s: %w", id, err)
	}
	s.cache.Invalidate(menuItemsKey(item.RestaurantID))
	return &item, nil
}

func (s *MenuService) DeleteItem(ctx context.Context, id string) error {
	var item models.MenuItem
	if err := s.gw.Delete(ctx, id, &item); err != nil {
		return fmt.Errorf("delete menu item %s: %w", id, err)
	}
	s.cache.Invalidate(menuItemsKey(item.RestaurantID))
	utils.InfoLogger.Printf("Menu item %s deleted", item.Name)
	return nil
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}
