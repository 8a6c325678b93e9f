package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/yeremiapane/restaurant-console/models"
	"github.com/yeremiapane/restaurant-console/utils"
)

// FileStore persists uploaded files and returns their public URL.
type FileStore interface {
	Upload(ctx context.Context, name string, r io.Reader, size int64, overwrite bool) (string, error)
}

var logoExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
	".svg":  true,
}

// BrandingService manages tenant logos and colours.
type BrandingService struct {
	store       FileStore
	restaurants *RestaurantService
}

func NewBrandingService(store FileStore, restaurants *RestaurantService) *BrandingService {
	return &BrandingService{store: store, restaurants: restaurants}
}

// UploadLogo stores the logo, replacing any earlier one, and points the
// tenant's logo_url at it.
func (s *BrandingService) UploadLogo(ctx context.Context, restaurantID, filename string, r io.Reader, size int64) (*models.Restaurant, error) {
	ext := strings.ToLower(path.Ext(filename))
	var c check
	c.require(restaurantID != "", "restaurant_id")
	c.require(logoExtensions[ext], "file")
	if err := c.err(); err != nil {
		return nil, err
	}

	url, err := s.store.Upload(ctx, path.Join("branding", restaurantID, "logo"+ext), r, size, true)
	if err != nil {
		return nil, fmt.Errorf("upload logo: %w", err)
	}

	rest, err := s.restaurants.update(ctx, restaurantID, map[string]interface{}{"logo_url": url})
	if err != nil {
		return nil, err
	}
	utils.InfoLogger.Printf("Logo updated for restaurant %s", restaurantID)
	return rest, nil
}

// SetColor updates the tenant's primary colour.
func (s *BrandingService) SetColor(ctx context.Context, restaurantID, color string) (*models.Restaurant, error) {
	if !validHexColor(color) {
		return nil, &ValidationError{Fields: []string{"primary_color"}}
	}
	return s.restaurants.update(ctx, restaurantID, map[string]interface{}{"primary_color": color})
}

func validHexColor(c string) bool {
	if len(c) != 7 || c[0] != '#' {
		return false
	}
	for _, r := range c[1:] {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return false
		}
	}
	return true
}
