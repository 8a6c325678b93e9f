package controllers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-console/database"
	"github.com/yeremiapane/restaurant-console/gateway"
	"github.com/yeremiapane/restaurant-console/middlewares"
	"github.com/yeremiapane/restaurant-console/models"
	"github.com/yeremiapane/restaurant-console/querycache"
	"github.com/yeremiapane/restaurant-console/realtime"
	"github.com/yeremiapane/restaurant-console/services"
	"github.com/yeremiapane/restaurant-console/storage"
	"github.com/yeremiapane/restaurant-console/utils"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
	utils.InitLogger()
	utils.SetJWTSecret("controller-test-secret")
}

type testApp struct {
	db          *gorm.DB
	hub         *realtime.Hub
	monitor     *services.ChangeMonitor
	orders      *services.OrderService
	kitchen     *services.KitchenService
	calls       *services.WaiterCallService
	tables      *services.TableService
	menu        *services.MenuService
	feedback    *services.FeedbackService
	restaurants *services.RestaurantService
	analytics   *services.AnalyticsService
	exports     *services.ExportService
	branding    *services.BrandingService
	staff       *services.StaffService
	uploadDir   string
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	db, err := database.OpenInMemory()
	require.NoError(t, err)

	hub := realtime.NewHub()
	gw := gateway.New(db, hub)
	cache := querycache.New()
	inv := services.NewCacheInvalidator(cache).Attach(hub)
	t.Cleanup(inv.Detach)

	dir := t.TempDir()
	restaurants := services.NewRestaurantService(gw, cache)
	return &testApp{
		db:          db,
		hub:         hub,
		monitor:     services.NewChangeMonitor(db, hub, time.Second),
		orders:      services.NewOrderService(gw, cache, time.UTC),
		kitchen:     services.NewKitchenService(gw, cache),
		calls:       services.NewWaiterCallService(gw, cache),
		tables:      services.NewTableService(gw, cache),
		menu:        services.NewMenuService(gw, cache),
		feedback:    services.NewFeedbackService(gw, cache),
		restaurants: restaurants,
		analytics:   services.NewAnalyticsService(gw, cache, restaurants, time.UTC),
		exports:     services.NewExportService(gw, time.UTC),
		branding:    services.NewBrandingService(storage.NewLocal(dir, "http://localhost/uploads"), restaurants),
		staff:       services.NewStaffService(db),
		uploadDir:   dir,
	}
}

func (a *testApp) restaurant(t *testing.T, slug string) models.Restaurant {
	t.Helper()
	r := models.Restaurant{Name: slug, Slug: slug, SubscriptionTier: models.TierPro, IsActive: true}
	require.NoError(t, a.db.Create(&r).Error)
	return r
}

// as injects the identity the auth middleware would set from a token.
func as(userID, role, restaurantID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middlewares.CtxUserID, userID)
		c.Set(middlewares.CtxRole, role)
		c.Set(middlewares.CtxRestaurantID, restaurantID)
		c.Next()
	}
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doJSON(t *testing.T, r http.Handler, method, target string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if w.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

func doRequest(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
