package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-console/config"
	"github.com/yeremiapane/restaurant-console/database"
	"github.com/yeremiapane/restaurant-console/gateway"
	"github.com/yeremiapane/restaurant-console/querycache"
	"github.com/yeremiapane/restaurant-console/realtime"
	"github.com/yeremiapane/restaurant-console/router"
	"github.com/yeremiapane/restaurant-console/services"
	"github.com/yeremiapane/restaurant-console/storage"
	"github.com/yeremiapane/restaurant-console/utils"
	"gorm.io/gorm"
)

// app holds the wired service graph.
type app struct {
	services    router.Services
	cache       *querycache.Cache
	invalidator *services.CacheInvalidator
}

func newApp(cfg *config.Config, db *gorm.DB, hub *realtime.Hub) *app {
	gw := gateway.New(db, hub)
	cache := querycache.New()
	store := storage.NewLocal(cfg.UploadDir, cfg.PublicBaseURL+"/uploads")

	restaurants := services.NewRestaurantService(gw, cache)
	return &app{
		cache:       cache,
		invalidator: services.NewCacheInvalidator(cache).Attach(hub),
		services: router.Services{
			Orders:      services.NewOrderService(gw, cache, cfg.Location),
			Kitchen:     services.NewKitchenService(gw, cache),
			WaiterCalls: services.NewWaiterCallService(gw, cache),
			Tables:      services.NewTableService(gw, cache),
			Menu:        services.NewMenuService(gw, cache),
			Feedback:    services.NewFeedbackService(gw, cache),
			Restaurants: restaurants,
			Analytics:   services.NewAnalyticsService(gw, cache, restaurants, cfg.Location),
			Exports:     services.NewExportService(gw, cfg.Location),
			Branding:    services.NewBrandingService(store, restaurants),
			Staff:       services.NewStaffService(db),
		},
	}
}

func (a *app) close() {
	a.invalidator.Detach()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to load config: %v", err)
	}
	if cfg.GinMode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := utils.SetLogLevel(cfg.LogLevel); err != nil {
		utils.ErrorLogger.Printf("Ignoring LOG_LEVEL: %v", err)
	}
	utils.SetJWTSecret(cfg.JWTSecret)

	db, err := database.Open(cfg.Database)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")

	hub := realtime.NewHub()
	if cfg.NATSURL != "" {
		bridge, err := realtime.ConnectNATS(cfg.NATSURL, hub)
		if err != nil {
			utils.ErrorLogger.Printf("NATS bridge disabled: %v", err)
		} else {
			defer bridge.Close()
			utils.InfoLogger.Printf("Sharing change events over NATS at %s", cfg.NATSURL)
		}
	}

	a := newApp(cfg, db, hub)
	defer a.close()

	if cfg.SuperAdminEmail != "" && cfg.SuperAdminPassword != "" {
		if err := a.services.Staff.EnsureSuperAdmin(context.Background(), cfg.SuperAdminEmail, cfg.SuperAdminPassword); err != nil {
			utils.ErrorLogger.Fatalf("Failed to create super admin: %v", err)
		}
	}

	monitor := services.NewChangeMonitor(db, hub, cfg.ChangePollInterval)
	monitor.Start()
	defer monitor.Stop()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.SetupRouter(cfg, hub, a.services),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		utils.InfoLogger.Printf("Listening on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.ErrorLogger.Fatal(err)
		}
	}()

	<-ctx.Done()
	utils.InfoLogger.Println("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.ErrorLogger.Printf("Server shutdown failed: %v", err)
	}
}
