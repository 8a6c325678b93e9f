package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-console/config"
	"github.com/yeremiapane/restaurant-console/controllers"
	"github.com/yeremiapane/restaurant-console/middlewares"
	"github.com/yeremiapane/restaurant-console/models"
	"github.com/yeremiapane/restaurant-console/realtime"
	"github.com/yeremiapane/restaurant-console/services"
)

// Services bundles everything the HTTP layer calls into.
type Services struct {
	Orders      *services.OrderService
	Kitchen     *services.KitchenService
	WaiterCalls *services.WaiterCallService
	Tables      *services.TableService
	Menu        *services.MenuService
	Feedback    *services.FeedbackService
	Restaurants *services.RestaurantService
	Analytics   *services.AnalyticsService
	Exports     *services.ExportService
	Branding    *services.BrandingService
	Staff       *services.StaffService
}

func SetupRouter(cfg *config.Config, hub *realtime.Hub, svc Services) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares(cfg.CORSOrigins))
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.NewRateLimiter(cfg.RateLimitPerSecond).RateLimit())

	uploads := r.Group("/uploads", middlewares.UploadsFilter(".jpg", ".jpeg", ".png", ".webp", ".svg"))
	uploads.Static("/", cfg.UploadDir)

	userCtrl := controllers.NewUserController(svc.Staff)
	orderCtrl := controllers.NewOrderController(svc.Orders)
	kitchenCtrl := controllers.NewKitchenController(svc.Kitchen, svc.Orders)
	callCtrl := controllers.NewWaiterCallController(svc.WaiterCalls)
	tableCtrl := controllers.NewTableController(svc.Tables, cfg.PublicBaseURL)
	menuCtrl := controllers.NewMenuController(svc.Menu)
	feedbackCtrl := controllers.NewFeedbackController(svc.Feedback)
	restaurantCtrl := controllers.NewRestaurantController(svc.Restaurants)
	adminCtrl := controllers.NewAdminController(svc.Analytics, svc.Exports, cfg.Location)
	brandingCtrl := controllers.NewBrandingController(svc.Branding)
	realtimeCtrl := controllers.NewRealtimeController(hub, svc.Orders)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	r.POST("/login", middlewares.NewStrictRateLimiter().RateLimit(), userCtrl.Login)

	// customer menu, ordering and feedback; tenant via ?restaurant_id= or body
	public := r.Group("/public")
	{
		public.GET("/restaurants/:slug", restaurantCtrl.GetRestaurantBySlug)
		public.GET("/menu-items", menuCtrl.GetMenuItems)
		public.GET("/categories", menuCtrl.GetCategories)
		public.GET("/tables/number/:number", tableCtrl.GetTableByNumber)
		public.POST("/orders", orderCtrl.CreateOrder)
		public.GET("/orders/:order_id", orderCtrl.TrackOrder)
		public.POST("/waiter-calls", callCtrl.CreateWaiterCall)
		public.POST("/feedback", feedbackCtrl.CreateFeedback)
	}

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/api")
	auth.Use(middlewares.AuthMiddleware())

	auth.GET("/profile", userCtrl.GetProfile)
	auth.POST("/logout", userCtrl.Logout)
	auth.GET("/restaurant", restaurantCtrl.GetCurrentRestaurant)

	// ORDERS
	auth.GET("/orders", orderCtrl.GetAllOrders)
	auth.GET("/orders/today", orderCtrl.GetTodayOrders)
	auth.GET("/orders/:order_id", orderCtrl.GetOrderByID)
	auth.POST("/orders", middlewares.RequireRoles(models.RoleAdmin, models.RoleWaiter), orderCtrl.CreateOrder)
	auth.PATCH("/orders/:order_id/status", middlewares.RequireRoles(models.RoleAdmin, models.RoleWaiter, models.RoleKitchen), orderCtrl.UpdateOrderStatus)
	auth.PATCH("/orders/:order_id/payment", middlewares.RequireRoles(models.RoleAdmin, models.RoleBilling), orderCtrl.UpdatePayment)

	// KITCHEN
	kitchen := auth.Group("/kitchen", middlewares.RequireRoles(models.RoleAdmin, models.RoleKitchen))
	{
		kitchen.GET("/display", kitchenCtrl.GetKitchenDisplay)
		kitchen.POST("/orders/:order_id/start", kitchenCtrl.StartPreparing)
		kitchen.POST("/orders/:order_id/ready", kitchenCtrl.MarkReady)
		kitchen.POST("/orders/:order_id/served", kitchenCtrl.MarkServed)
	}
	auth.POST("/orders/:order_id/served", middlewares.RequireRoles(models.RoleAdmin, models.RoleWaiter), kitchenCtrl.MarkServed)

	// WAITER CALLS
	calls := auth.Group("/waiter-calls", middlewares.RequireRoles(models.RoleAdmin, models.RoleWaiter))
	{
		calls.GET("", callCtrl.GetWaiterCalls)
		calls.POST("/:call_id/acknowledge", callCtrl.Acknowledge)
		calls.POST("/:call_id/resolve", callCtrl.Resolve)
	}

	// TABLES
	auth.GET("/tables", tableCtrl.GetAllTables)
	auth.GET("/tables/:table_id", tableCtrl.GetTableByID)
	auth.PATCH("/tables/:table_id/status", middlewares.RequireRoles(models.RoleAdmin, models.RoleWaiter), tableCtrl.UpdateTableStatus)
	admin := auth.Group("", middlewares.RequireRoles(models.RoleAdmin))
	{
		admin.POST("/tables", tableCtrl.CreateTable)
		admin.PATCH("/tables/:table_id", tableCtrl.UpdateTable)
		admin.DELETE("/tables/:table_id", tableCtrl.DeleteTable)
		admin.GET("/tables/:table_id/qr", tableCtrl.GetTableQR)

		// MENU
		admin.POST("/categories", menuCtrl.CreateCategory)
		admin.POST("/menu-items", menuCtrl.CreateMenuItem)
		admin.PATCH("/menu-items/:item_id", menuCtrl.UpdateMenuItem)
		admin.DELETE("/menu-items/:item_id", menuCtrl.DeleteMenuItem)

		// FEEDBACK
		admin.GET("/feedback", feedbackCtrl.GetAllFeedback)
		admin.GET("/feedback/recent", feedbackCtrl.GetRecentFeedback)
		admin.GET("/feedback/stats", feedbackCtrl.GetFeedbackStats)

		// ANALYTICS
		admin.GET("/analytics/revenue", adminCtrl.GetRevenueTrends)
		admin.GET("/analytics/revenue/series", adminCtrl.GetRevenueSeries)
		admin.GET("/analytics/revenue/chart.png", adminCtrl.GetRevenueChart)

		// STAFF & BRANDING
		admin.GET("/users", userCtrl.GetAllUsers)
		admin.POST("/users", userCtrl.Register)
		admin.PATCH("/restaurants/:restaurant_id", restaurantCtrl.UpdateRestaurant)
		admin.POST("/branding/logo", brandingCtrl.UploadLogo)
		admin.PATCH("/branding/color", brandingCtrl.SetColor)
	}
	auth.GET("/menu-items", menuCtrl.GetMenuItems)
	auth.GET("/categories", menuCtrl.GetCategories)
	auth.PATCH("/menu-items/:item_id/availability", middlewares.RequireRoles(models.RoleAdmin, models.RoleKitchen), menuCtrl.ToggleAvailability)

	// EXPORTS
	exports := auth.Group("/exports", middlewares.RequireRoles(models.RoleAdmin, models.RoleBilling))
	{
		exports.GET("/orders", adminCtrl.ExportOrders)
		exports.GET("/orders.pdf", adminCtrl.ExportOrdersPDF)
		exports.GET("/revenue", adminCtrl.ExportRevenue)
		exports.GET("/menu", adminCtrl.ExportMenu)
	}

	// SUPER ADMIN
	platform := auth.Group("/platform", middlewares.RequireRoles(models.RoleSuperAdmin))
	{
		platform.GET("/restaurants", restaurantCtrl.GetRestaurants)
		platform.POST("/restaurants", restaurantCtrl.CreateRestaurant)
		platform.GET("/overview", adminCtrl.GetPlatformOverview)
	}

	// WebSocket endpoints authenticate with ?token=
	ws := r.Group("/ws")
	ws.Use(middlewares.WebSocketAuthMiddleware())
	{
		ws.GET("/changes", realtimeCtrl.ChangesHandler)
		ws.GET("/orders", realtimeCtrl.LiveOrdersHandler)
	}

	return r
}
