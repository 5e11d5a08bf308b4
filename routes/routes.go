package routes

import (
	"comandero/configs"
	"comandero/controllers"
	"comandero/middlewares"
	"comandero/repository"
	"comandero/services"
	"comandero/ws"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *configs.Config) *ws.DispatchHub {
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	// Repositories
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	tableRepo := repository.NewTableRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	stockRepo := repository.NewStockRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	shiftRepo := repository.NewShiftRepository(db)

	// Services share one lock table so order/product/shift serialization
	// holds across components.
	locks := services.NewLocks()
	authService := services.NewAuthService(userRepo, cfg)
	stockService := services.NewStockService(db, stockRepo, productRepo, locks)
	orderService := services.NewOrderService(db, orderRepo, productRepo, tableRepo, paymentRepo,
		stockService, cfg.ServiceRate, cfg.TaxRate, locks)
	paymentService := services.NewPaymentService(db, paymentRepo, orderService)
	shiftService := services.NewShiftService(db, shiftRepo, paymentRepo, locks)
	dispatchService := services.NewDispatchService(orderService)

	hub := ws.NewDispatchHub(dispatchService)
	dispatchService.SetNotifier(hub)

	// Controllers
	authCtrl := controllers.NewAuthController(authService)
	productCtrl := controllers.NewProductController(productRepo)
	tableCtrl := controllers.NewTableController(tableRepo)
	stockCtrl := controllers.NewStockController(stockService)
	orderCtrl := controllers.NewOrderController(orderService)
	dispatchCtrl := controllers.NewDispatchController(dispatchService)
	paymentCtrl := controllers.NewPaymentController(paymentService)
	shiftCtrl := controllers.NewShiftController(shiftService)

	secret := cfg.JWTSecret

	// Auth
	r.POST("/auth/login", authCtrl.Login)
	r.POST("/auth/register", middlewares.AuthMiddleware(secret, "admin"), authCtrl.Register)

	// Catalog & tables
	catalog := r.Group("/", middlewares.AuthMiddleware(secret))
	{
		catalog.GET("/products", productCtrl.List)
		catalog.GET("/products/:id/stock", stockCtrl.Balance)
		catalog.GET("/products/:id/movements", stockCtrl.History)
		catalog.GET("/tables", tableCtrl.List)
	}
	admin := r.Group("/", middlewares.AuthMiddleware(secret, "admin"))
	{
		admin.POST("/products", productCtrl.Create)
		admin.PATCH("/products/:id", productCtrl.Update)
		admin.POST("/tables", tableCtrl.Create)
	}

	// Stock ledger
	r.POST("/stock/movements", middlewares.AuthMiddleware(secret, "admin", "cashier"), stockCtrl.RecordMovement)

	// Orders
	orders := r.Group("/orders", middlewares.AuthMiddleware(secret))
	{
		orders.POST("", orderCtrl.Create)
		orders.GET("", orderCtrl.List)
		orders.GET("/:id", orderCtrl.Detail)
		orders.POST("/:id/items", orderCtrl.AddItem)
		orders.DELETE("/:id/items/:itemId", orderCtrl.RemoveItem)
		orders.PATCH("/:id/status", orderCtrl.SetStatus)
		orders.PATCH("/:id/items/:itemId/status", orderCtrl.SetItemStatus)
		orders.PATCH("/:id/discount", orderCtrl.SetDiscount)

		orders.POST("/:id/payments", paymentCtrl.Apply)
		orders.GET("/:id/payments", paymentCtrl.ListByOrder)
		orders.GET("/:id/outstanding", paymentCtrl.Outstanding)
	}
	r.POST("/orders/:id/deduction/retry",
		middlewares.AuthMiddleware(secret, "admin", "cashier"), orderCtrl.RetryDeduction)

	// Payments
	payments := r.Group("/payments", middlewares.AuthMiddleware(secret, "admin", "cashier"))
	{
		payments.PATCH("/:id/status", paymentCtrl.SetStatus)
		payments.DELETE("/:id", paymentCtrl.Delete)
	}

	// Dispatch board
	dispatch := r.Group("/dispatch", middlewares.AuthMiddleware(secret))
	{
		dispatch.GET("", dispatchCtrl.Board)
		dispatch.PATCH("/move", dispatchCtrl.MoveItem)
	}
	r.GET("/ws/dispatch", middlewares.WSAuthMiddleware(secret), hub.HandleWebSocket)

	// Shifts
	shifts := r.Group("/shifts", middlewares.AuthMiddleware(secret, "admin", "cashier"))
	{
		shifts.POST("/open", shiftCtrl.Open)
		shifts.POST("/:id/close", shiftCtrl.Close)
		shifts.GET("/current", shiftCtrl.Current)
		shifts.GET("", shiftCtrl.List)
	}

	return hub
}
