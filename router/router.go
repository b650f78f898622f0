package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tableside/tableside/controllers"
	"github.com/tableside/tableside/middlewares"
	"github.com/tableside/tableside/services"
)

// SetupRouter mounts the whole API surface on a gin engine.
func SetupRouter(db *gorm.DB, orders *services.OrderService, checkout *services.CheckoutService) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.CORSMiddleware())
	r.Use(middlewares.LoggerMiddleware())

	directory := services.NewMenuDirectory(db)

	userCtrl := controllers.NewUserController(db)
	tableCtrl := controllers.NewTableController(db)
	menuCtrl := controllers.NewMenuController(db)
	orderCtrl := controllers.NewOrderController(orders, directory)
	paymentCtrl := controllers.NewPaymentController(checkout, directory)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	public := r.Group("/users")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	r.GET("/menu", menuCtrl.GetAllMenus)
	r.GET("/menu/category/:category", menuCtrl.GetMenusByCategory)
	r.GET("/menu/:menu_id", menuCtrl.GetMenuByID)

	// Guests order from the table QR without logging in.
	r.POST("/orders/:table_id/items", orderCtrl.AddItem)
	r.GET("/orders/:table_id", orderCtrl.GetOrder)
	r.DELETE("/orders/:table_id/items/:index", orderCtrl.RemoveItem)
	r.PATCH("/orders/:table_id/items/:index", orderCtrl.UpdateItemQuantity)
	r.POST("/orders/:table_id/complete", orderCtrl.CompleteOrder)
	r.GET("/orders/:table_id/history", orderCtrl.GetOrderHistory)

	r.POST("/checkout", paymentCtrl.CreateCheckout)

	r.GET("/billing/config", orderCtrl.GetBillingConfig)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware())
	{
		auth.GET("/profile", userCtrl.GetProfile)
		auth.GET("/tables", tableCtrl.GetAllTables)
		auth.GET("/tables/:table_id", tableCtrl.GetTableByID)
		auth.PATCH("/tables/:table_id/status", tableCtrl.UpdateTableStatus)
		auth.GET("/orders", orderCtrl.GetActiveTables)
	}

	// ----------------------------------------------------------------
	//                      ADMIN ROUTES
	// ----------------------------------------------------------------
	admin := r.Group("/")
	admin.Use(middlewares.AuthMiddleware(), middlewares.AdminOnly())
	{
		admin.GET("/users", userCtrl.GetAllUsers)

		admin.POST("/menu", menuCtrl.CreateMenu)
		admin.PUT("/menu/:menu_id", menuCtrl.UpdateMenu)
		admin.DELETE("/menu/:menu_id", menuCtrl.DeleteMenu)

		admin.POST("/tables", tableCtrl.CreateTable)
		admin.DELETE("/tables/:table_id", tableCtrl.DeleteTable)

		admin.PUT("/billing/config", orderCtrl.UpdateBillingConfig)
	}

	return r
}
