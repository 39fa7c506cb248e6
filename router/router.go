package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/prasetyadi/delivery-app/controllers"
	"github.com/prasetyadi/delivery-app/middlewares"
	"github.com/prasetyadi/delivery-app/services"
)

// SetupRouter wires every endpoint. Route groups: public auth endpoints
// behind the strict limiter, the open menu, the authenticated customer
// surface, the admin surface and the websocket feed.
func SetupRouter(db *gorm.DB, mailer services.Mailer) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.NewRateLimiter(50, 1).RateLimit())

	authController := controllers.NewAuthController(db, mailer)
	menuController := controllers.NewMenuController(db)
	cartController := controllers.NewCartController(db)
	orderController := controllers.NewOrderController(db)
	orderFeedController := controllers.NewOrderFeedController(db)
	reservationController := controllers.NewReservationController(db)
	notificationController := controllers.NewNotificationController(db)
	rewardController := controllers.NewRewardController(db)
	favoriteController := controllers.NewFavoriteController(db)
	profileController := controllers.NewProfileController(db)
	supportController := controllers.NewSupportController(db)
	analyticsController := controllers.NewAnalyticsController(db)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", authController.Register)
		public.POST("/login", authController.Login)
		public.POST("/password-reset", authController.RequestPasswordReset)
		public.POST("/password-reset/verify", authController.VerifyPasswordReset)
	}

	r.GET("/categories", menuController.GetAllCategories)
	r.GET("/menu", menuController.GetAllDishes)
	r.Static("/uploads", "./public/uploads")

	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware())
	{
		auth.POST("/logout", authController.Logout)

		auth.GET("/cart", cartController.GetCartItems)
		auth.POST("/cart/items", cartController.AddToCart)
		auth.PATCH("/cart/items", cartController.UpdateCartItem)
		auth.DELETE("/cart/items/:item_id", cartController.DeleteCartItem)

		auth.POST("/orders", orderController.SubmitOrder)
		auth.GET("/orders", orderController.GetOrderHistory)
		auth.GET("/orders/:order_id", orderController.GetOrderByID)

		auth.POST("/reservations", reservationController.SubmitReservation)
		auth.GET("/reservations", reservationController.GetReservations)
		auth.POST("/reservations/cancel", reservationController.CancelReservation)

		auth.GET("/notifications", notificationController.GetNotifications)
		auth.POST("/notifications", notificationController.AddNotification)
		auth.POST("/notifications/read", notificationController.MarkNotificationRead)

		auth.GET("/rewards", rewardController.GetRewards)
		auth.POST("/rewards/points", rewardController.AddPoints)
		auth.POST("/rewards/redeem", rewardController.RedeemReward)

		auth.GET("/favorites", favoriteController.GetFavorites)
		auth.POST("/favorites", favoriteController.AddFavorite)
		auth.DELETE("/favorites/:dish_id", favoriteController.RemoveFavorite)

		auth.POST("/support", supportController.SubmitRequest)
		auth.GET("/support", supportController.GetRequests)

		auth.GET("/profile", profileController.GetProfile)
		auth.POST("/profile", profileController.EditProfile)
	}

	admin := r.Group("/admin")
	admin.Use(middlewares.AuthMiddleware())
	{
		admin.PATCH("/orders/:order_id/status", orderController.UpdateOrderStatus)
		admin.GET("/analytics", analyticsController.GetDashboard)
		admin.GET("/analytics/export", analyticsController.ExportDailySales)
	}

	ws := r.Group("/ws")
	ws.Use(middlewares.WebSocketAuthMiddleware())
	{
		ws.GET("/orders/:order_id", orderFeedController.Stream)
	}

	return r
}
