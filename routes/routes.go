package routes

import (
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"salonbook-backend/config"
	"salonbook-backend/controllers"
	"salonbook-backend/services"
	"salonbook-backend/utils"
)

// Deps carries everything the router needs; nothing is pulled from globals.
type Deps struct {
	DB       *gorm.DB
	Payments controllers.CheckoutCreator
	Verifier controllers.SignatureVerifier
	Notifier controllers.PaidNotifier
}

func SetupRouter(deps Deps) *gin.Engine {
	r := gin.Default()

	origins := []string{"http://localhost:3000"}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		origins = strings.Split(env, ",")
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	pricing := services.NewPricingService(deps.DB)
	availability := services.NewAvailabilityService(deps.DB)
	rating := services.NewRatingService(deps.DB)

	authController := &controllers.AuthController{DB: deps.DB}
	salonController := &controllers.SalonController{DB: deps.DB}
	serviceController := &controllers.ServiceController{DB: deps.DB}
	categoryController := &controllers.CategoryController{DB: deps.DB}
	couponController := &controllers.CouponController{DB: deps.DB, Pricing: pricing}
	bookingController := &controllers.BookingController{
		DB:           deps.DB,
		Pricing:      pricing,
		Availability: availability,
		Payments:     deps.Payments,
	}
	reviewController := &controllers.ReviewController{DB: deps.DB, Rating: rating}
	userController := &controllers.UserController{DB: deps.DB}
	webhookController := &controllers.WebhookController{
		DB:       deps.DB,
		Verifier: deps.Verifier,
		Notifier: deps.Notifier,
	}

	auth := r.Group("/api/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/logout", authController.Logout)

		auth.GET("/me", utils.AuthMiddleware(), authController.Me)
	}

	// Payment provider callback; authenticated by signature, not cookie
	r.POST("/api/payments/webhook", webhookController.HandleCheckoutEvent)

	// Public marketing and booking-flow reads
	public := r.Group("/api")
	{
		public.GET("/salons", salonController.GetSalons)
		public.GET("/salons/:id", salonController.GetSalon)
		public.GET("/salons/:id/services", serviceController.GetSalonServices)
		public.GET("/salons/:id/reviews", reviewController.GetSalonReviews)
		public.GET("/services", serviceController.GetServices)
		public.GET("/services/:id", serviceController.GetService)
		public.GET("/services/bycategory/:salonId/:category", serviceController.GetSalonServicesByCategory)
		public.GET("/categories", categoryController.GetCategories)
		public.GET("/reservations/available/:salonId/:day/:month", bookingController.GetAvailableHours)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		salons := api.Group("/salons")
		{
			salons.POST("", salonController.CreateSalon)
			salons.PUT("/:id", salonController.UpdateSalon)
			salons.DELETE("/:id", salonController.DeleteSalon)
			salons.POST("/:id/pictures", salonController.AddPictures)
			salons.DELETE("/pictures/:pictureId", salonController.DeletePicture)
		}

		servicesGroup := api.Group("/services")
		{
			servicesGroup.POST("", serviceController.CreateService)
			servicesGroup.PUT("/:id", serviceController.UpdateService)
			servicesGroup.DELETE("/:id", serviceController.DeleteService)
			servicesGroup.GET("/mine/all", serviceController.GetMyServices)
		}

		coupons := api.Group("/coupons")
		{
			coupons.POST("", couponController.CreateCoupon)
			coupons.PUT("/:id", couponController.UpdateCoupon)
			coupons.DELETE("/:id", couponController.DeleteCoupon)
			coupons.GET("/:id", couponController.GetCoupon)
			coupons.GET("/mine/all", couponController.GetMyCoupons)
			coupons.POST("/apply", couponController.ApplyCoupon)
		}

		reservations := api.Group("/reservations")
		{
			reservations.POST("", bookingController.CreateReservation)
			reservations.GET("", bookingController.GetReservations)
			reservations.GET("/user", bookingController.GetMyReservations)
			reservations.GET("/history", bookingController.GetReservationHistory)
			reservations.GET("/confirmed", bookingController.GetConfirmedReservations)
			reservations.GET("/cancelled", bookingController.GetCancelledReservations)
			reservations.GET("/:id", bookingController.GetReservation)
			reservations.PUT("/:id", bookingController.UpdateReservation)
			reservations.DELETE("/:id", bookingController.DeleteReservation)
		}

		reviews := api.Group("/reviews")
		{
			reviews.GET("", reviewController.GetReviews)
			reviews.POST("/:id", reviewController.CreateReview)
			reviews.PUT("/:id", reviewController.UpdateReview)
			reviews.DELETE("/:id", reviewController.DeleteReview)
			reviews.GET("/:id", reviewController.GetReview)
			reviews.GET("/mine/all", reviewController.GetMyReviews)
			reviews.GET("/mine/salon/:id", reviewController.GetMySalonReviews)
		}

		users := api.Group("/users")
		{
			users.GET("", userController.GetUser)
			users.PUT("", userController.UpdateUser)
			users.DELETE("", userController.DeleteUser)
		}

		api.GET("/points/:salonId", userController.GetPointsBalance)
	}

	return r
}
