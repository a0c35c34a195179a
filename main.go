package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"salonbook-backend/config"
	"salonbook-backend/models"
	"salonbook-backend/payments"
	"salonbook-backend/routes"
	"salonbook-backend/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	db, err := config.Connect(os.Getenv("DB_URL"))
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}
	defer func() {
		if err := config.Close(db); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
	}()

	if err := db.AutoMigrate(
		&models.User{},
		&models.Salon{},
		&models.SalonPicture{},
		&models.Category{},
		&models.Service{},
		&models.Coupon{},
		&models.BookingGroup{},
		&models.Booking{},
		&models.Points{},
		&models.Review{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	seedCategories(db)

	paymentsClient := payments.NewClient()
	notifier := services.NewNotifier(db)

	sweeper := services.NewSweeper(db, checkoutTTL())
	sweeper.Start()
	defer sweeper.Stop()

	r := routes.SetupRouter(routes.Deps{
		DB:       db,
		Payments: paymentsClient,
		Verifier: paymentsClient,
		Notifier: notifier,
	})
	printRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		log.Printf("Listening on :%s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Forced shutdown: %v", err)
	}
}

func checkoutTTL() time.Duration {
	if env := os.Getenv("CHECKOUT_TTL_HOURS"); env != "" {
		if h, err := strconv.Atoi(env); err == nil && h > 0 {
			return time.Duration(h) * time.Hour
		}
	}
	return 24 * time.Hour
}

// seedCategories makes sure the default service categories exist.
func seedCategories(db *gorm.DB) {
	defaults := []string{"Hair", "Nails", "Skincare", "Makeup", "Massage"}
	for _, name := range defaults {
		var category models.Category
		err := db.Where("name = ?", name).First(&category).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&models.Category{Name: name}).Error; err != nil {
				log.Printf("Failed to seed category %q: %v", name, err)
			}
		}
	}
}

func printRoutes(r *gin.Engine) {
	for _, route := range r.Routes() {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
