package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"hoteldesk/internal/database"
	"hoteldesk/internal/middleware"
	"hoteldesk/internal/modules/booking"
	"hoteldesk/internal/modules/customers"
	"hoteldesk/internal/modules/rooms"
	"hoteldesk/internal/modules/services"
	"hoteldesk/internal/pkg/staffauth"
	"hoteldesk/internal/repository"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from environment")
	}

	dsn := getEnv("DATABASE_URL", "hoteldesk.db")
	secret := os.Getenv("STAFF_JWT_SECRET")
	if secret == "" {
		log.Fatal("STAFF_JWT_SECRET is empty")
	}
	port := getEnv("PORT", "8080")

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal(err)
	}
	if err := db.AutoMigrate(repository.AllModels()...); err != nil {
		log.Fatal(err)
	}

	auth := staffauth.New(secret, 24*time.Hour)

	bookingHandler := booking.NewHandler(booking.NewService(repository.NewBookingStore(db)))
	customerHandler := customers.NewHandler(customers.NewService(repository.NewCustomerStore(db)))
	serviceHandler := services.NewHandler(services.NewService(repository.NewServiceStore(db)))
	roomHandler := rooms.NewHandler(rooms.NewService(repository.NewRoomStore(db)))

	r := gin.Default()
	r.Use(middleware.ErrorLogger())
	r.Use(cors.New(corsConfig()))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	v1.Use(middleware.StaffAuth(auth))
	{
		bookingHandler.RegisterRoutes(v1)
		customerHandler.RegisterRoutes(v1)
		serviceHandler.RegisterRoutes(v1)
		roomHandler.RegisterRoutes(v1)
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		log.Printf("Listening on :%s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal(err)
	}
	log.Println("Server stopped")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func corsConfig() cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization")
	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		cfg.AllowOrigins = strings.Split(origins, ",")
	} else {
		cfg.AllowAllOrigins = true
	}
	return cfg
}
