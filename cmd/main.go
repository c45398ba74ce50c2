package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"taskory/taskory/broker"
	"taskory/taskory/config"
	"taskory/taskory/database"
	"taskory/taskory/middleware"
	"taskory/taskory/routes"
	"taskory/taskory/services"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	db, err := database.Setup(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Event publishing is best-effort: without a broker the API still
	// serves requests and events stay in the outbox table.
	if err := broker.InitProducer(cfg); err != nil {
		log.Printf("Warning: Failed to initialize NATS producer: %v", err)
		log.Println("The application will continue without event publishing")
	} else {
		defer broker.CloseProducer()
	}

	authService := services.NewAuthService(cfg.JWTSecret, cfg.JWTAccessMinutes, cfg.JWTRefreshHours)
	services.AuthServiceInstance = authService

	userService := services.NewUserService(authService)
	services.UserServiceInstance = userService

	router := gin.Default()
	router.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	// Public endpoints: register, login, refresh
	routes.RegisterAuthRoutes(router, db, authService, userService)

	// Everything else requires a valid access token
	apiGroup := router.Group("/api/v1")
	apiGroup.Use(middleware.AuthMiddleware(authService))

	routes.RegisterProfileRoutes(apiGroup, db, userService)
	routes.RegisterUserRoutes(apiGroup, db, userService)
	routes.RegisterTaskRoutes(apiGroup, db, services.TaskServiceInstance)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-quit
		log.Println("Shutting down server...")
		broker.CloseProducer()
		db.Close()
		os.Exit(0)
	}()

	log.Printf("API server is running on port %s", cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
