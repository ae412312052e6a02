package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"github.com/uplifts-neel/lab-inventory-managment/config"
	"github.com/uplifts-neel/lab-inventory-managment/database"
	"github.com/uplifts-neel/lab-inventory-managment/handlers"
	"github.com/uplifts-neel/lab-inventory-managment/middleware"
	"github.com/uplifts-neel/lab-inventory-managment/routes"
	"github.com/uplifts-neel/lab-inventory-managment/websocket"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading it")
	}

	config.LoadConfig()

	// Database connection
	if err := database.Connect(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Disconnect()

	handlers.InitCollections()
	websocket.Start()

	// The token verification strategy is chosen once, here, and passed down
	// explicitly. AUTH_MODE=mock is for development frontends only.
	var verifier middleware.TokenVerifier
	if config.AuthMode == config.AuthModeMock {
		log.Println("WARNING: mock authentication enabled, all requests resolve to the demo admin")
		verifier = middleware.NewMockVerifier(config.MockToken)
	} else {
		verifier = &middleware.JWTVerifier{Users: database.DB().Collection("users")}
	}

	// Router setup
	router := mux.NewRouter()
	routes.RegisterRoutes(router, verifier)

	// Global middlewares (order matters!)
	router.Use(middleware.LoggingMiddleware)
	router.Use(middleware.RecoveryMiddleware)
	router.Use(middleware.CORSMiddleware)

	// HTTP server configuration
	srv := &http.Server{
		Addr:         ":" + config.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server running on port %s", config.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
