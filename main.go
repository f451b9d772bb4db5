package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gorilla/mux"
	"github.com/mashfikur/Echo-Estates-Server/config"
	"github.com/mashfikur/Echo-Estates-Server/payment"
	"github.com/mashfikur/Echo-Estates-Server/routes"
	"github.com/mashfikur/Echo-Estates-Server/store"
	"github.com/mashfikur/Echo-Estates-Server/utils"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

func main() {
	logger := utils.InitLogger(os.Getenv("APP_ENV"))
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		zap.S().Fatalf("Failed to load configuration: %v", err)
	}

	client, err := config.ConnectDB(cfg.MongoURI)
	if err != nil {
		zap.S().Fatalf("Failed to connect to the database: %v", err)
	}
	defer config.CloseDBConnection(client)

	stores := store.NewMongoStores(client.Database(cfg.DBName))
	redisClient := config.InitRedis(cfg.RedisAddr, cfg.RedisPass)
	tokens := utils.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	bridge := payment.NewStripeBridge(cfg.StripeKey)

	router := mux.NewRouter()
	routes.Routes(router, stores, tokens, bridge, redisClient)

	corsOptions := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})
	handler := corsOptions.Handler(router)

	server := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        handler,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		zap.S().Infof("Server running on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zap.S().Fatalf("Error starting server: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	<-sigCh

	zap.S().Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		zap.S().Fatalf("Error during server shutdown: %v", err)
	}
	zap.S().Info("Server gracefully stopped")
}
