package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"train-ticketing/internal/catalog"
	"train-ticketing/internal/config"
	"train-ticketing/internal/handlers"
	"train-ticketing/internal/kafka"
	"train-ticketing/internal/logger"
	"train-ticketing/internal/middleware"
	rediswrap "train-ticketing/internal/redis"
	"train-ticketing/internal/services"
	"train-ticketing/internal/storage"

	"github.com/gin-gonic/gin"
)

// Global logger instance
var log *logger.Logger

func main() {
	log = logger.NewLogger()
	defer log.Close()

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Warn("ENV", "Error loading .env file, using environment variables")
	}

	log.LogProcess("STARTUP", "Train Ticketing service starting up...")

	cfg := config.Load()
	log.Info("CONFIG", "Configuration loaded successfully")

	// All state is in-memory: the registry and ledger reset on restart.
	store := storage.NewInMemoryStore()
	log.LogProcess("STORE", "In-memory registry and ledger initialized")

	log.LogProcess("KAFKA", "Initializing Kafka producer...")
	kafkaProducer, err := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.MockMode, log)
	if err != nil {
		log.Fatal("KAFKA", "Failed to create Kafka producer: "+err.Error())
	}
	defer kafkaProducer.Close()

	// Optional Redis: shares ticket-id reservations between instances.
	var reserver services.TicketReserver
	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr: cfg.Redis.Addr,
		})
		reserver = rediswrap.NewRedis(redisClient)
		log.LogProcess("REDIS", "Ticket id reservation enabled via "+cfg.Redis.Addr)
	}

	// Initialize services
	registryService := services.NewRegistryService(store, log)
	bookingService := services.NewBookingService(store, kafkaProducer, log, reserver)
	log.LogProcess("SERVICE", "Registry and booking services initialized")

	// Seed the train catalog before accepting requests
	if err := catalog.Seed(context.Background(), cfg.Catalog.Path, registryService, log); err != nil {
		log.Fatal("CATALOG", "Failed to seed train catalog: "+err.Error())
	}

	// The catalog feed only runs against a real broker.
	if !cfg.Kafka.MockMode {
		log.LogProcess("KAFKA", "Initializing catalog consumer...")
		catalogConsumer, err := kafka.NewCatalogConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID)
		if err != nil {
			log.Fatal("KAFKA", "Failed to create catalog consumer: "+err.Error())
		}
		defer catalogConsumer.Close()

		go func() {
			log.LogKafka("START", "train.created", "Starting catalog consumer goroutine")
			if err := catalogConsumer.ConsumeCatalog(context.Background(), registryService.HandleTrainEvent); err != nil {
				log.Error("KAFKA", "Consumer error: "+err.Error())
			}
		}()
	}

	// Initialize handlers
	bookingHandler := handlers.NewBookingHandler(bookingService)
	trainHandler := handlers.NewTrainHandler(registryService, bookingService)
	log.LogProcess("HANDLER", "All handlers initialized")

	router := setupRouter(bookingHandler, trainHandler)
	log.LogProcess("ROUTER", "HTTP router configured")

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.LogProcess("SERVER", "Starting HTTP server on "+cfg.Server.Port)
		log.Info("STARTUP", "Train Ticketing service is ready to accept requests")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("SERVER", "Server failed to start: "+err.Error())
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Warn("SHUTDOWN", "Received shutdown signal, initiating graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("SHUTDOWN", "Server forced to shutdown: "+err.Error())
	}

	log.Info("SHUTDOWN", "Train Ticketing service shutdown completed")
}

func setupRouter(bookingHandler *handlers.BookingHandler, trainHandler *handlers.TrainHandler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	router.Use(middleware.EnhancedLogger(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS())
	router.Use(middleware.RateLimit(log))
	router.Use(middleware.SecurityHeaders(log))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().UTC(),
			"service":   "train-ticketing",
			"version":   "1.0.0",
		})
	})

	// API routes
	v1 := router.Group("/api/v1")
	{
		bookings := v1.Group("/bookings")
		{
			bookings.POST("", bookingHandler.BookTicket)
			bookings.GET("", bookingHandler.ListBookings)
			bookings.GET("/export", bookingHandler.ExportBookings)
			bookings.GET("/:id", bookingHandler.GetTicket)
			bookings.DELETE("/:id", bookingHandler.CancelTicket)
		}

		trains := v1.Group("/trains")
		{
			trains.POST("", trainHandler.RegisterTrain)
			trains.GET("", trainHandler.ListTrains)
			trains.GET("/:number", trainHandler.GetTrain)
			trains.GET("/:number/seats", trainHandler.AvailableSeats)
		}
	}

	log.LogProcess("ROUTER", "All routes registered successfully")
	return router
}
