package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"detailify/config"
	"detailify/database"
	reservationRepo "detailify/database/repository/reservation"
	scheduleRepo "detailify/database/repository/schedule"
	transactionRepo "detailify/database/repository/transaction"
	"detailify/handlers"
	"detailify/middleware"
	"detailify/routes"
	"detailify/services/availability"
	"detailify/services/booking"
	"detailify/services/payment"
	"detailify/services/pricing"
	"detailify/services/vehicle"
	"detailify/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
)

const dbName = "detailify"

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB(config.AppConfig.DatabaseURL)
	utils.InitCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	reservations := reservationRepo.NewMongoReservationStore(database.MongoClient, dbName)
	transactions := transactionRepo.NewMongoTransactionStore(database.MongoClient, dbName)
	schedule := scheduleRepo.NewMongoScheduleStore(database.MongoClient, dbName)
	if err := reservations.EnsureIndexes(); err != nil {
		logger.Sugar().Fatalf("main: failed to create reservation indexes: %v", err)
	}
	if err := transactions.EnsureIndexes(); err != nil {
		logger.Sugar().Fatalf("main: failed to create transaction indexes: %v", err)
	}

	// services.
	catalog := vehicle.NewDefaultCatalog()
	matcher := vehicle.NewMatcher(catalog)
	registry := vehicle.NewDVLAClient(config.AppConfig.RegistryAPIURL, config.AppConfig.RegistryAPIKey)
	lookupCache := vehicle.NewRedisLookupCache(utils.GetCacheClient())
	resolver := vehicle.NewRegistrationResolver(registry, matcher, lookupCache)

	travelFees := pricing.NewDefaultTravelFee(config.AppConfig.BasePostcode)
	priceCalc := pricing.NewCalculator(pricing.DefaultAddOns,
		config.AppConfig.TierMultiplier, travelFees, config.AppConfig.Currency)

	gateway, err := payment.NewGatewayFromConfig(config.AppConfig)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize payment gateway: %v", err)
	}
	paymentManager := payment.NewManager(gateway, transactions)

	engine := &booking.Engine{
		Resolver:       resolver,
		Matcher:        matcher,
		Availability:   availability.NewCalculator(),
		Schedule:       schedule,
		Reservations:   reservations,
		Pricing:        priceCalc,
		Payments:       paymentManager,
		MaxAdvanceDays: config.AppConfig.MaxAdvanceDays,
		Currency:       config.AppConfig.Currency,
	}

	bookingHandler := handlers.NewBookingHandler(engine, logger)
	adminHandler := handlers.NewAdminHandler(schedule, logger)

	routes.RegisterRoutes(router, bookingHandler, adminHandler)
	utils.StartHealthMonitor(utils.GetCacheClient(), database.MongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
