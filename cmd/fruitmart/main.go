package main

import (
	"context"
	"encoding/hex"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/superfruitcenter/fruitmart/config"
	"github.com/superfruitcenter/fruitmart/internal/auth"
	handler "github.com/superfruitcenter/fruitmart/internal/handler/http"
	"github.com/superfruitcenter/fruitmart/internal/logger"
	"github.com/superfruitcenter/fruitmart/internal/middleware"
	"github.com/superfruitcenter/fruitmart/internal/repository"
	"github.com/superfruitcenter/fruitmart/internal/repository/postgres"
	"github.com/superfruitcenter/fruitmart/internal/service"
	"github.com/superfruitcenter/fruitmart/internal/worker"
	"go.uber.org/zap"
)

const authTokenKey = "3fb2c1d09a77e4ef801b55c2d8e6a913"

func main() {

	// create new config
	cfg, err := config.New()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// initialize logger
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		log.Fatalf("Error initializing logger: %v", err)
	}
	defer logger.Log.Sync()

	// create context
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// initialize database
	db, err := postgres.New(ctx, cfg.DatabaseDSN)
	if err != nil {
		logger.Log.Fatal("Error initializing database", zap.Error(err))
	}
	defer db.Close()

	// migrate database
	if err := db.Migrate(); err != nil {
		logger.Log.Fatal("Error migrating database", zap.Error(err))
	}

	tokenKey, err := hex.DecodeString(authTokenKey)
	if err != nil {
		logger.Log.Fatal("Error extracting token key", zap.Error(err))
	}
	token := auth.NewAuthToken(tokenKey)

	// dependency injection
	// user
	userRepo := repository.NewUserRepository(db)
	userService := service.NewUserService(userRepo)
	userHandler := handler.NewUserHandler(userService, token)

	// auth
	authService := service.NewAuthService(userRepo, token)
	authHandler := handler.NewAuthHandler(authService)

	// catalog
	productRepo := repository.NewProductRepository(db)
	productService := service.NewProductService(productRepo)
	productHandler := handler.NewProductHandler(productService)

	// cart
	cartRepo := repository.NewCartRepository(db)
	cartService := service.NewCartService(cartRepo, productRepo)
	cartHandler := handler.NewCartHandler(cartService)

	// addresses
	addressRepo := repository.NewAddressRepository(db)
	addressService := service.NewAddressService(addressRepo)
	addressHandler := handler.NewAddressHandler(addressService)

	// orders
	orderRepo := repository.NewOrderRepository(db)
	attemptRepo := repository.NewAttemptRepository(db)
	orderService := service.NewOrderService(orderRepo, attemptRepo)
	checkoutService := service.NewCheckoutService(orderService, cartRepo, addressRepo)
	orderHandler := handler.NewOrderHandler(checkoutService)

	// reconcile placements interrupted by a previous shutdown
	recovery := worker.NewAttemptRecovery(checkoutService)
	go recovery.Run(ctx)

	router := chi.NewRouter()

	router.Use(middleware.Logging(logger.Log))

	router.Post("/api/user/register", userHandler.RegisterUser())
	router.Post("/api/user/login", authHandler.LoginUser())
	router.Get("/api/products", productHandler.ListProducts())
	router.Get("/api/products/{productID}", productHandler.GetProduct())

	// routes that require authentication
	router.Group(func(group chi.Router) {
		group.Use(middleware.Auth(token))
		group.Get("/api/user/cart", cartHandler.GetCart())
		group.Post("/api/user/cart", cartHandler.AddItem())
		group.Delete("/api/user/cart/{productID}", cartHandler.RemoveItem())
		group.Get("/api/user/addresses", addressHandler.ListAddresses())
		group.Post("/api/user/addresses", addressHandler.CreateAddress())
		group.Delete("/api/user/addresses/{addressID}", addressHandler.DeleteAddress())
		group.Post("/api/user/orders", orderHandler.PlaceOrder())
		group.Get("/api/user/orders", orderHandler.ListUserOrders())
	})

	logger.Log.Info("Running server", zap.String("addr", cfg.ServerAddr))

	if err := http.ListenAndServe(cfg.ServerAddr, router); err != nil {
		logger.Log.Fatal("Error starting server", zap.Error(err))
	}
}
