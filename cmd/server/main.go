package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	cartapp "github.com/shopora/backend/internal/application/cart"
	catalogapp "github.com/shopora/backend/internal/application/catalog"
	identityapp "github.com/shopora/backend/internal/application/identity"
	orderapp "github.com/shopora/backend/internal/application/order"
	promotionapp "github.com/shopora/backend/internal/application/promotion"
	shoppingapp "github.com/shopora/backend/internal/application/shopping"
	"github.com/shopora/backend/internal/domain/cart"
	"github.com/shopora/backend/internal/infrastructure/auth"
	"github.com/shopora/backend/internal/infrastructure/config"
	"github.com/shopora/backend/internal/infrastructure/logger"
	"github.com/shopora/backend/internal/infrastructure/persistence"
	"github.com/shopora/backend/internal/infrastructure/storage"
	"github.com/shopora/backend/internal/interfaces/http/handler"
	"github.com/shopora/backend/internal/interfaces/http/middleware"
	"github.com/shopora/backend/internal/interfaces/http/router"

	_ "github.com/shopora/backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

//	@title			Shopora API
//	@version		1.0
//	@description	E-commerce storefront backend: catalog, cart, wishlist, comparison, coupons and orders.

//	@contact.name	API Support
//	@contact.url	https://github.com/shopora/backend

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@host		localhost:8080
//	@BasePath	/api

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. The accessToken cookie is also accepted.

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Shopora backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database with the zap-backed GORM logger
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	cartRepo := persistence.NewGormCartRepository(db.DB)
	couponRepo := persistence.NewGormCouponRepository(db.DB)
	bannerRepo := persistence.NewGormBannerRepository(db.DB)
	wishlistRepo := persistence.NewGormWishlistRepository(db.DB)
	comparisonRepo := persistence.NewGormComparisonRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)

	cartTxScope := persistence.NewGormCartTransactionScope(db.DB)
	orderTxScope := persistence.NewGormOrderTransactionScope(db.DB)

	// Token revocation backed by Redis; sessions survive without it but
	// logout stops being immediate
	jwtService := auth.NewJWTService(cfg.JWT)
	var blacklist auth.TokenBlacklist
	if cfg.Redis.Host != "" {
		redisBlacklist, err := auth.NewRedisTokenBlacklist(auth.RedisTokenBlacklistConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Warn("Redis unavailable, using in-memory token blacklist", zap.Error(err))
			blacklist = auth.NewInMemoryTokenBlacklist()
		} else {
			blacklist = redisBlacklist
			log.Info("Redis token blacklist connected",
				zap.String("host", cfg.Redis.Host),
				zap.Int("port", cfg.Redis.Port))
		}
	} else {
		blacklist = auth.NewInMemoryTokenBlacklist()
	}

	// Object storage for product and banner images
	var objectStorage catalogapp.ObjectStorageService
	if cfg.Storage.Enabled {
		s3Storage, err := storage.NewS3ObjectStorage(&cfg.Storage)
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		objectStorage = s3Storage
		log.Info("Object storage connected", zap.String("bucket", cfg.Storage.Bucket))
	} else {
		objectStorage = storage.NewStubObjectStorage()
		log.Warn("Object storage disabled, image uploads will not persist")
	}

	pricingPolicy := cart.PricingPolicy{
		TaxRate:               cfg.Pricing.TaxRate,
		FreeShippingThreshold: cfg.Pricing.FreeShippingThreshold,
		ShippingFee:           cfg.Pricing.ShippingFee,
		Currency:              cfg.Pricing.Currency,
	}

	// Application services
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, identityapp.DefaultAuthServiceConfig(), log)
	userService := identityapp.NewUserService(userRepo, log)
	productService := catalogapp.NewProductService(productRepo, categoryRepo, log)
	categoryService := catalogapp.NewCategoryService(categoryRepo, log)
	imageService := catalogapp.NewImageService(objectStorage, catalogapp.ImageServiceConfig{
		PublicBaseURL: cfg.Storage.BaseURL,
	}, log)
	cartService := cartapp.NewCartService(cartRepo, productRepo, couponRepo, cartTxScope, pricingPolicy, log)
	wishlistService := shoppingapp.NewWishlistService(wishlistRepo, productRepo, log)
	comparisonService := shoppingapp.NewComparisonService(comparisonRepo, productRepo, log)
	couponService := promotionapp.NewCouponService(couponRepo, log)
	bannerService := promotionapp.NewBannerService(bannerRepo, log)
	orderService := orderapp.NewOrderService(orderRepo, orderTxScope, log)

	// HTTP handlers
	authHandler := handler.NewAuthHandler(authService, cfg.Cookie)
	profileHandler := handler.NewProfileHandler(userService, authService)
	productHandler := handler.NewProductHandler(productService, imageService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	cartHandler := handler.NewCartHandler(cartService)
	wishlistHandler := handler.NewWishlistHandler(wishlistService)
	comparisonHandler := handler.NewComparisonHandler(comparisonService)
	couponHandler := handler.NewCouponHandler(couponService)
	bannerHandler := handler.NewBannerHandler(bannerService, imageService)
	orderHandler := handler.NewOrderHandler(orderService)
	systemHandler := handler.NewSystemHandler(db, version)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Authentication for everything under /api except the public surface
	jwtConfig := middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		SkipPaths: []string{
			"/health",
			"/ready",
			"/api/auth/login",
			"/api/auth/register",
			"/api/auth/refresh",
		},
		SkipPathPrefixes: []string{
			"/swagger",
			"/api/products",
			"/api/categories",
			"/api/banners",
		},
		Logger: log,
	}
	engine.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	systemHandler.Register(engine)

	if cfg.Swagger.Enabled {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	r := router.NewRouter(engine)
	r.Register(authHandler).
		Register(profileHandler).
		Register(productHandler).
		Register(categoryHandler).
		Register(cartHandler).
		Register(wishlistHandler).
		Register(comparisonHandler).
		Register(bannerHandler).
		Register(orderHandler).
		Register(handler.NewAdminRouter(
			productHandler,
			categoryHandler,
			couponHandler,
			bannerHandler,
			orderHandler,
		))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
