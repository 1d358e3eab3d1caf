package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginswagger "github.com/swaggo/gin-swagger"

	_ "cantine-backend/docs"
	"cantine-backend/internal/common/config"
	"cantine-backend/internal/common/logger"
	"cantine-backend/internal/common/middleware"
	"cantine-backend/internal/common/token"
	authhttp "cantine-backend/internal/features/auth/delivery/http"
	authservice "cantine-backend/internal/features/auth/service"
	cardhttp "cantine-backend/internal/features/card/delivery/http"
	cardredis "cantine-backend/internal/features/card/repository/redis"
	cardservice "cantine-backend/internal/features/card/service"
	menuhttp "cantine-backend/internal/features/menu/delivery/http"
	menuredis "cantine-backend/internal/features/menu/repository/redis"
	menuservice "cantine-backend/internal/features/menu/service"
	reservationhttp "cantine-backend/internal/features/reservation/delivery/http"
	"cantine-backend/internal/features/reservation/export"
	reservationredis "cantine-backend/internal/features/reservation/repository/redis"
	reservationservice "cantine-backend/internal/features/reservation/service"
	userhttp "cantine-backend/internal/features/user/delivery/http"
	userredis "cantine-backend/internal/features/user/repository/redis"
	userservice "cantine-backend/internal/features/user/service"
	redisplatform "cantine-backend/internal/platform/redis"
	"cantine-backend/internal/platform/seed"
)

// @title           Cantine API
// @version         1.0
// @description     Backend for the university cafeteria app: weekly menu by stand, dinner reservations, meal-card recharges and an admin panel.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Session token, format: Bearer <token>

// @tag.name auth
// @tag.description Registration and login

// @tag.name menu
// @tag.description Weekly menu, dishes and stand queues

// @tag.name users
// @tag.description Profile and dietary constraints

// @tag.name reservations
// @tag.description Dinner reservations

// @tag.name card
// @tag.description Meal-card balance, recharges and payments

// @tag.name admin
// @tag.description Menu and reservation management
func main() {
	cfg := config.Load()

	logger.Init("cantine-backend", cfg.Debug)

	rdb := redisplatform.New(cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password, cfg.Redis.DB)
	defer rdb.Close()

	userRepository := userredis.NewUserRepository(rdb)
	menuRepository := menuredis.NewMenuRepository(rdb)
	imageStore := menuredis.NewImageStore(rdb)
	reservationRepository := reservationredis.NewReservationRepository(rdb)
	cardRepository := cardredis.NewCardRepository(rdb)

	if cfg.Seed {
		if err := seed.Run(context.Background(), rdb, userRepository, menuRepository, reservationRepository, cardRepository); err != nil {
			logger.Fatal().Err(err).Msg("Failed to seed demo data")
		}
	}

	tokens := token.NewManager(cfg.Auth.JWTSecret, cfg.Auth.Issuer, time.Duration(cfg.Auth.TokenTTL)*time.Minute)

	menuSvc := menuservice.NewMenuService(menuRepository, imageStore)
	userSvc := userservice.NewUserService(userRepository)
	authSvc := authservice.NewAuthService(userRepository, tokens)
	reservationSvc := reservationservice.NewReservationService(reservationRepository, userRepository, menuSvc, export.CommaSerializer{})
	cardSvc := cardservice.NewCardService(cardRepository, menuSvc, time.Duration(cfg.Card.RechargeDelayMs)*time.Millisecond)

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Server.Origin}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization", "Accept"}
	router.Use(cors.New(corsConfig))

	authHandler := authhttp.NewAuthHandler(authSvc)
	menuHandler := menuhttp.NewMenuHandler(menuSvc)
	userHandler := userhttp.NewUserHandler(userSvc, cardSvc, reservationSvc)
	reservationHandler := reservationhttp.NewReservationHandler(reservationSvc)
	cardHandler := cardhttp.NewCardHandler(cardSvc)

	v1 := router.Group("/api/v1")
	{
		authHandler.RegisterRoutes(v1)
		menuHandler.RegisterRoutes(v1)

		authed := v1.Group("", middleware.RequireAuth(tokens))
		{
			userHandler.RegisterRoutes(authed)
			reservationHandler.RegisterRoutes(authed)
			cardHandler.RegisterRoutes(authed)
		}

		admin := v1.Group("/admin", middleware.RequireAuth(tokens), middleware.RequireAdmin())
		{
			menuHandler.RegisterAdminRoutes(admin)
			reservationHandler.RegisterAdminRoutes(admin)
		}
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC(),
			"service":   "cantine-backend",
		})
	})
	router.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := rdb.Ping(ctx).Err(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unready",
				"error":   "redis unavailable",
				"details": err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	router.GET("/swagger/*any", ginswagger.WrapHandler(swaggerfiles.Handler))

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Int("port", cfg.Server.Port).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Server exited")
}
