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
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sportall/app-recruit/internal/config"
	"github.com/sportall/app-recruit/internal/handlers"
	"github.com/sportall/app-recruit/internal/logging"
	"github.com/sportall/app-recruit/internal/middleware"
	"github.com/sportall/app-recruit/internal/observability"
	"github.com/sportall/app-recruit/internal/services"
	"github.com/sportall/app-recruit/internal/utils"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// @title           Sportall Recruiting API
// @version         1.0
// @description     Recruiting marketplace backend: player and coach profiles, favorites, and the multi-stage player verification workflow (email, phone, stats, admin review).

// @host      localhost:8080
// @BasePath  /v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// @tag.name auth
// @tag.description Registration, login and password reset

// @tag.name verification
// @tag.description Player verification workflow

// @tag.name admin
// @tag.description Admin review and account management

func main() {
	if err := logging.InitLogger(); err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}

	if err := config.LoadConfig(); err != nil {
		logging.Logger.Fatal("failed to load config", zap.Error(err))
	}

	observability.InitTracer()
	defer observability.ShutdownTracer()

	config.InitMongoDB()
	config.InitRedis()

	utils.InitAuditWorker(config.AppConfig.AuditWorkers, config.AppConfig.AuditBufferSize)
	defer utils.GetAuditWorker().Stop()

	if config.AppConfig.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Wire stores, providers and services
	profiles := services.NewMongoProfileStore()
	users := services.NewMongoUserStore()
	resets := services.NewMongoResetStore()
	email := services.NewResendSender()
	sms := services.NewTwilioVerifier()

	notifier := services.NewAsyncNotifier(users, email, logging.Logger)
	defer notifier.Close()

	verificationSvc := services.NewVerificationService(profiles, users, email, sms, notifier, config.Redis, logging.Logger)
	reviewSvc := services.NewReviewService(profiles, users, notifier, config.Redis, logging.Logger)
	resetSvc := services.NewPasswordResetService(users, resets, email, config.Redis, logging.Logger)

	authHandler := handlers.NewAuthHandler(users, profiles, resetSvc, logging.Logger)
	verificationHandler := handlers.NewVerificationHandler(verificationSvc)
	adminVerifications := handlers.NewAdminVerificationHandler(reviewSvc)
	playerHandler := handlers.NewPlayerHandler(profiles, logging.Logger)
	coachHandler := handlers.NewCoachHandler(logging.Logger)
	favoriteHandler := handlers.NewFavoriteHandler(logging.Logger)
	adminUsers := handlers.NewAdminUserHandler(users, logging.Logger)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RequestTracker(),
		cors.Default(),
	)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authRequired := middleware.Auth(users)

	v1 := router.Group("/v1")
	{
		v1.GET("/health", handlers.HealthCheck)

		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/password-reset/request", authHandler.RequestPasswordReset)
			auth.POST("/password-reset/confirm", authHandler.ConfirmPasswordReset)
		}

		verification := v1.Group("/verification", authRequired)
		{
			verification.POST("/start", verificationHandler.StartEmail)
			verification.POST("/email/confirm", verificationHandler.ConfirmEmail)
			verification.POST("/phone/send", verificationHandler.SendPhoneCode)
			verification.POST("/phone/confirm", verificationHandler.ConfirmPhone)
			verification.POST("/stats", verificationHandler.SubmitStats)
			verification.GET("/me", verificationHandler.MyStatus)
		}

		players := v1.Group("/players", authRequired)
		{
			players.POST("", playerHandler.UpsertMe)
			players.GET("/me", playerHandler.Me)
			players.GET("", middleware.RequireRecruiter(), playerHandler.List)
			players.GET("/juco/my-players", middleware.RequireJucoCoach(), playerHandler.MyRoster)
			players.GET("/:id", middleware.RequireRecruiter(), playerHandler.Get)
			players.PATCH("/:id/juco-note", middleware.RequireJucoCoach(), playerHandler.SetJucoNote)
		}

		coaches := v1.Group("/coaches", authRequired)
		{
			coaches.POST("", coachHandler.UpsertMe)
			coaches.GET("/me", coachHandler.Me)
			coaches.GET("/:id", coachHandler.Get)
		}

		favorites := v1.Group("/favorites", authRequired, middleware.RequireRecruiter())
		{
			favorites.POST("", favoriteHandler.Add)
			favorites.GET("", favoriteHandler.List)
			favorites.PATCH("/:id", favoriteHandler.Update)
			favorites.DELETE("/:id", favoriteHandler.Remove)
		}

		admin := v1.Group("/admin", authRequired, middleware.RequireAdmin())
		{
			admin.GET("/verifications", adminVerifications.List)
			admin.GET("/verifications/:id", adminVerifications.Get)
			admin.POST("/verifications/:id/approve", adminVerifications.Approve)
			admin.POST("/verifications/:id/reject", adminVerifications.Reject)

			admin.GET("/users", adminUsers.List)
			admin.GET("/users/:id", adminUsers.Get)
			admin.PATCH("/users/:id/role", adminUsers.UpdateRole)
			admin.DELETE("/users/:id", adminUsers.Delete)
		}
	}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", config.AppConfig.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logging.Logger.Info("starting server",
			zap.Int("port", config.AppConfig.Port),
			zap.String("environment", config.AppConfig.Environment),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logging.Logger.Info("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Logger.Error("server forced to shutdown", zap.Error(err))
	}

	logging.Logger.Info("server exited")
}
