package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"motocase/internal/caching"
	"motocase/internal/config"
	"motocase/internal/db"
	"motocase/internal/handlers"
	"motocase/internal/jobs/background"
	appMiddleware "motocase/internal/middleware"
	"motocase/internal/repositories"
	"motocase/internal/services"
	"motocase/pkg/database"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx := context.Background()

	if err := db.ApplyMigrations(cfg.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("failed to apply migrations")
	}

	pool, err := database.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	cacheSvc := caching.NewRedisCacheService(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)

	storageSvc, err := services.NewStorageService(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.DocumentBucket, cfg.MinioUseSSL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize object storage")
	}

	// Repositories
	userRepo := repositories.NewUserRepo(pool)
	workspaceRepo := repositories.NewWorkspaceRepo(pool)
	caseRepo := repositories.NewCaseRepo(pool)
	bikeRepo := repositories.NewBikeRepo(pool)
	contactRepo := repositories.NewContactRepo(pool)
	interactionRepo := repositories.NewInteractionRepo(pool)
	distributionRepo := repositories.NewCredentialDistributionRepo(pool)
	subscriptionRepo := repositories.NewSubscriptionRepo(pool)
	documentRepo := repositories.NewCaseDocumentRepo(pool)

	// Services
	credentialSvc := services.NewCredentialService()
	tokenSvc := services.NewTokenService(cfg.SessionSecret)
	mailer := services.NewLogMailer()
	authSvc := services.NewAuthService(userRepo, credentialSvc, tokenSvc, cacheSvc,
		cfg.SessionTTL, cfg.SessionRememberTTL, cfg.FirstLoginSessionTTL)
	userSvc := services.NewUserService(userRepo, distributionRepo, credentialSvc, mailer, cfg.AppBaseURL)
	workspaceSvc := services.NewWorkspaceService(workspaceRepo, cacheSvc)
	caseSvc := services.NewCaseService(caseRepo)
	bikeSvc := services.NewBikeService(bikeRepo)
	contactSvc := services.NewContactService(contactRepo)
	interactionSvc := services.NewInteractionService(interactionRepo, caseSvc)
	documentSvc := services.NewDocumentService(documentRepo, caseSvc, storageSvc)
	billingSvc := services.NewBillingService(cfg.BillingAPIKey, cfg.BillingAPISecret, cfg.BillingWebhookSecret, cfg.BillingBaseURL)
	subscriptionSvc := services.NewSubscriptionService(subscriptionRepo, workspaceRepo, billingSvc)

	// Handlers
	authHandlers := handlers.NewAuthHandlers(authSvc, userSvc, cfg.AppBaseURL)
	userHandlers := handlers.NewUserHandlers(userSvc)
	workspaceHandlers := handlers.NewWorkspaceHandlers(workspaceSvc)
	caseHandlers := handlers.NewCaseHandlers(caseSvc, interactionSvc)
	bikeHandlers := handlers.NewBikeHandlers(bikeSvc)
	contactHandlers := handlers.NewContactHandlers(contactSvc)
	documentHandlers := handlers.NewDocumentHandlers(documentSvc)
	subscriptionHandlers := handlers.NewSubscriptionHandlers(subscriptionSvc)
	webhookHandlers := handlers.NewWebhookHandlers(billingSvc, subscriptionSvc)
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc)

	scheduler, err := background.NewJobScheduler(subscriptionSvc, userRepo, mailer, cfg.AppBaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create job scheduler")
	}
	scheduler.Start()
	defer func() {
		if err := scheduler.Stop(); err != nil {
			log.Warn().Err(err).Msg("failed to stop job scheduler")
		}
	}()

	e := echo.New()
	e.HideBanner = true
	e.Pre(echoMiddleware.RemoveTrailingSlash())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.RequestID())
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins:     []string{cfg.AppBaseURL},
		AllowCredentials: true,
	}))

	sessionResolver := appMiddleware.NewSessionResolver(tokenSvc, userRepo)
	e.Use(sessionResolver.Resolve)

	// Public routes
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)
	e.GET("/health/detailed", healthHandlers.DetailedHealth)

	e.POST("/v1/auth/login", authHandlers.Login)
	e.POST("/v1/auth/change-password", authHandlers.ChangePassword)
	e.GET("/v1/auth/session", authHandlers.Session)
	e.POST("/v1/auth/logout", authHandlers.Logout)
	e.POST("/v1/webhooks/billing", webhookHandlers.HandleBillingWebhook)

	// Authenticated routes
	api := e.Group("/v1", appMiddleware.RequireSession)
	api.GET("/me", authHandlers.Me)
	api.POST("/auth/onboarding/complete", authHandlers.CompleteOnboarding)

	admin := api.Group("", appMiddleware.RequireSuperuser)
	admin.POST("/users", userHandlers.CreateUser)
	admin.PUT("/users/:id", userHandlers.UpdateUser)
	admin.DELETE("/users/:id", userHandlers.DeleteUser)
	admin.GET("/users/:id/distributions", userHandlers.ListDistributions)
	admin.POST("/users/:id/distributions/:did/confirm", userHandlers.ConfirmDistribution)
	api.GET("/users", userHandlers.ListUsers)
	api.GET("/users/:id", userHandlers.GetUser)

	api.GET("/workspaces", workspaceHandlers.ListWorkspaces)
	api.GET("/workspaces/:id", workspaceHandlers.GetWorkspace)
	admin.POST("/workspaces", workspaceHandlers.CreateWorkspace)
	admin.PUT("/workspaces/:id", workspaceHandlers.UpdateWorkspace)
	admin.DELETE("/workspaces/:id", workspaceHandlers.DeleteWorkspace)

	api.POST("/cases", caseHandlers.CreateCase)
	api.GET("/cases", caseHandlers.ListCases)
	api.GET("/cases/:id", caseHandlers.GetCase)
	api.PUT("/cases/:id", caseHandlers.UpdateCase)
	api.DELETE("/cases/:id", caseHandlers.DeleteCase)
	api.POST("/cases/:id/interactions", caseHandlers.CreateInteraction)
	api.GET("/cases/:id/interactions", caseHandlers.ListInteractions)
	api.DELETE("/cases/:id/interactions/:iid", caseHandlers.DeleteInteraction)
	api.POST("/cases/:id/documents", documentHandlers.UploadDocument)
	api.GET("/cases/:id/documents", documentHandlers.ListDocuments)
	api.GET("/cases/:id/documents/:did/url", documentHandlers.GetDocumentURL)
	api.DELETE("/cases/:id/documents/:did", documentHandlers.DeleteDocument)

	api.POST("/bikes", bikeHandlers.CreateBike)
	api.GET("/bikes", bikeHandlers.ListBikes)
	api.GET("/bikes/:id", bikeHandlers.GetBike)
	api.PUT("/bikes/:id", bikeHandlers.UpdateBike)
	api.DELETE("/bikes/:id", bikeHandlers.DeleteBike)

	api.POST("/contacts", contactHandlers.CreateContact)
	api.GET("/contacts", contactHandlers.ListContacts)
	api.GET("/contacts/:id", contactHandlers.GetContact)
	api.PUT("/contacts/:id", contactHandlers.UpdateContact)
	api.DELETE("/contacts/:id", contactHandlers.DeleteContact)

	api.GET("/plans", subscriptionHandlers.ListPlans)
	api.GET("/subscriptions", subscriptionHandlers.ListSubscriptions)
	api.GET("/subscriptions/:id", subscriptionHandlers.GetSubscription)
	api.POST("/subscriptions", subscriptionHandlers.CreateSubscription)
	api.POST("/subscriptions/:id/cancel", subscriptionHandlers.CancelSubscription)

	// Graceful shutdown
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Port)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
	log.Info().Msg("server stopped")
}
