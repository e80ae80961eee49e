package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"traveldocs-service/internal/infrastructure/config"
	"traveldocs-service/internal/infrastructure/oauth"
	"traveldocs-service/internal/infrastructure/persistence"
	"traveldocs-service/internal/infrastructure/router"
	"traveldocs-service/internal/interface/gmail"
	"traveldocs-service/internal/interface/repository"
	"traveldocs-service/internal/interface/rest"
	"traveldocs-service/internal/usecase"
	"traveldocs-service/pkg/logger"
	"traveldocs-service/pkg/metrics"
	"traveldocs-service/templates"

	domainRepo "traveldocs-service/internal/domain/repository"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Create logger
	log := logger.NewLogger()
	log.Info("Starting Travel Docs Service")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Metrics
	m := metrics.NewMetrics("traveldocs")

	// PostgreSQL
	gormDB, err := gorm.Open(postgres.Open(cfg.PostgresURI), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", "error", err)
	}

	recordRepo := repository.NewGormDocumentRecordRepository(gormDB)
	hotelRepo := repository.NewGormHotelRepository(gormDB)

	// Redis cache in front of the hotel catalog, when configured
	if cfg.RedisAddr != "" {
		redisClient, err := persistence.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			log.Fatal("Failed to connect to Redis", "error", err)
		}
		hotelRepo = repository.NewCachedHotelRepository(hotelRepo, redisClient, cfg.HotelCacheTTL, log)
	}

	// MongoDB archive of raw submissions
	log.Info("Connecting to MongoDB")
	mongoClient, err := persistence.NewMongoClient(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}
	defer mongoClient.Disconnect(ctx)
	archiveRepo := repository.NewMongoSubmissionArchiveRepository(persistence.GetDatabase(mongoClient, cfg.MongoDB))

	// Outbound services
	storageRepo := repository.NewSupabaseStorageRepository(cfg.StorageURL, cfg.StorageKey, cfg.StorageBucket, log)

	var completionRepo domainRepo.CompletionRepository
	if cfg.CompletionAPIKey != "" {
		completionRepo = repository.NewGroqCompletionRepository(cfg.CompletionBaseURL, cfg.CompletionAPIKey, cfg.CompletionModel, log)
	} else {
		log.Warn("No completion API key configured, cover letters use the local template")
	}

	// Optional Gmail link delivery
	var mailRepo domainRepo.MailRepository
	if cfg.MailEnabled() {
		gmailOAuth := oauth.NewGmailOAuth(cfg.GmailClientID, cfg.GmailClientSecret, cfg.GmailRefreshToken, log)
		sender, err := gmail.NewGmailSender(ctx, gmailOAuth.GetTokenSource(ctx), cfg.GmailSender, log)
		if err != nil {
			log.Fatal("Failed to create Gmail sender", "error", err)
		}
		mailRepo = sender
	}

	// Renderers
	registry := router.NewRendererRegistry(log)
	registry.Register(templates.NewFlightTicketPDF())
	registry.Register(templates.NewHotelBookingPDF())
	registry.Register(templates.NewItineraryPDF())
	registry.Register(templates.NewCoverLetterPDF())
	registry.Register(templates.NewFlightTicketHTML())
	registry.Register(templates.NewHotelBookingHTML())
	registry.Register(templates.NewItineraryHTML())
	registry.Register(templates.NewCoverLetterHTML())

	assembler := usecase.NewCoverLetterAssembler(completionRepo, log)
	generator := usecase.NewDocumentGenerator(
		registry,
		storageRepo,
		recordRepo,
		archiveRepo,
		mailRepo,
		assembler,
		log,
		m,
		cfg.SubmissionTimeout,
	)

	// HTTP server
	handler := rest.NewHandler(generator, recordRepo, hotelRepo, log)
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      rest.SetupRouter(handler),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		log.Info("HTTP server listening", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", "error", err)
		}
	}()

	// Wait for termination signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Info("Shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown failed", "error", err)
	}
	log.Info("Service stopped")
}
