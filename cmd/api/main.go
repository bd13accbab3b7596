package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gorilla/handlers"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/dailyaura/journal-service/internal/config"
	"github.com/dailyaura/journal-service/internal/handler"
	"github.com/dailyaura/journal-service/internal/integrations/google"
	"github.com/dailyaura/journal-service/internal/repository"
	"github.com/dailyaura/journal-service/internal/service"
	"github.com/dailyaura/journal-service/internal/token"
	"github.com/dailyaura/journal-service/internal/utils/email"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Token issuer must be valid before the server accepts any traffic
	issuer, err := token.NewIssuer(cfg.JWTSecret, token.DefaultTTL)
	if err != nil {
		logger.Fatalf("Failed to initialize token issuer: %v", err)
	}

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Initialize layers
	userRepo := repository.NewUserRepository(db)
	journalRepo := repository.NewJournalRepository(db)
	mailer := email.NewSender(cfg, logger)
	googleClient := google.NewClient(cfg)
	authSvc := service.NewAuthService(userRepo, issuer, mailer, logger, cfg.FrontendURL)
	journalSvc := service.NewJournalService(journalRepo, logger)
	h := handler.NewHandler(authSvc, journalSvc, googleClient, logger, cfg.FrontendURL)

	// Setup router
	r := handler.NewRouter(h, issuer)

	corsHandler := handlers.CORS(
		handlers.AllowedOrigins(strings.Split(cfg.AllowedOrigins, ",")),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "OPTIONS"}),
	)

	// Expired reset tokens are already unusable; sweep them off user rows
	c := cron.New()
	if _, err := c.AddFunc("@hourly", func() {
		n, err := userRepo.ClearExpiredResetTokens(context.Background())
		if err != nil {
			logger.Errorf("Failed to clear expired reset tokens: %v", err)
			return
		}
		if n > 0 {
			logger.Infof("Cleared %d expired reset tokens", n)
		}
	}); err != nil {
		logger.Fatalf("Failed to schedule reset token sweep: %v", err)
	}
	c.Start()
	defer c.Stop()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      corsHandler(r),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
