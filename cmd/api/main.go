package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"database/sql"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/minhvt/finbook/internal/config"
	"github.com/minhvt/finbook/internal/handler"
	"github.com/minhvt/finbook/internal/integrations/aigateway"
	"github.com/minhvt/finbook/internal/integrations/rates"
	"github.com/minhvt/finbook/internal/jobs"
	"github.com/minhvt/finbook/internal/middleware"
	"github.com/minhvt/finbook/internal/repository"
	"github.com/minhvt/finbook/internal/service"
	"github.com/minhvt/finbook/internal/utils/email"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
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
	repo := repository.NewRepository(db)
	svc := service.NewService(repo, logger, cfg)
	gateway := aigateway.NewClient(cfg, logger)
	ratesClient := rates.NewClient(cfg, logger)
	h := handler.NewHandler(svc, gateway, ratesClient, logger)

	// Nightly balance audit
	var sender *email.Sender
	if cfg.SMTPConfigured() {
		sender = email.NewSender(cfg, logger)
	}
	auditor := jobs.NewAuditor(repo, sender, logger)
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.AuditSchedule, auditor.Run); err != nil {
		logger.Fatalf("Failed to schedule balance audit: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Setup router
	r := mux.NewRouter()
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	// Public routes
	r.HandleFunc("/register", h.Register).Methods("POST")
	r.HandleFunc("/login", h.Login).Methods("POST")
	// Protected routes
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(cfg))
	authRouter.HandleFunc("/accounts", h.ListAccounts).Methods("GET")
	authRouter.HandleFunc("/accounts", h.CreateAccount).Methods("POST")
	authRouter.HandleFunc("/accounts/{id}", h.UpdateAccount).Methods("PUT")
	authRouter.HandleFunc("/accounts/{id}", h.DeleteAccount).Methods("DELETE")
	authRouter.HandleFunc("/transactions", h.ListTransactions).Methods("GET")
	authRouter.HandleFunc("/transactions", h.CreateTransaction).Methods("POST")
	authRouter.HandleFunc("/transactions/{id}", h.UpdateTransaction).Methods("PUT")
	authRouter.HandleFunc("/transactions/{id}", h.DeleteTransaction).Methods("DELETE")
	authRouter.HandleFunc("/summary", h.Summary).Methods("GET")
	authRouter.HandleFunc("/reports", h.Report).Methods("GET")
	authRouter.HandleFunc("/rates", h.Rates).Methods("GET")
	authRouter.HandleFunc("/chat", h.Chat).Methods("POST")

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:        addr,
		Handler:     r,
		ReadTimeout: 10 * time.Second,
		// No WriteTimeout: /chat streams for as long as the gateway does.
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
