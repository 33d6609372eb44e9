package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/shivam99392677/anwesha26-sub000/internal"
	"github.com/shivam99392677/anwesha26-sub000/internal/admin"
	adminPostgres "github.com/shivam99392677/anwesha26-sub000/internal/admin/postgres"
	"github.com/shivam99392677/anwesha26-sub000/internal/auth"
	authPostgres "github.com/shivam99392677/anwesha26-sub000/internal/auth/postgres"
	"github.com/shivam99392677/anwesha26-sub000/internal/checkin"
	checkinPostgres "github.com/shivam99392677/anwesha26-sub000/internal/checkin/postgres"
	"github.com/shivam99392677/anwesha26-sub000/internal/core/events"
	"github.com/shivam99392677/anwesha26-sub000/internal/credential"
	"github.com/shivam99392677/anwesha26-sub000/internal/email"
	"github.com/shivam99392677/anwesha26-sub000/internal/event"
	eventPostgres "github.com/shivam99392677/anwesha26-sub000/internal/event/postgres"
	"github.com/shivam99392677/anwesha26-sub000/internal/gateway"
	"github.com/shivam99392677/anwesha26-sub000/internal/payment"
	paymentPostgres "github.com/shivam99392677/anwesha26-sub000/internal/payment/postgres"
	"github.com/shivam99392677/anwesha26-sub000/internal/store"
	storePostgres "github.com/shivam99392677/anwesha26-sub000/internal/store/postgres"
	"github.com/shivam99392677/anwesha26-sub000/internal/transport/rest"
	"github.com/shivam99392677/anwesha26-sub000/internal/user"
	userPostgres "github.com/shivam99392677/anwesha26-sub000/internal/user/postgres"
	"github.com/shivam99392677/anwesha26-sub000/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config   *internal.Config
	DB       *sqlx.DB
	Router   *chi.Mux
	Handlers rest.Handlers
	EventBus *events.EventBus
	Logger   *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, deps.Handlers, deps.Config.Server.AllowedOrigins, deps.Logger)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		// let in-flight event handlers (mail sends) finish before closing the DB
		deps.EventBus.Drain()
		if err := deps.DB.Close(); err != nil {
			slog.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(os.Getenv("APP_ENV"))
	log := logger.LoggerWrapper()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}

	eventBus := events.NewEventBus(log)
	codec := credential.NewCodec(config.Credential.QRSecret)

	// auth
	authRepo := authPostgres.NewRepository(gormDB)
	tokenGen := auth.NewJWTTokenGenerator(config.Security)
	authService := auth.NewService(authRepo, tokenGen, config.Security)
	authHandler := auth.NewHandler(authService)

	// users and registration
	userRepo := userPostgres.NewUserRepository(gormDB)
	userService := user.NewService(userRepo, authService, codec, eventBus, log)
	userHandler := user.NewHandler(userService)

	// events
	eventRepo := eventPostgres.NewEventRepository(gormDB)
	eventService := event.NewService(eventRepo, log)
	eventHandler := event.NewHandler(eventService)

	// merch store
	storeRepo := storePostgres.NewStoreRepository(gormDB)
	storeService := store.NewService(storeRepo, log)
	storeHandler := store.NewHandler(storeService)

	// payments: razorpay plus the encrypted tpsl gateway
	cipher := gateway.NewCipher(gateway.CipherConfig{
		RequestKey:      config.Gateway.RequestKey,
		RequestSalt:     config.Gateway.RequestSalt,
		ResponseKey:     config.Gateway.ResponseKey,
		ResponseSalt:    config.Gateway.ResponseSalt,
		ResponseHashKey: config.Gateway.ResponseHashKey,
		MerchantID:      config.Gateway.MerchantID,
	})
	gatewayClient := gateway.NewClient(cipher, gateway.ClientConfig{
		Endpoint:   config.Gateway.Endpoint,
		MerchantID: config.Gateway.MerchantID,
		Timeout:    config.Gateway.Timeout,
	}, log)
	razorpayClient := payment.NewRazorpayClient(config.Razorpay, log)
	paymentRepo := paymentPostgres.NewPaymentRepository(gormDB)
	paymentService := payment.NewService(paymentRepo, razorpayClient, cipher, gatewayClient, config.Gateway, storeService, eventBus, log)
	paymentHandler := payment.NewHandler(paymentService)
	webhookHandler := payment.NewWebhookHandler(paymentService,
		config.Server.SuccessRedirect, config.Server.FailureRedirect)

	// QR check-in
	checkinRepo := checkinPostgres.NewCheckInRepository(gormDB)
	checkinService := checkin.NewService(checkinRepo, eventRepo, codec, log)
	checkinHandler := checkin.NewHandler(checkinService)

	// admin exports and broadcast
	mailer := email.NewSMTPMailer(config.SMTP)
	adminRepo := adminPostgres.NewAdminRepository(gormDB)
	adminService := admin.NewService(adminRepo, mailer, log)
	adminHandler := admin.NewHandler(adminService)

	// outbound mail driven by domain events
	subscriber := email.NewSubscriber(mailer, userService, config.Server.BaseURL, log)
	subscriber.Register(eventBus)

	return &Dependencies{
		Config:   config,
		Logger:   log,
		DB:       db,
		Router:   chi.NewRouter(),
		EventBus: eventBus,
		Handlers: rest.Handlers{
			Auth:    authHandler,
			User:    userHandler,
			Event:   eventHandler,
			Store:   storeHandler,
			Payment: paymentHandler,
			Webhook: webhookHandler,
			CheckIn: checkinHandler,
			Admin:   adminHandler,
		},
	}, nil
}

// initDB initializes the database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// verify connection; close underlying *sql.DB on failure
	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
