package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/django102/mono-test-api/docs"
	"github.com/django102/mono-test-api/internal/audit"
	"github.com/django102/mono-test-api/internal/cache"
	"github.com/django102/mono-test-api/internal/config"
	"github.com/django102/mono-test-api/internal/database"
	"github.com/django102/mono-test-api/internal/handlers"
	"github.com/django102/mono-test-api/internal/jobs"
	mW "github.com/django102/mono-test-api/internal/middleware"
	"github.com/django102/mono-test-api/internal/repository/postgres"
	"github.com/django102/mono-test-api/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/viper"
	httpSwagger "github.com/swaggo/http-swagger"
)

// @title Mono Ledger API
// @version 1.0
// @description Double-entry banking ledger: accounts, transfers and settlement
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	viper.BindEnv("database.host", "DATABASE_HOST")
	viper.BindEnv("database.port", "DATABASE_PORT")
	viper.BindEnv("database.user", "DATABASE_USER")
	viper.BindEnv("database.password", "DATABASE_PASSWORD")
	viper.BindEnv("database.name", "DATABASE_NAME")
	viper.BindEnv("database.ssl_mode", "DATABASE_SSL_MODE")
	viper.BindEnv("database.migrate", "DATABASE_MIGRATE")

	viper.BindEnv("redis.host", "REDIS_HOST")
	viper.BindEnv("redis.port", "REDIS_PORT")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")
	viper.BindEnv("redis.db", "REDIS_DB")

	viper.BindEnv("jwt.secret_key", "JWT_SECRET_KEY")
	viper.BindEnv("jwt.expiry_hours", "JWT_EXPIRY_HOURS")
	viper.BindEnv("argon2.time", "ARGON2_TIME")
	viper.BindEnv("argon2.memory", "ARGON2_MEMORY")
	viper.BindEnv("argon2.threads", "ARGON2_THREADS")
	viper.BindEnv("argon2.key_length", "ARGON2_KEY_LENGTH")
	viper.BindEnv("argon2.salt_length", "ARGON2_SALT_LENGTH")

	viper.BindEnv("banking.max_accounts_per_customer", "BANKING_MAX_ACCOUNTS_PER_CUSTOMER")
	viper.BindEnv("banking.opening_balance", "BANKING_OPENING_BALANCE")
	viper.BindEnv("banking.funding_gl_account", "BANKING_FUNDING_GL_ACCOUNT")
	viper.BindEnv("banking.reference_prefix", "BANKING_REFERENCE_PREFIX")
	viper.BindEnv("banking.cache_ttl", "BANKING_CACHE_TTL")
	viper.BindEnv("banking.reconcile_schedule", "BANKING_RECONCILE_SCHEDULE")
	viper.BindEnv("banking.export_bic", "BANKING_EXPORT_BIC")
	viper.BindEnv("port", "PORT")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Config file not found, using defaults: %v", err)
	}
	viper.SetDefault("port", "8080")

	bankingCfg := config.LoadBanking()
	authCfg := config.LoadAuth()
	if len(authCfg.JWTSecret) == 0 {
		log.Fatal("JWT_SECRET_KEY must be set")
	}

	docs.SwaggerInfo.Host = "localhost:" + viper.GetString("port")

	ctx := context.Background()
	db := database.InitDatabase(ctx)
	defer db.Close()

	redisClient := database.InitRedis(ctx)
	if redisClient != nil {
		defer redisClient.Close()
	}

	store := postgres.NewStore(db)
	auditLogger := audit.NewLogger()
	accountCache := cache.NewAccountCache(redisClient, bankingCfg.CacheTTL)

	ledgerService := services.NewLedgerService(store, auditLogger)
	transactionService := services.NewTransactionService(store, ledgerService,
		services.NewReferenceGenerator(bankingCfg.ReferencePrefix), auditLogger, accountCache)
	sequence := services.NewSequenceAllocator(store.Counters(), bankingCfg.AccountCounterName, bankingCfg.AccountCounterStart)
	accountService := services.NewAccountService(store, sequence, transactionService, ledgerService, bankingCfg, auditLogger, accountCache)
	customerService := services.NewCustomerService(store, accountService, authCfg)
	bankingService := services.NewBankingService(accountService, transactionService, customerService)
	exporter := services.NewISO20022Exporter(bankingCfg.ExportBIC, bankingCfg.Currency)

	accountHandler := handlers.NewAccountHandler(bankingService)
	transferHandler := handlers.NewTransferHandler(bankingService, exporter)
	customerHandler := handlers.NewCustomerHandler(bankingService)

	scheduler, err := jobs.NewScheduler(jobs.NewReconciliationJob(ledgerService, auditLogger, time.Minute), bankingCfg.ReconcileSchedule)
	if err != nil {
		log.Fatalf("Failed to initialize scheduler: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	r := chi.NewRouter()

	r.Use(mW.SecurityHeaders)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Message-Type"},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		status, code := "healthy", http.StatusOK
		if err := db.PingContext(r.Context()); err != nil {
			status, code = "database unavailable", http.StatusServiceUnavailable
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		json.NewEncoder(w).Encode(map[string]string{"status": status})
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/customers", customerHandler.Register)
		r.Post("/customers/login", customerHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(mW.Auth(authCfg.JWTSecret))

			r.Put("/customers", customerHandler.Update)

			r.Post("/accounts", accountHandler.CreateAccount)
			r.Get("/accounts", accountHandler.ListAccounts)
			r.Get("/accounts/{accountNumber}", accountHandler.GetAccount)
			r.Get("/accounts/{accountNumber}/history", accountHandler.GetAccountHistory)

			r.Post("/transfers", transferHandler.InitiateTransfer)
			r.Patch("/transfers/{reference}", transferHandler.UpdateTransfer)
			r.Get("/transfers/{reference}/iso20022", transferHandler.ExportTransfer)
		})
	})

	server := &http.Server{
		Addr:         ":" + viper.GetString("port"),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server stopped")
}
