package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"nextgenaccounts/backend/auth"
	"nextgenaccounts/backend/database"
	"nextgenaccounts/backend/handlers"
	"nextgenaccounts/backend/logger"
	"nextgenaccounts/backend/middleware"
	"nextgenaccounts/backend/migrations"
	"nextgenaccounts/backend/services"
	"nextgenaccounts/backend/storage"
)

func main() {
	noExit := flag.Bool("no-exit", false, "Don't exit after database reset")
	resetDB := flag.Bool("reset-db", false, "Force reset the database")
	flag.Parse()

	logger.Setup()

	isResetDB := os.Getenv("RESET_DB") == "true" || *resetDB
	isDevelopment := os.Getenv("APP_ENV") != "production"

	if isDevelopment {
		log.Info().Msg("running in development environment")
	}

	if err := database.InitDB(); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}

	if err := migrations.RunMigrations(database.DB); err != nil {
		log.Warn().Err(err).Msg("failed to run migrations")
	}

	if isResetDB && !*noExit {
		log.Info().Msg("database reset completed, exiting")
		return
	}

	if err := middleware.InitializeFirebase(); err != nil {
		log.Warn().Err(err).Msg("failed to initialize Firebase, auth token verification disabled")
	}

	store := buildStore()
	txService := services.NewTransactionService(store)

	var provider auth.IdentityProvider
	if client := middleware.AuthClient(); client != nil {
		provider = auth.NewFirebaseProvider(client)
	}
	sessions := auth.NewSessionManager(provider, store)

	r := mux.NewRouter()
	r.Use(middleware.EnableCORS)

	registerRoutes(r, txService, store, sessions, provider)
	registerRoutes(r.PathPrefix("/api").Subrouter(), txService, store, sessions, provider)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Handler:      r,
		Addr:         ":" + port,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	log.Info().Str("port", port).Msg("starting server")
	log.Fatal().Err(srv.ListenAndServe()).Msg("server stopped")
}

// buildStore selects the record store backend. sqlite is the default;
// STORAGE_BACKEND=firestore switches to the hosted document store.
func buildStore() interface {
	storage.TransactionStore
	storage.ProfileStore
} {
	if os.Getenv("STORAGE_BACKEND") == "firestore" {
		projectID := os.Getenv("FIREBASE_PROJECT_ID")
		if projectID == "" {
			projectID = "nextgen-accounts"
		}
		client, err := firestore.NewClient(context.Background(), projectID)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create Firestore client")
		}
		log.Info().Str("project", projectID).Msg("using Firestore record store")
		return storage.NewFirestoreStore(client)
	}
	return storage.NewSQLStore(database.DB)
}

// registerRoutes sets up all API routes
func registerRoutes(r *mux.Router, txService *services.TransactionService, profiles storage.ProfileStore, sessions *auth.SessionManager, provider auth.IdentityProvider) {
	// Public routes (no auth required)
	r.HandleFunc("/health", handlers.HealthCheck).Methods("GET", "OPTIONS")

	sh := handlers.NewSessionHandler(sessions, provider)
	r.HandleFunc("/auth/signup", sh.SignUp).Methods("POST")
	r.HandleFunc("/auth/session", sh.Session).Methods("GET")
	r.HandleFunc("/auth/logout", sh.Logout).Methods("POST")

	protected := r.PathPrefix("").Subrouter()
	protected.Use(middleware.AuthMiddleware)

	th := handlers.NewTransactionHandler(txService)
	protected.HandleFunc("/transactions", th.GetTransactions).Methods("GET")
	protected.HandleFunc("/transactions", th.AddTransaction).Methods("POST")
	protected.HandleFunc("/transactions/stats", th.GetStats).Methods("GET")
	protected.HandleFunc("/transactions/by-category", th.GetByCategory).Methods("GET")
	protected.HandleFunc("/transactions/export", th.ExportTransactions).Methods("GET")
	protected.HandleFunc("/transactions/import", th.ImportTransactions).Methods("POST")
	protected.HandleFunc("/transactions/{id}", th.GetTransaction).Methods("GET")
	protected.HandleFunc("/transactions/{id}", th.UpdateTransaction).Methods("PUT")
	protected.HandleFunc("/transactions/{id}", th.DeleteTransaction).Methods("DELETE")

	uh := handlers.NewUserHandler(profiles)
	protected.HandleFunc("/users/sync", uh.SyncProfile).Methods("POST")
	protected.HandleFunc("/users/{id}", uh.GetProfile).Methods("GET")
}
