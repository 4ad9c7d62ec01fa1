package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/VArterJr/neotypa-booktabs/internal/auth"
	"github.com/VArterJr/neotypa-booktabs/internal/config"
	"github.com/VArterJr/neotypa-booktabs/internal/handler"
	"github.com/VArterJr/neotypa-booktabs/internal/middleware"
	"github.com/VArterJr/neotypa-booktabs/internal/repository/postgres"
	"github.com/VArterJr/neotypa-booktabs/internal/service"
	"github.com/VArterJr/neotypa-booktabs/internal/store"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	var logOut io.Writer = os.Stdout
	if cfg.LogDir != "" {
		logFile, err := config.SetupLogFile(cfg.LogDir, 10)
		if err != nil {
			log.Fatalf("Failed to set up log file: %v", err)
		}
		defer logFile.Close()
		logOut = io.MultiWriter(os.Stdout, logFile)
	}

	logger := slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	tokens, err := auth.NewTokenManager(cfg.JWTSecret, time.Duration(cfg.TokenTTLHours)*time.Hour, logger)
	if err != nil {
		log.Fatalf("Failed to create token manager: %v", err)
	}

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected",
		"max_conns", 25,
		"min_conns", 5,
	)

	tables := postgres.NewTableNames(cfg.TablePrefix)
	if err := store.Migrate(ctx, pool, tables); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	logger.Info("schema migrated")

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	workspaceRepo := postgres.NewWorkspaceRepository(repoConfig)
	folderRepo := postgres.NewFolderRepository(repoConfig)
	groupRepo := postgres.NewGroupRepository(repoConfig)
	bookmarkRepo := postgres.NewBookmarkRepository(repoConfig)
	tagRepo := postgres.NewTagRepository(repoConfig)
	userRepo := postgres.NewUserRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool, logger)

	// Create services
	workspaceService := service.NewWorkspaceService(workspaceRepo, txManager, logger)
	folderService := service.NewFolderService(folderRepo, workspaceRepo, txManager, logger)
	groupService := service.NewGroupService(groupRepo, folderRepo, txManager, logger)
	bookmarkService := service.NewBookmarkService(bookmarkRepo, groupRepo, tagRepo, txManager, logger)
	userService := service.NewUserService(userRepo, workspaceRepo, folderRepo, groupRepo, txManager, logger)
	stateService := service.NewStateService(workspaceRepo, folderRepo, groupRepo, bookmarkRepo, tagRepo, logger)
	portingService := service.NewPortingService(workspaceRepo, folderRepo, groupRepo, bookmarkRepo, tagRepo, stateService, txManager, logger)

	// Create handlers
	authHandler := handler.NewAuthHandler(userService, tokens, logger)
	stateHandler := handler.NewStateHandler(stateService, logger)
	preferencesHandler := handler.NewPreferencesHandler(userService, logger)
	workspaceHandler := handler.NewWorkspaceHandler(workspaceService, logger)
	folderHandler := handler.NewFolderHandler(folderService, logger)
	groupHandler := handler.NewGroupHandler(groupService, logger)
	bookmarkHandler := handler.NewBookmarkHandler(bookmarkService, logger)
	portingHandler := handler.NewPortingHandler(portingService, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", stateHandler.HealthCheck)

	// Auth routes
	mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("GET /api/auth/me", authHandler.Me)

	// Full-state and preferences routes
	mux.HandleFunc("GET /api/state", stateHandler.GetState)
	mux.HandleFunc("GET /api/users/me/preferences", preferencesHandler.GetPreferences)
	mux.HandleFunc("PATCH /api/users/me/preferences", preferencesHandler.UpdatePreferences)

	// Workspace routes (reorder must come before {id} routes)
	mux.HandleFunc("POST /api/workspaces", workspaceHandler.Create)
	mux.HandleFunc("PUT /api/workspaces/reorder", workspaceHandler.Reorder)
	mux.HandleFunc("PATCH /api/workspaces/{id}", workspaceHandler.Rename)
	mux.HandleFunc("DELETE /api/workspaces/{id}", workspaceHandler.Delete)

	// Folder routes
	mux.HandleFunc("POST /api/folders", folderHandler.Create)
	mux.HandleFunc("PUT /api/folders/reorder", folderHandler.Reorder)
	mux.HandleFunc("PATCH /api/folders/{id}", folderHandler.Rename)
	mux.HandleFunc("DELETE /api/folders/{id}", folderHandler.Delete)
	mux.HandleFunc("PUT /api/folders/{id}/move", folderHandler.Move)

	// Group routes
	mux.HandleFunc("POST /api/groups", groupHandler.Create)
	mux.HandleFunc("PUT /api/groups/reorder", groupHandler.Reorder)
	mux.HandleFunc("PATCH /api/groups/{id}", groupHandler.Rename)
	mux.HandleFunc("DELETE /api/groups/{id}", groupHandler.Delete)
	mux.HandleFunc("PUT /api/groups/{id}/move", groupHandler.Move)

	// Bookmark routes
	mux.HandleFunc("POST /api/bookmarks", bookmarkHandler.Create)
	mux.HandleFunc("PUT /api/bookmarks/reorder", bookmarkHandler.Reorder)
	mux.HandleFunc("PATCH /api/bookmarks/{id}", bookmarkHandler.Update)
	mux.HandleFunc("DELETE /api/bookmarks/{id}", bookmarkHandler.Delete)
	mux.HandleFunc("PUT /api/bookmarks/{id}/move", bookmarkHandler.Move)

	// Import/export routes
	mux.HandleFunc("POST /api/import", portingHandler.ImportNetscape)
	mux.HandleFunc("POST /api/import/json", portingHandler.ImportJSON)
	mux.HandleFunc("GET /api/export", portingHandler.Export)

	// Build middleware chain
	var root http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → Auth → Request log → Routes
	root = middleware.RequestLogger(logger)(root)
	root = middleware.Auth(tokens)(root)
	root = middleware.Recovery(logger)(root)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	root = corsHandler.Handler(root)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Serve until interrupted, then drain in-flight requests.
	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "port", cfg.Port)
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown", "error", err)
		}
	}
}
