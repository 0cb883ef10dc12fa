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

	"github.com/alphios72/NewsinsightUI/internal"
	"github.com/alphios72/NewsinsightUI/internal/auth"
	authPostgres "github.com/alphios72/NewsinsightUI/internal/auth/postgres"
	"github.com/alphios72/NewsinsightUI/internal/dashboard"
	dashboardPostgres "github.com/alphios72/NewsinsightUI/internal/dashboard/postgres"
	"github.com/alphios72/NewsinsightUI/internal/permission"
	permissionPostgres "github.com/alphios72/NewsinsightUI/internal/permission/postgres"
	"github.com/alphios72/NewsinsightUI/internal/records"
	recordsPostgres "github.com/alphios72/NewsinsightUI/internal/records/postgres"
	"github.com/alphios72/NewsinsightUI/internal/schema"
	"github.com/alphios72/NewsinsightUI/internal/transport"
	"github.com/alphios72/NewsinsightUI/internal/transport/rest"
	"github.com/alphios72/NewsinsightUI/internal/uiconfig"
	"github.com/alphios72/NewsinsightUI/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server backing the admin dashboard`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	Gorm   *gorm.DB
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	setupRoutes(deps)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
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

func setupRoutes(deps *Dependencies) {
	lg := deps.Logger
	baseHandler := transport.NewBaseHandler(lg)

	// Session issuer over the credential store.
	userRepo := authPostgres.NewRepository(deps.Gorm)
	tokenGen := auth.NewJWTTokenGenerator(deps.Config.Security.SessionSecret, deps.Config.Security.SessionDuration)
	authService := auth.NewService(userRepo, tokenGen, deps.Config.Security.BCryptCost)
	authHandler := auth.NewHandler(authService, deps.Config.Server.ServesHTTPS())

	// Schema introspection and the permission matrix.
	introspector := schema.NewIntrospector(deps.DB)
	permissionRepo := permissionPostgres.NewPermissionRepository(deps.Gorm)
	permissionService := permission.NewService(permissionRepo, lg)
	labelStore := uiconfig.NewLabelStore(deps.Config.Labels.Path)
	permissionHandler := permission.NewHandler(baseHandler, permissionService, introspector, labelStore)

	// Generic CRUD over introspected tables.
	recordRepo := recordsPostgres.NewRecordRepository(deps.DB)
	recordService := records.NewService(introspector, permissionService, recordRepo, lg)
	recordsHandler := records.NewHandler(baseHandler, recordService, introspector, permissionService, labelStore)

	// Overview page and sidebar.
	dashboardRepo := dashboardPostgres.NewDashboardRepository(deps.DB)
	dashboardService := dashboard.NewService(dashboardRepo, introspector, lg)
	sidebarBuilder := dashboard.NewSidebarBuilder(introspector, permissionService, labelStore)
	dashboardHandler := dashboard.NewHandler(baseHandler, dashboardService, sidebarBuilder)

	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, authHandler, authService, recordsHandler, permissionHandler, dashboardHandler, lg)
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Server.Environment)

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := initGorm(db)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}

	return &Dependencies{
		Config: config,
		Logger: logger.LoggerWrapper(),
		DB:     db,
		Gorm:   gormDB,
		Router: chi.NewRouter(),
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

// initGorm layers gorm over the already-open pgx connection so both query
// layers share one pool.
func initGorm(db *sqlx.DB) (*gorm.DB, error) {
	return gorm.Open(gormPostgres.New(gormPostgres.Config{
		Conn: db.DB,
	}), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Warn),
	})
}
