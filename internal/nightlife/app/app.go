package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpapi "github.com/aussiebroadwan/nightlife/internal/nightlife/http"
	"github.com/aussiebroadwan/nightlife/internal/nightlife/service"
	"github.com/aussiebroadwan/nightlife/internal/nightlife/store"
	"github.com/aussiebroadwan/nightlife/internal/nightlife/store/drivers/postgres"
	redisstore "github.com/aussiebroadwan/nightlife/internal/nightlife/store/drivers/redis"
	"github.com/aussiebroadwan/nightlife/internal/nightlife/store/drivers/sqlite"
	"github.com/aussiebroadwan/nightlife/pkg/cryptox"
	"github.com/aussiebroadwan/nightlife/pkg/jwtx"
	"github.com/aussiebroadwan/nightlife/pkg/slogx"
	"github.com/aussiebroadwan/nightlife/pkg/yelp"
)

// BuildVersion is overridden at build time via -ldflags "-X".
var BuildVersion = "v0.1.0"

const cookieIssuer = "nightlife"

// Application encapsulates the nightlife service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db            store.Store
	sessions      store.Sessions
	redisSessions *redisstore.Sessions // nil unless SESSION_BACKEND=redis

	authService         *service.AuthService
	attendanceService   *service.AttendanceService
	directoryService    *service.DirectoryService
	housekeepingService *service.HousekeepingService
	providers           *service.IdentityProviders

	server *http.Server
	router *httpapi.Router
}

// New builds the application. providers are the identity provider
// implementations to enable; the service itself ships none.
func New(cfg Config, providers ...service.IdentityProvider) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "nightlife",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
		providers: service.NewIdentityProviders(providers...),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}
	if err := app.initSessions(); err != nil {
		_ = app.db.Close()
		return nil, err
	}
	app.initServices()
	if err := app.initHTTP(); err != nil {
		_ = app.closeStores()
		return nil, err
	}

	return app, nil
}

// Handler returns the fully wired HTTP handler.
func (app *Application) Handler() http.Handler {
	return app.router
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	if app.housekeepingService != nil {
		if err := app.housekeepingService.Start(); err != nil {
			return fmt.Errorf("start housekeeping: %w", err)
		}
	}

	app.logger.Info("nightlife service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			_ = app.Shutdown()
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown stops the server, waits for in-flight requests up to the grace
// period, then closes the stores.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down nightlife service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if app.housekeepingService != nil {
		app.housekeepingService.Stop()
	}

	if err := app.closeStores(); err != nil {
		return err
	}

	app.logger.Info("nightlife service stopped")
	return nil
}

func (app *Application) closeStores() error {
	if app.redisSessions != nil {
		if err := app.redisSessions.Close(); err != nil {
			app.logger.Error("error closing redis", "error", err)
		}
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}
	return nil
}

// OpenStore opens the configured SQL store: postgres when DATABASE_URL is
// set, sqlite otherwise.
func OpenStore(ctx context.Context, cfg Config) (store.Store, error) {
	if cfg.DatabaseURL != "" {
		db, err := postgres.NewStore(ctx, cfg.DatabaseURL, cfg.DBMaxConns)
		if err != nil {
			return nil, err
		}
		return db, nil
	}

	db, err := sqlite.NewStore(cfg.DatabaseFile, cfg.DBMaxConns)
	if err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate applies schema migrations and closes the store.
func Migrate(cfg Config) error {
	db, err := OpenStore(context.Background(), cfg)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.ApplyMigrations(); err != nil {
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}
	return nil
}

func (app *Application) initDatabase() error {
	db, err := OpenStore(context.Background(), app.cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	driver := "sqlite"
	if app.cfg.DatabaseURL != "" {
		driver = "postgres"
	}
	app.logger.Info("database migrations applied successfully", "driver", driver, "max_conns", app.cfg.DBMaxConns)
	return nil
}

func (app *Application) initSessions() error {
	if app.cfg.SessionBackend != SessionBackendRedis {
		app.sessions = app.db.Sessions()
		return nil
	}

	client, err := redisstore.NewClient(context.Background(), app.cfg.RedisAddr, app.cfg.RedisPassword)
	if err != nil {
		return fmt.Errorf("failed to connect session store: %w", err)
	}
	app.redisSessions = redisstore.NewSessions(client)
	app.sessions = app.redisSessions
	app.logger.Info("sessions stored in redis", "addr", app.cfg.RedisAddr)
	return nil
}

func (app *Application) initServices() {
	app.authService = &service.AuthService{
		Store:      app.db,
		Sessions:   app.sessions,
		SessionTTL: app.cfg.SessionTTL,
	}
	app.attendanceService = &service.AttendanceService{Store: app.db}

	if app.cfg.YelpAPIKey == "" {
		app.logger.Warn("YELP_API_KEY is not set; directory routes will fail")
	}
	app.directoryService = &service.DirectoryService{
		Client: yelp.NewClient(app.cfg.YelpBaseURL, app.cfg.YelpAPIKey),
	}

	// Redis expires sessions by itself.
	if app.redisSessions == nil {
		app.housekeepingService = service.NewHousekeepingService(
			app.sessions,
			app.logger,
			app.cfg.HousekeepingSchedule,
		)
	}

	for name := range app.cfg.Providers {
		if _, err := app.providers.Get(name); err != nil {
			app.logger.Warn("identity provider credentials set but no implementation is linked", "provider", name)
		}
	}
}

func (app *Application) initHTTP() error {
	secret := app.cfg.SessionSecret
	if secret == "" {
		// Validate only lets an empty secret through in dev.
		generated, err := cryptox.GenerateToken(cryptox.TokenSize256)
		if err != nil {
			return err
		}
		secret = generated
		app.logger.Warn("SESSION_SECRET not set; using a random secret, sessions will not survive a restart")
	}
	signer, err := jwtx.NewCookieSigner(secret, cookieIssuer)
	if err != nil {
		return fmt.Errorf("failed to create cookie signer: %w", err)
	}

	opts := httpapi.RouterOptions{
		CORSOrigins:      app.cfg.CORSOrigins,
		RequestTimeout:   app.cfg.RequestTimeout,
		LoginRedirectURL: app.cfg.LoginRedirectURL,
	}
	if app.redisSessions != nil {
		opts.SessionStore = app.redisSessions
	}

	router := httpapi.NewRouter(BuildVersion, app.db, app.logger, opts)
	router.AuthService = app.authService
	router.AttendanceService = app.attendanceService
	router.DirectoryService = app.directoryService
	router.Providers = app.providers
	router.Cookies = &httpapi.SessionCookies{
		Signer: signer,
		Auth:   app.authService,
		Issuer: cookieIssuer,
		Secure: app.cfg.Env != "dev",
	}
	router.ApplyRoutes()
	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: app.cfg.ReadHeaderTimeout,
		IdleTimeout:       app.cfg.IdleTimeout,
	}
	return nil
}
