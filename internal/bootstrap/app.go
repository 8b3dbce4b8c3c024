package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"license-backend/internal/licenses"
	"license-backend/internal/notifications"
	"license-backend/internal/shared/config"
	"license-backend/internal/shared/server"
	"license-backend/internal/shared/storage/db"
	"license-backend/internal/shared/storage/object"
	localstore "license-backend/internal/shared/storage/object/local"
	s3store "license-backend/internal/shared/storage/object/s3"
)

// App holds shared dependencies for the api and notifier binaries.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore

	LicensesRepo      licenses.Repo
	NotificationsRepo notifications.Repo

	LicenseService      *licenses.Service
	NotificationService *notifications.Service

	// Scheduler is nil when SMTP is not configured.
	Scheduler *notifications.Scheduler

	LicenseHandler      *licenses.Handler
	NotificationHandler *notifications.Handler
}

// Build prepares shared dependencies and the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
	}
	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:              app.Config,
		LicenseHandler:      app.LicenseHandler,
		NotificationHandler: app.NotificationHandler,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.AWSRegion) == "" || strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires AWS_REGION and S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildServices(app *App) {
	var licenseRepo licenses.Repo
	var notificationRepo notifications.Repo
	if app.DB != nil {
		licenseRepo = &licenses.PGRepo{DB: app.DB}
		notificationRepo = notifications.NewPGRepo(app.DB)
	} else {
		licenseRepo = licenses.NewMemoryRepo()
		notificationRepo = notifications.NewMemoryRepo()
	}

	licenseSvc := &licenses.Service{
		Store:  app.Store,
		Repo:   licenseRepo,
		Parser: licenses.NewParser(app.Config.ConditionsSections),
	}
	notificationSvc := notifications.NewService(notificationRepo)

	if app.Config.SMTP.Configured() {
		mailer := notifications.NewSMTPMailer(app.Config.SMTP)
		app.Scheduler = notifications.NewScheduler(
			notificationRepo, mailer, app.Config.SMTP.To, app.Config.PollInterval)
	}

	app.LicensesRepo = licenseRepo
	app.NotificationsRepo = notificationRepo
	app.LicenseService = licenseSvc
	app.NotificationService = notificationSvc
	app.LicenseHandler = licenses.NewHandler(licenseSvc, notificationSvc)
	app.NotificationHandler = notifications.NewHandler(notificationSvc)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
