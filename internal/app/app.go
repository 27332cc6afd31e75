package app

import (
	"context"
	"fmt"
	"net/http"

	"bookkeeping-app-go/internal/config"
	"bookkeeping-app-go/internal/db"
	dashboarddomain "bookkeeping-app-go/internal/domain/dashboard"
	documentsdomain "bookkeeping-app-go/internal/domain/documents"
	duedatesdomain "bookkeeping-app-go/internal/domain/duedates"
	grossdomain "bookkeeping-app-go/internal/domain/grossrecords"
	messagesdomain "bookkeeping-app-go/internal/domain/messages"
	personalinfodomain "bookkeeping-app-go/internal/domain/personalinfo"
	userdomain "bookkeeping-app-go/internal/domain/user"
	"bookkeeping-app-go/internal/notify"
	"bookkeeping-app-go/internal/repository/inmemory"
	dashboardrepo "bookkeeping-app-go/internal/repository/postgres/dashboard"
	documentsrepo "bookkeeping-app-go/internal/repository/postgres/documents"
	grossrepo "bookkeeping-app-go/internal/repository/postgres/grossrecords"
	messagesrepo "bookkeeping-app-go/internal/repository/postgres/messages"
	personalinforepo "bookkeeping-app-go/internal/repository/postgres/personalinfo"
	userrepo "bookkeeping-app-go/internal/repository/postgres/user"
	"bookkeeping-app-go/internal/storage"
	"bookkeeping-app-go/internal/transport/httpserver"
	"bookkeeping-app-go/internal/transport/httpserver/handler"
	"bookkeeping-app-go/pkg/logger"
	"bookkeeping-app-go/pkg/metrics"
	"gorm.io/gorm"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
}

func New(ctx context.Context, log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}

	log.Info("app: initializing database", "driver", cfg.DB.Driver)
	dbConn, err := db.Open(cfg.DB, log)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(dbConn, cfg.DB.Driver, log); err != nil {
		closeDB(dbConn)
		return nil, err
	}

	log.Info("app: initializing router")
	router, err := NewHandler(ctx, cfg, dbConn, log)
	if err != nil {
		closeDB(dbConn)
		return nil, err
	}

	log.Info("app: initializing http server")
	srv := httpserver.New(cfg, router)

	return &App{
		cfg:        cfg,
		httpServer: srv,
		db:         dbConn,
	}, nil
}

// NewHandler wires repositories, services and the router on an already
// migrated database and seeds the default forms and reminders.
func NewHandler(ctx context.Context, cfg config.Config, dbConn *gorm.DB, log logger.Logger) (http.Handler, error) {
	files, err := storage.NewDiskStorage(cfg.Uploads.Dir)
	if err != nil {
		return nil, fmt.Errorf("init upload storage: %w", err)
	}

	users := userdomain.NewService(
		userrepo.NewPostgres(dbConn),
		notify.NewLogResetNotifier(log, cfg.Auth.ResetURLBase),
		userdomain.Options{BcryptCost: cfg.Auth.BcryptCost, ResetTokenTTL: cfg.Auth.ResetTokenTTL},
	)
	dashboard := dashboarddomain.NewService(dashboardrepo.NewPostgres(dbConn))
	personalInfo := personalinfodomain.NewService(personalinforepo.NewPostgres(dbConn))
	documents := documentsdomain.NewService(
		documentsrepo.NewPostgres(dbConn),
		files,
		inmemory.NewFormsCache(),
		dashboard,
		documentsdomain.Options{
			CacheTTL:     cfg.Forms.CacheTTL,
			MaxFileBytes: cfg.Uploads.MaxFileBytes,
			Concurrency:  cfg.Uploads.Concurrency,
		},
	)

	if err := documents.SeedDefaultForms(ctx); err != nil {
		log.InternalError("app: seeding bir forms failed", err)
	}
	if err := dashboard.SeedDefaultReminders(ctx); err != nil {
		log.InternalError("app: seeding reminders failed", err)
	}

	handlers := handler.New(handler.Services{
		Users:        users,
		PersonalInfo: personalInfo,
		Documents:    documents,
		GrossRecords: grossdomain.NewService(grossrepo.NewPostgres(dbConn), dashboard),
		Messages:     messagesdomain.NewService(messagesrepo.NewPostgres(dbConn), dashboard),
		Dashboard:    dashboard,
		DueDates:     duedatesdomain.NewService(personalInfo, cfg.Location()),
	}, log)

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New(cfg.Metrics.Namespace)
	}

	return httpserver.NewRouter(cfg, handlers, m, log), nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func closeDB(dbConn *gorm.DB) {
	if sqlDB, err := dbConn.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
