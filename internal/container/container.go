package container

import (
	"context"
	"fmt"

	"burntest/adapters/excel"
	"burntest/adapters/postgres"
	"burntest/adapters/storage"
	"burntest/internal/api"
	"burntest/internal/config"
	"burntest/internal/errors"
	"burntest/internal/metrics"
	"burntest/internal/migration"
	"burntest/internal/orders"
	"burntest/ports"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

// Container holds the backend's dependencies and manages their lifecycle
type Container struct {
	Config *config.Config

	// Infrastructure
	DB *sqlx.DB

	Store   ports.OrderStore
	Reports ports.ReportStore
	Service *orders.Service
	Metrics *metrics.Metrics

	logger *zap.Logger
}

// New builds the order store, the report archive and the order service described by cfg
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Container{
		Config: cfg,
		logger: logger,
	}

	if err := c.initStore(ctx); err != nil {
		c.Shutdown(ctx)
		return nil, err
	}
	if err := c.initReports(ctx); err != nil {
		c.Shutdown(ctx)
		return nil, err
	}

	svc, err := orders.NewService(
		c.Store,
		c.Reports,
		excel.NewTemplateExporter(excel.DefaultExportConfig(), logger),
		excel.NewSheetReader(logger),
		orders.Config{UploadDir: cfg.Storage.UploadDir, TemplateDir: cfg.Storage.TemplateDir},
		logger,
	)
	if err != nil {
		c.Shutdown(ctx)
		return nil, err
	}
	c.Service = svc

	if cfg.Metrics.Enabled {
		c.Metrics = metrics.New()
	}
	return c, nil
}

func (c *Container) initStore(ctx context.Context) error {
	switch c.Config.Storage.Driver {
	case "postgres":
		db, err := InitDatabase(ctx, c.Config.Storage.DatabaseURL)
		if err != nil {
			return err
		}
		c.DB = db
		c.Store = postgres.NewOrderRepository(db)
		c.logger.Info("order store: postgres")
	default:
		store, err := excel.NewFileStore(c.Config.Storage.DataFile, c.logger)
		if err != nil {
			return err
		}
		c.Store = store
		c.logger.Info("order store: xlsx", zap.String("path", c.Config.Storage.DataFile))
	}
	return nil
}

func (c *Container) initReports(ctx context.Context) error {
	switch c.Config.Reports.Storage {
	case "s3":
		client, err := storage.NewS3Client(ctx, c.Config.Reports)
		if err != nil {
			return err
		}
		c.Reports = storage.NewS3Store(client, c.Config.Reports.Bucket, c.Config.Reports.Prefix, c.logger)
		c.logger.Info("report storage: s3",
			zap.String("bucket", c.Config.Reports.Bucket),
			zap.String("prefix", c.Config.Reports.Prefix),
		)
	default:
		store, err := storage.NewLocalStore(c.Config.Reports.Dir, c.logger)
		if err != nil {
			return err
		}
		c.Reports = store
		c.logger.Info("report storage: local", zap.String("dir", c.Config.Reports.Dir))
	}
	return nil
}

// InitDatabase connects to PostgreSQL and applies the schema
func InitDatabase(ctx context.Context, url string) (*sqlx.DB, error) {
	if url == "" {
		return nil, errors.ConfigInvalid("DATABASE_URL is required")
	}

	db, err := sqlx.ConnectContext(ctx, "postgres", url)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to ping database")
	}

	if err := migration.NewRunner().Run(ctx, db); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "database migration failed")
	}
	return db, nil
}

// Router returns the backend HTTP handler
func (c *Container) Router() *gin.Engine {
	return api.NewRouter(c.Service, c.Metrics, c.logger)
}

// Shutdown releases the database connection, if any
func (c *Container) Shutdown(ctx context.Context) error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
