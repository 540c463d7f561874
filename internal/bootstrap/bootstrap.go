// Package bootstrap wires configured backends for the binaries.
package bootstrap

import (
	"context"
	"fmt"

	"portfolio-site/internal/adapter/repository"
	"portfolio-site/internal/config"
	"portfolio-site/internal/infrastructure/migration"
	"portfolio-site/internal/platform/logger"
	"portfolio-site/internal/usecase"
	"portfolio-site/pkg/infrastructure"
)

// Setup reads the configuration, .env included, and then builds the logger
// for its LOG_MODE.
func Setup() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load(nil)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, nil, fmt.Errorf("build logger: %w", err)
	}
	log.Debug("configuration loaded", "store", cfg.StoreBackend, "uploads", cfg.Upload.Backend, "admin_mode", cfg.AdminMode)
	return cfg, log, nil
}

// OpenStore connects the configured document store. The returned func
// releases its connections.
func OpenStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (usecase.Store, func(), error) {
	switch cfg.StoreBackend {
	case config.StorePostgres:
		pool, err := infrastructure.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err := migration.RunMigrations(ctx, pool, log); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("run migrations: %w", err)
		}
		log.Info("document store ready", "backend", cfg.StoreBackend, "document", cfg.DocumentID)
		return repository.NewPostgresStore(pool, cfg.DocumentID, log), pool.Close, nil

	case config.StoreRedis:
		client, err := infrastructure.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		log.Info("document store ready", "backend", cfg.StoreBackend, "addr", cfg.Redis.Addr, "key", cfg.Redis.Key)
		return repository.NewRedisStore(client, cfg.Redis.Key, log), func() { _ = client.Close() }, nil

	default:
		log.Info("document store ready", "backend", config.StoreFile, "path", cfg.DataFile)
		return repository.NewFileStore(cfg.DataFile, log), func() {}, nil
	}
}

// OpenBlobStore returns the upload destination and, for the local backend,
// the directory the HTTP layer serves uploads from.
func OpenBlobStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (usecase.BlobStore, string, func(), error) {
	if cfg.Upload.Backend == config.UploadGCS {
		gcs, err := infrastructure.NewGCSBlobStore(ctx, cfg.Upload.GCSBucket, cfg.Upload.GCSPublicBase, cfg.Upload.EmulatorHost)
		if err != nil {
			return nil, "", nil, fmt.Errorf("open gcs bucket: %w", err)
		}
		log.Info("upload store ready", "backend", config.UploadGCS, "bucket", cfg.Upload.GCSBucket)
		return gcs, "", func() { _ = gcs.Close() }, nil
	}
	local := infrastructure.NewLocalBlobStore(cfg.Upload.Dir, cfg.Upload.PublicPrefix)
	log.Info("upload store ready", "backend", config.UploadLocal, "dir", local.Dir())
	return local, local.Dir(), func() {}, nil
}
