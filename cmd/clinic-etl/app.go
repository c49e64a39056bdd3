package main

import (
	"context"
	"database/sql"
	"fmt"

	"clinic-etl/common/database"
	"clinic-etl/common/mqtt"
	commonredis "clinic-etl/common/redis"
	"clinic-etl/internal/classifier"
	"clinic-etl/internal/config"
	"clinic-etl/internal/extractor"
	"clinic-etl/internal/lexicon"
	"clinic-etl/internal/notify"
	"clinic-etl/internal/repository"
	"clinic-etl/internal/service"
	"clinic-etl/internal/store"
	"clinic-etl/internal/uploader"

	goredis "github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// app owns the pipeline and the connections behind its optional stages.
type app struct {
	pipeline service.Pipeline
	redis    *goredis.Client
	db       *sql.DB
	mqtt     *mqtt.Client
	logger   *zap.Logger
}

// newApp builds the pipeline. The cache is wired whenever it is enabled;
// the batch sinks only when withSinks is set.
func newApp(ctx context.Context, cfg *config.Config, logger *zap.Logger, withSinks bool) (*app, error) {
	lex, err := lexicon.Load(cfg.LexiconPath)
	if err != nil {
		return nil, err
	}

	a := &app{logger: logger}
	var opts []service.Option

	if cfg.Redis.Enabled {
		client, err := commonredis.Connect(ctx, &cfg.Redis.RedisConfig)
		if err != nil {
			logger.Warn("Redis unavailable, extraction cache disabled", zap.Error(err))
		} else {
			a.redis = client
			cache := store.NewRecordCache(store.NewRedisKVStore(a.redis), cfg.Redis.TTL)
			opts = append(opts, service.WithCache(cache))
		}
	}

	if withSinks {
		if cfg.Database.Enabled {
			db, err := database.NewPostgresDB(ctx, &cfg.Database.DatabaseConfig)
			if err != nil {
				a.Close()
				return nil, fmt.Errorf("report database: %w", err)
			}
			a.db = db
			repo := repository.NewReportRowsRepository(db, logger)
			if err := repo.EnsureSchema(ctx); err != nil {
				a.Close()
				return nil, err
			}
			opts = append(opts, service.WithSink(repo))
		}
		if cfg.MQTT.Enabled {
			client, err := mqtt.NewClient(&cfg.MQTT.MQTTConfig)
			if err != nil {
				a.Close()
				return nil, err
			}
			a.mqtt = client
			opts = append(opts, service.WithNotifier(notify.NewNotifier(client, cfg.MQTT.Topic, logger)))
		}
		if cfg.Upload.Enabled {
			up := uploader.NewUploader(uploader.Options{
				URL:     cfg.Upload.URL,
				Token:   cfg.Upload.Token,
				Timeout: cfg.Upload.Timeout,
				Retries: cfg.Upload.Retries,
			}, logger)
			opts = append(opts, service.WithUploader(up))
		}
	}

	a.pipeline = service.NewPipeline(
		extractor.NewExtractor(logger),
		classifier.NewClassifier(lex, cfg.ReferenceDate, logger),
		logger,
		opts...,
	)
	return a, nil
}

// Close releases every open connection.
func (a *app) Close() {
	if a.mqtt != nil {
		a.mqtt.Disconnect()
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("Failed to close database", zap.Error(err))
		}
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("Failed to close redis", zap.Error(err))
		}
	}
}
